package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"mesaYaSync/internal/modules/realtime/domain"
	"mesaYaSync/internal/modules/realtime/infrastructure"
	"mesaYaSync/internal/shared/auth"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewReservationsWebsocketHandler exposes the console stream. The token may
// arrive as a path segment, a query parameter or an Authorization header;
// browser websocket clients cannot set headers, hence the fallbacks.
func NewReservationsWebsocketHandler(hub *infrastructure.Hub, validator auth.TokenValidator, sendBuffer int) echo.HandlerFunc {
	return func(c echo.Context) error {
		peerIP := c.RealIP()

		token := c.Param("token")
		if token == "" {
			token = auth.ExtractToken(c.Request(), "token")
		}
		claims, err := validator.Validate(token)
		if err != nil {
			slog.Warn("ws auth failed", slog.String("ip", peerIP), slog.Any("error", err))
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws upgrade failed", slog.String("ip", peerIP), slog.Any("error", err))
			return err
		}

		sessionID := claims.SessionID
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		client := infrastructure.NewClient(hub, conn, claims.Subject, sessionID, sendBuffer)
		hub.AttachClient(client, domain.ConsoleTopics())

		go client.WritePump()
		go client.ReadPump()

		client.SendMessage(&domain.Message{
			Topic:  domain.TopicSystemConnected,
			Entity: domain.SystemEntity,
			Action: domain.ActionConnected,
			Metadata: domain.Metadata{
				"sessionId": sessionID,
				"userId":    claims.Subject,
			},
			Data:      map[string]any{"topics": domain.ConsoleTopics()},
			Timestamp: time.Now().UTC(),
		})

		slog.Info("ws connected", slog.String("userId", claims.Subject), slog.String("sessionId", sessionID), slog.String("ip", peerIP))
		return nil
	}
}
