package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"mesaYaSync/internal/modules/realtime/infrastructure"
	"mesaYaSync/internal/modules/sync/application/port"
	"mesaYaSync/internal/modules/sync/application/usecase"
	syncinfra "mesaYaSync/internal/modules/sync/infrastructure"
	"mesaYaSync/internal/shared/httputil"
)

// ReservationsHandler exposes the mirror snapshot, the manual refresh trigger
// and the health probe.
type ReservationsHandler struct {
	appCtx context.Context
	mirror *usecase.ReservationMirror
	stream *syncinfra.StreamClient
	hub    *infrastructure.Hub
	mapper *httputil.ErrorMapper
}

// NewReservationsHandler wires the mirror endpoints. appCtx outlives any single
// request and scopes the upstream stream opened by Reconnect.
func NewReservationsHandler(appCtx context.Context, mirror *usecase.ReservationMirror, stream *syncinfra.StreamClient, hub *infrastructure.Hub) *ReservationsHandler {
	mapper := httputil.NewErrorMapper().
		WithMapping(port.ErrFetchUnauthorized, http.StatusBadGateway, "upstream rejected credential").
		WithMapping(port.ErrFetchNotFound, http.StatusBadGateway, "upstream resource missing").
		WithMapping(port.ErrFetchFailed, http.StatusBadGateway, "upstream fetch failed")
	return &ReservationsHandler{appCtx: appCtx, mirror: mirror, stream: stream, hub: hub, mapper: mapper}
}

// List answers GET /api/v1/reservations with the current mirror contents.
func (h *ReservationsHandler) List(c echo.Context) error {
	items := h.mirror.Reservations()
	return c.JSON(http.StatusOK, map[string]any{
		"items":     items,
		"total":     len(items),
		"connected": h.stream.IsConnected(),
	})
}

// Refresh answers POST /api/v1/reservations/refresh with a wholesale reload.
// An already-running refresh makes this a cheap no-op.
func (h *ReservationsHandler) Refresh(c echo.Context) error {
	if err := h.mirror.Refresh(c.Request().Context()); err != nil {
		info := h.mapper.Map(err)
		return echo.NewHTTPError(info.Status, info.Message)
	}
	return c.JSON(http.StatusOK, map[string]any{"reservations": h.mirror.Len()})
}

// Reconnect answers POST /api/v1/stream/reconnect, forcing a fresh upstream
// connection.
func (h *ReservationsHandler) Reconnect(c echo.Context) error {
	h.stream.Reconnect(h.appCtx)
	return c.JSON(http.StatusOK, map[string]any{"state": h.stream.State().String()})
}

// Health answers GET /healthz.
func (h *ReservationsHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":       "ok",
		"streamState":  h.stream.State().String(),
		"reservations": h.mirror.Len(),
		"wsClients":    h.hub.ClientCount(),
		"time":         time.Now().UTC(),
	})
}
