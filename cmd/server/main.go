package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"mesaYaSync/internal/config"
	realtimeuc "mesaYaSync/internal/modules/realtime/application/usecase"
	"mesaYaSync/internal/modules/realtime/infrastructure"
	transport "mesaYaSync/internal/modules/realtime/interface"
	reservations "mesaYaSync/internal/modules/reservations/domain"
	syncuc "mesaYaSync/internal/modules/sync/application/usecase"
	syncdomain "mesaYaSync/internal/modules/sync/domain"
	syncinfra "mesaYaSync/internal/modules/sync/infrastructure"
	"mesaYaSync/internal/platform/broker"
	"mesaYaSync/internal/shared/auth"
	"mesaYaSync/internal/shared/logging"
)

func main() {
	// Load .env first so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("upstream configured", slog.String("baseUrl", cfg.Upstream.BaseURL), slog.String("streamPath", cfg.Upstream.StreamPath))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := infrastructure.NewHub()
	publisher := realtimeuc.NewMirrorBroadcaster(hub)

	tokens := auth.EnvTokenSource(cfg.Upstream.TokenEnv)
	restClient := syncinfra.NewRestaurantHTTPClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, nil)
	mirror := syncuc.NewReservationMirror(restClient, tokens, publisher)
	profiles := syncuc.NewRestaurantProfileCache(restClient, tokens, cfg.Sync.ProfileTTL)

	stream := syncinfra.NewStreamClient(
		syncinfra.StreamConfig{
			BaseURL: cfg.Upstream.BaseURL,
			Path:    cfg.Upstream.StreamPath,
			Backoff: syncdomain.Backoff{Base: cfg.Sync.BackoffBase, Max: cfg.Sync.BackoffMax},
		},
		nil,
		tokens,
		func(ctx context.Context, event *reservations.Event) { mirror.Apply(ctx, event) },
		func(state syncdomain.ConnectionState) { publisher.PublishState(ctx, state) },
	)

	// Seed the mirror; a failure here is not fatal, the feed and the manual
	// refresh endpoint catch the state up later.
	if err := mirror.Refresh(ctx); err != nil {
		slog.Warn("initial reservation load failed", slog.Any("error", err))
	}
	stream.Connect(ctx)

	broker.StartConsumers(ctx, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topics, func(ctx context.Context, event *reservations.Event) {
		mirror.Apply(ctx, event)
	})

	validator := auth.NewJWTValidator(cfg.Security.JWTSecret, cfg.Security.JWTPublicKey)
	wsHandler := transport.NewReservationsWebsocketHandler(hub, validator, cfg.Websocket.SendBuffer)
	availabilityHandler := transport.NewAvailabilityHandler(profiles, mirror)
	reservationsHandler := transport.NewReservationsHandler(ctx, mirror, stream, hub)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())

	e.GET("/ws/reservations/:token", wsHandler)
	e.GET("/ws/reservations", wsHandler)
	e.GET("/api/v1/availability/slots", availabilityHandler.Slots)
	e.GET("/api/v1/availability/occupancy", availabilityHandler.Occupancy)
	e.GET("/api/v1/reservations", reservationsHandler.List)
	e.POST("/api/v1/reservations/refresh", reservationsHandler.Refresh)
	e.POST("/api/v1/stream/reconnect", reservationsHandler.Reconnect)
	e.GET("/healthz", reservationsHandler.Health)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")
	stream.Disconnect()
	cancel()
	e.Close()
}

func setupLogging(cfg config.LoggingConfig) (*os.File, *slog.Logger, error) {
	file, err := logging.OpenDailyFile(cfg.Directory)
	if err != nil {
		return nil, nil, err
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
