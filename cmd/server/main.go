package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yedam/studycafe-seat-reservation/internal/config"
	"github.com/yedam/studycafe-seat-reservation/internal/handler"
	"github.com/yedam/studycafe-seat-reservation/internal/metrics"
	"github.com/yedam/studycafe-seat-reservation/internal/queue"
	"github.com/yedam/studycafe-seat-reservation/internal/repository"
	"github.com/yedam/studycafe-seat-reservation/internal/router"
	publisher "github.com/yedam/studycafe-seat-reservation/internal/service"
	"github.com/yedam/studycafe-seat-reservation/internal/status"
	"github.com/yedam/studycafe-seat-reservation/internal/storage"
	"github.com/yedam/studycafe-seat-reservation/internal/worker"
)

func main() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	_ = godotenv.Load() // .env is optional
	cfg := config.Load()
	loc := cfg.Location()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("open store failed")
	}
	if closeStore != nil {
		defer closeStore()
	}
	logger.Info().Str("backend", cfg.StoreBackend).Str("timezone", cfg.Timezone).Msg("store ready")

	gateway := storage.NewGateway(store, logger.With().Str("component", "storage").Logger())
	reservations := repository.NewReservationRepo(gateway, loc)
	seats := repository.NewSeatRepo(gateway)
	music := repository.NewMusicRepo(gateway)
	projector := status.NewProjector(reservations, seats, loc)

	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Expire overdue reservations once at startup and then on a fixed
	// cadence, mirroring the dashboard's refresh timer.
	expiry := worker.NewExpiryWorker(reservations, cfg.ExpiryInterval,
		logger.With().Str("component", "expiry").Logger())
	go expiry.Run(ctx)

	var pub *publisher.Publisher
	if cfg.EventsEnabled {
		pub = publisher.New(cfg.AMQPURL, logger.With().Str("component", "publisher").Logger())
		go queue.StartReservationConsumer(ctx, cfg.AMQPURL,
			logger.With().Str("component", "consumer").Logger())
	}

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e,
		handler.NewReservationHandler(reservations, pub),
		handler.NewSeatMapHandler(projector, seats, loc),
		handler.NewMusicHandler(music),
	)

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// openStore builds the configured key-value backend.  The returned closer is
// nil for backends without resources to release.
func openStore(cfg config.Config) (storage.Store, func(), error) {
	switch cfg.StoreBackend {
	case "redis":
		client := config.NewRedisClient(cfg)
		if client == nil {
			return nil, nil, errors.New("redis unreachable at " + cfg.RedisAddr)
		}
		return storage.NewRedisStore(client, cfg.RedisPrefix), func() { _ = client.Close() }, nil
	case "mysql":
		store, err := storage.OpenMySQL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return storage.NewMemoryStore(), nil, nil
	}
}
