package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/outdoor-rental/internal/config"
	"github.com/iliyamo/outdoor-rental/internal/database"
	"github.com/iliyamo/outdoor-rental/internal/handler"
	"github.com/iliyamo/outdoor-rental/internal/logging"
	"github.com/iliyamo/outdoor-rental/internal/middleware"
	"github.com/iliyamo/outdoor-rental/internal/queue"
	"github.com/iliyamo/outdoor-rental/internal/repository"
	"github.com/iliyamo/outdoor-rental/internal/router"
	"github.com/iliyamo/outdoor-rental/internal/service"
)

func main() {
	config.LoadDotenv()
	cfg := config.Load()
	logging.Init("outdoor-api", cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, database.Options{
		User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("schema migration failed")
		}
	}

	rdb := config.NewRedisClient(ctx, config.LoadRedisConfig())
	if rdb != nil {
		defer rdb.Close()
	}

	qcfg := config.LoadQueueConfig()
	var events service.EventPublisher
	if qcfg.Enabled {
		events = queue.NewPublisher(qcfg.URL, qcfg.Queue)
		log.Info().Str("queue", qcfg.Queue).Msg("reservation events enabled")
	}
	if qcfg.ConsumerEnabled {
		consumer := queue.NewConsumer(qcfg.URL, qcfg.Queue, qcfg.LogPath)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("reservation consumer stopped")
			}
		}()
	}

	outdoorRepo := repository.NewOutdoorRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	outdoors := service.NewOutdoorService(outdoorRepo)
	reservations := service.NewReservationService(outdoorRepo, reservationRepo, events)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger())
	e.Use(echomw.CORS())

	rl := config.LoadRateLimitConfig()
	limit := middleware.NewTokenBucket(rl, rdb)
	authLimit := middleware.NewTokenBucket(rl.ForAuth(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e, handler.NewHealthHandler(db))
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db)), cfg.JWTSecret, authLimit)
	router.RegisterPublic(e, handler.NewPublicHandler(reservations), limit, cache)
	router.RegisterOutdoors(e, handler.NewOutdoorHandler(outdoors, reservations), cfg.JWTSecret, limit)
	router.RegisterReservations(e, handler.NewReservationHandler(reservations), handler.NewReportHandler(reservations), cfg.JWTSecret, limit)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
