package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/therapy-portal/internal/apiclient"
	"github.com/jwalitptl/therapy-portal/internal/config"
	"github.com/jwalitptl/therapy-portal/internal/email"
	adminhandler "github.com/jwalitptl/therapy-portal/internal/handler/admin"
	bookinghandler "github.com/jwalitptl/therapy-portal/internal/handler/booking"
	"github.com/jwalitptl/therapy-portal/internal/handler/health"
	noticehandler "github.com/jwalitptl/therapy-portal/internal/handler/notice"
	sitehandler "github.com/jwalitptl/therapy-portal/internal/handler/site"
	"github.com/jwalitptl/therapy-portal/internal/middleware"
	"github.com/jwalitptl/therapy-portal/internal/repository"
	"github.com/jwalitptl/therapy-portal/internal/repository/memory"
	"github.com/jwalitptl/therapy-portal/internal/repository/postgres"
	redisstore "github.com/jwalitptl/therapy-portal/internal/repository/redis"
	"github.com/jwalitptl/therapy-portal/internal/router"
	"github.com/jwalitptl/therapy-portal/internal/service/booking"
	"github.com/jwalitptl/therapy-portal/internal/service/dashboard"
	"github.com/jwalitptl/therapy-portal/internal/service/notice"
	"github.com/jwalitptl/therapy-portal/internal/service/schedule"
	"github.com/jwalitptl/therapy-portal/internal/service/scheduling"
	"github.com/jwalitptl/therapy-portal/internal/service/site"
	"github.com/jwalitptl/therapy-portal/internal/worker"
	"github.com/jwalitptl/therapy-portal/pkg/logger"
	"github.com/jwalitptl/therapy-portal/pkg/metrics"
	"github.com/jwalitptl/therapy-portal/pkg/security"
	"github.com/jwalitptl/therapy-portal/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics("portal")
	v := validator.New()
	api := apiclient.New(apiclient.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, apiclient.WithMetrics(m))

	checks := map[string]health.Pinger{}

	// Draft storage: Redis when configured, in-process otherwise
	var drafts repository.DraftStore
	if cfg.Redis.URL != "" {
		client, err := redisstore.Connect(ctx, redisstore.Config{
			URL:          cfg.Redis.URL,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer client.Close()
		drafts = redisstore.NewDraftStore(client, cfg.Booking.DraftTTL)
	} else {
		log.Warn().Msg("redis.url not set, booking drafts are kept in memory")
		drafts = memory.NewDraftStore(cfg.Booking.DraftTTL)
	}
	checks["drafts"] = drafts

	// Booking ledger
	var ledger repository.BookingLedgerRepository
	if cfg.Database.Enabled {
		db, err := postgres.NewDB(ctx, postgres.Config{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			Name:         cfg.Database.Name,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()

		if err := postgres.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}

		ledger = postgres.NewBookingLedgerRepository(db)
		checks["ledger"] = ledger

		pruner := worker.NewLedgerPruneWorker(ledger, cfg.Database.LedgerRetention, cfg.Database.PruneInterval)
		go pruner.Start(ctx)
	}

	hours, err := scheduling.ParseWeeklyHours(cfg.Schedule.Hours)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid schedule.hours")
	}

	// Initialize services
	slots := scheduling.NewService(scheduling.Config{
		Hours:    hours,
		Step:     time.Duration(cfg.Schedule.StepMinutes) * time.Minute,
		Duration: time.Duration(cfg.Schedule.DurationMinutes) * time.Minute,
	}, api, m)
	bookings := booking.NewService(drafts, ledger, slots, api, v, m)
	notices := notice.NewService(notice.Config{Retention: cfg.Notice.Retention})
	dashboards := dashboard.NewService(api, v, m, dashboard.Config{
		UpcomingCap: cfg.Dashboard.UpcomingCap,
		RecentCap:   cfg.Dashboard.RecentCap,
	})
	schedules := schedule.NewService(api, v)
	mailer := email.NewService(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	sites := site.NewService(api, mailer, v, cfg.SMTP.To)

	gate, err := security.NewAdminGate(cfg.Admin.Password, cfg.Admin.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash admin password")
	}
	if !gate.Enabled() {
		log.Warn().Msg("admin password not set, admin routes are locked")
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	r := router.NewRouter(router.Handlers{
		Health:  health.NewHandler(checks, m.Handler()),
		Site:    sitehandler.NewHandler(sites, notices),
		Booking: bookinghandler.NewHandler(bookings, slots, notices),
		Notice:  noticehandler.NewHandler(notices),
		Admin:   adminhandler.NewHandler(dashboards, schedules, bookings, notices),
	}, gate, notices, m, router.RouterConfig{
		Mode:             cfg.Server.Mode,
		CORSConfig:       corsConfig,
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimit: middleware.RateLimiterConfig{
			RPS:   cfg.RateLimit.RequestsPerSecond,
			Burst: cfg.RateLimit.Burst,
		},
		Security:       middleware.DefaultSecurityConfig(),
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	})
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("api", cfg.API.BaseURL).Msg("starting portal")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
