// Command server runs the song proposal HTTP API.
//
//	@title						Song Proposal API
//	@version					1.0
//	@description				Artists (or their agents) propose songs to radio stations; stations accept or reject them.
//	@BasePath					/api/v1
//	@schemes					http https
//	@securityDefinitions.apikey	ActorID
//	@in							header
//	@name						X-Actor-ID
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	_ "github.com/tbourn/go-proposal-backend/docs"
	"github.com/tbourn/go-proposal-backend/internal/cache"
	"github.com/tbourn/go-proposal-backend/internal/config"
	httpapi "github.com/tbourn/go-proposal-backend/internal/http"
	"github.com/tbourn/go-proposal-backend/internal/notify"
	"github.com/tbourn/go-proposal-backend/internal/observability"
	"github.com/tbourn/go-proposal-backend/internal/repo"
	"github.com/tbourn/go-proposal-backend/internal/seed"
	"github.com/tbourn/go-proposal-backend/internal/services"
	"github.com/tbourn/go-proposal-backend/internal/sysutil"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	sysutil.SetupLogging(os.Stderr, cfg.LogLevel, cfg.LogPretty, cfg.OTEL.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg config.Config) error {
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version))
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	deps, closeDeps, err := newDeps(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer closeDeps()

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("base_path", cfg.APIBasePath).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}

// openDatabase connects, migrates and, when SEED_PATH is set, loads the
// catalog.
func openDatabase(ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	db, err := repo.Open(repo.Options{
		Driver:      cfg.DBDriver,
		Path:        cfg.DBPath,
		DatabaseURL: cfg.DatabaseURL,
		Tracing:     cfg.OTEL.Enabled,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if cfg.SeedPath != "" {
		songs, stations, err := seed.LoadAndApply(ctx, db, cfg.SeedPath)
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", cfg.SeedPath, err)
		}
		log.Info().Str("path", cfg.SeedPath).Int("songs", songs).Int("stations", stations).Msg("catalog seeded")
	}
	return db, nil
}

// newDeps builds the optional integrations. Without REDIS_URL there is no
// stats cache and no event publisher; without RESEND_API_KEY no e-mail is
// sent. Events are always logged.
func newDeps(ctx context.Context, cfg config.Config, db *gorm.DB) (httpapi.Deps, func(), error) {
	deps := httpapi.Deps{DB: db}
	closeFn := func() {}
	dispatchers := notify.Multi{notify.LogDispatcher{}}

	if cfg.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return deps, closeFn, err
		}
		closeFn = func() { _ = client.Close() }
		deps.Cache = cache.NewStatsCache(client, "proposals:stats", cfg.StatsCacheTTL)
		dispatchers = append(dispatchers, notify.NewRedisPublisher(client, cfg.EventsChannel))
		log.Info().Str("channel", cfg.EventsChannel).Dur("stats_ttl", cfg.StatsCacheTTL).Msg("redis enabled")
	}

	if cfg.ResendAPIKey != "" {
		dispatchers = append(dispatchers, notify.NewEmailDispatcher(cfg.ResendAPIKey, cfg.MailFrom))
		log.Info().Str("from", cfg.MailFrom).Msg("e-mail notifications enabled")
	}

	deps.Dispatcher = services.Dispatcher(dispatchers)
	return deps, closeFn, nil
}
