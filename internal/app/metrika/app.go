// Package metrika wires the HTTP backend together: storage, migrations,
// the redis cache, the event broker and every service behind the API.
package metrika

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/metrikapro/metrika-backend/internal/cache"
	"github.com/metrikapro/metrika-backend/internal/config"
	"github.com/metrikapro/metrika-backend/internal/lib/jwt"
	"github.com/metrikapro/metrika-backend/internal/lib/rabbitmq"
	"github.com/metrikapro/metrika-backend/internal/lib/sl"
	"github.com/metrikapro/metrika-backend/internal/migrations"
	"github.com/metrikapro/metrika-backend/internal/pixel"
	authservice "github.com/metrikapro/metrika-backend/internal/services/auth"
	metricsservice "github.com/metrikapro/metrika-backend/internal/services/metrics"
	projectservice "github.com/metrikapro/metrika-backend/internal/services/project"
	reportservice "github.com/metrikapro/metrika-backend/internal/services/reports"
	"github.com/metrikapro/metrika-backend/internal/storage/repository"
)

// App is the HTTP backend application.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New builds the application from the configuration. RabbitMQ is
// optional: when the broker is unreachable the backend starts without
// event publishing instead of failing.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		logger.Warn("redis unavailable, metrics caching disabled", sl.Err(err))
		cacheRedis = nil
	}

	var (
		conn      *amqp.Connection
		ch        *amqp.Channel
		publisher *rabbitmq.Publisher
	)
	conn, err = rabbitmq.Connect(cfg.RabbitConnection, cfg.RabbitMaxRetries, cfg.RabbitRetryDelay)
	if err != nil {
		logger.Warn("rabbitmq unavailable, event publishing disabled", sl.Err(err))
	} else {
		ch, err = rabbitmq.SetupChannel(conn, rabbitmq.DefaultQueues)
		if err != nil {
			logger.Warn("rabbitmq channel setup failed, event publishing disabled", sl.Err(err))
		} else {
			publisher = rabbitmq.NewPublisher(ch)
		}
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)

	var projectPublisher projectservice.EventPublisher
	if publisher != nil {
		projectPublisher = publisher
	}
	projectService := projectservice.NewProjectService(db, projectPublisher, logger)

	var metricsCache metricsservice.Cache
	if cacheRedis != nil {
		metricsCache = cacheRedis
	}
	metricsService := metricsservice.NewMetricsService(db, metricsCache, logger)
	reportService := reportservice.NewReportService(db, logger)

	pixelService := pixel.New(logger)
	if publisher != nil {
		pixelService.Init(cfg.PixelID, publisher)
	}

	router := chi.NewRouter()
	registerRoutes(router, logger, db, authService, projectService, metricsService, reportService, pixelService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.closeResources()
		return err
	}
}

func (a *App) closeResources() {
	if a.ch != nil {
		if err := a.ch.Close(); err != nil {
			a.logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.logger.Error("failed to close connection", sl.Err(err))
		}
	}
	if err := a.db.DB.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
