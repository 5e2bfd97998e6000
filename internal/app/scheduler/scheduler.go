// Package scheduler contains the daily report roll-up application.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/metrikapro/metrika-backend/internal/config"
	reportservice "github.com/metrikapro/metrika-backend/internal/services/reports"
	"github.com/metrikapro/metrika-backend/internal/storage/repository"
)

// App is the report scheduler application.
type App struct {
	reportService *reportservice.ReportService
	interval      time.Duration
	logger        *slog.Logger
	db            *repository.Storage
}

func waitForDB(ctx context.Context, db *repository.Storage) error {
	for range 10 {
		if err := db.CheckDatabaseReady(ctx); err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

// New creates the scheduler application.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}
	if err := waitForDB(ctx, db); err != nil {
		return nil, err
	}

	return &App{
		reportService: reportservice.NewReportService(db, logger),
		interval:      cfg.ReportInterval,
		logger:        logger,
		db:            db,
	}, nil
}

// Run builds yesterday's reports immediately, then keeps rebuilding on
// the configured interval until ctx is done.
func (a *App) Run(ctx context.Context) error {
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	if err := a.reportService.BuildFor(ctx, yesterday); err != nil {
		a.logger.Error("initial report run failed", slog.Any("err", err))
	}

	a.reportService.Run(ctx, a.interval)

	a.logger.Info("shutting down report scheduler")
	if err := a.db.DB.Close(); err != nil {
		a.logger.Error("failed to close database", slog.Any("err", err))
	}
	return nil
}
