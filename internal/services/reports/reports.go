// Package services builds the per-day revenue and spend roll-ups that
// feed the daily_reports table.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/metrikapro/metrika-backend/internal/lib/sl"
	"github.com/metrikapro/metrika-backend/internal/models"
	"github.com/metrikapro/metrika-backend/internal/storage/repository"
)

// ReportRepository defines the storage methods used by the roll-up.
type ReportRepository interface {
	ListProjectIDs(ctx context.Context) ([]string, error)
	SumSales(ctx context.Context, projectID string, from, to time.Time) (float64, int, error)
	SumAdSpend(ctx context.Context, projectID string, from, to time.Time) (float64, error)
	InsertDailyReport(ctx context.Context, report models.DailyReport) error
	ListDailyReports(ctx context.Context, projectID string, limit int) ([]*models.DailyReport, error)
}

// ReportService computes and stores daily roll-ups for every project.
type ReportService struct {
	repo ReportRepository
	log  *slog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(repo ReportRepository, log *slog.Logger) *ReportService {
	return &ReportService{
		repo: repo,
		log:  log,
	}
}

// List returns the most recent daily reports of a project.
func (s *ReportService) List(ctx context.Context, projectID string, limit int) ([]*models.DailyReport, error) {
	if limit <= 0 {
		limit = 30
	}
	return s.repo.ListDailyReports(ctx, projectID, limit)
}

// BuildFor aggregates one calendar day for every project and upserts
// the results. A failing project is logged and skipped so one broken
// project cannot starve the rest of the run.
func (s *ReportService) BuildFor(ctx context.Context, day time.Time) error {
	const op = "services.BuildFor"

	ids, err := s.repo.ListProjectIDs(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	from, to := repository.ReportWindow(day)
	for _, projectID := range ids {
		revenue, count, err := s.repo.SumSales(ctx, projectID, from, to)
		if err != nil {
			s.log.Error("failed to aggregate sales", slog.String("project_id", projectID), sl.Err(err))
			continue
		}
		spend, err := s.repo.SumAdSpend(ctx, projectID, from, to)
		if err != nil {
			s.log.Error("failed to aggregate ad spend", slog.String("project_id", projectID), sl.Err(err))
			continue
		}
		report := models.DailyReport{
			ProjectID:  projectID,
			ReportDate: from,
			Revenue:    revenue,
			SalesCount: count,
			AdSpend:    spend,
		}
		if err := s.repo.InsertDailyReport(ctx, report); err != nil {
			s.log.Error("failed to store daily report", slog.String("project_id", projectID), sl.Err(err))
			continue
		}
	}
	s.log.Info("daily reports built",
		slog.Time("report_date", from),
		slog.Int("projects", len(ids)))
	return nil
}

// Run rebuilds yesterday's reports on every tick until ctx is done.
func (s *ReportService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("report scheduler stopped")
			return
		case <-ticker.C:
			yesterday := time.Now().UTC().AddDate(0, 0, -1)
			if err := s.BuildFor(ctx, yesterday); err != nil {
				s.log.Error("daily report run failed", sl.Err(err))
			}
		}
	}
}
