package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/metrikapro/metrika-backend/internal/models"
)

// InsertDailyReport stores a per-day roll-up for a project, replacing a
// previous report for the same date.
func (s *Storage) InsertDailyReport(ctx context.Context, report models.DailyReport) error {
	const op = "storage.InsertDailyReport"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO daily_reports (project_id, report_date, revenue, sales_count, ad_spend)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (project_id, report_date)
			  DO UPDATE SET revenue = EXCLUDED.revenue,
			                sales_count = EXCLUDED.sales_count,
			                ad_spend = EXCLUDED.ad_spend`
	_, err := s.DB.ExecContext(ctx, query,
		report.ProjectID, report.ReportDate, report.Revenue, report.SalesCount, report.AdSpend)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListDailyReports returns the most recent daily reports of a project.
func (s *Storage) ListDailyReports(ctx context.Context, projectID string, limit int) ([]*models.DailyReport, error) {
	const op = "storage.ListDailyReports"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, project_id, report_date, revenue, sales_count, ad_spend
			  FROM daily_reports
			  WHERE project_id = $1
			  ORDER BY report_date DESC
			  LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.DailyReport
	for rows.Next() {
		var item models.DailyReport
		if err := rows.Scan(&item.ID, &item.ProjectID, &item.ReportDate,
			&item.Revenue, &item.SalesCount, &item.AdSpend); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ReportWindow returns the [from, to) day bounds for a report date.
func ReportWindow(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}
