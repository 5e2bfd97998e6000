package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/metrikapro/metrika-backend/internal/models"
)

// SumSales returns the total revenue and number of sales of a project
// within [from, to].
func (s *Storage) SumSales(ctx context.Context, projectID string, from, to time.Time) (float64, int, error) {
	const op = "storage.SumSales"
	select {
	case <-ctx.Done():
		return 0, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(amount), 0), COUNT(*)
			  FROM sales
			  WHERE project_id = $1 AND sale_date >= $2 AND sale_date <= $3`
	var revenue float64
	var count int
	if err := s.DB.QueryRowContext(ctx, query, projectID, from, to).Scan(&revenue, &count); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return revenue, count, nil
}

// SumAdSpend returns the total ad spend of a project within [from, to].
func (s *Storage) SumAdSpend(ctx context.Context, projectID string, from, to time.Time) (float64, error) {
	const op = "storage.SumAdSpend"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(amount), 0)
			  FROM ad_spend
			  WHERE project_id = $1 AND spend_date >= $2 AND spend_date <= $3`
	var spend float64
	if err := s.DB.QueryRowContext(ctx, query, projectID, from, to).Scan(&spend); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return spend, nil
}

// UpsertMetricsCache mirrors a computed summary into the metrics_cache
// table, replacing a previous row for the same project and period.
func (s *Storage) UpsertMetricsCache(ctx context.Context, summary models.MetricsSummary) error {
	const op = "storage.UpsertMetricsCache"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO metrics_cache (project_id, period_start, period_end, revenue, ad_spend, computed_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (project_id, period_start, period_end)
			  DO UPDATE SET revenue = EXCLUDED.revenue,
			                ad_spend = EXCLUDED.ad_spend,
			                computed_at = EXCLUDED.computed_at`
	_, err := s.DB.ExecContext(ctx, query,
		summary.ProjectID, summary.PeriodStart, summary.PeriodEnd,
		summary.Revenue, summary.AdSpend, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
