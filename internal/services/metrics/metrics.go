// Package services computes aggregated project metrics with a
// cache-aside redis layer in front of the SQL aggregations.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/metrikapro/metrika-backend/internal/lib/sl"
	"github.com/metrikapro/metrika-backend/internal/models"
)

// SummaryTTL is how long a computed summary lives in redis.
const SummaryTTL = time.Hour

// MetricsRepository defines the aggregation queries used by the service.
type MetricsRepository interface {
	SumSales(ctx context.Context, projectID string, from, to time.Time) (float64, int, error)
	SumAdSpend(ctx context.Context, projectID string, from, to time.Time) (float64, error)
	UpsertMetricsCache(ctx context.Context, summary models.MetricsSummary) error
}

// Cache is the redis-backed JSON cache.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// MetricsService computes revenue, spend, profit and ROAS summaries.
type MetricsService struct {
	repo  MetricsRepository
	cache Cache // nil disables caching
	log   *slog.Logger
}

// NewMetricsService creates a new MetricsService.
func NewMetricsService(repo MetricsRepository, cache Cache, log *slog.Logger) *MetricsService {
	return &MetricsService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func summaryKey(projectID string, from, to time.Time) string {
	return fmt.Sprintf("metrics:%s:%s:%s",
		projectID, from.UTC().Format("2006-01-02"), to.UTC().Format("2006-01-02"))
}

// GetSummary returns the aggregated metrics of a project for [from, to].
// A cached summary is served when present; otherwise the aggregates are
// computed from sales and ad_spend and mirrored into both the redis
// cache and the metrics_cache table.
func (s *MetricsService) GetSummary(ctx context.Context, projectID string, from, to time.Time) (*models.MetricsSummary, error) {
	const op = "services.GetSummary"

	key := summaryKey(projectID, from, to)
	if s.cache != nil {
		var cached models.MetricsSummary
		found, err := s.cache.Get(key, &cached)
		if err != nil {
			s.log.Warn("metrics cache read failed", sl.Err(err))
		}
		if found {
			return &cached, nil
		}
	}

	revenue, count, err := s.repo.SumSales(ctx, projectID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	spend, err := s.repo.SumAdSpend(ctx, projectID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summary := models.MetricsSummary{
		ProjectID:   projectID,
		PeriodStart: from,
		PeriodEnd:   to,
		Revenue:     revenue,
		SalesCount:  count,
		AdSpend:     spend,
		Profit:      revenue - spend,
	}
	if spend > 0 {
		summary.ROAS = revenue / spend
	}

	if err := s.repo.UpsertMetricsCache(ctx, summary); err != nil {
		s.log.Warn("failed to mirror summary into metrics_cache", sl.Err(err))
	}
	if s.cache != nil {
		if err := s.cache.Set(key, summary, SummaryTTL); err != nil {
			s.log.Warn("metrics cache write failed", sl.Err(err))
		}
	}
	return &summary, nil
}

// InvalidateSummary drops a cached summary, typically after new sales
// or spend data arrived for the period.
func (s *MetricsService) InvalidateSummary(projectID string, from, to time.Time) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(summaryKey(projectID, from, to))
}
