package services

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/metrikapro/metrika-backend/internal/models"
)

type MockMetricsRepository struct {
	mock.Mock
}

func (m *MockMetricsRepository) SumSales(ctx context.Context, projectID string, from, to time.Time) (float64, int, error) {
	args := m.Called(ctx, projectID, from, to)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

func (m *MockMetricsRepository) SumAdSpend(ctx context.Context, projectID string, from, to time.Time) (float64, error) {
	args := m.Called(ctx, projectID, from, to)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockMetricsRepository) UpsertMetricsCache(ctx context.Context, summary models.MetricsSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

// fakeCache is an in-memory stand-in for the redis cache.
type fakeCache struct {
	data map[string]models.MetricsSummary
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]models.MetricsSummary)}
}

func (c *fakeCache) Get(key string, result any) (bool, error) {
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	*result.(*models.MetricsSummary) = v
	return true, nil
}

func (c *fakeCache) Set(key string, value any, _ time.Duration) error {
	c.data[key] = value.(models.MetricsSummary)
	return nil
}

func (c *fakeCache) Invalidate(key string) error {
	delete(c.data, key)
	return nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

var (
	from = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to   = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
)

func TestGetSummary_ComputesProfitAndROAS(t *testing.T) {
	repo := new(MockMetricsRepository)
	repo.On("SumSales", mock.Anything, "p1", from, to).Return(1000.0, 10, nil)
	repo.On("SumAdSpend", mock.Anything, "p1", from, to).Return(250.0, nil)
	repo.On("UpsertMetricsCache", mock.Anything, mock.Anything).Return(nil)

	svc := NewMetricsService(repo, nil, newTestLogger())

	summary, err := svc.GetSummary(context.Background(), "p1", from, to)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, summary.Revenue)
	assert.Equal(t, 10, summary.SalesCount)
	assert.Equal(t, 750.0, summary.Profit)
	assert.Equal(t, 4.0, summary.ROAS)
}

func TestGetSummary_ZeroSpendMeansZeroROAS(t *testing.T) {
	repo := new(MockMetricsRepository)
	repo.On("SumSales", mock.Anything, "p1", from, to).Return(500.0, 5, nil)
	repo.On("SumAdSpend", mock.Anything, "p1", from, to).Return(0.0, nil)
	repo.On("UpsertMetricsCache", mock.Anything, mock.Anything).Return(nil)

	svc := NewMetricsService(repo, nil, newTestLogger())

	summary, err := svc.GetSummary(context.Background(), "p1", from, to)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.ROAS)
	assert.Equal(t, 500.0, summary.Profit)
}

func TestGetSummary_CacheHitSkipsStorage(t *testing.T) {
	repo := new(MockMetricsRepository)
	repo.On("SumSales", mock.Anything, "p1", from, to).Return(1000.0, 10, nil).Once()
	repo.On("SumAdSpend", mock.Anything, "p1", from, to).Return(250.0, nil).Once()
	repo.On("UpsertMetricsCache", mock.Anything, mock.Anything).Return(nil).Once()

	svc := NewMetricsService(repo, newFakeCache(), newTestLogger())

	first, err := svc.GetSummary(context.Background(), "p1", from, to)
	require.NoError(t, err)

	second, err := svc.GetSummary(context.Background(), "p1", from, to)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	repo.AssertNumberOfCalls(t, "SumSales", 1)
}

func TestInvalidateSummary(t *testing.T) {
	repo := new(MockMetricsRepository)
	repo.On("SumSales", mock.Anything, "p1", from, to).Return(1000.0, 10, nil).Twice()
	repo.On("SumAdSpend", mock.Anything, "p1", from, to).Return(250.0, nil).Twice()
	repo.On("UpsertMetricsCache", mock.Anything, mock.Anything).Return(nil).Twice()

	svc := NewMetricsService(repo, newFakeCache(), newTestLogger())

	_, err := svc.GetSummary(context.Background(), "p1", from, to)
	require.NoError(t, err)
	require.NoError(t, svc.InvalidateSummary("p1", from, to))

	_, err = svc.GetSummary(context.Background(), "p1", from, to)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "SumSales", 2)
}
