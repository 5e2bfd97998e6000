package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDataFactory contains helpers for creating test data.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory creates a new test data factory.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser inserts a test user.
func (f *TestDataFactory) CreateUser(t *testing.T, uid, username, email, passwordHash, role, apiToken string) {
	t.Helper()
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, username, email, password_hash, role, api_token)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uid, username, email, passwordHash, role, apiToken)
	require.NoError(t, err)
}

// GrantAdmin inserts an admin role row for a user.
func (f *TestDataFactory) GrantAdmin(t *testing.T, userUID string) {
	t.Helper()
	_, err := f.storage.DB.Exec(`INSERT INTO user_roles (user_uid, role) VALUES ($1, 'admin')`, userUID)
	require.NoError(t, err)
}

// CreateProject inserts a test project.
func (f *TestDataFactory) CreateProject(t *testing.T, id, userID, name string) {
	t.Helper()
	_, err := f.storage.DB.Exec(`INSERT INTO projects (id, user_id, name, created_at)
		VALUES ($1, $2, $3, $4)`,
		id, userID, name, time.Now().UTC())
	require.NoError(t, err)
}

// CreateSale inserts a test sale row.
func (f *TestDataFactory) CreateSale(t *testing.T, projectID string, saleDate time.Time, amount float64, product string) {
	t.Helper()
	_, err := f.storage.DB.Exec(`INSERT INTO sales (project_id, sale_date, amount, product)
		VALUES ($1, $2, $3, $4)`,
		projectID, saleDate, amount, product)
	require.NoError(t, err)
}

// CreateAdSpend inserts a test ad spend row.
func (f *TestDataFactory) CreateAdSpend(t *testing.T, projectID string, spendDate time.Time, amount float64, campaign string) {
	t.Helper()
	_, err := f.storage.DB.Exec(`INSERT INTO ad_spend (project_id, spend_date, amount, campaign)
		VALUES ($1, $2, $3, $4)`,
		projectID, spendDate, amount, campaign)
	require.NoError(t, err)
}

// CreateIntegration inserts a test integration row.
func (f *TestDataFactory) CreateIntegration(t *testing.T, projectID, provider string) {
	t.Helper()
	_, err := f.storage.DB.Exec(`INSERT INTO integrations (project_id, provider, credentials, connected_at)
		VALUES ($1, $2, 'token', $3)`,
		projectID, provider, time.Now().UTC())
	require.NoError(t, err)
}

// CountRows counts the rows of a dependent table referencing a project.
func (f *TestDataFactory) CountRows(t *testing.T, table, projectID string) int {
	t.Helper()
	require.Contains(t, DependentTables, table)
	var count int
	err := f.storage.DB.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE project_id = $1`, projectID).Scan(&count)
	require.NoError(t, err)
	return count
}

// setupTestDatabase starts a PostgreSQL container and applies the schema.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute)),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			if err = storage.DB.Ping(); err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	_, err = storage.DB.Exec(testSchema)
	require.NoError(t, err, "failed to apply schema")

	cleanup := func() {
		_ = storage.DB.Close()
		_ = container.Terminate(ctx)
	}
	return storage, cleanup
}

const testSchema = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE users (
    uid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'user',
    api_token TEXT NOT NULL DEFAULT ''
);

CREATE TABLE user_roles (
    id SERIAL PRIMARY KEY,
    user_uid UUID NOT NULL,
    role TEXT NOT NULL
);

CREATE TABLE projects (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL,
    name TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE metrics_cache (
    id SERIAL PRIMARY KEY,
    project_id UUID NOT NULL,
    period_start TIMESTAMPTZ NOT NULL,
    period_end TIMESTAMPTZ NOT NULL,
    revenue NUMERIC(14, 2) NOT NULL DEFAULT 0,
    ad_spend NUMERIC(14, 2) NOT NULL DEFAULT 0,
    computed_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (project_id, period_start, period_end)
);

CREATE TABLE daily_reports (
    id SERIAL PRIMARY KEY,
    project_id UUID NOT NULL,
    report_date DATE NOT NULL,
    revenue NUMERIC(14, 2) NOT NULL DEFAULT 0,
    sales_count INTEGER NOT NULL DEFAULT 0,
    ad_spend NUMERIC(14, 2) NOT NULL DEFAULT 0,
    UNIQUE (project_id, report_date)
);

CREATE TABLE integrations (
    id SERIAL PRIMARY KEY,
    project_id UUID NOT NULL,
    provider TEXT NOT NULL,
    credentials TEXT NOT NULL,
    connected_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE ad_spend (
    id SERIAL PRIMARY KEY,
    project_id UUID NOT NULL,
    spend_date DATE NOT NULL,
    amount NUMERIC(14, 2) NOT NULL,
    campaign TEXT NOT NULL DEFAULT ''
);

CREATE TABLE sales (
    id SERIAL PRIMARY KEY,
    project_id UUID NOT NULL,
    sale_date TIMESTAMPTZ NOT NULL,
    amount NUMERIC(14, 2) NOT NULL,
    product TEXT NOT NULL DEFAULT '',
    utm_source TEXT NOT NULL DEFAULT '',
    utm_campaign TEXT NOT NULL DEFAULT ''
);
`
