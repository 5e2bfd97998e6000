// Package repository implements the PostgreSQL-backed storage for
// projects, users, roles and the project-scoped analytics tables.
// It provides creation, lookup, aggregation and the table-scoped deletes
// used by the project deletion cascade.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	// Register the pgx driver for use with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage encapsulates the PostgreSQL connection and implements the
// repository methods used by the services.
type Storage struct {
	DB *sql.DB
}

// New opens a connection to PostgreSQL and verifies it with a ping.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady verifies that the core table exists.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'projects'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table projects missing or query error: %w", err)
	}
	return nil
}
