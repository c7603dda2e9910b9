package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gigline/internal/client/migrations"
	"github.com/dmitrijs2005/gigline/internal/client/repositories/jobs"
	"github.com/dmitrijs2005/gigline/internal/client/repositories/secrets"
	"github.com/pressly/goose/v3"
)

// Repositories bundles the local-storage repositories backed by the
// client's SQLite database.
type Repositories struct {
	Secrets secrets.Repository
	Jobs    jobs.Repository
	DB      *sql.DB
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the local SQLite database at dsn,
// applies migrations and returns the repository bundle.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Secrets: secrets.NewSQLiteRepository(db),
		Jobs:    jobs.NewSQLiteRepository(db),
		DB:      db,
	}, nil
}
