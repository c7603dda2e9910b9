package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gigline/internal/client/models"
	"github.com/dmitrijs2005/gigline/internal/common"
	"github.com/dmitrijs2005/gigline/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert writes the batch atomically: when backed by a plain *sql.DB it runs
// inside a transaction, so a mid-batch failure leaves no partial cache. When
// the repository was constructed over an ambient transaction, that
// transaction is reused.
func (r *SQLiteRepository) Upsert(ctx context.Context, jobs []models.Job) error {
	now := time.Now().Unix()

	db, ok := r.db.(*sql.DB)
	if !ok {
		return upsertAll(ctx, r.db, jobs, now)
	}
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return upsertAll(ctx, tx, jobs, now)
	})
}

func upsertAll(ctx context.Context, db dbx.DBTX, jobs []models.Job, now int64) error {
	for _, job := range jobs {
		payload, err := json.Marshal(job)
		if err != nil {
			return fmt.Errorf("failed to marshal job %s: %w", job.ID, err)
		}
		_, err = db.ExecContext(ctx, `
			INSERT INTO jobs_cache (id, title, payload, fetched_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET title = excluded.title, payload = excluded.payload, fetched_at = excluded.fetched_at
		`, job.ID, job.Title, payload, now)
		if err != nil {
			return fmt.Errorf("failed to upsert job %s: %w", job.ID, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT payload FROM jobs_cache ORDER BY fetched_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select cached jobs: %w", err)
	}
	defer rows.Close()

	var result []models.Job
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var job models.Job
		if err := json.Unmarshal(payload, &job); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cached job: %w", err)
		}
		result = append(result, job)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Job, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM jobs_cache WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached job %s: %w", id, err)
	}

	var job models.Job
	if err := json.Unmarshal(payload, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached job %s: %w", id, err)
	}
	return &job, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM jobs_cache`)
	if err != nil {
		return fmt.Errorf("failed to clear jobs cache: %w", err)
	}
	return nil
}
