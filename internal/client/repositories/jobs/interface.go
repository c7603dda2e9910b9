// Package jobs caches recently fetched job listings so the CLI can keep
// showing them while the backend is unreachable. The server stays the
// source of truth; everything here is best effort.
package jobs

import (
	"context"

	"github.com/dmitrijs2005/gigline/internal/client/models"
)

type Repository interface {
	// Upsert stores or refreshes the given jobs.
	Upsert(ctx context.Context, jobs []models.Job) error
	// List returns cached jobs, most recently fetched first.
	List(ctx context.Context) ([]models.Job, error)
	// Get returns a cached job by id, or common.ErrorNotFound.
	Get(ctx context.Context, id string) (*models.Job, error)
	// Clear drops the whole cache.
	Clear(ctx context.Context) error
}
