package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gigline/internal/client/client"
	"github.com/dmitrijs2005/gigline/internal/client/models"
)

// EarningsService exposes a worker's earnings figures.
type EarningsService interface {
	Summary(ctx context.Context) (*models.EarningsSummary, error)
	History(ctx context.Context, period string) ([]models.EarningsEntry, error)
}

type earningsService struct {
	client client.Client
}

func NewEarningsService(c client.Client) EarningsService {
	return &earningsService{client: c}
}

func (s *earningsService) Summary(ctx context.Context) (*models.EarningsSummary, error) {
	var summary models.EarningsSummary
	if _, err := s.client.Get(ctx, "/earnings/summary/", nil, &summary); err != nil {
		return nil, fmt.Errorf("earnings summary error: %w", err)
	}
	return &summary, nil
}

// History returns paid/pending line items. period is optional; the backend
// understands values like "month" and "year".
func (s *earningsService) History(ctx context.Context, period string) ([]models.EarningsEntry, error) {
	cfg := &client.RequestConfig{}
	if period != "" {
		cfg.Query = map[string]any{"period": period}
	}

	var entries []models.EarningsEntry
	if _, err := s.client.Get(ctx, "/earnings/", cfg, &entries); err != nil {
		return nil, fmt.Errorf("earnings history error: %w", err)
	}
	return entries, nil
}
