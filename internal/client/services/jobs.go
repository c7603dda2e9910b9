package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gigline/internal/client/client"
	"github.com/dmitrijs2005/gigline/internal/client/models"
	"github.com/dmitrijs2005/gigline/internal/client/repositories/jobs"
	"github.com/dmitrijs2005/gigline/internal/logging"
)

// JobService defines job browsing and posting operations.
//
// List and Get fall back to the local cache when the backend is
// unreachable, so a spotty connection still shows recent listings.
type JobService interface {
	List(ctx context.Context, filter models.JobFilter) ([]models.Job, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, draft models.JobDraft) (*models.Job, error)
	Apply(ctx context.Context, jobID, message string) (*models.Application, error)
	Mine(ctx context.Context) ([]models.Job, error)
}

type jobService struct {
	client client.Client
	cache  jobs.Repository
	log    logging.Logger
}

// NewJobService constructs a JobService. cache may be nil, which disables
// the offline fallback.
func NewJobService(c client.Client, cache jobs.Repository, log logging.Logger) JobService {
	if log == nil {
		log = logging.NewNop()
	}
	return &jobService{client: c, cache: cache, log: log}
}

func (s *jobService) List(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	query := map[string]any{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.City != "" {
		query["city"] = filter.City
	}
	if filter.MinRate > 0 {
		query["min_rate"] = filter.MinRate
	}
	if filter.Page > 0 {
		query["page"] = filter.Page
	}

	var list models.JobList
	_, err := s.client.Get(ctx, "/jobs/", &client.RequestConfig{Query: query}, &list)
	if err != nil {
		if cached, ok := s.fromCache(ctx, err); ok {
			return cached, nil
		}
		return nil, fmt.Errorf("list jobs error: %w", err)
	}

	s.fillCache(ctx, list.Results)
	return list.Results, nil
}

func (s *jobService) Get(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	_, err := s.client.Get(ctx, "/jobs/"+id+"/", nil, &job)
	if err != nil {
		if s.cache != nil && errors.Is(err, client.ErrUnavailable) {
			if cached, cacheErr := s.cache.Get(ctx, id); cacheErr == nil {
				s.log.Info(ctx, "backend unreachable, serving cached job", "id", id)
				return cached, nil
			}
		}
		return nil, fmt.Errorf("get job error: %w", err)
	}

	s.fillCache(ctx, []models.Job{job})
	return &job, nil
}

func (s *jobService) Create(ctx context.Context, draft models.JobDraft) (*models.Job, error) {
	var job models.Job
	if _, err := s.client.Post(ctx, "/jobs/", &client.RequestConfig{Body: draft}, &job); err != nil {
		return nil, fmt.Errorf("create job error: %w", err)
	}
	return &job, nil
}

func (s *jobService) Apply(ctx context.Context, jobID, message string) (*models.Application, error) {
	body := map[string]string{"message": message}
	var application models.Application
	if _, err := s.client.Post(ctx, "/jobs/"+jobID+"/apply/", &client.RequestConfig{Body: body}, &application); err != nil {
		return nil, fmt.Errorf("apply error: %w", err)
	}
	return &application, nil
}

func (s *jobService) Mine(ctx context.Context) ([]models.Job, error) {
	var list models.JobList
	if _, err := s.client.Get(ctx, "/jobs/mine/", nil, &list); err != nil {
		return nil, fmt.Errorf("my jobs error: %w", err)
	}
	return list.Results, nil
}

// fromCache serves the cached listing for transport-level failures only:
// an HTTP error from a reachable backend is authoritative and is surfaced.
func (s *jobService) fromCache(ctx context.Context, cause error) ([]models.Job, bool) {
	if s.cache == nil {
		return nil, false
	}
	if !errors.Is(cause, client.ErrUnavailable) && !errors.Is(cause, client.ErrTimeout) {
		return nil, false
	}

	cached, err := s.cache.List(ctx)
	if err != nil || len(cached) == 0 {
		return nil, false
	}
	s.log.Info(ctx, "backend unreachable, serving cached jobs", "count", len(cached))
	return cached, true
}

func (s *jobService) fillCache(ctx context.Context, items []models.Job) {
	if s.cache == nil || len(items) == 0 {
		return
	}
	if err := s.cache.Upsert(ctx, items); err != nil {
		s.log.Warn(ctx, "failed to cache jobs", "error", err)
	}
}
