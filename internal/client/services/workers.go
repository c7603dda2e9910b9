package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gigline/internal/client/client"
	"github.com/dmitrijs2005/gigline/internal/client/models"
)

// WorkerService defines worker browsing and direct-hire operations.
// Clients browse workers and send hire requests; workers list the requests
// addressed to them and accept or decline.
type WorkerService interface {
	Browse(ctx context.Context, filter models.WorkerFilter) ([]models.Worker, error)
	Get(ctx context.Context, id string) (*models.Worker, error)
	Hire(ctx context.Context, workerID, jobID, message string) (*models.HireRequest, error)
	Requests(ctx context.Context) ([]models.HireRequest, error)
	Respond(ctx context.Context, requestID string, accept bool) (*models.HireRequest, error)
}

type workerService struct {
	client client.Client
}

func NewWorkerService(c client.Client) WorkerService {
	return &workerService{client: c}
}

func (s *workerService) Browse(ctx context.Context, filter models.WorkerFilter) ([]models.Worker, error) {
	query := map[string]any{}
	if filter.Skill != "" {
		query["skill"] = filter.Skill
	}
	if filter.City != "" {
		query["city"] = filter.City
	}
	if filter.MaxRate > 0 {
		query["max_rate"] = filter.MaxRate
	}
	if filter.Page > 0 {
		query["page"] = filter.Page
	}

	var list models.WorkerList
	if _, err := s.client.Get(ctx, "/workers/", &client.RequestConfig{Query: query}, &list); err != nil {
		return nil, fmt.Errorf("browse workers error: %w", err)
	}
	return list.Results, nil
}

func (s *workerService) Get(ctx context.Context, id string) (*models.Worker, error) {
	var worker models.Worker
	if _, err := s.client.Get(ctx, "/workers/"+id+"/", nil, &worker); err != nil {
		return nil, fmt.Errorf("get worker error: %w", err)
	}
	return &worker, nil
}

func (s *workerService) Hire(ctx context.Context, workerID, jobID, message string) (*models.HireRequest, error) {
	body := map[string]string{"worker_id": workerID, "job_id": jobID, "message": message}
	var request models.HireRequest
	if _, err := s.client.Post(ctx, "/hires/", &client.RequestConfig{Body: body}, &request); err != nil {
		return nil, fmt.Errorf("hire request error: %w", err)
	}
	return &request, nil
}

func (s *workerService) Requests(ctx context.Context) ([]models.HireRequest, error) {
	var requests []models.HireRequest
	if _, err := s.client.Get(ctx, "/hires/", nil, &requests); err != nil {
		return nil, fmt.Errorf("list hire requests error: %w", err)
	}
	return requests, nil
}

func (s *workerService) Respond(ctx context.Context, requestID string, accept bool) (*models.HireRequest, error) {
	action := "decline"
	if accept {
		action = "accept"
	}

	var request models.HireRequest
	if _, err := s.client.Post(ctx, "/hires/"+requestID+"/"+action+"/", nil, &request); err != nil {
		return nil, fmt.Errorf("%s hire request error: %w", action, err)
	}
	return &request, nil
}
