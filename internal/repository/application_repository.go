package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"intwork/internal/apiclient"
	"intwork/internal/models"
)

type applicationRepository struct {
	api *apiclient.Client
}

func NewApplicationRepository(api *apiclient.Client) ApplicationRepository {
	return &applicationRepository{api: api}
}

func (r *applicationRepository) Submit(ctx context.Context, req models.ApplicationRequest) error {
	if err := r.api.Post(ctx, "/api/applications", req, nil); err != nil {
		return fmt.Errorf("error submitting application for job %d: %w", req.JobPostID, err)
	}
	return nil
}

func (r *applicationRepository) GetMine(ctx context.Context) ([]models.Application, error) {
	var raw json.RawMessage
	if err := r.api.Get(ctx, "/api/applications/my", nil, &raw); err != nil {
		return nil, fmt.Errorf("error getting own applications: %w", err)
	}
	return apiclient.DecodeList[models.Application](raw)
}

func (r *applicationRepository) GetByJobID(ctx context.Context, jobPostID int64) ([]models.Application, error) {
	var raw json.RawMessage
	if err := r.api.Get(ctx, fmt.Sprintf("/api/applications/job/%d", jobPostID), nil, &raw); err != nil {
		return nil, fmt.Errorf("error getting applications for job %d: %w", jobPostID, err)
	}
	return apiclient.DecodeList[models.Application](raw)
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, applicationID int64, status models.ApplicationStatus) error {
	body := struct {
		Status models.ApplicationStatus `json:"status"`
	}{Status: status}

	if err := r.api.Put(ctx, fmt.Sprintf("/api/applications/%d/status", applicationID), body, nil); err != nil {
		return fmt.Errorf("error updating status of application %d: %w", applicationID, err)
	}
	return nil
}

func (r *applicationRepository) Delete(ctx context.Context, applicationID int64) error {
	if err := r.api.Delete(ctx, fmt.Sprintf("/api/applications/%d", applicationID), nil, nil); err != nil {
		return fmt.Errorf("error deleting application %d: %w", applicationID, err)
	}
	return nil
}

func (r *applicationRepository) GetStats(ctx context.Context) (*models.ApplicationStats, error) {
	var stats models.ApplicationStats
	if err := r.api.Get(ctx, "/api/applications/stats", nil, &stats); err != nil {
		return nil, fmt.Errorf("error getting application stats: %w", err)
	}
	return &stats, nil
}
