package portal

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-student-jobs/internal/errors"
	"github.com/jrsteele09/go-student-jobs/portalmodel"
)

const (
	PathJobs         = "/api/jobs/"
	PathFetchJobs    = "/api/jobs/fetch/"
	PathSavedJobs    = "/api/jobs/saved/"
	PathApplications = "/api/jobs/applications/"
	PathRecommended  = "/api/recommendations/"
)

func JobPath(id int64) string {
	return fmt.Sprintf("%s%d/", PathJobs, id)
}

func ApplicationPath(id int64) string {
	return fmt.Sprintf("%s%d/", PathApplications, id)
}

func (c *Client) GetJobs(ctx context.Context) ([]portalmodel.Job, error) {
	var jobs []portalmodel.Job
	if err := c.do(ctx, http.MethodGet, PathJobs, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// FetchJobs imports listings from the backend's job feed. Admin only.
func (c *Client) FetchJobs(ctx context.Context, req portalmodel.FetchJobsRequest) (*portalmodel.FetchJobsResponse, error) {
	var resp portalmodel.FetchJobsResponse
	if err := c.do(ctx, http.MethodPost, PathFetchJobs, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetSavedJobs(ctx context.Context) ([]portalmodel.Job, error) {
	var jobs []portalmodel.Job
	if err := c.do(ctx, http.MethodGet, PathSavedJobs, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) SaveJob(ctx context.Context, id int64) (*portalmodel.SaveResult, error) {
	var result portalmodel.SaveResult
	if err := c.do(ctx, http.MethodPost, JobPath(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) UnsaveJob(ctx context.Context, id int64) (*portalmodel.SaveResult, error) {
	var result portalmodel.SaveResult
	if err := c.do(ctx, http.MethodDelete, JobPath(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetApplications(ctx context.Context) ([]portalmodel.Application, error) {
	var apps []portalmodel.Application
	if err := c.do(ctx, http.MethodGet, PathApplications, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// CreateApplication tracks a job. An empty status lets the backend pick its
// default ("applied").
func (c *Client) CreateApplication(ctx context.Context, req portalmodel.CreateApplicationRequest) (*portalmodel.Application, error) {
	if req.JobID <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "job id is required")
	}
	if req.Status != "" && !req.Status.Valid() {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "unknown application status %q", req.Status)
	}

	var app portalmodel.Application
	if err := c.do(ctx, http.MethodPost, PathApplications, req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) UpdateApplication(ctx context.Context, id int64, req portalmodel.UpdateApplicationRequest) (*portalmodel.Application, error) {
	if req.Status != nil && !req.Status.Valid() {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "unknown application status %q", *req.Status)
	}

	var app portalmodel.Application
	if err := c.do(ctx, http.MethodPatch, ApplicationPath(id), req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) DeleteApplication(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, ApplicationPath(id), nil, nil)
}

// GetRecommendations returns jobs ranked by the backend. The client does not
// interpret match_score or the reasons.
func (c *Client) GetRecommendations(ctx context.Context) ([]portalmodel.RecommendedJob, error) {
	var jobs []portalmodel.RecommendedJob
	if err := c.do(ctx, http.MethodGet, PathRecommended, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
