package portal

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-student-jobs/portalmodel"
)

const (
	PathProfile   = "/api/users/me/"
	PathSkills    = "/api/users/skills/"
	PathCourses   = "/api/users/courses/"
	PathCV        = "/api/users/me/cv/"
	PathCVSummary = "/api/users/me/cv/ai-summary/"
)

func (c *Client) GetProfile(ctx context.Context) (*portalmodel.Profile, error) {
	var profile portalmodel.Profile
	if err := c.do(ctx, http.MethodGet, PathProfile, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update portalmodel.ProfileUpdate) (*portalmodel.Profile, error) {
	var profile portalmodel.Profile
	if err := c.do(ctx, http.MethodPatch, PathProfile, update, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) GetSkills(ctx context.Context) ([]portalmodel.Skill, error) {
	var skills []portalmodel.Skill
	if err := c.do(ctx, http.MethodGet, PathSkills, nil, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

func (c *Client) GetCourses(ctx context.Context) ([]string, error) {
	var courses []string
	if err := c.do(ctx, http.MethodGet, PathCourses, nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *Client) GetCV(ctx context.Context) (*portalmodel.CV, error) {
	var cv portalmodel.CV
	if err := c.do(ctx, http.MethodGet, PathCV, nil, &cv); err != nil {
		return nil, err
	}
	return &cv, nil
}

func (c *Client) UpdateCV(ctx context.Context, cv portalmodel.CV) (*portalmodel.CV, error) {
	var updated portalmodel.CV
	if err := c.do(ctx, http.MethodPut, PathCV, cv, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) GenerateCVSummary(ctx context.Context) (*portalmodel.CVSummary, error) {
	var summary portalmodel.CVSummary
	if err := c.do(ctx, http.MethodPost, PathCVSummary, struct{}{}, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
