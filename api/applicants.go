package api

import (
	"context"
	"net/http"
	"strconv"
)

// CreateApplicant submits an application as multipart: the "applicant" JSON
// part plus one "files" part per attached document
func (c *Client) CreateApplicant(ctx context.Context, payload ApplicantPayload, files []Upload) (*Applicant, error) {
	req := &request{
		method:   http.MethodPost,
		path:     "/api/applicants",
		makeBody: multipartBody("applicant", payload, "files", files),
	}

	var applicant Applicant
	if err := c.doJSON(ctx, req, &applicant); err != nil {
		return nil, err
	}
	return &applicant, nil
}

// Applicants lists applications against the employer's articles. Filters use
// the criteria syntax ("articleId.equals", "status.equals"); status, when
// non-empty, is sent as its own query parameter.
func (c *Client) Applicants(ctx context.Context, query PageQuery, status ApplicantStatus) (List[Applicant], error) {
	values := query.values()
	if status != "" {
		values.Set("status", string(status))
	}

	req := &request{
		method: http.MethodGet,
		path:   "/api/applicants",
		query:  values,
	}
	return doList[Applicant](c, ctx, req)
}

// Applicant fetches one application
func (c *Client) Applicant(ctx context.Context, id int64) (*Applicant, error) {
	req := &request{
		method: http.MethodGet,
		path:   "/api/applicants/" + strconv.FormatInt(id, 10),
	}

	var applicant Applicant
	if err := c.doJSON(ctx, req, &applicant); err != nil {
		return nil, err
	}
	return &applicant, nil
}

// MyApplications lists the signed-in user's own applications
func (c *Client) MyApplications(ctx context.Context) ([]Applicant, error) {
	req := &request{method: http.MethodGet, path: "/api/applicants/mine"}

	var applicants []Applicant
	if err := c.doJSON(ctx, req, &applicants); err != nil {
		return nil, err
	}
	return applicants, nil
}

// AcceptApplicant accepts a submitted application
func (c *Client) AcceptApplicant(ctx context.Context, id int64) error {
	req := &request{
		method: http.MethodPut,
		path:   "/api/applicants/" + strconv.FormatInt(id, 10) + "/accept",
	}
	return c.doJSON(ctx, req, nil)
}

// DeclineApplicant declines a submitted application
func (c *Client) DeclineApplicant(ctx context.Context, id int64) error {
	req := &request{
		method: http.MethodPut,
		path:   "/api/applicants/" + strconv.FormatInt(id, 10) + "/decline",
	}
	return c.doJSON(ctx, req, nil)
}

// CalculateMatchScore asks the backend to score an applicant against the
// article's requirements; the breakdown is computed server-side and
// displayed read-only
func (c *Client) CalculateMatchScore(ctx context.Context, id int64) (*MatchScore, error) {
	req := &request{
		method: http.MethodPost,
		path:   "/api/applicants/" + strconv.FormatInt(id, 10) + "/match-score",
	}

	var score MatchScore
	if err := c.doJSON(ctx, req, &score); err != nil {
		return nil, err
	}
	return &score, nil
}
