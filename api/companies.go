package api

import (
	"context"
	"net/http"
	"strconv"
)

// PublicCompanies lists enabled companies. Works signed out.
func (c *Client) PublicCompanies(ctx context.Context, query PageQuery) (List[Company], error) {
	req := &request{
		method: http.MethodGet,
		path:   "/public/api/companies",
		query:  query.values(),
	}
	return doList[Company](c, ctx, req)
}

// Companies lists all companies including disabled ones. Admin only.
func (c *Client) Companies(ctx context.Context, query PageQuery) (List[Company], error) {
	req := &request{
		method: http.MethodGet,
		path:   "/api/companies",
		query:  query.values(),
	}
	return doList[Company](c, ctx, req)
}

// CreateCompany registers a new company
func (c *Client) CreateCompany(ctx context.Context, payload CompanyPayload) (*Company, error) {
	req := &request{
		method:   http.MethodPost,
		path:     "/api/companies",
		makeBody: jsonBody(payload),
	}

	var company Company
	if err := c.doJSON(ctx, req, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// UpdateCompany updates a company's fields
func (c *Client) UpdateCompany(ctx context.Context, id int64, payload CompanyPayload) (*Company, error) {
	req := &request{
		method:   http.MethodPut,
		path:     "/api/companies/" + strconv.FormatInt(id, 10),
		makeBody: jsonBody(payload),
	}

	var company Company
	if err := c.doJSON(ctx, req, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// EnableCompany re-enables a disabled company
func (c *Client) EnableCompany(ctx context.Context, id int64) error {
	req := &request{
		method: http.MethodPut,
		path:   "/api/companies/" + strconv.FormatInt(id, 10) + "/enable",
	}
	return c.doJSON(ctx, req, nil)
}

// DisableCompany disables a company and hides its articles
func (c *Client) DisableCompany(ctx context.Context, id int64) error {
	req := &request{
		method: http.MethodPut,
		path:   "/api/companies/" + strconv.FormatInt(id, 10) + "/disable",
	}
	return c.doJSON(ctx, req, nil)
}

// UpdateCompanyImage replaces a company's image
func (c *Client) UpdateCompanyImage(ctx context.Context, id int64, image Upload) error {
	req := &request{
		method:   http.MethodPost,
		path:     "/api/companies/" + strconv.FormatInt(id, 10) + "/image",
		makeBody: fileBody("image", image),
	}
	return c.doJSON(ctx, req, nil)
}
