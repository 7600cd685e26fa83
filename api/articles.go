package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Articles lists approved articles. Public: works signed out.
func (c *Client) Articles(ctx context.Context, query PageQuery) (List[Article], error) {
	req := &request{
		method: http.MethodGet,
		path:   "/public/api/articles",
		query:  query.values(),
	}
	return doList[Article](c, ctx, req)
}

// Article fetches one article's detail. Public: works signed out.
func (c *Client) Article(ctx context.Context, id int64) (*Article, error) {
	req := &request{
		method: http.MethodGet,
		path:   "/public/api/articles/" + strconv.FormatInt(id, 10),
	}

	var article Article
	if err := c.doJSON(ctx, req, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// CreateArticle posts a new article as multipart: the "article" JSON part
// plus an optional "image" part. Newly created articles start PENDING until
// an administrator moderates them.
func (c *Client) CreateArticle(ctx context.Context, payload ArticlePayload, image *Upload) (*Article, error) {
	var uploads []Upload
	if image != nil {
		uploads = append(uploads, *image)
	}

	req := &request{
		method:   http.MethodPost,
		path:     "/api/articles",
		makeBody: multipartBody("article", payload, "image", uploads),
	}

	var article Article
	if err := c.doJSON(ctx, req, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// UpdateArticle updates an article's fields
func (c *Client) UpdateArticle(ctx context.Context, id int64, payload ArticlePayload) (*Article, error) {
	req := &request{
		method:   http.MethodPut,
		path:     "/api/articles/" + strconv.FormatInt(id, 10),
		makeBody: jsonBody(payload),
	}

	var article Article
	if err := c.doJSON(ctx, req, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// UpdateArticleImage replaces an article's image
func (c *Client) UpdateArticleImage(ctx context.Context, id int64, image Upload) error {
	req := &request{
		method:   http.MethodPost,
		path:     "/api/articles/" + strconv.FormatInt(id, 10) + "/image",
		makeBody: fileBody("image", image),
	}
	return c.doJSON(ctx, req, nil)
}

// MyArticles lists the employer's own articles, optionally filtered by
// status (empty = all)
func (c *Client) MyArticles(ctx context.Context, status ArticleStatus) ([]Article, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}

	req := &request{
		method: http.MethodGet,
		path:   "/api/articles/mine",
		query:  query,
	}

	var articles []Article
	if err := c.doJSON(ctx, req, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// CloseArticle closes an open article so it stops accepting applications
func (c *Client) CloseArticle(ctx context.Context, id int64) error {
	req := &request{
		method: http.MethodPut,
		path:   "/api/articles/" + strconv.FormatInt(id, 10) + "/close",
	}
	return c.doJSON(ctx, req, nil)
}

// PendingArticles lists articles awaiting moderation. Admin only.
func (c *Client) PendingArticles(ctx context.Context, query PageQuery) (List[Article], error) {
	req := &request{
		method: http.MethodGet,
		path:   "/api/admin/articles/pending",
		query:  query.values(),
	}
	return doList[Article](c, ctx, req)
}

// ApproveArticle approves a pending article. Admin only.
func (c *Client) ApproveArticle(ctx context.Context, id int64) error {
	req := &request{
		method: http.MethodPut,
		path:   "/api/admin/articles/" + strconv.FormatInt(id, 10) + "/approve",
	}
	return c.doJSON(ctx, req, nil)
}

// RejectArticle rejects a pending article with a reason. Admin only.
func (c *Client) RejectArticle(ctx context.Context, id int64, reason string) error {
	req := &request{
		method:   http.MethodPut,
		path:     "/api/admin/articles/" + strconv.FormatInt(id, 10) + "/reject",
		makeBody: jsonBody(map[string]string{"reason": reason}),
	}
	return c.doJSON(ctx, req, nil)
}

// Taxonomy lookups used by the article form. Public.

func (c *Client) Industries(ctx context.Context) ([]Tag, error) {
	return c.tags(ctx, "/public/api/industries")
}

func (c *Client) JobLevels(ctx context.Context) ([]Tag, error) {
	return c.tags(ctx, "/public/api/job-levels")
}

func (c *Client) WorkingModels(ctx context.Context) ([]Tag, error) {
	return c.tags(ctx, "/public/api/working-models")
}

func (c *Client) Skills(ctx context.Context) ([]Tag, error) {
	return c.tags(ctx, "/public/api/skills")
}

func (c *Client) tags(ctx context.Context, path string) ([]Tag, error) {
	req := &request{method: http.MethodGet, path: path}

	var tags []Tag
	if err := c.doJSON(ctx, req, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// Employer dashboard counts.

// ArticleCountByCompany returns per-company article counts
func (c *Client) ArticleCountByCompany(ctx context.Context) ([]CountByCompany, error) {
	req := &request{method: http.MethodGet, path: "/api/articles/count-by-company"}

	var counts []CountByCompany
	if err := c.doJSON(ctx, req, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// ArticleCountByDate returns article counts bucketed by day
func (c *Client) ArticleCountByDate(ctx context.Context) ([]CountByDate, error) {
	return c.countByDate(ctx, "/api/articles/count-by-date")
}

// ApplicantCountByDate returns applicant counts bucketed by day
func (c *Client) ApplicantCountByDate(ctx context.Context) ([]CountByDate, error) {
	return c.countByDate(ctx, "/api/applicants/count-by-date")
}

func (c *Client) countByDate(ctx context.Context, path string) ([]CountByDate, error) {
	req := &request{method: http.MethodGet, path: path}

	var counts []CountByDate
	if err := c.doJSON(ctx, req, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
