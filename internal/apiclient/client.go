// Package apiclient talks to the portfolio REST API that owns portfolios, templates and drafts.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/parsing"
	"github.com/jonathan/portfolio-builder/internal/services"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// DefaultUserAgent is the user agent string for API requests.
const DefaultUserAgent = "PortfolioBuilder/1.0"

// Options configures the client.
type Options struct {
	// Token is sent as a bearer token when set
	Token     string
	UserAgent string
	Headers   map[string]string
	// HTTPClient overrides the transport. Requests carry no timeout of their own;
	// cancel the context to abandon one.
	HTTPClient *http.Client
}

// Client implements the portfolio, template and draft service contracts over HTTP.
type Client struct {
	baseURL *url.URL
	opts    Options
	http    *http.Client
}

var (
	_ services.PortfolioService = (*Client)(nil)
	_ services.TemplateService  = (*Client)(nil)
	_ services.DraftService     = (*Client)(nil)
)

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts Options) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &services.HTTPError{URL: baseURL, Message: "invalid API base URL", Cause: err}
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: parsed, opts: opts, http: httpClient}, nil
}

// GetPortfolio fetches the current user's raw portfolio record.
func (c *Client) GetPortfolio(ctx context.Context) (parsing.Value, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/portfolio", nil, "portfolio", "")
	if err != nil {
		return parsing.Value{}, err
	}
	record, err := parsing.Parse(body)
	if err != nil {
		return parsing.Value{}, fmt.Errorf("failed to decode portfolio: %w", err)
	}
	return record, nil
}

// GetTemplate fetches a template's presentation defaults.
func (c *Client) GetTemplate(ctx context.Context, key string) (*types.TemplateDefinition, error) {
	var tpl types.TemplateDefinition
	if err := c.doJSON(ctx, http.MethodGet, "/api/templates/"+url.PathEscape(key), nil, &tpl, "template", key); err != nil {
		return nil, err
	}
	if tpl.Key == "" {
		tpl.Key = key
	}
	return &tpl, nil
}

// ListTemplates lists the available templates.
func (c *Client) ListTemplates(ctx context.Context) ([]types.TemplateDefinition, error) {
	var list []types.TemplateDefinition
	if err := c.doJSON(ctx, http.MethodGet, "/api/templates", nil, &list, "templates", ""); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateDraft persists a new draft.
func (c *Client) CreateDraft(ctx context.Context, payload *types.DraftPayload) (*types.Draft, error) {
	var draft types.Draft
	if err := c.doJSON(ctx, http.MethodPost, "/api/drafts", payload, &draft, "draft", ""); err != nil {
		return nil, err
	}
	return &draft, nil
}

// UpdateDraft replaces an existing draft.
func (c *Client) UpdateDraft(ctx context.Context, id string, payload *types.DraftPayload) (*types.Draft, error) {
	var draft types.Draft
	if err := c.doJSON(ctx, http.MethodPut, "/api/drafts/"+url.PathEscape(id), payload, &draft, "draft", id); err != nil {
		return nil, err
	}
	return &draft, nil
}

// PublishDraft publishes a draft and returns its public identifiers.
func (c *Client) PublishDraft(ctx context.Context, id string) (*types.PublishResult, error) {
	var result types.PublishResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/drafts/"+url.PathEscape(id)+"/publish", nil, &result, "draft", id); err != nil {
		return nil, err
	}
	if result.ID == "" {
		result.ID = id
	}
	return &result, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any, resource, id string) error {
	body, err := c.do(ctx, method, path, in, resource, id)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &services.HTTPError{
			Method:  method,
			URL:     c.endpoint(path),
			Message: "failed to decode response",
			Cause:   err,
		}
	}
	return nil
}

// do executes one request. 404 maps to *services.NotFoundError; any other
// non-2xx status or transport failure maps to *services.HTTPError.
func (c *Client) do(ctx context.Context, method, path string, in any, resource, id string) ([]byte, error) {
	endpoint := c.endpoint(path)

	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, &services.HTTPError{Method: method, URL: endpoint, Message: "failed to encode request", Cause: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, &services.HTTPError{Method: method, URL: endpoint, Message: "failed to create request", Cause: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}
	for key, value := range c.opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &services.HTTPError{Method: method, URL: endpoint, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &services.HTTPError{Method: method, URL: endpoint, Message: "failed to read response body", Cause: err}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &services.NotFoundError{Resource: resource, ID: id}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &services.HTTPError{
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body, resp.Status),
		}
	}
	return body, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}

// errorMessage extracts {"error": "..."} or {"detail": "..."} from an error body
func errorMessage(body []byte, fallback string) string {
	if msg := parsing.ParseString(string(body)).Str("error", "detail", "message"); msg != "" {
		return msg
	}
	return fallback
}
