// Package detrack is the client for the delivery-jobs tracking API. It only
// knows how to walk the paginated jobs listing; all interpretation of the
// records happens in the services layer.
package detrack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"dispatch-dashboard/internal/entities"
	"dispatch-dashboard/pkg/config"
)

// ClientInterface is what the dashboard service depends on.
type ClientInterface interface {
	FetchAllJobs(ctx context.Context, params QueryParams) ([]entities.JobRecord, error)
}

// QueryParams are the first-page query parameters. Subsequent pages follow
// the server-provided next link verbatim, without re-sending these.
type QueryParams struct {
	Page  int
	Limit int
	Sort  string
	Date  string // YYYY-MM-DD
	Type  string
}

// StatusError is a non-200 response from the jobs API. It aborts the whole
// fetch: the caller gets no partial pages.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("jobs API returned %d: %s", e.Code, e.Body)
}

type pagePayload struct {
	Data  []entities.JobRecord `json:"data"`
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg config.DetrackConfig, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

// FetchAllJobs retrieves every page of jobs for the given parameters,
// preserving page and in-page order. A non-200 on any page is terminal:
// accumulated pages are discarded and a *StatusError is returned. There is no
// retry; the user re-triggers the fetch instead.
func (c *Client) FetchAllJobs(ctx context.Context, params QueryParams) ([]entities.JobRecord, error) {
	firstURL, err := c.firstPageURL(params)
	if err != nil {
		return nil, err
	}

	var allJobs []entities.JobRecord
	nextURL := firstURL
	pages := 0

	for nextURL != "" {
		payload, err := c.fetchPage(ctx, nextURL)
		if err != nil {
			return nil, err
		}

		allJobs = append(allJobs, payload.Data...)
		nextURL = payload.Links.Next
		pages++
	}

	c.logger.Info("jobs fetch complete",
		zap.Int("pages", pages),
		zap.Int("jobs", len(allJobs)),
		zap.String("date", params.Date),
	)

	return allJobs, nil
}

func (c *Client) firstPageURL(params QueryParams) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse jobs API URL: %w", err)
	}

	q := u.Query()
	q.Set("page", strconv.Itoa(params.Page))
	q.Set("limit", strconv.Itoa(params.Limit))
	q.Set("sort", params.Sort)
	q.Set("date", params.Date)
	q.Set("type", params.Type)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) (*pagePayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create jobs request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jobs request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read jobs response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	payload := &pagePayload{}
	if err := json.Unmarshal(body, payload); err != nil {
		return nil, fmt.Errorf("decode jobs page: %w", err)
	}

	return payload, nil
}
