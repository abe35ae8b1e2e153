// Package tmdb is a client for The Movie Database API v3.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gomovies/movie"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"
	defaultTimeout = 30 * time.Second

	// detailsExpansion asks the details endpoint to inline nested objects
	// in the same round trip.
	detailsExpansion = "genres"
)

type Options struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// APIKey is the v4 read access token sent as a bearer credential.
	APIKey  string
	Timeout time.Duration
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// Client implements [movie.Catalog].
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type listResponse struct {
	Page         int           `json:"page"`
	Results      []movie.Movie `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

type statusResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  opts.APIKey,
		client:  client,
	}
}

// Discover returns the default listing, most popular first.
func (c *Client) Discover(ctx context.Context) ([]movie.Movie, error) {
	var resp listResponse
	q := url.Values{"sort_by": {"popularity.desc"}}
	if err := c.get(ctx, "/discover/movie", q, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.Results), nil
}

// Search returns results in the API's relevance order.
func (c *Client) Search(ctx context.Context, query string) ([]movie.Movie, error) {
	var resp listResponse
	q := url.Values{"query": {query}}
	if err := c.get(ctx, "/search/movie", q, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.Results), nil
}

func (c *Client) Details(ctx context.Context, id int) (movie.Details, error) {
	var d movie.Details
	q := url.Values{"append_to_response": {detailsExpansion}}
	if err := c.get(ctx, "/movie/"+strconv.Itoa(id), q, &d); err != nil {
		return movie.Details{}, err
	}
	if d.Genres == nil {
		d.Genres = []movie.Genre{}
	}
	return d, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &FetchError{URL: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &FetchError{URL: endpoint, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("tmdb: close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fe := &FetchError{URL: endpoint, StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var status statusResponse
		if json.NewDecoder(resp.Body).Decode(&status) == nil && status.StatusMessage != "" {
			fe.Message = status.StatusMessage
		}
		return fe
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{URL: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func nonNil(movies []movie.Movie) []movie.Movie {
	if movies == nil {
		return []movie.Movie{}
	}
	return movies
}
