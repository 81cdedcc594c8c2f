package zoho

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/optisale/optisale/pkg/domain"
)

const (
	// DefaultBaseURL is the CRM REST API root for the default (US)
	// Zoho region.
	DefaultBaseURL = "https://www.zohoapis.com/crm/v2"

	requestTimeout = 30 * time.Second

	// defaultMaxRetries is the number of extra attempts beyond the
	// first request.
	defaultMaxRetries = 2
)

// Client issues authenticated GET requests against the CRM API. A stale
// access token self-heals within a single call: a 401 response forces a
// token refresh and the request is retried within the retry budget.
// Every failure surfaces as a typed error; Client never panics.
type Client struct {
	baseURL    string
	tokens     *TokenManager
	httpClient *http.Client
	maxRetries int
}

type ClientConfig struct {
	Credentials Credentials

	// BaseURL and AccountsURL default to the US Zoho region.
	BaseURL     string
	AccountsURL string

	// MaxRetries is the number of extra attempts beyond the first;
	// zero means the default of 2.
	MaxRetries int

	HTTPClient *http.Client
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     NewTokenManager(cfg.Credentials, cfg.AccountsURL, cfg.HTTPClient),
		httpClient: httpClient,
		maxRetries: maxRetries,
	}
}

// Tokens exposes the token manager so callers can validate configuration
// without issuing a request.
func (c *Client) Tokens() *TokenManager { return c.tokens }

// PageInfo is the pagination block the CRM API attaches to list
// responses.
type PageInfo struct {
	Page        int  `json:"page"`
	PerPage     int  `json:"per_page"`
	Count       int  `json:"count"`
	MoreRecords bool `json:"more_records"`
}

// ListResponse is a raw list page. Records stay undecoded so that one
// malformed record cannot poison the whole page.
type ListResponse struct {
	Data []json.RawMessage `json:"data"`
	Info PageInfo          `json:"info"`
}

// List fetches one page of a CRM module (Deals, Leads, Tasks, Notes).
func (c *Client) List(ctx context.Context, module string, query url.Values) (*ListResponse, error) {
	endpoint := c.baseURL + "/" + module
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	// The API responds 204 with an empty body when a module has no
	// records at all; treat that the same as an empty data array.
	if len(body) == 0 {
		return &ListResponse{}, nil
	}

	var list ListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, &domain.UpstreamError{StatusCode: http.StatusOK, Body: fmt.Sprintf("unparseable response body: %v", err)}
	}

	return &list, nil
}

// get performs an authenticated GET with the 401-refresh-retry loop.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			// No network call is worth making without headers.
			return nil, err
		}

		log.Info().Str("url", endpoint).Int("attempt", attempt+1).Msg("Making API request")

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", AuthHeader(token))
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if attempt == c.maxRetries {
				return nil, &domain.TransportError{Op: "network error during API request", Err: err}
			}
			log.Warn().Err(err).Msg("Network error during API request, retrying")
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			if attempt == c.maxRetries {
				return nil, &domain.TransportError{Op: "failed to read response body", Err: readErr}
			}
			log.Warn().Err(readErr).Msg("Failed to read response body, retrying")
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK, resp.StatusCode == http.StatusNoContent:
			if resp.StatusCode == http.StatusNoContent {
				return nil, nil
			}
			return body, nil

		case resp.StatusCode == http.StatusUnauthorized && attempt < c.maxRetries:
			log.Warn().Msg("Received 401, refreshing token and retrying")
			if _, err := c.tokens.ForceRefresh(ctx); err != nil {
				return nil, &domain.AuthError{Message: "unable to refresh access token"}
			}
			continue

		default:
			upstreamErr := &domain.UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
			log.Error().Int("status_code", resp.StatusCode).Msg("API request failed")
			return nil, upstreamErr
		}
	}

	return nil, &domain.TransportError{Op: "max retries exceeded"}
}
