package zoho

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/optisale/optisale/pkg/domain"
)

const (
	// DefaultAccountsURL is the OAuth2 token endpoint for the default
	// (US) Zoho region.
	DefaultAccountsURL = "https://accounts.zoho.com/oauth/v2/token"

	tokenRequestTimeout = 30 * time.Second
)

// Credentials holds the OAuth2 credential set for the CRM connection.
// The refresh token is long-lived and never rotated here; the access
// token is derived and disposable.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string

	// AccessToken optionally seeds the in-memory token so the first
	// request can skip the refresh exchange.
	AccessToken string
}

// TokenManager owns the refresh-token to access-token exchange and the
// in-memory access-token state. It is safe for concurrent use: two
// overlapping refreshes may both hit the token endpoint and the later
// writer wins, which is fine because any token the endpoint hands out
// is valid.
type TokenManager struct {
	creds       Credentials
	accountsURL string
	httpClient  *http.Client

	mu          sync.Mutex
	accessToken string
}

func NewTokenManager(creds Credentials, accountsURL string, httpClient *http.Client) *TokenManager {
	if accountsURL == "" {
		accountsURL = DefaultAccountsURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: tokenRequestTimeout}
	}

	return &TokenManager{
		creds:       creds,
		accountsURL: accountsURL,
		httpClient:  httpClient,
		accessToken: creds.AccessToken,
	}
}

// Validate checks that every required credential field is present and
// names the missing ones.
func (m *TokenManager) Validate() error {
	var missing []string
	if m.creds.ClientID == "" {
		missing = append(missing, "ZOHO_CLIENT_ID")
	}
	if m.creds.ClientSecret == "" {
		missing = append(missing, "ZOHO_CLIENT_SECRET")
	}
	if m.creds.RefreshToken == "" {
		missing = append(missing, "ZOHO_REFRESH_TOKEN")
	}

	if len(missing) > 0 {
		return &domain.ConfigError{Missing: missing}
	}
	return nil
}

// AccessToken returns the cached access token, performing the refresh
// exchange first if no token is cached yet.
func (m *TokenManager) AccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	token := m.accessToken
	m.mu.Unlock()

	if token != "" {
		return token, nil
	}

	log.Info().Msg("No access token cached, refreshing")
	return m.ForceRefresh(ctx)
}

// AuthHeader formats the CRM authorization header value for a token.
func AuthHeader(token string) string {
	return "Zoho-oauthtoken " + token
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// ForceRefresh exchanges the refresh token for a new access token and
// replaces the cached one. The new token is visible to every subsequent
// call on this manager.
func (m *TokenManager) ForceRefresh(ctx context.Context) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}

	params := url.Values{
		"refresh_token": {m.creds.RefreshToken},
		"client_id":     {m.creds.ClientID},
		"client_secret": {m.creds.ClientSecret},
		"grant_type":    {"refresh_token"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.accountsURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", &domain.AuthError{Message: fmt.Sprintf("network error during token refresh: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.AuthError{Message: fmt.Sprintf("failed to read token response: %v", err)}
	}

	log.Info().Int("status_code", resp.StatusCode).Msg("Token refresh response received")

	if resp.StatusCode != http.StatusOK {
		return "", &domain.AuthError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", &domain.AuthError{Message: fmt.Sprintf("failed to parse token response: %v", err)}
	}
	if tr.AccessToken == "" {
		return "", &domain.AuthError{StatusCode: resp.StatusCode, Message: "no access token in response"}
	}

	m.mu.Lock()
	m.accessToken = tr.AccessToken
	m.mu.Unlock()

	log.Info().Msg("Access token refreshed successfully")
	return tr.AccessToken, nil
}
