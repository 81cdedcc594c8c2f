package domain

import (
	"fmt"
	"strings"
)

// ConfigError reports missing credential configuration. Every CRM call
// fails with it until the environment is fixed.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}

// AuthError reports a failed refresh-token exchange. It is recoverable:
// a later call retries the exchange from scratch.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("token refresh failed: %d - %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("token refresh failed: %s", e.Message)
}

// TransportError reports a network-level failure (or an exhausted retry
// budget) while talking to the CRM API.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError reports a non-200, non-401 CRM API response. It is
// surfaced as-is and never retried.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("API request failed: %d - %s", e.StatusCode, e.Body)
}
