package zoho

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optisale/optisale/pkg/domain"
)

func validCredentials() Credentials {
	return Credentials{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RefreshToken: "refresh-token",
	}
}

func TestTokenManager_Validate(t *testing.T) {
	tests := []struct {
		name        string
		creds       Credentials
		wantMissing []string
	}{
		{
			name:  "all present",
			creds: validCredentials(),
		},
		{
			name: "missing refresh token",
			creds: Credentials{
				ClientID:     "client-id",
				ClientSecret: "client-secret",
			},
			wantMissing: []string{"ZOHO_REFRESH_TOKEN"},
		},
		{
			name:        "all missing",
			creds:       Credentials{},
			wantMissing: []string{"ZOHO_CLIENT_ID", "ZOHO_CLIENT_SECRET", "ZOHO_REFRESH_TOKEN"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewTokenManager(tt.creds, "", nil)
			err := m.Validate()

			if len(tt.wantMissing) == 0 {
				assert.NoError(t, err)
				return
			}

			var configErr *domain.ConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, tt.wantMissing, configErr.Missing)
		})
	}
}

func TestTokenManager_ForceRefresh(t *testing.T) {
	t.Run("stores and returns the new token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))
			assert.Equal(t, "refresh-token", r.URL.Query().Get("refresh_token"))
			assert.Equal(t, "client-id", r.URL.Query().Get("client_id"))

			w.Write([]byte(`{"access_token": "fresh-token"}`))
		}))
		defer srv.Close()

		m := NewTokenManager(validCredentials(), srv.URL, nil)

		token, err := m.ForceRefresh(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "fresh-token", token)

		// The refreshed token is now the cached one.
		cached, err := m.AccessToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "fresh-token", cached)
	})

	t.Run("non-200 yields AuthError with status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "invalid_client"}`))
		}))
		defer srv.Close()

		m := NewTokenManager(validCredentials(), srv.URL, nil)

		_, err := m.ForceRefresh(context.Background())
		var authErr *domain.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, http.StatusBadRequest, authErr.StatusCode)
	})

	t.Run("missing access_token field yields AuthError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		m := NewTokenManager(validCredentials(), srv.URL, nil)

		_, err := m.ForceRefresh(context.Background())
		var authErr *domain.AuthError
		require.ErrorAs(t, err, &authErr)
	})

	t.Run("missing credentials fail before any network call", func(t *testing.T) {
		m := NewTokenManager(Credentials{}, "http://127.0.0.1:0", nil)

		_, err := m.ForceRefresh(context.Background())
		var configErr *domain.ConfigError
		require.True(t, errors.As(err, &configErr))
	})
}

func TestTokenManager_AccessToken_UsesSeed(t *testing.T) {
	creds := validCredentials()
	creds.AccessToken = "seeded-token"

	// The accounts URL is unroutable; a network call would fail loudly.
	m := NewTokenManager(creds, "http://127.0.0.1:0", nil)

	token, err := m.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "seeded-token", token)
}
