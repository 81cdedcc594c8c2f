package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optisale/optisale/pkg/assistant"
	"github.com/optisale/optisale/pkg/zoho"
)

// newTestApp wires a fiber app with the dashboard routes against a stub
// CRM backend. The assistant stays unconfigured so chat exercises the
// degraded path.
func newTestApp(t *testing.T, crmHandler http.HandlerFunc) *fiber.App {
	srv := httptest.NewServer(crmHandler)
	t.Cleanup(srv.Close)

	client := zoho.NewClient(zoho.ClientConfig{
		Credentials: zoho.Credentials{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RefreshToken: "refresh-token",
			AccessToken:  "seed",
		},
		BaseURL:     srv.URL + "/crm/v2",
		AccountsURL: srv.URL + "/oauth/v2/token",
	})

	controller := NewDashboardController(DashboardControllerDependencies{
		CRMService: zoho.NewService(zoho.ServiceDependencies{Client: client}),
		Assistant:  assistant.New(assistant.Dependencies{}),
	})

	app := fiber.New()
	app.Get("/api/deals", controller.GetDeals)
	app.Get("/api/owners", controller.GetOwners)
	app.Post("/api/chat", controller.Chat)
	return app
}

func decodeBody(t *testing.T, resp *http.Response) map[string]json.RawMessage {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &decoded))
	return decoded
}

func TestDashboardController_GetDeals(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [
			{"id": "1", "Deal_Name": "Acme renewal", "Owner": {"name": "Raja"}},
			{"id": "2", "Deal_Name": "New logo", "Owner": {"name": "Priya"}}
		]}`))
	})

	t.Run("all owners", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/deals", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Contains(t, body, "Raja")
		assert.Contains(t, body, "Priya")
	})

	t.Run("owner query narrows the partition", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/deals?owner=Raja", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Contains(t, body, "Raja")
		assert.NotContains(t, body, "Priya")
	})
}

func TestDashboardController_GetDeals_EmptyRendersSentinel(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/deals", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Contains(t, body, "No Deals")
	assert.JSONEq(t, `[]`, string(body["No Deals"]))
}

func TestDashboardController_GetDeals_UpstreamFailure(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/deals", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Contains(t, body, "Error")

	var messages []string
	require.NoError(t, json.Unmarshal(body["Error"], &messages))
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "upstream exploded")
}

func TestDashboardController_Chat(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	})

	t.Run("missing message rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("degrades when assistant unavailable", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message": "how are my deals?"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		defer resp.Body.Close()
		var chat ChatResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&chat))
		assert.NotEmpty(t, chat.ID)
		assert.Contains(t, chat.Reply, "unable to connect to the AI service")
	})
}
