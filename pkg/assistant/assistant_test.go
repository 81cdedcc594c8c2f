package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optisale/optisale/pkg/domain"
)

func testContext() SummaryContext {
	return SummaryContext{
		UserName: "Raja",
		UserRole: "sales manager",
		Summary: domain.Summary{
			TotalLeads:      4,
			TotalDeals:      2,
			TotalDealValue:  150,
			ClosedDeals:     1,
			ClosedDealValue: 100,
		},
	}
}

// newFakeCompletions returns an assistant pointed at a stub
// OpenAI-compatible server that replies with a fixed message and records
// the last request body.
func newFakeCompletions(t *testing.T, reply string) (*Assistant, *map[string]any) {
	var lastRequest map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&lastRequest))

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": reply}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)

	a := New(Dependencies{APIKey: "test-key", BaseURL: srv.URL})
	return a, &lastRequest
}

func requestMessages(t *testing.T, request map[string]any) []map[string]any {
	raw, ok := request["messages"].([]any)
	require.True(t, ok)

	messages := make([]map[string]any, 0, len(raw))
	for _, m := range raw {
		msg, ok := m.(map[string]any)
		require.True(t, ok)
		messages = append(messages, msg)
	}
	return messages
}

func TestAssistant_DisabledWithoutAPIKey(t *testing.T) {
	a := New(Dependencies{})

	assert.False(t, a.Available())

	_, err := a.GenerateResponse(context.Background(), "hello", testContext())
	assert.ErrorIs(t, err, ErrUnavailable)

	ok, message := a.TestConnection(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "Client not initialised", message)
}

func TestAssistant_GenerateResponse(t *testing.T) {
	a, lastRequest := newFakeCompletions(t, "  Here is what I see.  ")

	reply, err := a.GenerateResponse(context.Background(), "How are my deals doing?", testContext())
	require.NoError(t, err)
	assert.Equal(t, "Here is what I see.", reply)

	messages := requestMessages(t, *lastRequest)
	require.Len(t, messages, 2)

	system := messages[0]["content"].(string)
	assert.Contains(t, system, "Raja")
	assert.Contains(t, system, "sales manager")
	assert.Contains(t, system, "Total Deals: 2")
	assert.Contains(t, system, "Total Deal Value: $150.00")

	assert.Equal(t, "user", messages[1]["role"])
	assert.Equal(t, "How are my deals doing?", messages[1]["content"])
	assert.Equal(t, DefaultModel, (*lastRequest)["model"])
}

func TestAssistant_GenerateInsights_FocusArea(t *testing.T) {
	a, lastRequest := newFakeCompletions(t, "insights")

	_, err := a.GenerateInsights(context.Background(), testContext(), "pipeline velocity")
	require.NoError(t, err)

	messages := requestMessages(t, *lastRequest)
	require.Len(t, messages, 2)
	assert.Contains(t, messages[1]["content"], "Focus specifically on: pipeline velocity.")
}

func TestAssistant_TestConnection(t *testing.T) {
	a, _ := newFakeCompletions(t, "Connection successful")

	ok, message := a.TestConnection(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "Connection successful", message)
}

func TestSummaryContext_Defaults(t *testing.T) {
	sc := SummaryContext{}
	assert.Equal(t, "User", sc.userName())
	assert.Equal(t, "owner", sc.userRole())
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := buildSystemPrompt(testContext())

	assert.Contains(t, prompt, "CRM AI assistant for Raja")
	assert.Contains(t, prompt, "- Name: Raja")
	assert.Contains(t, prompt, "- Role: sales manager")
	assert.Contains(t, prompt, "- Closed Deals: 1")
}
