package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// GroqBaseURL is Groq's OpenAI-compatible endpoint.
	GroqBaseURL = "https://api.groq.com/openai/v1"

	DefaultModel = "llama-3.1-8b-instant"

	maxResponseTokens = 1024
	temperature       = 0.7
)

// ErrUnavailable is returned when no API key was configured. Callers
// render a degraded message instead of failing the session.
var ErrUnavailable = errors.New("assistant is not configured")

// Assistant is a thin wrapper over a hosted text-completion service.
// Given a prompt plus serialized CRM context it returns generated text
// or an error; it never depends on the shape of the output.
type Assistant struct {
	client *openai.Client
	model  string
}

type Dependencies struct {
	APIKey string

	// Model and BaseURL default to Groq's fast Llama endpoint.
	Model   string
	BaseURL string
}

func New(deps Dependencies) *Assistant {
	if deps.APIKey == "" {
		log.Warn().Msg("GROQ_API_KEY not configured, assistant features disabled")
		return &Assistant{}
	}

	cfg := openai.DefaultConfig(deps.APIKey)
	cfg.BaseURL = deps.BaseURL
	if cfg.BaseURL == "" {
		cfg.BaseURL = GroqBaseURL
	}

	model := deps.Model
	if model == "" {
		model = DefaultModel
	}

	return &Assistant{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Available reports whether the completion service is configured.
func (a *Assistant) Available() bool { return a.client != nil }

func (a *Assistant) complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	if !a.Available() {
		return "", ErrUnavailable
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    messages,
		MaxTokens:   maxResponseTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("completion response contained no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GenerateResponse answers a user message with the CRM summary context
// injected into the system prompt.
func (a *Assistant) GenerateResponse(ctx context.Context, userMessage string, sc SummaryContext) (string, error) {
	return a.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: buildSystemPrompt(sc)},
		{Role: openai.ChatMessageRoleUser, Content: userMessage},
	})
}

// GenerateSummary produces a short actionable summary of the CRM
// metrics.
func (a *Assistant) GenerateSummary(ctx context.Context, sc SummaryContext) (string, error) {
	return a.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: "You are an AI assistant that summarises CRM data for busy professionals."},
		{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Please provide a concise but actionable summary based on the following metrics:\n%s", sc.describe())},
	})
}

// GenerateInsights highlights opportunities, challenges and recommended
// actions, optionally focused on one area.
func (a *Assistant) GenerateInsights(ctx context.Context, sc SummaryContext, focusArea string) (string, error) {
	focus := ""
	if focusArea != "" {
		focus = fmt.Sprintf(" Focus specifically on: %s.", focusArea)
	}

	return a.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: "You are a CRM analyst providing insights."},
		{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Analyse this CRM context and highlight opportunities, challenges, and recommended actions.%s\nContext:\n%s", focus, sc.describe())},
	})
}

// GenerateRecommendations offers concrete next steps, optionally toward
// a stated goal.
func (a *Assistant) GenerateRecommendations(ctx context.Context, sc SummaryContext, goal string) (string, error) {
	goalText := ""
	if goal != "" {
		goalText = fmt.Sprintf("The user's goal is: %s. ", goal)
	}

	return a.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: "You are a CRM consultant offering actionable recommendations."},
		{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("%sBased on the following CRM data, provide specific recommendations to improve performance:\n%s", goalText, sc.describe())},
	})
}

// TestConnection performs a tiny completion to verify connectivity. It
// never returns an error; failures come back as the message.
func (a *Assistant) TestConnection(ctx context.Context) (bool, string) {
	if !a.Available() {
		return false, "Client not initialised"
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a connection tester."},
			{Role: openai.ChatMessageRoleUser, Content: "Respond with 'Connection successful'"},
		},
		MaxTokens: 5,
	})
	if err != nil {
		log.Error().Err(err).Msg("Assistant connection test failed")
		return false, fmt.Sprintf("Connection failed: %v", err)
	}

	if len(resp.Choices) > 0 && strings.Contains(resp.Choices[0].Message.Content, "Connection successful") {
		return true, "Connection successful"
	}
	return true, "Connection established"
}
