package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/stillwrite/stillwrite-backend/internal/ratelimit"
)

var (
	// ErrNotConfigured means no LLM API key is set; the feature is disabled.
	ErrNotConfigured = errors.New("prompt service not configured")
	// ErrQuotaExceeded means the user spent their daily prompt budget.
	ErrQuotaExceeded = errors.New("daily prompt quota exceeded")
)

const (
	// DailyPromptLimit caps prompt suggestions per user per day.
	DailyPromptLimit = 3
	promptWindow     = 24 * time.Hour
	promptKeyPrefix  = "ai-prompt:"

	systemPrompt = "You are a gentle journaling companion. Given what the " +
		"user has written so far in today's session, offer one short, open " +
		"question or reflection prompt that helps them keep writing. Reply " +
		"with the prompt only, no preamble."

	maxContextChars = 4000
)

// Completer is the slice of the LLM API the service needs.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAIClient calls the chat completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{client: openai.NewClient(apiKey), model: model}
}

func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: 120,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// PromptService produces writing-prompt suggestions, at most DailyPromptLimit
// per user per day.
type PromptService struct {
	completer Completer
	limiter   *ratelimit.Limiter
}

// NewPromptService wires the completer and quota limiter. completer may be
// nil when no API key is configured; Suggest then returns ErrNotConfigured.
func NewPromptService(completer Completer, limiter *ratelimit.Limiter) *PromptService {
	return &PromptService{completer: completer, limiter: limiter}
}

// Configured reports whether an LLM backend is available.
func (p *PromptService) Configured() bool {
	return p.completer != nil
}

// Suggest returns a writing prompt for the user's current session content.
// The quota is consumed only when a completion is actually attempted.
func (p *PromptService) Suggest(ctx context.Context, userID, currentContent string) (string, error) {
	if p.completer == nil {
		return "", ErrNotConfigured
	}
	if !p.limiter.Allow(promptKeyPrefix+userID, DailyPromptLimit, promptWindow) {
		return "", ErrQuotaExceeded
	}

	content := currentContent
	if len(content) > maxContextChars {
		content = content[len(content)-maxContextChars:]
	}
	if strings.TrimSpace(content) == "" {
		content = "(the page is still blank)"
	}

	return p.completer.Complete(ctx, systemPrompt, content)
}
