package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// chatBackend обслуживает оба провайдера через go-openai:
// OpenAI напрямую, Gemini через его OpenAI-совместимый endpoint.
type chatBackend struct {
	client   *openai.Client
	model    string
	provider string
	hasKey   bool
}

func NewOpenAIBackend(apiKey string) Backend {
	return &chatBackend{
		client:   openai.NewClient(apiKey),
		model:    openai.GPT4o,
		provider: "openai",
		hasKey:   apiKey != "",
	}
}

func NewGeminiBackend(apiKey string) Backend {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = geminiBaseURL
	return &chatBackend{
		client:   openai.NewClientWithConfig(cfg),
		model:    "gemini-1.5-pro",
		provider: "gemini",
		hasKey:   apiKey != "",
	}
}

func (b *chatBackend) Generate(ctx context.Context, prompt string) (string, error) {
	if !b.hasKey {
		return "", &BackendError{
			Kind: FailureMissingKey,
			Err:  fmt.Errorf("не задан API-ключ для провайдера %s", b.provider),
		}
	}

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		logrus.Errorf("Ошибка при запросе к %s: %v", b.provider, err)
		return "", classifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &BackendError{
			Kind: FailureOther,
			Err:  fmt.Errorf("пустой ответ от %s", b.provider),
		}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func classifyError(err error) *BackendError {
	if errors.Is(err, context.DeadlineExceeded) {
		// Таймаут трактуем как перегрузку: пользователю предлагается повторить позже
		return &BackendError{Kind: FailureOverloaded, Err: err}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		code := fmt.Sprint(apiErr.Code)
		switch {
		case strings.Contains(code, "insufficient_quota") || apiErr.Type == "insufficient_quota":
			return &BackendError{Kind: FailureQuotaExceeded, Err: err}
		case apiErr.HTTPStatusCode == 401 || strings.Contains(code, "invalid_api_key"):
			return &BackendError{Kind: FailureUnauthenticated, Err: err}
		case apiErr.HTTPStatusCode == 429:
			return &BackendError{Kind: FailureOverloaded, Err: err}
		}
	}

	return &BackendError{Kind: FailureOther, Err: err}
}
