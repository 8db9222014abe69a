package claude

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/vbonduro/cartwise/internal/assistant"
)

// maxTokens bounds the reply; a category name is a few tokens.
const maxTokens = 32

type ClaudeSuggester struct {
	client *anthropic.Client
	model  string
	logger *slog.Logger
}

// Option configures a ClaudeSuggester.
type Option func(*options)

type options struct {
	baseURL string
}

// WithBaseURL points the client at another Messages API endpoint.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

func NewClaudeSuggester(apiKey, model string, logger *slog.Logger, opts ...Option) *ClaudeSuggester {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var clientOpts []anthropic.ClientOption
	if o.baseURL != "" {
		clientOpts = append(clientOpts, anthropic.WithBaseURL(o.baseURL))
	}
	return &ClaudeSuggester{
		client: anthropic.NewClient(apiKey, clientOpts...),
		model:  model,
		logger: logger,
	}
}

func (s *ClaudeSuggester) SuggestCategory(ctx context.Context, name string, categories []string) (string, error) {
	resp, err := s.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(s.model),
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(assistant.CategoryPrompt(name, categories)),
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		var apiErr *anthropic.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("claude returned %s: %s", apiErr.Type, apiErr.Message)
		}
		return "", fmt.Errorf("failed to call claude: %w", err)
	}

	var text string
	for _, c := range resp.Content {
		if c.Type == anthropic.MessagesContentTypeText {
			text = c.GetText()
			break
		}
	}

	answer := assistant.MatchCategory(text, categories)
	s.logger.Debug("claude category answer", "name", name, "raw", text, "category", answer)
	return answer, nil
}
