package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/vbonduro/cartwise/internal/category"
	"github.com/vbonduro/cartwise/internal/domain"
)

// categoryAssistant picks one of categories for an item name, returning ""
// when none fits. Implemented by assistant.ClaudeSuggester.
type categoryAssistant interface {
	SuggestCategory(ctx context.Context, name string, categories []string) (string, error)
}

// Suggestion sources.
const (
	SourceKeyword   = "keyword"
	SourceAssistant = "assistant"
)

type Suggestion struct {
	Category string `json:"category"`
	Source   string `json:"source"`
}

type CategoryService struct {
	classifier *category.Classifier
	assistant  categoryAssistant
	logger     *slog.Logger
}

// NewCategoryService builds the service. assistant may be nil.
func NewCategoryService(classifier *category.Classifier, assistant categoryAssistant, logger *slog.Logger) *CategoryService {
	return &CategoryService{classifier: classifier, assistant: assistant, logger: logger}
}

func (s *CategoryService) Taxonomy() category.Taxonomy {
	return s.classifier.Taxonomy()
}

// AssistantEnabled reports whether an assistant fallback is configured.
func (s *CategoryService) AssistantEnabled() bool {
	return s.assistant != nil
}

// Suggest returns the keyword match for name. When nothing matches and
// assist is set, the assistant is asked to choose among the taxonomy names.
// A nil Suggestion means no category.
func (s *CategoryService) Suggest(ctx context.Context, name string, assist bool) (*Suggestion, error) {
	if utf8.RuneCountInString(name) > domain.MaxNameLen {
		return nil, fmt.Errorf("%w: name must be at most %d characters", domain.ErrInvalidInput, domain.MaxNameLen)
	}
	if c := s.classifier.Suggest(name); c != nil {
		return &Suggestion{Category: c.Name, Source: SourceKeyword}, nil
	}
	if !assist || strings.TrimSpace(name) == "" {
		return nil, nil
	}
	if s.assistant == nil {
		return nil, domain.ErrNoAssistant
	}

	s.logger.Debug("asking assistant for category", "name", name)
	answer, err := s.assistant.SuggestCategory(ctx, name, s.classifier.Taxonomy().Names())
	if err != nil {
		return nil, fmt.Errorf("failed to get assistant suggestion: %w", err)
	}
	// Only names from the taxonomy are accepted.
	c := s.classifier.Taxonomy().Lookup(answer)
	if c == nil {
		s.logger.Info("assistant found no category", "name", name, "answer", answer)
		return nil, nil
	}
	return &Suggestion{Category: c.Name, Source: SourceAssistant}, nil
}
