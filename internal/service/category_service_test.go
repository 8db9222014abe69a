package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/cartwise/internal/category"
	"github.com/vbonduro/cartwise/internal/domain"
)

func newCategoryService(a categoryAssistant) *CategoryService {
	return NewCategoryService(category.NewClassifier(category.DefaultTaxonomy()), a, testLogger())
}

func TestCategoryServiceSuggestKeyword(t *testing.T) {
	stub := &stubAssistant{answer: "Bebidas"}
	svc := newCategoryService(stub)

	s, err := svc.Suggest(context.Background(), "Arroz integral", true)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "Grãos e Cereais", s.Category)
	assert.Equal(t, SourceKeyword, s.Source)
	assert.Zero(t, stub.calls)
}

func TestCategoryServiceSuggestNoMatchWithoutAssist(t *testing.T) {
	stub := &stubAssistant{answer: "Bebidas"}
	svc := newCategoryService(stub)

	s, err := svc.Suggest(context.Background(), "kombucha", false)
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.Zero(t, stub.calls)
}

func TestCategoryServiceSuggestAssistantFallback(t *testing.T) {
	stub := &stubAssistant{answer: "Bebidas"}
	svc := newCategoryService(stub)

	s, err := svc.Suggest(context.Background(), "kombucha", true)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "Bebidas", s.Category)
	assert.Equal(t, SourceAssistant, s.Source)
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, category.DefaultTaxonomy().Names(), stub.seen)
}

func TestCategoryServiceRejectsAnswerOutsideTaxonomy(t *testing.T) {
	svc := newCategoryService(&stubAssistant{answer: "Drinks"})

	s, err := svc.Suggest(context.Background(), "kombucha", true)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestCategoryServiceAssistantError(t *testing.T) {
	boom := errors.New("rate limited")
	svc := newCategoryService(&stubAssistant{err: boom})

	_, err := svc.Suggest(context.Background(), "kombucha", true)
	assert.ErrorIs(t, err, boom)
}

func TestCategoryServiceNoAssistant(t *testing.T) {
	svc := newCategoryService(nil)
	assert.False(t, svc.AssistantEnabled())

	_, err := svc.Suggest(context.Background(), "kombucha", true)
	assert.ErrorIs(t, err, domain.ErrNoAssistant)

	s, err := svc.Suggest(context.Background(), "leite", true)
	require.NoError(t, err)
	assert.Equal(t, "Laticínios", s.Category)
}

func TestCategoryServiceEmptyName(t *testing.T) {
	stub := &stubAssistant{answer: "Bebidas"}
	svc := newCategoryService(stub)

	s, err := svc.Suggest(context.Background(), "   ", true)
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.Zero(t, stub.calls)
}

func TestCategoryServiceNameTooLong(t *testing.T) {
	svc := newCategoryService(nil)

	_, err := svc.Suggest(context.Background(), strings.Repeat("a", domain.MaxNameLen+1), false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryServiceNameLimitCountsCharacters(t *testing.T) {
	svc := newCategoryService(nil)
	ctx := context.Background()

	_, err := svc.Suggest(ctx, strings.Repeat("ã", domain.MaxNameLen), false)
	assert.NoError(t, err)

	_, err = svc.Suggest(ctx, strings.Repeat("ã", domain.MaxNameLen+1), false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
