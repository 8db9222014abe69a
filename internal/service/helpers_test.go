package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vbonduro/cartwise/internal/category"
	"github.com/vbonduro/cartwise/internal/db"
	"github.com/vbonduro/cartwise/internal/kvstore"
	"github.com/vbonduro/cartwise/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testServices struct {
	kv         kvstore.Store
	comparator *ComparatorService
	lists      *ListService
	admin      *AdminService
}

func newServices(kv kvstore.Store) *testServices {
	logger := testLogger()
	v := NewValidator()
	classifier := category.NewClassifier(category.DefaultTaxonomy())
	comparator := NewComparatorService(store.NewProductStore(kv, logger), v, logger)
	lists := NewListService(store.NewListStore(kv, logger), classifier, v, logger)
	return &testServices{
		kv:         kv,
		comparator: comparator,
		lists:      lists,
		admin:      NewAdminService(lists, comparator, kv, logger),
	}
}

func newMemoryServices(t *testing.T) *testServices {
	t.Helper()
	return newServices(kvstore.NewMemoryStore())
}

func newSQLiteServices(t *testing.T) *testServices {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return newServices(store.NewKVStore(d))
}

type stubAssistant struct {
	answer string
	err    error
	calls  int
	seen   []string
}

func (s *stubAssistant) SuggestCategory(_ context.Context, _ string, categories []string) (string, error) {
	s.calls++
	s.seen = categories
	return s.answer, s.err
}
