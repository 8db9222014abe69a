package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vbonduro/cartwise/internal/assistant"
	"github.com/vbonduro/cartwise/internal/assistant/claude"
	"github.com/vbonduro/cartwise/internal/assistant/ollama"
	"github.com/vbonduro/cartwise/internal/category"
	"github.com/vbonduro/cartwise/internal/config"
	"github.com/vbonduro/cartwise/internal/db"
	"github.com/vbonduro/cartwise/internal/kvstore"
	"github.com/vbonduro/cartwise/internal/kvstore/local"
	"github.com/vbonduro/cartwise/internal/logging"
	"github.com/vbonduro/cartwise/internal/service"
	"github.com/vbonduro/cartwise/internal/store"
	"github.com/vbonduro/cartwise/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	kv, closeStore, err := newStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		return
	}
	defer closeStore()

	taxonomy, err := loadTaxonomy(cfg, logger)
	if err != nil {
		logger.Error("failed to load taxonomy", "path", cfg.TaxonomyFile, "error", err)
		return
	}

	suggester, err := newAssistant(cfg, logger)
	if err != nil {
		logger.Error("failed to configure assistant", "error", err)
		return
	}

	v := service.NewValidator()
	classifier := category.NewClassifier(taxonomy)

	comparatorService := service.NewComparatorService(store.NewProductStore(kv, logger), v, logger)
	listService := service.NewListService(store.NewListStore(kv, logger), classifier, v, logger)
	categoryService := service.NewCategoryService(classifier, suggester, logger)
	adminService := service.NewAdminService(listService, comparatorService, kv, logger)

	server := web.NewServer(comparatorService, listService, categoryService, adminService, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx, cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
	}
}

// newStore opens the configured key-value backend. The returned func releases
// it.
func newStore(cfg *config.Config, logger *slog.Logger) (kvstore.Store, func(), error) {
	switch cfg.StoreBackend {
	case "sqlite":
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using sqlite store", "path", cfg.DBPath)
		return store.NewKVStore(database), func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", "error", err)
			}
		}, nil
	case "file":
		fs, err := local.NewLocalStore(cfg.StoreFilePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using file store", "path", cfg.StoreFilePath)
		return fs, func() {}, nil
	case "memory":
		logger.Warn("using memory store; data is lost on exit")
		return kvstore.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

func loadTaxonomy(cfg *config.Config, logger *slog.Logger) (category.Taxonomy, error) {
	if cfg.TaxonomyFile == "" {
		return category.DefaultTaxonomy(), nil
	}
	t, err := category.LoadTaxonomyFile(cfg.TaxonomyFile)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded taxonomy", "path", cfg.TaxonomyFile, "categories", len(t))
	return t, nil
}

// newAssistant returns nil when no assistant is configured.
func newAssistant(cfg *config.Config, logger *slog.Logger) (assistant.Suggester, error) {
	switch cfg.AssistantBackend {
	case "", "none":
		return nil, nil
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			return nil, errors.New("CLAUDE_API_KEY is required when ASSISTANT_BACKEND=claude")
		}
		logger.Info("using Claude category assistant", "model", cfg.ClaudeModel)
		return claude.NewClaudeSuggester(cfg.ClaudeAPIKey, cfg.ClaudeModel, logger), nil
	case "ollama":
		logger.Info("using Ollama category assistant", "model", cfg.OllamaModel)
		return ollama.NewOllamaSuggester(cfg.OllamaHost, cfg.OllamaModel), nil
	default:
		return nil, fmt.Errorf("unknown ASSISTANT_BACKEND %q", cfg.AssistantBackend)
	}
}
