package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/vbonduro/cartwise/internal/service"
)

type Server struct {
	comparator *service.ComparatorService
	lists      *service.ListService
	categories *service.CategoryService
	admin      *service.AdminService
	mux        *http.ServeMux
	logger     *slog.Logger
}

func NewServer(
	comparator *service.ComparatorService,
	lists *service.ListService,
	categories *service.CategoryService,
	admin *service.AdminService,
	logger *slog.Logger,
) *Server {
	s := &Server{
		comparator: comparator,
		lists:      lists,
		categories: categories,
		admin:      admin,
		mux:        http.NewServeMux(),
		logger:     logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.mux.HandleFunc("GET /api/products", s.handleListProducts)
	s.mux.HandleFunc("POST /api/products", s.handleCreateProduct)
	s.mux.HandleFunc("DELETE /api/products", s.handleClearProducts)
	s.mux.HandleFunc("GET /api/products/comparison", s.handleComparison)
	s.mux.HandleFunc("GET /api/products/best", s.handleBestProduct)
	s.mux.HandleFunc("POST /api/products/clear-prices", s.handleClearProductPrices)
	s.mux.HandleFunc("PUT /api/products/{id}", s.handleUpdateProduct)
	s.mux.HandleFunc("DELETE /api/products/{id}", s.handleDeleteProduct)

	s.mux.HandleFunc("GET /api/lists", s.handleListLists)
	s.mux.HandleFunc("POST /api/lists", s.handleCreateList)
	s.mux.HandleFunc("GET /api/lists/active", s.handleActiveList)
	s.mux.HandleFunc("GET /api/lists/{id}", s.handleGetList)
	s.mux.HandleFunc("PATCH /api/lists/{id}", s.handleRenameList)
	s.mux.HandleFunc("DELETE /api/lists/{id}", s.handleDeleteList)
	s.mux.HandleFunc("POST /api/lists/{id}/duplicate", s.handleDuplicateList)
	s.mux.HandleFunc("POST /api/lists/{id}/activate", s.handleActivateList)
	s.mux.HandleFunc("GET /api/lists/{id}/categories", s.handleListCategories)
	s.mux.HandleFunc("POST /api/lists/{id}/items", s.handleAddItem)
	s.mux.HandleFunc("PUT /api/lists/{id}/items/{itemID}", s.handleUpdateItem)
	s.mux.HandleFunc("POST /api/lists/{id}/items/{itemID}/toggle", s.handleToggleItem)
	s.mux.HandleFunc("DELETE /api/lists/{id}/items/{itemID}", s.handleDeleteItem)

	s.mux.HandleFunc("GET /api/categories", s.handleCategories)
	s.mux.HandleFunc("GET /api/categories/suggest", s.handleSuggestCategory)

	s.mux.HandleFunc("GET /api/admin/overview", s.handleAdminOverview)
	s.mux.HandleFunc("POST /api/admin/clear-prices", s.handleAdminClearPrices)
	s.mux.HandleFunc("DELETE /api/admin/data", s.handleAdminClearData)
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
