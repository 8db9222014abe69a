package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/vbonduro/cartwise/internal/domain"
)

// maxBodyBytes caps request bodies; every payload is a handful of fields.
const maxBodyBytes = 1 << 20

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps service errors to a status code and a JSON error body.
// Unexpected errors are logged and reported without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNoAssistant):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrListNotFound),
		errors.Is(err, domain.ErrItemNotFound):
		status = http.StatusNotFound
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = "internal error"
	}
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads a JSON body into dst. Malformed bodies, unknown fields and
// non-numeric values in numeric fields are reported as invalid input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// number converts an optional numeric field. An absent field is 0.
func number(field string, n json.Number) (float64, error) {
	if strings.TrimSpace(n.String()) == "" {
		return 0, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, field)
	}
	return f, nil
}

// integer converts an optional whole-number field. An absent field is 0.
func integer(field string, n json.Number) (int, error) {
	if strings.TrimSpace(n.String()) == "" {
		return 0, nil
	}
	i, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", domain.ErrInvalidInput, field)
	}
	return int(i), nil
}
