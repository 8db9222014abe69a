package web

import (
	"net/http"
)

func (s *Server) handleAdminOverview(w http.ResponseWriter, r *http.Request) {
	o, err := s.admin.Overview(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleAdminClearPrices(w http.ResponseWriter, r *http.Request) {
	res, err := s.admin.ClearPrices(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAdminClearData(w http.ResponseWriter, r *http.Request) {
	if err := s.admin.ClearAll(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Warn("all data cleared via admin")
	w.WriteHeader(http.StatusNoContent)
}
