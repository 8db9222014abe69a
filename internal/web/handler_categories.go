package web

import (
	"net/http"
)

type categoryView struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Icon     string   `json:"icon"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	taxonomy := s.categories.Taxonomy()
	views := make([]categoryView, len(taxonomy))
	for i, c := range taxonomy {
		views[i] = categoryView{Name: c.Name, Keywords: c.Keywords, Icon: categoryIcon(c.Name)}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"categories": views,
		"assistant":  s.categories.AssistantEnabled(),
	})
}

func (s *Server) handleSuggestCategory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("name")
	assist := q.Get("assist") == "1" || q.Get("assist") == "true"

	suggestion, err := s.categories.Suggest(r.Context(), name, assist)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := map[string]any{"name": name, "category": nil}
	if suggestion != nil {
		resp["category"] = suggestion.Category
		resp["icon"] = categoryIcon(suggestion.Category)
		resp["source"] = suggestion.Source
	}
	s.writeJSON(w, http.StatusOK, resp)
}
