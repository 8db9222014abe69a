package web

import (
	"encoding/json"
	"net/http"

	"github.com/vbonduro/cartwise/internal/domain"
	"github.com/vbonduro/cartwise/internal/service"
)

type itemRequest struct {
	Name     string      `json:"name"`
	Quantity json.Number `json:"quantity"`
	Price    json.Number `json:"price"`
	Category string      `json:"category"`
}

func (req itemRequest) input() (domain.ItemInput, error) {
	qty, err := integer("quantity", req.Quantity)
	if err != nil {
		return domain.ItemInput{}, err
	}
	price, err := number("price", req.Price)
	if err != nil {
		return domain.ItemInput{}, err
	}
	return domain.ItemInput{Name: req.Name, Quantity: qty, Price: price, Category: req.Category}, nil
}

type groupView struct {
	service.CategoryGroup
	Icon string `json:"icon"`
}

func (s *Server) handleListLists(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.lists.Lists(r.Context()))
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var in domain.ListInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	l, err := s.lists.CreateList(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, l)
}

func (s *Server) handleActiveList(w http.ResponseWriter, r *http.Request) {
	l, err := s.lists.ActiveList(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	l, err := s.lists.GetList(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleRenameList(w http.ResponseWriter, r *http.Request) {
	var in domain.ListInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	l, err := s.lists.RenameList(r.Context(), r.PathValue("id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	if err := s.lists.DeleteList(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDuplicateList(w http.ResponseWriter, r *http.Request) {
	l, err := s.lists.DuplicateList(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, l)
}

func (s *Server) handleActivateList(w http.ResponseWriter, r *http.Request) {
	l, err := s.lists.SetActive(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	view, err := s.lists.Categories(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	groups := make([]groupView, len(view.Groups))
	for i, g := range view.Groups {
		groups[i] = groupView{CategoryGroup: g, Icon: categoryIcon(g.Name)}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"groups": groups,
		"stats":  view.Stats,
	})
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	in, err := req.input()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.lists.AddItem(r.Context(), r.PathValue("id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	in, err := req.input()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.lists.UpdateItem(r.Context(), r.PathValue("id"), r.PathValue("itemID"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleToggleItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.lists.ToggleItem(r.Context(), r.PathValue("id"), r.PathValue("itemID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.lists.RemoveItem(r.Context(), r.PathValue("id"), r.PathValue("itemID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
