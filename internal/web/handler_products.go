package web

import (
	"encoding/json"
	"net/http"

	"github.com/vbonduro/cartwise/internal/domain"
	"github.com/vbonduro/cartwise/internal/pricing"
	"github.com/vbonduro/cartwise/internal/service"
)

type productRequest struct {
	Name         string      `json:"name"`
	Unit         string      `json:"unit"`
	Amount       json.Number `json:"amount"`
	PackagePrice json.Number `json:"packagePrice"`
}

func (req productRequest) input() (domain.ProductInput, error) {
	amount, err := number("amount", req.Amount)
	if err != nil {
		return domain.ProductInput{}, err
	}
	price, err := number("packagePrice", req.PackagePrice)
	if err != nil {
		return domain.ProductInput{}, err
	}
	return domain.ProductInput{Name: req.Name, Unit: req.Unit, Amount: amount, PackagePrice: price}, nil
}

type productView struct {
	domain.Product
	UnitLabel string `json:"unitLabel"`
}

func viewProduct(p domain.Product) productView {
	return productView{Product: p, UnitLabel: unitLabel(p.Unit)}
}

type rankedView struct {
	service.RankedProduct
	UnitLabel string `json:"unitLabel"`
}

type familyView struct {
	Unit     pricing.Unit `json:"unit"`
	Label    string       `json:"label"`
	Products []rankedView `json:"products"`
	Best     *productView `json:"best"`
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products := s.comparator.ListProducts(r.Context())
	views := make([]productView, len(products))
	for i, p := range products {
		views[i] = viewProduct(p)
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	in, err := req.input()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.comparator.AddProduct(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, viewProduct(*p))
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	in, err := req.input()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.comparator.UpdateProduct(r.Context(), r.PathValue("id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, viewProduct(*p))
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.comparator.RemoveProduct(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	cmp := s.comparator.Comparison(r.Context())

	families := make([]familyView, 0, len(cmp.Families))
	for _, f := range cmp.Families {
		fv := familyView{Unit: f.Unit, Label: unitLabel(f.Unit), Products: make([]rankedView, len(f.Products))}
		for i, p := range f.Products {
			fv.Products[i] = rankedView{RankedProduct: p, UnitLabel: unitLabel(p.Unit)}
		}
		if f.Best != nil {
			best := viewProduct(*f.Best)
			fv.Best = &best
		}
		families = append(families, fv)
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"families": families,
		"stats":    cmp.Stats,
	})
}

func (s *Server) handleBestProduct(w http.ResponseWriter, r *http.Request) {
	unit := r.URL.Query().Get("unit")
	best, err := s.comparator.Best(r.Context(), unit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	family := pricing.Family(pricing.ParseUnit(unit))
	resp := map[string]any{"unit": family, "label": unitLabel(family), "product": nil}
	if best != nil {
		resp["product"] = viewProduct(*best)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClearProductPrices(w http.ResponseWriter, r *http.Request) {
	n, err := s.comparator.ClearPrices(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"cleared": n})
}

func (s *Server) handleClearProducts(w http.ResponseWriter, r *http.Request) {
	if err := s.comparator.ClearAll(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
