package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vendoreval/engine/internal/api/types"
	"github.com/vendoreval/engine/internal/api/validators"
	"github.com/vendoreval/engine/internal/repository"
	"github.com/vendoreval/engine/internal/services"
)

type CompaniesHandler struct {
	companies services.CompanyService
}

func NewCompaniesHandler(companies services.CompanyService) *CompaniesHandler {
	return &CompaniesHandler{companies: companies}
}

func (h *CompaniesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CompanyCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalid(w, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	c, err := h.companies.Create(r.Context(), &services.CreateCompanyInput{
		Name:    req.Name,
		TaxID:   req.TaxID,
		Country: req.Country,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: c})
}

func (h *CompaniesHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size, err := parsePagination(r)
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	items, total, err := h.companies.List(r.Context(), repository.CompanyFilters{
		Query:    q.Get("q"),
		OrderBy:  q.Get("order_by"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    items,
		Meta:    listMeta(r, page, size, total),
	})
}

func (h *CompaniesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	c, err := h.companies.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: c})
}

func (h *CompaniesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req types.CompanyUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalid(w, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	c, err := h.companies.Update(r.Context(), id, &services.UpdateCompanyInput{
		Name:    req.Name,
		TaxID:   req.TaxID,
		Country: req.Country,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: c})
}

func (h *CompaniesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.companies.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
