package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/vendoreval/engine/internal/api/types"
	"github.com/vendoreval/engine/internal/api/validators"
	"github.com/vendoreval/engine/internal/models"
	"github.com/vendoreval/engine/internal/repository"
	"github.com/vendoreval/engine/internal/services"
)

type RequestsHandler struct {
	requests services.RequestService
}

func NewRequestsHandler(requests services.RequestService) *RequestsHandler {
	return &RequestsHandler{requests: requests}
}

func (h *RequestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.RequestCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalid(w, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeInvalid(w, err.Error())
		return
	}
	if req.RiskInputs == nil {
		writeInvalid(w, "risk_inputs is required")
		return
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		writeInvalid(w, "company_id must be a valid uuid")
		return
	}

	created, err := h.requests.Create(r.Context(), &services.CreateRequestInput{
		CompanyID:  companyID,
		RiskInputs: req.RiskInputs,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: created})
}

func (h *RequestsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := parseRequestFilters(r)
	if err != nil {
		writeError(w, err)
		return
	}

	items, total, err := h.requests.List(r.Context(), filters)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    items,
		Meta:    listMeta(r, filters.Page, filters.PageSize, total),
	})
}

func (h *RequestsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	req, err := h.requests.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: req})
}

func (h *RequestsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req types.RequestUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalid(w, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	updates := &services.UpdateRequestInput{RiskInputs: req.RiskInputs}
	if req.Status != nil {
		status := models.RequestStatus(*req.Status)
		updates.Status = &status
	}

	updated, err := h.requests.Update(r.Context(), id, updates)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: updated})
}

func (h *RequestsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.requests.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseRequestFilters(r *http.Request) (repository.RequestFilters, error) {
	var filters repository.RequestFilters

	page, size, err := parsePagination(r)
	if err != nil {
		return filters, err
	}
	filters.Page = page
	filters.PageSize = size

	q := r.URL.Query()
	filters.Query = q.Get("q")

	if s := q.Get("status"); s != "" {
		status := models.RequestStatus(s)
		if !status.Valid() {
			return filters, invalidParam("status must be one of pending, in_review, approved, rejected")
		}
		filters.Status = status
	}
	if s := q.Get("company_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return filters, invalidParam("company_id must be a valid uuid")
		}
		filters.CompanyID = &id
	}
	if s := q.Get("risk_min"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return filters, invalidParam("risk_min must be an integer")
		}
		filters.RiskMin = &n
	}
	if s := q.Get("risk_max"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return filters, invalidParam("risk_max must be an integer")
		}
		filters.RiskMax = &n
	}

	return filters, nil
}
