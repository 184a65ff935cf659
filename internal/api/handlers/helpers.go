package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vendoreval/engine/internal/api/middleware"
	"github.com/vendoreval/engine/internal/api/types"
	appErr "github.com/vendoreval/engine/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, types.StatusFor(err), types.APIResponse{Success: false, Error: types.FromAppError(err)})
}

func writeInvalid(w http.ResponseWriter, msg string) {
	writeError(w, appErr.New(appErr.CodeInvalid, msg))
}

func listMeta(r *http.Request, page, size int, total int64) *types.Meta {
	return &types.Meta{
		RequestID: middleware.GetRequestID(r.Context()),
		Page:      page,
		PageSize:  size,
		Total:     total,
	}
}

// parsePagination reads page/page_size query params. Absent params default to
// 1/10; out-of-range or non-numeric values are a validation error.
func parsePagination(r *http.Request) (int, int, error) {
	page, size := 1, 10
	q := r.URL.Query()
	if s := q.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return 0, 0, appErr.New(appErr.CodeInvalid, "page must be an integer >= 1")
		}
		page = n
	}
	if s := q.Get("page_size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 100 {
			return 0, 0, appErr.New(appErr.CodeInvalid, "page_size must be an integer between 1 and 100")
		}
		size = n
	}
	return page, size, nil
}

func invalidParam(msg string) error {
	return appErr.New(appErr.CodeInvalid, msg)
}

// pathID parses the {id} URL parameter as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, appErr.New(appErr.CodeInvalid, "id must be a valid uuid")
	}
	return id, nil
}
