package types

import (
	"net/http"

	appErr "github.com/vendoreval/engine/pkg/errors"
)

// FromAppError converts an error to the wire error shape.
func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	var ae *appErr.AppError
	if e, ok := err.(*appErr.AppError); ok {
		ae = e
	}
	if ae == nil {
		return &APIError{Code: string(appErr.CodeUnknown), Message: err.Error()}
	}
	return &APIError{Code: string(ae.Code), Message: ae.Message}
}

// StatusFor maps an error code to its contractual HTTP status.
func StatusFor(err error) int {
	switch appErr.CodeOf(err) {
	case appErr.CodeInvalid:
		return http.StatusBadRequest
	case appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.CodeConflict:
		return http.StatusConflict
	case appErr.CodeUnauthorized:
		return http.StatusUnauthorized
	case appErr.CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
