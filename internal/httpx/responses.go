package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/page"
	"bookcatalog/internal/platform/logger"
)

type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Meta    any  `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   ErrorResponseBody `json:"error"`
	Meta    any               `json:"meta,omitempty"`
}

type ErrorResponseBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Meta is the metadata block attached to every envelope.
type Meta map[string]any

// PageMeta describes a page result for the envelope meta block.
func PageMeta[T any](p page.Page[T]) Meta {
	return Meta{
		"page":        p.Request.Index,
		"size":        p.Request.Size,
		"total":       p.Total,
		"total_pages": p.TotalPages(),
	}
}

func buildMeta(r *http.Request, custom Meta) any {
	requestID := RequestIDFrom(r)
	if requestID == "" && len(custom) == 0 {
		return nil
	}
	meta := make(Meta, len(custom)+1)
	for k, v := range custom {
		meta[k] = v
	}
	if requestID != "" {
		meta["request_id"] = requestID
	}
	return meta
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func JSONSuccess(w http.ResponseWriter, r *http.Request, data any, meta Meta) {
	writeJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Data:    data,
		Meta:    buildMeta(r, meta),
	})
}

func JSONCreated(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, http.StatusCreated, SuccessResponse{
		Success: true,
		Data:    data,
		Meta:    buildMeta(r, nil),
	})
}

func JSONNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func JSONError(w http.ResponseWriter, r *http.Request, statusCode int, code string, message string, details []ErrorDetail) {
	writeJSON(w, statusCode, ErrorResponse{
		Success: false,
		Error: ErrorResponseBody{
			Code:    code,
			Message: message,
			Details: details,
		},
		Meta: buildMeta(r, nil),
	})
}

// WriteError renders err using its apperr kind. Errors without a kind are
// logged and reported as a generic internal error.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)

	if status >= http.StatusInternalServerError {
		logger.C(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		JSONError(w, r, status, kind.String(), "An internal error occurred", nil)
		return
	}

	var details []ErrorDetail
	var ae *apperr.Error
	message := err.Error()
	if errors.As(err, &ae) {
		message = ae.Message()
		if ae.Field() != "" {
			details = []ErrorDetail{{Field: ae.Field(), Message: ae.Message()}}
		}
	}
	JSONError(w, r, status, kind.String(), message, details)
}
