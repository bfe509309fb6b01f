package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/xavierca1/agency-admin/internal/entity"
	"github.com/xavierca1/agency-admin/internal/usecase"
)

const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error  string                    `json:"error"`
	Fields []usecase.ValidationError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeError maps use case errors to HTTP responses. Unexpected errors are
// logged and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: de.Message, Fields: de.Fields})
		return
	}

	switch {
	case errors.Is(err, entity.ErrClientNotFound),
		errors.Is(err, entity.ErrServiceNotFound),
		errors.Is(err, entity.ErrSubServiceNotFound),
		errors.Is(err, entity.ErrPlanNotFound),
		errors.Is(err, entity.ErrContractNotFound),
		errors.Is(err, entity.ErrPaymentNotFound):
		writeErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrEmailAlreadyExists),
		errors.Is(err, entity.ErrServiceHasActiveContracts),
		errors.Is(err, entity.ErrStillReferenced),
		errors.Is(err, entity.ErrDuplicateKey):
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrInvalidCredentials):
		writeErrorResponse(w, http.StatusUnauthorized, err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeErrorResponse(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads one JSON object from the body, rejecting unknown fields
// and trailing data.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeErrorResponse(w, http.StatusBadRequest, "invalid JSON: unexpected data after object")
		return false
	}
	return true
}
