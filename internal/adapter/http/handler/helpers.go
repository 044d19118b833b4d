package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/finvue/debtplan/internal/adapter/http/dto"
	"github.com/finvue/debtplan/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDebtNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownStrategy):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNonPositiveIncome):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientPayment):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultValue
	}
	return i
}
