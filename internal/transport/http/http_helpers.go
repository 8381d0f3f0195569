package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bbj-ledger/internal/ledger"
	"bbj-ledger/internal/store"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteHTTPError(w http.ResponseWriter, status int, code string) {
	WriteJSON(w, status, map[string]any{"error": code})
}

// WriteLedgerError maps ledger/store errors to business-level responses;
// anything unrecognized is an internal error.
func WriteLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidRequest):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
	case errors.Is(err, ledger.ErrPoolNotFound), errors.Is(err, store.ErrNotFound):
		WriteHTTPError(w, http.StatusNotFound, "pool_not_found")
	case errors.Is(err, ledger.ErrInsufficientBalance):
		WriteHTTPError(w, http.StatusConflict, "insufficient_promo_balance")
	case errors.Is(err, ledger.ErrDuplicateHand):
		WriteHTTPError(w, http.StatusConflict, "duplicate_hand")
	case errors.Is(err, ledger.ErrSumMismatch):
		WriteHTTPError(w, http.StatusUnprocessableEntity, "sum_mismatch")
	case errors.Is(err, ledger.ErrPoolBusy):
		WriteHTTPError(w, http.StatusServiceUnavailable, "pool_busy")
	case errors.Is(err, store.ErrInvalidOwner):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_owner")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}

func ParsePagination(r *http.Request) (int, int) {
	limit := 50
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
