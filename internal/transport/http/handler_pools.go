package httptransport

import (
	"net/http"

	"bbj-ledger/internal/store"

	"github.com/go-chi/chi/v5"
)

// PoolHandlers serves the pool registry surface and the audit queries used to
// render jackpot history.
type PoolHandlers struct {
	store *store.Store
}

func NewPoolHandlers(st *store.Store) *PoolHandlers {
	return &PoolHandlers{store: st}
}

type createPoolRequest struct {
	ClubID  string `json:"club_id,omitempty"`
	UnionID string `json:"union_id,omitempty"`
}

func (h *PoolHandlers) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPoolRequest
		if err := decodeJSON(r, &req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		pool, err := h.store.GetOrCreatePool(r.Context(), store.PoolOwner{ClubID: req.ClubID, UnionID: req.UnionID})
		if err != nil {
			WriteLedgerError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, pool)
	}
}

func (h *PoolHandlers) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pool, err := h.store.GetPool(r.Context(), chi.URLParam(r, "pool_id"))
		if err != nil {
			WriteLedgerError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, pool)
	}
}

func (h *PoolHandlers) Contributions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		items, err := h.store.ListContributionsByPool(r.Context(), chi.URLParam(r, "pool_id"), limit, offset)
		if err != nil {
			WriteLedgerError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}

func (h *PoolHandlers) Payouts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		items, err := h.store.ListPayoutsByPool(r.Context(), chi.URLParam(r, "pool_id"), limit, offset)
		if err != nil {
			WriteLedgerError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}

func (h *PoolHandlers) PromoEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		items, err := h.store.ListPromoEventsByPool(r.Context(), chi.URLParam(r, "pool_id"), limit, offset)
		if err != nil {
			WriteLedgerError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}

func (h *PoolHandlers) HandContributions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.store.ListContributionsByHand(r.Context(), chi.URLParam(r, "hand_id"))
		if err != nil {
			WriteLedgerError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *PoolHandlers) PayoutRecipients() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.store.ListPayoutRecipients(r.Context(), chi.URLParam(r, "payout_id"))
		if err != nil {
			WriteLedgerError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *PoolHandlers) UserPayoutShares() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		items, err := h.store.ListPayoutSharesByUser(r.Context(), chi.URLParam(r, "user_id"), limit, offset)
		if err != nil {
			WriteLedgerError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}
