package httptransport

import (
	"net/http"

	"bbj-ledger/internal/store"

	"github.com/go-chi/chi/v5"
)

type AdminHandlers struct {
	store *store.Store
}

func NewAdminHandlers(st *store.Store) *AdminHandlers {
	return &AdminHandlers{store: st}
}

type setClubUnionRequest struct {
	UnionID string `json:"union_id"`
}

// SetClubUnion maintains the club-to-union resolution cache consulted by the
// rake router. Membership itself is owned by an external system.
func (h *AdminHandlers) SetClubUnion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setClubUnionRequest
		if err := decodeJSON(r, &req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		clubID := chi.URLParam(r, "club_id")
		if clubID == "" {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := h.store.SetClubUnion(r.Context(), clubID, req.UnionID); err != nil {
			WriteLedgerError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

func (h *AdminHandlers) WalletCredits() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		items, err := h.store.ListWalletCredits(r.Context(), r.URL.Query().Get("status"), limit, offset)
		if err != nil {
			WriteLedgerError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}
