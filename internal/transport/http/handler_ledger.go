package httptransport

import (
	"net/http"

	"bbj-ledger/internal/ledger"
	"bbj-ledger/internal/rake"

	"github.com/go-chi/chi/v5"
)

// LedgerHandlers serves the balance-mutating operations.
type LedgerHandlers struct {
	ledger *ledger.Service
	router *rake.Router
}

func NewLedgerHandlers(svc *ledger.Service, rt *rake.Router) *LedgerHandlers {
	return &LedgerHandlers{ledger: svc, router: rt}
}

type settleHandRequest struct {
	HandID    string `json:"hand_id"`
	TableID   string `json:"table_id"`
	ClubID    string `json:"club_id"`
	RakeC     int64  `json:"rake_c"`
	BbjC      int64  `json:"bbj_c"`
	BigBlindC int64  `json:"big_blind_c"`
}

func (h *LedgerHandlers) SettleHand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req settleHandRequest
		if err := decodeJSON(r, &req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		res, err := h.router.RouteHandSettlement(r.Context(), rake.HandSettlementInput{
			HandID:    req.HandID,
			TableID:   req.TableID,
			ClubID:    req.ClubID,
			RakeC:     req.RakeC,
			BbjC:      req.BbjC,
			BigBlindC: req.BigBlindC,
		})
		if err != nil {
			WriteLedgerError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, res)
	}
}

type executePayoutRequest struct {
	HandID           string   `json:"hand_id"`
	RecipientA       string   `json:"recipient_a"`
	RecipientB       string   `json:"recipient_b"`
	DealtInPlayerIDs []string `json:"dealt_in_player_ids"`
	RecipientAShareC int64    `json:"recipient_a_share_c"`
	RecipientBShareC int64    `json:"recipient_b_share_c"`
	TableShareC      int64    `json:"table_share_c"`
	HandNameA        string   `json:"hand_name_a"`
	HandNameB        string   `json:"hand_name_b"`
}

func (h *LedgerHandlers) ExecutePayout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req executePayoutRequest
		if err := decodeJSON(r, &req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		payout, err := h.ledger.ExecutePayout(r.Context(), ledger.ExecutePayoutInput{
			PoolID:           chi.URLParam(r, "pool_id"),
			HandID:           req.HandID,
			RecipientA:       req.RecipientA,
			RecipientB:       req.RecipientB,
			DealtInPlayerIDs: req.DealtInPlayerIDs,
			RecipientAShareC: req.RecipientAShareC,
			RecipientBShareC: req.RecipientBShareC,
			TableShareC:      req.TableShareC,
			HandNameA:        req.HandNameA,
			HandNameB:        req.HandNameB,
		})
		if err != nil {
			WriteLedgerError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, payout)
	}
}

type promoPayoutRequest struct {
	AmountC      int64    `json:"amount_c"`
	RecipientIDs []string `json:"recipient_ids"`
	Reason       string   `json:"reason"`
	TriggeredBy  string   `json:"triggered_by"`
	EventType    string   `json:"event_type"`
}

func (h *LedgerHandlers) PromoPayout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req promoPayoutRequest
		if err := decodeJSON(r, &req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		event, err := h.ledger.PromoPayout(r.Context(), ledger.PromoPayoutInput{
			PoolID:       chi.URLParam(r, "pool_id"),
			AmountC:      req.AmountC,
			RecipientIDs: req.RecipientIDs,
			Reason:       req.Reason,
			TriggeredBy:  req.TriggeredBy,
			EventType:    req.EventType,
		})
		if err != nil {
			WriteLedgerError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, event)
	}
}
