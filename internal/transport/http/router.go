package httptransport

import (
	"expvar"
	"net/http"

	"bbj-ledger/internal/config"
	"bbj-ledger/internal/ledger"
	"bbj-ledger/internal/rake"
	"bbj-ledger/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(st *store.Store, svc *ledger.Service, rt *rake.Router, cfg config.ServerConfig) *chi.Mux {
	pools := NewPoolHandlers(st)
	ops := NewLedgerHandlers(svc, rt)
	admin := NewAdminHandlers(st)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", healthHandler(st))

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())

		r.Get("/pools/{pool_id}", pools.Get())
		r.Get("/pools/{pool_id}/contributions", pools.Contributions())
		r.Get("/pools/{pool_id}/payouts", pools.Payouts())
		r.Get("/pools/{pool_id}/promo-events", pools.PromoEvents())
		r.Get("/payouts/{payout_id}/recipients", pools.PayoutRecipients())
		r.Get("/hands/{hand_id}/contributions", pools.HandContributions())
		r.Get("/users/{user_id}/payout-shares", pools.UserPayoutShares())

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminAPIKey))
			r.Post("/pools", pools.Create())
			r.Post("/hands/settle", ops.SettleHand())
			r.Post("/pools/{pool_id}/payouts", ops.ExecutePayout())
			r.Post("/pools/{pool_id}/promo-payouts", ops.PromoPayout())
			r.Put("/admin/clubs/{club_id}/union", admin.SetClubUnion())
			r.Get("/admin/wallet-credits", admin.WalletCredits())
			r.Get("/admin/debug/vars", expvar.Handler().ServeHTTP)
		})
	})

	return r
}

func healthHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			WriteHTTPError(w, http.StatusServiceUnavailable, "db_unavailable")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}
