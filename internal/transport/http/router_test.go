package httptransport

import (
	"fmt"
	"net/http"
	"sort"
	"testing"

	"bbj-ledger/internal/config"
	"bbj-ledger/internal/ledger"
	"bbj-ledger/internal/rake"
	"bbj-ledger/internal/store"

	"github.com/go-chi/chi/v5"
)

func newTestRouter(adminKey string) *chi.Mux {
	st := &store.Store{}
	svc := ledger.NewService(st, 3)
	rt := rake.NewRouter(st, svc, st, rake.NopSettler{})
	return NewRouter(st, svc, rt, config.ServerConfig{AdminAPIKey: adminKey})
}

func TestRouterRoutes(t *testing.T) {
	want := []string{
		"GET /api/admin/debug/vars",
		"GET /api/admin/wallet-credits",
		"GET /api/hands/{hand_id}/contributions",
		"GET /api/payouts/{payout_id}/recipients",
		"GET /api/pools/{pool_id}",
		"GET /api/pools/{pool_id}/contributions",
		"GET /api/pools/{pool_id}/payouts",
		"GET /api/pools/{pool_id}/promo-events",
		"GET /api/users/{user_id}/payout-shares",
		"GET /healthz",
		"POST /api/hands/settle",
		"POST /api/pools",
		"POST /api/pools/{pool_id}/payouts",
		"POST /api/pools/{pool_id}/promo-payouts",
		"PUT /api/admin/clubs/{club_id}/union",
	}

	var got []string
	err := chi.Walk(newTestRouter(""), func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		got = append(got, fmt.Sprintf("%s %s", method, route))
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	sort.Strings(got)

	if len(got) != len(want) {
		t.Fatalf("route count = %d, want %d\ngot: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("route %d = %q, want %q", i, got[i], want[i])
		}
	}
}
