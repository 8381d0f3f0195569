package rake

import (
	"context"
	"errors"

	"bbj-ledger/internal/ledger"
	"bbj-ledger/internal/store"

	"github.com/rs/zerolog/log"
)

// UnionLookup resolves a club's union membership. Implementations return
// store.ErrNotFound when the club settles on its own pool.
type UnionLookup interface {
	GetUnionForClub(ctx context.Context, clubID string) (string, error)
}

// Settler receives the non-BBJ portion of a hand's rake. Attribution and
// splitting of that rake happen outside this service.
type Settler interface {
	SettleRake(ctx context.Context, handID, clubID string, rakeC int64) error
}

// NopSettler discards the non-BBJ rake.
type NopSettler struct{}

func (NopSettler) SettleRake(context.Context, string, string, int64) error { return nil }

type poolRegistry interface {
	GetOrCreatePool(ctx context.Context, owner store.PoolOwner) (*store.Pool, error)
}

type contributionRecorder interface {
	RecordContribution(ctx context.Context, in ledger.RecordContributionInput) (*store.Contribution, error)
}

// Router forwards each settled hand's BBJ drop to the owning pool: the
// union's pool when the club belongs to one, otherwise the club's own.
type Router struct {
	pools    poolRegistry
	recorder contributionRecorder
	unions   UnionLookup
	settler  Settler
}

func NewRouter(pools poolRegistry, recorder contributionRecorder, unions UnionLookup, settler Settler) *Router {
	if settler == nil {
		settler = NopSettler{}
	}
	return &Router{pools: pools, recorder: recorder, unions: unions, settler: settler}
}

type HandSettlementInput struct {
	HandID    string
	TableID   string
	ClubID    string
	RakeC     int64
	BbjC      int64
	BigBlindC int64
}

type HandSettlementResult struct {
	PoolID       string              `json:"pool_id"`
	Contribution *store.Contribution `json:"contribution,omitempty"`
}

func (r *Router) RouteHandSettlement(ctx context.Context, in HandSettlementInput) (*HandSettlementResult, error) {
	if in.HandID == "" || in.ClubID == "" || in.BbjC < 0 || in.RakeC < 0 {
		return nil, ledger.ErrInvalidRequest
	}

	owner := store.ClubOwner(in.ClubID)
	unionID, err := r.unions.GetUnionForClub(ctx, in.ClubID)
	switch {
	case err == nil:
		owner = store.UnionOwner(unionID)
	case errors.Is(err, store.ErrNotFound):
	default:
		return nil, err
	}

	pool, err := r.pools.GetOrCreatePool(ctx, owner)
	if err != nil {
		return nil, err
	}

	res := &HandSettlementResult{PoolID: pool.ID}
	if in.BbjC > 0 {
		c, err := r.recorder.RecordContribution(ctx, ledger.RecordContributionInput{
			PoolID:    pool.ID,
			HandID:    in.HandID,
			TableID:   in.TableID,
			AmountC:   in.BbjC,
			BigBlindC: in.BigBlindC,
		})
		if err != nil {
			return nil, err
		}
		res.Contribution = c
	}

	if in.RakeC > 0 {
		if err := r.settler.SettleRake(ctx, in.HandID, in.ClubID, in.RakeC); err != nil {
			// The BBJ drop is already committed; rake attribution is a
			// separate external concern, so log and keep the settlement.
			log.Error().Err(err).Str("hand_id", in.HandID).Str("club_id", in.ClubID).
				Msg("rake settle failed")
		}
	}
	return res, nil
}
