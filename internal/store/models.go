package store

import "time"

// PoolOwner identifies the entity a jackpot pool belongs to. Exactly one of
// ClubID or UnionID must be set.
type PoolOwner struct {
	ClubID  string
	UnionID string
}

func ClubOwner(clubID string) PoolOwner {
	return PoolOwner{ClubID: clubID}
}

func UnionOwner(unionID string) PoolOwner {
	return PoolOwner{UnionID: unionID}
}

func (o PoolOwner) Valid() bool {
	return (o.ClubID == "") != (o.UnionID == "")
}

// Pool is the triple-bank jackpot reserve: Main funds the next hit, Backup
// reseeds Main after a hit, Promo funds manual promotional disbursements.
type Pool struct {
	ID                string     `json:"id"`
	ClubID            string     `json:"club_id,omitempty"`
	UnionID           string     `json:"union_id,omitempty"`
	MainC             int64      `json:"main_c"`
	BackupC           int64      `json:"backup_c"`
	PromoC            int64      `json:"promo_c"`
	TotalContributedC int64      `json:"total_contributed_c"`
	TotalPaidOutC     int64      `json:"total_paid_out_c"`
	HitCount          int        `json:"hit_count"`
	LastHitAt         *time.Time `json:"last_hit_at,omitempty"`
	LastHitAmountC    *int64     `json:"last_hit_amount_c,omitempty"`
	LastHitWinner     string     `json:"last_hit_winner,omitempty"`
	LastHitLoser      string     `json:"last_hit_loser,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type Contribution struct {
	ID             string    `json:"id"`
	PoolID         string    `json:"pool_id"`
	HandID         string    `json:"hand_id"`
	TableID        string    `json:"table_id"`
	AmountC        int64     `json:"amount_c"`
	MainPortionC   int64     `json:"main_portion_c"`
	BackupPortionC int64     `json:"backup_portion_c"`
	PromoPortionC  int64     `json:"promo_portion_c"`
	BigBlindC      int64     `json:"big_blind_c"`
	CreatedAt      time.Time `json:"created_at"`
}

type Payout struct {
	ID               string    `json:"id"`
	PoolID           string    `json:"pool_id"`
	HandID           string    `json:"hand_id"`
	RecipientA       string    `json:"recipient_a"`
	RecipientB       string    `json:"recipient_b"`
	TotalAmountC     int64     `json:"total_amount_c"`
	RecipientAShareC int64     `json:"recipient_a_share_c"`
	RecipientBShareC int64     `json:"recipient_b_share_c"`
	TableShareC      int64     `json:"table_share_c"`
	DealtInCount     int       `json:"dealt_in_count"`
	HandNameA        string    `json:"hand_name_a"`
	HandNameB        string    `json:"hand_name_b"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

type PayoutRecipient struct {
	ID        string    `json:"id"`
	PayoutID  string    `json:"payout_id"`
	UserID    string    `json:"user_id"`
	AmountC   int64     `json:"amount_c"`
	CreatedAt time.Time `json:"created_at"`
}

type PromoEvent struct {
	ID             string    `json:"id"`
	PoolID         string    `json:"pool_id"`
	EventType      string    `json:"event_type"`
	Reason         string    `json:"reason"`
	AmountC        int64     `json:"amount_c"`
	RecipientCount int       `json:"recipient_count"`
	TriggeredBy    string    `json:"triggered_by"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// WalletCredit is an outbox row: the intent to move funds into a user's
// spendable balance, created in the same transaction as the payout or promo
// event that authorized it and delivered asynchronously.
type WalletCredit struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	AmountC       int64      `json:"amount_c"`
	Reason        string     `json:"reason"`
	RefType       string     `json:"ref_type"`
	RefID         string     `json:"ref_id"`
	Status        string     `json:"status"`
	Attempts      int        `json:"attempts"`
	NextAttemptAt time.Time  `json:"next_attempt_at"`
	CreatedAt     time.Time  `json:"created_at"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
}

const (
	WalletCreditPending = "pending"
	WalletCreditSent    = "sent"
	WalletCreditFailed  = "failed"

	WalletRefPayout = "payout"
	WalletRefPromo  = "promo"
)
