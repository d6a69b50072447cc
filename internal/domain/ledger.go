package domain

import "time"

// LedgerKind - which balance a ledger entry moves
type LedgerKind string

const (
	LedgerKindPoints LedgerKind = "points"
	LedgerKindCoins  LedgerKind = "coins"
)

// LedgerDirection - sign of a ledger entry
type LedgerDirection string

const (
	LedgerCredit LedgerDirection = "credit"
	LedgerDebit  LedgerDirection = "debit"
)

// Reference types linking entries to their causal event.
const (
	RefMissionAttempt = "mission_attempt"
	RefWheelSpin      = "wheel_spin"
)

// LedgerEntry - an immutable balance-changing fact. Never updated or
// deleted. For a given (ref_type, ref_id) at most one credit may exist; the
// partial unique index in migrations enforces it.
type LedgerEntry struct {
	ID        int64           `db:"id" json:"id"`
	ProfileID int64           `db:"profile_id" json:"profile_id"`
	Kind      LedgerKind      `db:"kind" json:"kind"`
	Direction LedgerDirection `db:"direction" json:"direction"`
	Amount    int64           `db:"amount" json:"amount"`
	Reason    string          `db:"reason" json:"reason,omitempty"`
	RefType   string          `db:"ref_type" json:"ref_type,omitempty"`
	RefID     int64           `db:"ref_id" json:"ref_id,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// Signed returns the amount with the direction applied.
func (e *LedgerEntry) Signed() int64 {
	if e.Direction == LedgerDebit {
		return -e.Amount
	}
	return e.Amount
}

// Wallet - materialized projection of the ledger, one row per profile.
// Balances always equal the signed sum of that profile's entries; the wallet
// is never authoritative on its own.
type Wallet struct {
	ProfileID     int64     `db:"profile_id" json:"profile_id"`
	PointsBalance int64     `db:"points_balance" json:"points_balance"`
	CoinsBalance  int64     `db:"coins_balance" json:"coins_balance"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
