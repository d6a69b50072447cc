package domain

import (
	"crypto/rand"
	"math/big"
	"time"
)

// WheelSegment - one prize slice of the daily reward wheel
type WheelSegment struct {
	ID          int        `json:"id"`
	Kind        LedgerKind `json:"kind"`
	Amount      int64      `json:"amount"`
	Label       string     `json:"label"`
	Probability float64    `json:"probability"` // 0.0 - 1.0
}

// DefaultWheelSegments returns the production wheel configuration. Big
// prizes are rarer than the even split the frontend renders.
func DefaultWheelSegments() []WheelSegment {
	return []WheelSegment{
		{ID: 1, Kind: LedgerKindPoints, Amount: 10, Label: "+10 Puan", Probability: 0.30},
		{ID: 2, Kind: LedgerKindPoints, Amount: 25, Label: "+25 Puan", Probability: 0.20},
		{ID: 3, Kind: LedgerKindCoins, Amount: 5, Label: "+5 Coin", Probability: 0.15},
		{ID: 4, Kind: LedgerKindPoints, Amount: 50, Label: "+50 Puan", Probability: 0.08},
		{ID: 5, Kind: LedgerKindCoins, Amount: 10, Label: "+10 Coin", Probability: 0.07},
		{ID: 6, Kind: LedgerKindPoints, Amount: 15, Label: "+15 Puan", Probability: 0.20},
	}
}

// WheelSpin - a recorded daily spin. One per profile per UTC day, enforced
// by a unique index on (profile_id, spin_day).
type WheelSpin struct {
	ID        int64      `db:"id" json:"id"`
	ProfileID int64      `db:"profile_id" json:"profile_id"`
	SegmentID int        `db:"segment_id" json:"segment_id"`
	Kind      LedgerKind `db:"kind" json:"kind"`
	Amount    int64      `db:"amount" json:"amount"`
	SpinDay   time.Time  `db:"spin_day" json:"spin_day"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// SpinWheel picks a segment by cumulative probability using a
// cryptographically secure random source.
func SpinWheel(segments []WheelSegment) WheelSegment {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		n = big.NewInt(500000)
	}
	random := float64(n.Int64()) / 1000000.0

	cumulative := 0.0
	for _, seg := range segments {
		cumulative += seg.Probability
		if random < cumulative {
			return seg
		}
	}
	// rounding slack lands on the last segment
	return segments[len(segments)-1]
}

// SpinDayUTC truncates t to the UTC day used for the once-per-day rule.
func SpinDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
