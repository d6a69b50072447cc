package repository

import (
	"context"
	"errors"
	"time"

	"fanquest/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WheelRepository struct {
	db *pgxpool.Pool
}

func NewWheelRepository(db *pgxpool.Pool) *WheelRepository {
	return &WheelRepository{db: db}
}

// CreateWithTx records a spin for its UTC day. The unique index on
// (profile_id, spin_day) turns a second spin into ErrSpinNotAvailable and
// aborts the surrounding credit.
func (r *WheelRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, s *domain.WheelSpin) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO wheel_spins (profile_id, segment_id, kind, amount, spin_day)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		s.ProfileID, s.SegmentID, s.Kind, s.Amount, s.SpinDay,
	).Scan(&s.ID, &s.CreatedAt)
	if isUniqueViolation(err, "wheel_spins_one_per_day") {
		return domain.ErrSpinNotAvailable
	}
	return err
}

// HasSpunOn reports whether the profile already spun on the given UTC day.
func (r *WheelRepository) HasSpunOn(ctx context.Context, profileID int64, day time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
		     SELECT 1 FROM wheel_spins WHERE profile_id = $1 AND spin_day = $2
		 )`,
		profileID, day,
	).Scan(&exists)
	return exists, err
}

// LastSpin returns the profile's most recent spin, or ErrNotFound.
func (r *WheelRepository) LastSpin(ctx context.Context, profileID int64) (*domain.WheelSpin, error) {
	var s domain.WheelSpin
	err := r.db.QueryRow(ctx,
		`SELECT id, profile_id, segment_id, kind, amount, spin_day, created_at
		 FROM wheel_spins
		 WHERE profile_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		profileID,
	).Scan(&s.ID, &s.ProfileID, &s.SegmentID, &s.Kind, &s.Amount, &s.SpinDay, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
