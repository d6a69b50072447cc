package service

import (
	"context"
	"time"

	"fanquest/internal/domain"
	"fanquest/internal/logger"
	"fanquest/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WheelService runs the daily reward wheel. A spin credits through the same
// ledger/wallet path as mission settlement, in one transaction with the spin
// record; the unique (profile, day) index keeps it at one prize per day even
// under concurrent requests.
type WheelService struct {
	db       *pgxpool.Pool
	spins    *repository.WheelRepository
	ledger   *repository.LedgerRepository
	wallets  *repository.WalletRepository
	segments []domain.WheelSegment
	notifier Notifier
}

func NewWheelService(db *pgxpool.Pool, notifier Notifier) *WheelService {
	return &WheelService{
		db:       db,
		spins:    repository.NewWheelRepository(db),
		ledger:   repository.NewLedgerRepository(db),
		wallets:  repository.NewWalletRepository(db),
		segments: domain.DefaultWheelSegments(),
		notifier: notifier,
	}
}

// Segments exposes the wheel layout for the frontend.
func (s *WheelService) Segments() []domain.WheelSegment {
	return s.segments
}

// CanSpin reports whether the profile still has today's spin.
func (s *WheelService) CanSpin(ctx context.Context, profileID int64) (bool, error) {
	spun, err := s.spins.HasSpunOn(ctx, profileID, domain.SpinDayUTC(time.Now()))
	if err != nil {
		return false, err
	}
	return !spun, nil
}

// Spin picks a segment server-side and settles the prize. Fails with
// ErrSpinNotAvailable when today's spin is used.
func (s *WheelService) Spin(ctx context.Context, profileID int64) (*domain.WheelSpin, error) {
	seg := domain.SpinWheel(s.segments)

	spin := &domain.WheelSpin{
		ProfileID: profileID,
		SegmentID: seg.ID,
		Kind:      seg.Kind,
		Amount:    seg.Amount,
		SpinDay:   domain.SpinDayUTC(time.Now()),
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.spins.CreateWithTx(ctx, tx, spin); err != nil {
		return nil, err
	}

	entry := &domain.LedgerEntry{
		ProfileID: profileID,
		Kind:      seg.Kind,
		Direction: domain.LedgerCredit,
		Amount:    seg.Amount,
		Reason:    "Daily wheel",
		RefType:   domain.RefWheelSpin,
		RefID:     spin.ID,
	}
	if err := s.ledger.AppendWithTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if _, err := s.wallets.ApplyDeltaWithTx(ctx, tx, profileID, seg.Kind, seg.Amount); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	wheelSpinsTotal.WithLabelValues(string(seg.Kind)).Inc()
	logger.Info("wheel spin settled", "profile_id", profileID, "kind", seg.Kind, "amount", seg.Amount)

	if s.notifier != nil {
		s.notifier.Notify(profileID, "wheel_prize", map[string]any{
			"kind":   seg.Kind,
			"amount": seg.Amount,
			"label":  seg.Label,
		})
	}
	return spin, nil
}
