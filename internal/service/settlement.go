package service

import (
	"context"
	"errors"
	"time"

	"fanquest/internal/domain"
	"fanquest/internal/logger"
	"fanquest/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettlementService owns the attempt lifecycle and is the only component
// allowed to move an attempt to a terminal state and grant its reward. An
// approval runs as one transaction: lock attempt, transition, read the
// mission fresh, append the credit ledger entry, apply the wallet delta.
// Either all of it commits or none of it does.
type SettlementService struct {
	db       *pgxpool.Pool
	attempts *repository.AttemptRepository
	missions *repository.MissionRepository
	ledger   *repository.LedgerRepository
	wallets  *repository.WalletRepository
	proofs   *repository.ProofRepository
	gate     *ReviewGate
	notifier Notifier
}

func NewSettlementService(db *pgxpool.Pool, notifier Notifier) *SettlementService {
	return &SettlementService{
		db:       db,
		attempts: repository.NewAttemptRepository(db),
		missions: repository.NewMissionRepository(db),
		ledger:   repository.NewLedgerRepository(db),
		wallets:  repository.NewWalletRepository(db),
		proofs:   repository.NewProofRepository(db),
		gate:     NewReviewGate(db),
		notifier: notifier,
	}
}

// Submit opens a pending attempt for (profile, mission) and attaches the
// proof reference when one was uploaded. A second submit while the first is
// still pending fails with ErrDuplicatePendingAttempt.
func (s *SettlementService) Submit(ctx context.Context, profileID, missionID int64, proofPath, proofType string) (*domain.Attempt, error) {
	mission, err := s.missions.GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if !mission.IsOpen(time.Now()) {
		return nil, domain.ErrMissionClosed
	}

	attempt := &domain.Attempt{
		MissionID: missionID,
		ProfileID: profileID,
	}
	if err := s.attempts.Create(ctx, attempt); err != nil {
		return nil, err
	}

	if proofPath != "" {
		if proofType == "" {
			proofType = "screenshot"
		}
		proof := &domain.Proof{
			AttemptID: attempt.ID,
			ProfileID: profileID,
			FilePath:  proofPath,
			Type:      proofType,
		}
		if err := s.proofs.Create(ctx, proof); err != nil {
			// attempt stands; the fan can re-upload from the mission page
			logger.Error("proof insert failed", "attempt_id", attempt.ID, "error", err)
		}
	}

	return attempt, nil
}

// Approve settles an attempt: authorize the reviewer, then atomically
// transition, credit the ledger and bump the wallet. Calling it again for an
// already-decided attempt is a no-op success returning the recorded outcome,
// so retries and double-clicks never double-credit.
func (s *SettlementService) Approve(ctx context.Context, attemptID, reviewerID int64) (*domain.Attempt, error) {
	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, reviewerID, attempt); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	locked, err := s.attempts.LockWithTx(ctx, tx, attemptID)
	if err != nil {
		return nil, err
	}
	if locked.Status.IsTerminal() {
		// already decided, idempotent retry
		settlementsTotal.WithLabelValues("noop").Inc()
		return locked, nil
	}

	decided, err := s.attempts.DecideWithTx(ctx, tx, attemptID, reviewerID, domain.AttemptApproved)
	if err != nil {
		return nil, err
	}

	// Reward comes from the mission row as of this transaction, the single
	// computation path for base + bonus.
	mission, err := s.missions.GetByIDWithTx(ctx, tx, decided.MissionID)
	if err != nil {
		return nil, err
	}
	reward := mission.TotalReward()

	entry := &domain.LedgerEntry{
		ProfileID: decided.ProfileID,
		Kind:      domain.LedgerKindPoints,
		Direction: domain.LedgerCredit,
		Amount:    reward,
		Reason:    "Mission completed",
		RefType:   domain.RefMissionAttempt,
		RefID:     decided.ID,
	}
	if err := s.ledger.AppendWithTx(ctx, tx, entry); err != nil {
		if errors.Is(err, domain.ErrDuplicateReward) {
			// The reward exists but the attempt row said pending; another
			// settlement won the race between our lock and its commit.
			// Absorb and report the recorded outcome.
			settlementsTotal.WithLabelValues("duplicate").Inc()
			_ = tx.Rollback(ctx)
			return s.attempts.GetByID(ctx, attemptID)
		}
		return nil, err
	}

	if _, err := s.wallets.ApplyDeltaWithTx(ctx, tx, decided.ProfileID, domain.LedgerKindPoints, reward); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	settlementsTotal.WithLabelValues("approved").Inc()
	logger.Info("attempt settled",
		"attempt_id", decided.ID, "profile_id", decided.ProfileID,
		"reviewer_id", reviewerID, "reward", reward)

	if s.notifier != nil {
		s.notifier.Notify(decided.ProfileID, "mission_approved", map[string]any{
			"attempt_id": decided.ID,
			"mission_id": decided.MissionID,
			"reward":     reward,
		})
	}
	return decided, nil
}

// Reject closes an attempt with no ledger effect. Idempotent the same way
// Approve is.
func (s *SettlementService) Reject(ctx context.Context, attemptID, reviewerID int64) (*domain.Attempt, error) {
	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(ctx, reviewerID, attempt); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	locked, err := s.attempts.LockWithTx(ctx, tx, attemptID)
	if err != nil {
		return nil, err
	}
	if locked.Status.IsTerminal() {
		settlementsTotal.WithLabelValues("noop").Inc()
		return locked, nil
	}

	decided, err := s.attempts.DecideWithTx(ctx, tx, attemptID, reviewerID, domain.AttemptRejected)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	settlementsTotal.WithLabelValues("rejected").Inc()

	if s.notifier != nil {
		s.notifier.Notify(decided.ProfileID, "mission_rejected", map[string]any{
			"attempt_id": decided.ID,
			"mission_id": decided.MissionID,
		})
	}
	return decided, nil
}

// GetBalance returns the wallet projection, lazily initializing it.
func (s *SettlementService) GetBalance(ctx context.Context, profileID int64) (*domain.Wallet, error) {
	return s.wallets.GetOrCreate(ctx, profileID)
}

// ListLedger pages the profile's ledger newest first.
func (s *SettlementService) ListLedger(ctx context.Context, profileID int64, limit, offset int) ([]*domain.LedgerEntry, error) {
	return s.ledger.ListByProfile(ctx, profileID, limit, offset)
}
