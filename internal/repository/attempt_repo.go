package repository

import (
	"context"
	"errors"
	"time"

	"fanquest/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AttemptRepository struct {
	db *pgxpool.Pool
}

func NewAttemptRepository(db *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{db: db}
}

const attemptColumns = `id, mission_id, profile_id, status, submitted_at, decided_at, reviewer_profile_id`

func scanAttempt(row pgx.Row) (*domain.Attempt, error) {
	var a domain.Attempt
	err := row.Scan(&a.ID, &a.MissionID, &a.ProfileID, &a.Status,
		&a.SubmittedAt, &a.DecidedAt, &a.ReviewerProfileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts a new pending attempt. The partial unique index turns a
// concurrent duplicate submit into ErrDuplicatePendingAttempt.
func (r *AttemptRepository) Create(ctx context.Context, a *domain.Attempt) error {
	a.Status = domain.AttemptPending
	err := r.db.QueryRow(ctx,
		`INSERT INTO mission_attempts (mission_id, profile_id, status)
		 VALUES ($1, $2, 'pending')
		 RETURNING id, submitted_at`,
		a.MissionID, a.ProfileID,
	).Scan(&a.ID, &a.SubmittedAt)
	if isUniqueViolation(err, "mission_attempts_one_pending") {
		return domain.ErrDuplicatePendingAttempt
	}
	return err
}

func (r *AttemptRepository) GetByID(ctx context.Context, id int64) (*domain.Attempt, error) {
	return scanAttempt(r.db.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM mission_attempts WHERE id = $1`, id))
}

// LockWithTx loads the attempt row with FOR UPDATE so two concurrent
// settlements of the same attempt serialize on it.
func (r *AttemptRepository) LockWithTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.Attempt, error) {
	return scanAttempt(tx.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM mission_attempts WHERE id = $1 FOR UPDATE`, id))
}

// DecideWithTx moves a pending attempt to a terminal state. The status
// predicate makes the transition single-shot even without the prior lock.
func (r *AttemptRepository) DecideWithTx(ctx context.Context, tx pgx.Tx, id, reviewerID int64, outcome domain.AttemptStatus) (*domain.Attempt, error) {
	now := time.Now()
	a, err := scanAttempt(tx.QueryRow(ctx,
		`UPDATE mission_attempts
		 SET status = $1, decided_at = $2, reviewer_profile_id = $3
		 WHERE id = $4 AND status = 'pending'
		 RETURNING `+attemptColumns,
		outcome, now, reviewerID, id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidTransition
		}
		return nil, err
	}
	return a, nil
}

// HasPending reports whether the profile has an open attempt for the mission.
func (r *AttemptRepository) HasPending(ctx context.Context, profileID, missionID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
		     SELECT 1 FROM mission_attempts
		     WHERE profile_id = $1 AND mission_id = $2 AND status = 'pending'
		 )`,
		profileID, missionID,
	).Scan(&exists)
	return exists, err
}

// ListByProfile returns the fan's attempts, newest first.
func (r *AttemptRepository) ListByProfile(ctx context.Context, profileID int64, limit int) ([]*domain.Attempt, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+attemptColumns+`
		 FROM mission_attempts
		 WHERE profile_id = $1
		 ORDER BY submitted_at DESC
		 LIMIT $2`,
		profileID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Attempt
	for rows.Next() {
		var a domain.Attempt
		if err := rows.Scan(&a.ID, &a.MissionID, &a.ProfileID, &a.Status,
			&a.SubmittedAt, &a.DecidedAt, &a.ReviewerProfileID); err != nil {
			return nil, err
		}
		result = append(result, &a)
	}
	return result, rows.Err()
}

// ListPendingByCreator returns the review queue for one creator's missions,
// joined with mission reward data, the fan's display name and the first
// proof reference.
func (r *AttemptRepository) ListPendingByCreator(ctx context.Context, creatorID int64) ([]*domain.AttemptWithDetails, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.mission_id, a.profile_id, a.status, a.submitted_at,
		        a.decided_at, a.reviewer_profile_id,
		        m.title, m.points_base, m.points_bonus,
		        p.display_name,
		        COALESCE((SELECT pr.file_path FROM proofs pr
		                  WHERE pr.attempt_id = a.id
		                  ORDER BY pr.created_at LIMIT 1), '')
		 FROM mission_attempts a
		 JOIN missions m ON m.id = a.mission_id
		 JOIN profiles p ON p.id = a.profile_id
		 WHERE m.creator_id = $1 AND a.status = 'pending'
		 ORDER BY a.submitted_at DESC`,
		creatorID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.AttemptWithDetails
	for rows.Next() {
		var d domain.AttemptWithDetails
		err := rows.Scan(&d.ID, &d.MissionID, &d.ProfileID, &d.Status, &d.SubmittedAt,
			&d.DecidedAt, &d.ReviewerProfileID,
			&d.MissionTitle, &d.MissionPointsBase, &d.MissionPointsBonus,
			&d.FanDisplayName, &d.ProofPath)
		if err != nil {
			return nil, err
		}
		result = append(result, &d)
	}
	return result, rows.Err()
}
