package repository

import (
	"context"

	"fanquest/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepository is append-only. Entries are never updated or deleted;
// the only writes are inserts inside a settlement transaction.
type LedgerRepository struct {
	db *pgxpool.Pool
}

func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// AppendWithTx inserts an entry inside the caller's transaction. A second
// credit for the same (ref_type, ref_id) trips the partial unique index and
// comes back as ErrDuplicateReward.
func (r *LedgerRepository) AppendWithTx(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO ledger_entries (profile_id, kind, direction, amount, reason, ref_type, ref_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		e.ProfileID, e.Kind, e.Direction, e.Amount, e.Reason, e.RefType, e.RefID,
	).Scan(&e.ID, &e.CreatedAt)
	if isUniqueViolation(err, "ledger_entries_one_credit_per_ref") {
		return domain.ErrDuplicateReward
	}
	return err
}

// HasCreditForRef reports whether a credit entry already exists for the
// causal event. Settlement checks this before inserting; the unique index
// remains the backstop for the race between check and insert.
func (r *LedgerRepository) HasCreditForRef(ctx context.Context, tx pgx.Tx, refType string, refID int64) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS(
		     SELECT 1 FROM ledger_entries
		     WHERE ref_type = $1 AND ref_id = $2 AND direction = 'credit'
		 )`,
		refType, refID,
	).Scan(&exists)
	return exists, err
}

// ListByProfile returns entries newest first, paged by limit/offset.
func (r *LedgerRepository) ListByProfile(ctx context.Context, profileID int64, limit, offset int) ([]*domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, profile_id, kind, direction, amount, reason, ref_type, ref_id, created_at
		 FROM ledger_entries
		 WHERE profile_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		profileID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		err := rows.Scan(&e.ID, &e.ProfileID, &e.Kind, &e.Direction, &e.Amount,
			&e.Reason, &e.RefType, &e.RefID, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, &e)
	}
	return result, rows.Err()
}

// SignedSum returns the credit-minus-debit total of one kind for a profile.
// The wallet projection must always equal this.
func (r *LedgerRepository) SignedSum(ctx context.Context, profileID int64, kind domain.LedgerKind) (int64, error) {
	var sum int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(CASE direction WHEN 'debit' THEN -amount ELSE amount END), 0)
		 FROM ledger_entries
		 WHERE profile_id = $1 AND kind = $2`,
		profileID, kind,
	).Scan(&sum)
	return sum, err
}
