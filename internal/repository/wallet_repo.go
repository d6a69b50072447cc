package repository

import (
	"context"

	"fanquest/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WalletRepository struct {
	db *pgxpool.Pool
}

func NewWalletRepository(db *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetOrCreate returns the profile's wallet, creating a zero-balance row on
// first access. First read is not an error.
func (r *WalletRepository) GetOrCreate(ctx context.Context, profileID int64) (*domain.Wallet, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO wallets (profile_id) VALUES ($1)
		 ON CONFLICT (profile_id) DO NOTHING`,
		profileID,
	)
	if err != nil {
		return nil, err
	}

	var w domain.Wallet
	err = r.db.QueryRow(ctx,
		`SELECT profile_id, points_balance, coins_balance, updated_at
		 FROM wallets
		 WHERE profile_id = $1`,
		profileID,
	).Scan(&w.ProfileID, &w.PointsBalance, &w.CoinsBalance, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// ApplyDeltaWithTx adjusts one balance by a signed amount. Only the
// settlement service calls this, and only inside the same transaction as the
// matching ledger append; that keeps the projection equal to the ledger sum.
func (r *WalletRepository) ApplyDeltaWithTx(ctx context.Context, tx pgx.Tx, profileID int64, kind domain.LedgerKind, delta int64) (int64, error) {
	_, err := tx.Exec(ctx,
		`INSERT INTO wallets (profile_id) VALUES ($1)
		 ON CONFLICT (profile_id) DO NOTHING`,
		profileID,
	)
	if err != nil {
		return 0, err
	}

	column := "points_balance"
	if kind == domain.LedgerKindCoins {
		column = "coins_balance"
	}

	var newBalance int64
	err = tx.QueryRow(ctx,
		`UPDATE wallets
		 SET `+column+` = `+column+` + $1, updated_at = now()
		 WHERE profile_id = $2
		 RETURNING `+column,
		delta, profileID,
	).Scan(&newBalance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return newBalance, nil
}
