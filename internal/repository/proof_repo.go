package repository

import (
	"context"

	"fanquest/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProofRepository struct {
	db *pgxpool.Pool
}

func NewProofRepository(db *pgxpool.Pool) *ProofRepository {
	return &ProofRepository{db: db}
}

func (r *ProofRepository) Create(ctx context.Context, p *domain.Proof) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO proofs (attempt_id, profile_id, file_path, type)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		p.AttemptID, p.ProfileID, p.FilePath, p.Type,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *ProofRepository) ListByAttempt(ctx context.Context, attemptID int64) ([]*domain.Proof, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, attempt_id, profile_id, file_path, type, created_at
		 FROM proofs
		 WHERE attempt_id = $1
		 ORDER BY created_at`,
		attemptID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Proof
	for rows.Next() {
		var p domain.Proof
		if err := rows.Scan(&p.ID, &p.AttemptID, &p.ProfileID, &p.FilePath, &p.Type, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	return result, rows.Err()
}
