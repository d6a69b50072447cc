package repository

import (
	"context"
	"errors"

	"fanquest/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MissionRepository struct {
	db *pgxpool.Pool
}

func NewMissionRepository(db *pgxpool.Pool) *MissionRepository {
	return &MissionRepository{db: db}
}

const missionColumns = `id, creator_id, type, title, description, points_base, points_bonus,
	starts_at, ends_at, is_active, created_at`

func scanMission(row pgx.Row) (*domain.Mission, error) {
	var m domain.Mission
	err := row.Scan(&m.ID, &m.CreatorID, &m.Type, &m.Title, &m.Description,
		&m.PointsBase, &m.PointsBonus, &m.StartsAt, &m.EndsAt, &m.IsActive, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MissionRepository) Create(ctx context.Context, m *domain.Mission) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO missions (creator_id, type, title, description, points_base, points_bonus, starts_at, ends_at, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		m.CreatorID, m.Type, m.Title, m.Description, m.PointsBase, m.PointsBonus,
		m.StartsAt, m.EndsAt, m.IsActive,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *MissionRepository) GetByID(ctx context.Context, id int64) (*domain.Mission, error) {
	return scanMission(r.db.QueryRow(ctx,
		`SELECT `+missionColumns+` FROM missions WHERE id = $1`, id))
}

// GetByIDWithTx reads the mission inside the caller's transaction. Settlement
// uses this so the reward is computed from the row as of the settling
// transaction, not a possibly stale join.
func (r *MissionRepository) GetByIDWithTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.Mission, error) {
	return scanMission(tx.QueryRow(ctx,
		`SELECT `+missionColumns+` FROM missions WHERE id = $1`, id))
}

// ListActive returns missions currently open for submissions.
func (r *MissionRepository) ListActive(ctx context.Context) ([]*domain.Mission, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+missionColumns+`
		 FROM missions
		 WHERE is_active = true
		   AND (starts_at IS NULL OR starts_at <= now())
		   AND (ends_at IS NULL OR ends_at >= now())
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMissions(rows)
}

func (r *MissionRepository) ListByCreator(ctx context.Context, creatorID int64) ([]*domain.Mission, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+missionColumns+`
		 FROM missions
		 WHERE creator_id = $1
		 ORDER BY created_at DESC`,
		creatorID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMissions(rows)
}

// SetActive toggles the activation flag, the only mutation allowed once a
// mission has attempts.
func (r *MissionRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE missions SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func collectMissions(rows pgx.Rows) ([]*domain.Mission, error) {
	var result []*domain.Mission
	for rows.Next() {
		var m domain.Mission
		err := rows.Scan(&m.ID, &m.CreatorID, &m.Type, &m.Title, &m.Description,
			&m.PointsBase, &m.PointsBonus, &m.StartsAt, &m.EndsAt, &m.IsActive, &m.CreatedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, &m)
	}
	return result, rows.Err()
}
