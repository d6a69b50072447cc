package repository

import (
	"context"
	"errors"

	"fanquest/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO profiles (email, password_hash, role, display_name, avatar_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		p.Email, p.PasswordHash, p.Role, p.DisplayName, p.AvatarURL,
	).Scan(&p.ID, &p.CreatedAt)
	if isUniqueViolation(err, "") {
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, role, display_name, avatar_url, creator_id, created_at
		 FROM profiles
		 WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Email, &p.PasswordHash, &p.Role, &p.DisplayName, &p.AvatarURL, &p.CreatorID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, role, display_name, avatar_url, creator_id, created_at
		 FROM profiles
		 WHERE email = $1`,
		email,
	).Scan(&p.ID, &p.Email, &p.PasswordHash, &p.Role, &p.DisplayName, &p.AvatarURL, &p.CreatorID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CreateCreator inserts a creator page and links the owning profile to it.
func (r *ProfileRepository) CreateCreator(ctx context.Context, c *domain.Creator) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO creators (owner_profile_id, name, platform, profile_url)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, is_active, created_at`,
		c.OwnerProfileID, c.Name, c.Platform, c.ProfileURL,
	).Scan(&c.ID, &c.IsActive, &c.CreatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE profiles SET role = 'creator', creator_id = $1 WHERE id = $2`,
		c.ID, c.OwnerProfileID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ProfileRepository) GetCreator(ctx context.Context, id int64) (*domain.Creator, error) {
	var c domain.Creator
	err := r.db.QueryRow(ctx,
		`SELECT id, owner_profile_id, name, platform, profile_url, is_active, created_at
		 FROM creators
		 WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.OwnerProfileID, &c.Name, &c.Platform, &c.ProfileURL, &c.IsActive, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// LeaderboardRow - one line of the points leaderboard
type LeaderboardRow struct {
	ProfileID   int64  `json:"profile_id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Points      int64  `json:"points"`
	Rank        int    `json:"rank"`
}

// GetLeaderboard returns the top profiles by points balance.
func (r *ProfileRepository) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.display_name, p.avatar_url, COALESCE(w.points_balance, 0) AS points
		 FROM profiles p
		 LEFT JOIN wallets w ON w.profile_id = p.id
		 WHERE p.role = 'fan'
		 ORDER BY points DESC, p.id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []LeaderboardRow
	rank := 0
	for rows.Next() {
		var row LeaderboardRow
		if err := rows.Scan(&row.ProfileID, &row.DisplayName, &row.AvatarURL, &row.Points); err != nil {
			return nil, err
		}
		rank++
		row.Rank = rank
		result = append(result, row)
	}
	return result, rows.Err()
}

// GetRank returns the profile's position among fans by points balance.
func (r *ProfileRepository) GetRank(ctx context.Context, profileID int64) (int, int64, error) {
	var rank int
	var points int64
	err := r.db.QueryRow(ctx,
		`SELECT ranked.rank, ranked.points FROM (
		     SELECT p.id,
		            COALESCE(w.points_balance, 0) AS points,
		            RANK() OVER (ORDER BY COALESCE(w.points_balance, 0) DESC) AS rank
		     FROM profiles p
		     LEFT JOIN wallets w ON w.profile_id = p.id
		     WHERE p.role = 'fan'
		 ) ranked
		 WHERE ranked.id = $1`,
		profileID,
	).Scan(&rank, &points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, domain.ErrNotFound
		}
		return 0, 0, err
	}
	return rank, points, nil
}
