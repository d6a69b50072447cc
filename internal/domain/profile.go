package domain

import "time"

// Role - access level of a profile
type Role string

const (
	RoleFan     Role = "fan"
	RoleCreator Role = "creator"
	RoleAdmin   Role = "admin"
)

type Profile struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	DisplayName  string    `db:"display_name" json:"display_name"`
	AvatarURL    string    `db:"avatar_url" json:"avatar_url,omitempty"`
	CreatorID    *int64    `db:"creator_id" json:"creator_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// IsReviewer reports whether the profile may enter the studio review flow at
// all. Per-attempt ownership is checked by the review gate.
func (p *Profile) IsReviewer() bool {
	return p.Role == RoleCreator || p.Role == RoleAdmin
}

// Creator - a published creator page that owns missions. A creator profile
// points at exactly one of these via Profile.CreatorID.
type Creator struct {
	ID             int64     `db:"id" json:"id"`
	OwnerProfileID int64     `db:"owner_profile_id" json:"owner_profile_id"`
	Name           string    `db:"name" json:"name"`
	Platform       string    `db:"platform" json:"platform,omitempty"` // 'tiktok', 'instagram', 'youtube'
	ProfileURL     string    `db:"profile_url" json:"profile_url,omitempty"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
