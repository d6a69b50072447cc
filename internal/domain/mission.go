package domain

import "time"

// MissionType - kind of task a fan performs
type MissionType string

const (
	MissionTypeComment    MissionType = "comment"
	MissionTypeQuiz       MissionType = "quiz"
	MissionTypeRaid       MissionType = "raid"
	MissionTypeScreenshot MissionType = "screenshot"
)

// Mission - a task published by a creator with a base reward and an optional
// bonus. Immutable once referenced by attempts except for the active flag.
type Mission struct {
	ID          int64       `db:"id" json:"id"`
	CreatorID   int64       `db:"creator_id" json:"creator_id"`
	Type        MissionType `db:"type" json:"type"`
	Title       string      `db:"title" json:"title"`
	Description string      `db:"description" json:"description,omitempty"`
	PointsBase  int64       `db:"points_base" json:"points_base"`
	PointsBonus int64       `db:"points_bonus" json:"points_bonus"`
	StartsAt    *time.Time  `db:"starts_at" json:"starts_at,omitempty"`
	EndsAt      *time.Time  `db:"ends_at" json:"ends_at,omitempty"`
	IsActive    bool        `db:"is_active" json:"is_active"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
}

// TotalReward is the single reward computation used everywhere. Bonus
// defaults to zero when the creator left it empty.
func (m *Mission) TotalReward() int64 {
	bonus := m.PointsBonus
	if bonus < 0 {
		bonus = 0
	}
	return m.PointsBase + bonus
}

// IsOpen reports whether the mission accepts submissions at t.
func (m *Mission) IsOpen(t time.Time) bool {
	if !m.IsActive {
		return false
	}
	if m.StartsAt != nil && t.Before(*m.StartsAt) {
		return false
	}
	if m.EndsAt != nil && t.After(*m.EndsAt) {
		return false
	}
	return true
}
