package domain

import "time"

// AttemptStatus - lifecycle state of a mission attempt
type AttemptStatus string

const (
	AttemptPending  AttemptStatus = "pending"
	AttemptApproved AttemptStatus = "approved"
	AttemptRejected AttemptStatus = "rejected"
)

// IsTerminal reports whether no further transition is allowed.
func (s AttemptStatus) IsTerminal() bool {
	return s == AttemptApproved || s == AttemptRejected
}

// Attempt - one profile's submission against one mission. At most one
// pending attempt may exist per (profile, mission) pair; the partial unique
// index in migrations is the backstop for that invariant.
type Attempt struct {
	ID                int64         `db:"id" json:"id"`
	MissionID         int64         `db:"mission_id" json:"mission_id"`
	ProfileID         int64         `db:"profile_id" json:"profile_id"`
	Status            AttemptStatus `db:"status" json:"status"`
	SubmittedAt       time.Time     `db:"submitted_at" json:"submitted_at"`
	DecidedAt         *time.Time    `db:"decided_at" json:"decided_at,omitempty"`
	ReviewerProfileID *int64        `db:"reviewer_profile_id" json:"reviewer_profile_id,omitempty"`
}

// AttemptWithDetails - attempt joined with mission and submitter data for
// the studio review queue.
type AttemptWithDetails struct {
	Attempt
	MissionTitle       string `json:"mission_title"`
	MissionPointsBase  int64  `json:"mission_points_base"`
	MissionPointsBonus int64  `json:"mission_points_bonus"`
	FanDisplayName     string `json:"fan_display_name"`
	ProofPath          string `json:"proof_path,omitempty"`
}

// Proof - opaque reference to uploaded evidence. The service stores and
// returns the path, never reads the file.
type Proof struct {
	ID        int64     `db:"id" json:"id"`
	AttemptID int64     `db:"attempt_id" json:"attempt_id"`
	ProfileID int64     `db:"profile_id" json:"profile_id"`
	FilePath  string    `db:"file_path" json:"file_path"`
	Type      string    `db:"type" json:"type"` // 'screenshot' or 'text'
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
