package domain

import "errors"

// Error taxonomy for the settlement core. Handlers map these onto HTTP
// statuses; everything else propagates as a 500.
var (
	// ErrNotFound - unknown attempt, mission, profile or wallet.
	ErrNotFound = errors.New("not found")

	// ErrDuplicatePendingAttempt - the fan already has an open attempt for
	// this mission.
	ErrDuplicatePendingAttempt = errors.New("pending attempt already exists")

	// ErrInvalidTransition - the attempt was already decided.
	ErrInvalidTransition = errors.New("attempt is not pending")

	// ErrDuplicateReward - a credit ledger entry already exists for this
	// (ref_type, ref_id). Absorbed inside the settlement service, never
	// returned to callers.
	ErrDuplicateReward = errors.New("reward already granted")

	// ErrForbidden - the reviewer does not own the mission and is not admin.
	ErrForbidden = errors.New("forbidden")

	// ErrMissionClosed - mission inactive or outside its validity window.
	ErrMissionClosed = errors.New("mission is not open for submissions")

	// ErrSpinNotAvailable - the profile already spun the wheel today.
	ErrSpinNotAvailable = errors.New("daily spin already used")

	// ErrDuplicateEmail - registration with an email that already exists.
	ErrDuplicateEmail = errors.New("email already registered")
)
