package service

import (
	"context"

	"fanquest/internal/domain"
	"fanquest/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReviewGate decides who may settle an attempt: the creator owning the
// attempt's mission, or an admin. Pure check, no side effects, and
// re-evaluated on every call - ownership can change out of band, so nothing
// here is cached.
type ReviewGate struct {
	profiles *repository.ProfileRepository
	missions *repository.MissionRepository
}

func NewReviewGate(db *pgxpool.Pool) *ReviewGate {
	return &ReviewGate{
		profiles: repository.NewProfileRepository(db),
		missions: repository.NewMissionRepository(db),
	}
}

func (g *ReviewGate) Authorize(ctx context.Context, reviewerID int64, attempt *domain.Attempt) error {
	reviewer, err := g.profiles.GetByID(ctx, reviewerID)
	if err != nil {
		return err
	}
	if !reviewer.IsReviewer() {
		return domain.ErrForbidden
	}
	if reviewer.Role == domain.RoleAdmin {
		return nil
	}

	mission, err := g.missions.GetByID(ctx, attempt.MissionID)
	if err != nil {
		return err
	}
	if reviewer.CreatorID != nil && *reviewer.CreatorID == mission.CreatorID {
		return nil
	}
	return domain.ErrForbidden
}
