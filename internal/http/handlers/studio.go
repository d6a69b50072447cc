package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fanquest/internal/domain"
	"fanquest/internal/logger"

	"github.com/gin-gonic/gin"
)

// reviewerCreatorID resolves the creator page the caller operates. Admins may
// act on another creator's behalf via ?creator_id=.
func (h *Handler) reviewerCreatorID(c *gin.Context) (int64, *domain.Profile, bool) {
	profileID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, nil, false
	}

	p, err := h.ProfileRepo.GetByID(c.Request.Context(), profileID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile not found"})
		return 0, nil, false
	}

	if p.Role == domain.RoleAdmin {
		if v := c.Query("creator_id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid creator_id"})
				return 0, nil, false
			}
			return id, p, true
		}
		if p.CreatorID == nil {
			// admin with no page of their own; listing endpoints treat
			// creator 0 as empty, writes require an explicit creator_id
			return 0, p, true
		}
	}

	if p.CreatorID == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "no creator page"})
		return 0, nil, false
	}
	return *p.CreatorID, p, true
}

type createMissionRequest struct {
	Type        string     `json:"type" binding:"required,oneof=comment quiz raid screenshot"`
	Title       string     `json:"title" binding:"required,min=3,max=128"`
	Description string     `json:"description" binding:"omitempty,max=2048"`
	PointsBase  int64      `json:"points_base" binding:"required,gt=0"`
	PointsBonus int64      `json:"points_bonus" binding:"omitempty,gte=0"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

// CreateMission publishes a new mission on the caller's creator page.
func (h *Handler) CreateMission(c *gin.Context) {
	creatorID, _, ok := h.reviewerCreatorID(c)
	if !ok {
		return
	}
	if creatorID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "creator_id required"})
		return
	}

	var req createMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.StartsAt != nil && req.EndsAt != nil && !req.EndsAt.After(*req.StartsAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ends_at must be after starts_at"})
		return
	}

	m := &domain.Mission{
		CreatorID:   creatorID,
		Type:        domain.MissionType(req.Type),
		Title:       req.Title,
		Description: req.Description,
		PointsBase:  req.PointsBase,
		PointsBonus: req.PointsBonus,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		IsActive:    true,
	}

	if err := h.MissionRepo.Create(c.Request.Context(), m); err != nil {
		logger.Error("mission create failed", "creator_id", creatorID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create mission"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"mission": m})
}

// GetStudioMissions lists every mission on the caller's creator page,
// inactive ones included.
func (h *Handler) GetStudioMissions(c *gin.Context) {
	creatorID, _, ok := h.reviewerCreatorID(c)
	if !ok {
		return
	}

	missions, err := h.MissionRepo.ListByCreator(c.Request.Context(), creatorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get missions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"missions": missions})
}

type setMissionActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SetMissionActive toggles the only mutable mission field.
func (h *Handler) SetMissionActive(c *gin.Context) {
	creatorID, p, ok := h.reviewerCreatorID(c)
	if !ok {
		return
	}

	missionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mission id"})
		return
	}

	var req setMissionActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	m, err := h.MissionRepo.GetByID(ctx, missionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "mission not found"})
		return
	}
	if p.Role != domain.RoleAdmin && m.CreatorID != creatorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your mission"})
		return
	}

	if err := h.MissionRepo.SetActive(ctx, missionID, *req.IsActive); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update mission"})
		return
	}
	m.IsActive = *req.IsActive

	c.JSON(http.StatusOK, gin.H{"mission": m})
}

// GetReviewQueue returns the pending attempts against the caller's missions,
// oldest first, with submitter and proof context.
func (h *Handler) GetReviewQueue(c *gin.Context) {
	creatorID, _, ok := h.reviewerCreatorID(c)
	if !ok {
		return
	}

	queue, err := h.AttemptRepo.ListPendingByCreator(c.Request.Context(), creatorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get review queue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"queue": queue})
}

// GetAttemptProofs returns the evidence attached to an attempt under review.
func (h *Handler) GetAttemptProofs(c *gin.Context) {
	creatorID, p, ok := h.reviewerCreatorID(c)
	if !ok {
		return
	}

	attemptID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attempt id"})
		return
	}

	ctx := c.Request.Context()
	attempt, err := h.AttemptRepo.GetByID(ctx, attemptID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "attempt not found"})
		return
	}
	mission, err := h.MissionRepo.GetByID(ctx, attempt.MissionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load mission"})
		return
	}
	if p.Role != domain.RoleAdmin && mission.CreatorID != creatorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your mission"})
		return
	}

	proofs, err := h.ProofRepo.ListByAttempt(ctx, attemptID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get proofs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"proofs": proofs})
}

// ApproveAttempt settles an attempt as approved and credits the reward.
// Repeating the call on an already decided attempt is a no-op success.
func (h *Handler) ApproveAttempt(c *gin.Context) {
	h.decideAttempt(c, true)
}

// RejectAttempt settles an attempt as rejected. No ledger activity.
func (h *Handler) RejectAttempt(c *gin.Context) {
	h.decideAttempt(c, false)
}

func (h *Handler) decideAttempt(c *gin.Context, approve bool) {
	reviewerID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	attemptID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attempt id"})
		return
	}

	ctx := c.Request.Context()
	var attempt *domain.Attempt
	if approve {
		attempt, err = h.Settlement.Approve(ctx, attemptID, reviewerID)
	} else {
		attempt, err = h.Settlement.Reject(ctx, attemptID, reviewerID)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "attempt not found"})
		case errors.Is(err, domain.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to review this attempt"})
		default:
			logger.Error("attempt decision failed",
				"attempt_id", attemptID, "reviewer_id", reviewerID, "approve", approve, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decide attempt"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"attempt": attempt})
}
