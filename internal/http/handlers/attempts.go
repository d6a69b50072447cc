package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"fanquest/internal/domain"

	"github.com/gin-gonic/gin"
)

type submitAttemptRequest struct {
	ProofPath string `json:"proof_path" binding:"omitempty,max=512"`
	ProofType string `json:"proof_type" binding:"omitempty,oneof=screenshot text"`
}

// SubmitAttempt opens a pending attempt for the calling fan. One pending
// attempt per (profile, mission); a second submit answers 409.
func (h *Handler) SubmitAttempt(c *gin.Context) {
	profileID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	missionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mission id"})
		return
	}

	var req submitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	attempt, err := h.Settlement.Submit(c.Request.Context(), profileID, missionID, req.ProofPath, req.ProofType)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "mission not found"})
		case errors.Is(err, domain.ErrMissionClosed):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "mission is not open for submissions"})
		case errors.Is(err, domain.ErrDuplicatePendingAttempt):
			c.JSON(http.StatusConflict, gin.H{"error": "pending attempt already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit attempt"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"attempt": attempt})
}

// GetMyAttempts returns the caller's attempt history, newest first.
func (h *Handler) GetMyAttempts(c *gin.Context) {
	profileID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	attempts, err := h.AttemptRepo.ListByProfile(c.Request.Context(), profileID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get attempts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"attempts": attempts})
}
