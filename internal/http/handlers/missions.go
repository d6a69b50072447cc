package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fanquest/internal/domain"

	"github.com/gin-gonic/gin"
)

// GetMissions returns every mission currently open for submissions.
func (h *Handler) GetMissions(c *gin.Context) {
	missions, err := h.MissionRepo.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get missions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"missions": missions})
}

// missionView adds the computed reward and open state the frontend renders.
type missionView struct {
	*domain.Mission
	TotalReward int64 `json:"total_reward"`
	Open        bool  `json:"open"`
}

// GetMission returns one mission plus the caller's pending state for it.
func (h *Handler) GetMission(c *gin.Context) {
	missionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mission id"})
		return
	}

	ctx := c.Request.Context()
	m, err := h.MissionRepo.GetByID(ctx, missionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "mission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get mission"})
		return
	}

	resp := gin.H{
		"mission": missionView{
			Mission:     m,
			TotalReward: m.TotalReward(),
			Open:        m.IsOpen(time.Now()),
		},
	}

	if profileID, ok := getUserID(c); ok {
		pending, err := h.AttemptRepo.HasPending(ctx, profileID, missionID)
		if err == nil {
			resp["has_pending_attempt"] = pending
		}
	}

	c.JSON(http.StatusOK, resp)
}
