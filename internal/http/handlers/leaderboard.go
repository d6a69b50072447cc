package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetLeaderboard returns the top fans by points balance.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	top, err := h.ProfileRepo.GetLeaderboard(c.Request.Context(), h.leaderboardSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": top})
}

// GetMyRank returns the caller's position among fans.
func (h *Handler) GetMyRank(c *gin.Context) {
	profileID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rank, points, err := h.ProfileRepo.GetRank(c.Request.Context(), profileID)
	if err != nil {
		// profiles without wallet activity simply have no rank yet
		c.JSON(http.StatusOK, gin.H{
			"rank":   0,
			"points": 0,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rank":   rank,
		"points": points,
	})
}
