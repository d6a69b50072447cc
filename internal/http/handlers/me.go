package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Me returns the calling profile together with its wallet balances.
func (h *Handler) Me(c *gin.Context) {
	profileID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	p, err := h.ProfileRepo.GetByID(ctx, profileID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	wallet, err := h.Settlement.GetBalance(ctx, profileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wallet"})
		return
	}

	resp := gin.H{
		"id":           p.ID,
		"email":        p.Email,
		"role":         p.Role,
		"display_name": p.DisplayName,
		"avatar_url":   p.AvatarURL,
		"created_at":   p.CreatedAt,
		"points":       wallet.PointsBalance,
		"coins":        wallet.CoinsBalance,
	}

	if p.CreatorID != nil {
		if creator, err := h.ProfileRepo.GetCreator(ctx, *p.CreatorID); err == nil {
			resp["creator"] = creator
		}
	}

	c.JSON(http.StatusOK, resp)
}
