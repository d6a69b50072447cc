package handlers

import (
	"errors"
	"net/http"

	"fanquest/internal/domain"
	"fanquest/internal/logger"

	"github.com/gin-gonic/gin"
)

// GetWheel returns the segment layout and whether the caller can spin today.
func (h *Handler) GetWheel(c *gin.Context) {
	profileID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	canSpin, err := h.Wheel.CanSpin(ctx, profileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get wheel state"})
		return
	}

	resp := gin.H{
		"segments": h.Wheel.Segments(),
		"can_spin": canSpin,
	}
	if last, err := h.WheelRepo.LastSpin(ctx, profileID); err == nil {
		resp["last_spin"] = last
	}

	c.JSON(http.StatusOK, resp)
}

// SpinWheel performs the daily spin and credits the prize. Second spin of
// the day answers 409.
func (h *Handler) SpinWheel(c *gin.Context) {
	profileID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	spin, err := h.Wheel.Spin(c.Request.Context(), profileID)
	if err != nil {
		if errors.Is(err, domain.ErrSpinNotAvailable) {
			c.JSON(http.StatusConflict, gin.H{"error": "daily spin already used"})
			return
		}
		logger.Error("wheel spin failed", "profile_id", profileID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to spin"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"spin": spin})
}
