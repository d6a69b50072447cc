package handlers

import (
	"errors"
	"net/http"
	"strings"

	"fanquest/internal/domain"
	"fanquest/internal/logger"
	"fanquest/internal/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required,min=2,max=64"`
}

// Register creates a fan profile and returns a token.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	hash, err := service.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}

	p := &domain.Profile{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         domain.RoleFan,
		DisplayName:  req.DisplayName,
	}

	ctx := c.Request.Context()
	if err := h.ProfileRepo.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		logger.Error("register failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}

	token, err := service.GenerateJWT(p.ID, p.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":   token,
		"profile": p,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns a fresh token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	p, err := h.ProfileRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		// same answer for unknown email and bad password
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if !service.CheckPassword(p.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := service.GenerateJWT(p.ID, p.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"profile": p,
	})
}

type registerCreatorRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=64"`
	Platform   string `json:"platform" binding:"omitempty,oneof=tiktok instagram youtube"`
	ProfileURL string `json:"profile_url" binding:"omitempty,url"`
}

// RegisterCreator upgrades the calling profile to a creator and opens its
// creator page. The new role only takes effect in tokens issued after this,
// so the response carries a fresh one.
func (h *Handler) RegisterCreator(c *gin.Context) {
	profileID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req registerCreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	p, err := h.ProfileRepo.GetByID(ctx, profileID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile not found"})
		return
	}
	if p.CreatorID != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "already a creator"})
		return
	}

	creator := &domain.Creator{
		OwnerProfileID: profileID,
		Name:           req.Name,
		Platform:       req.Platform,
		ProfileURL:     req.ProfileURL,
		IsActive:       true,
	}
	if err := h.ProfileRepo.CreateCreator(ctx, creator); err != nil {
		logger.Error("creator registration failed", "profile_id", profileID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register creator"})
		return
	}

	token, err := service.GenerateJWT(profileID, domain.RoleCreator)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":   token,
		"creator": creator,
	})
}
