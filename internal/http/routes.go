package http

import (
	"time"

	"fanquest/internal/config"
	"fanquest/internal/http/handlers"
	"fanquest/internal/http/middleware"
	"fanquest/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, hub *ws.Hub, version string) {
	RegisterRoutesWithConfig(r, db, hub, version, nil)
}

func RegisterRoutesWithConfig(r *gin.Engine, db *pgxpool.Pool, hub *ws.Hub, version string, cfg *config.Config) {
	var h *handlers.Handler
	if cfg != nil {
		h = handlers.NewHandlerWithConfig(db, hub, handlers.HandlerConfig{
			LeaderboardSize: cfg.LeaderboardSize,
		})
	} else {
		h = handlers.NewHandler(db, hub)
	}
	healthHandler := handlers.NewHealthHandler(db, version)

	// limits come from config, with safe defaults
	apiRateLimit, apiRateWindow := 60, time.Minute
	authRateLimit, authRateWindow := 5, time.Minute
	spinRateLimit, spinRateWindow := 5, time.Minute
	if cfg != nil {
		apiRateLimit = cfg.APIRateLimit
		apiRateWindow = time.Duration(cfg.APIRateWindow) * time.Second
		authRateLimit = cfg.AuthRateLimit
		authRateWindow = time.Duration(cfg.AuthRateWindow) * time.Second
		spinRateLimit = cfg.SpinRateLimit
		spinRateWindow = time.Duration(cfg.SpinRateWindow) * time.Second
	}

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))

	// Auth
	authRL := middleware.RedisRateLimit(authRateLimit, authRateWindow)
	v1.POST("/auth/register", authRL, h.Register)
	v1.POST("/auth/login", authRL, h.Login)
	v1.POST("/auth/creator", middleware.JWT(), h.RegisterCreator)

	// Profile and wallet
	v1.GET("/me", middleware.JWT(), h.Me)
	v1.GET("/me/wallet", middleware.JWT(), h.GetWallet)
	v1.GET("/me/ledger", middleware.JWT(), h.GetLedger)
	v1.GET("/me/attempts", middleware.JWT(), h.GetMyAttempts)

	// Mission catalog
	v1.GET("/missions", h.GetMissions)
	v1.GET("/missions/:id", middleware.JWT(), h.GetMission)
	v1.POST("/missions/:id/attempts", middleware.JWT(), h.SubmitAttempt)

	// Daily wheel (per-user limiter on the spin itself)
	spinRL := middleware.UserRateLimit("spin", spinRateLimit, spinRateWindow)
	v1.GET("/wheel", middleware.JWT(), h.GetWheel)
	v1.POST("/wheel/spin", middleware.JWT(), spinRL, h.SpinWheel)

	// Leaderboard
	v1.GET("/leaderboard", h.GetLeaderboard)
	v1.GET("/leaderboard/rank", middleware.JWT(), h.GetMyRank)

	// Studio surface for creators and admins
	studio := v1.Group("/studio")
	studio.Use(middleware.JWT(), middleware.RequireReviewer())
	{
		studio.POST("/missions", h.CreateMission)
		studio.GET("/missions", h.GetStudioMissions)
		studio.PATCH("/missions/:id/active", h.SetMissionActive)
		studio.GET("/queue", h.GetReviewQueue)
		studio.GET("/attempts/:id/proofs", h.GetAttemptProofs)
		studio.POST("/attempts/:id/approve", h.ApproveAttempt)
		studio.POST("/attempts/:id/reject", h.RejectAttempt)
	}

	// WebSocket for settlement and wheel notifications
	r.GET("/ws", h.WS)
}
