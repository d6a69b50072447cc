package handlers

import (
	"fanquest/internal/repository"
	"fanquest/internal/service"
	"fanquest/internal/ws"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HandlerConfig holds handler tunables
type HandlerConfig struct {
	LeaderboardSize int
}

type Handler struct {
	DB          *pgxpool.Pool
	ProfileRepo *repository.ProfileRepository
	MissionRepo *repository.MissionRepository
	AttemptRepo *repository.AttemptRepository
	ProofRepo   *repository.ProofRepository
	LedgerRepo  *repository.LedgerRepository
	WheelRepo   *repository.WheelRepository
	Settlement  *service.SettlementService
	Wheel       *service.WheelService
	Hub         *ws.Hub

	leaderboardSize int
}

func NewHandler(db *pgxpool.Pool, hub *ws.Hub) *Handler {
	return NewHandlerWithConfig(db, hub, HandlerConfig{LeaderboardSize: 20})
}

// NewHandlerWithConfig creates a handler with custom configuration
func NewHandlerWithConfig(db *pgxpool.Pool, hub *ws.Hub, cfg HandlerConfig) *Handler {
	if cfg.LeaderboardSize <= 0 {
		cfg.LeaderboardSize = 20
	}
	return &Handler{
		DB:              db,
		ProfileRepo:     repository.NewProfileRepository(db),
		MissionRepo:     repository.NewMissionRepository(db),
		AttemptRepo:     repository.NewAttemptRepository(db),
		ProofRepo:       repository.NewProofRepository(db),
		LedgerRepo:      repository.NewLedgerRepository(db),
		WheelRepo:       repository.NewWheelRepository(db),
		Settlement:      service.NewSettlementService(db, hub),
		Wheel:           service.NewWheelService(db, hub),
		Hub:             hub,
		leaderboardSize: cfg.LeaderboardSize,
	}
}

// getUserID pulls the profile id set by the JWT middleware.
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
