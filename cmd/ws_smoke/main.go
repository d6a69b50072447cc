package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"fanquest/internal/db"
	"fanquest/internal/domain"
	"fanquest/internal/repository"
	"fanquest/internal/service"
)

// Connects a fan to a running server's /ws endpoint, drives a submit and
// approve through the database, and expects the mission_approved frame.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	profiles := repository.NewProfileRepository(pool)
	missions := repository.NewMissionRepository(pool)
	ctx := context.Background()

	fan := ensure(ctx, profiles, "ws-smoke-fan@example.com", "Smoke Fan")
	owner := ensure(ctx, profiles, "ws-smoke-creator@example.com", "Smoke Creator")

	if owner.CreatorID == nil {
		creator := &domain.Creator{OwnerProfileID: owner.ID, Name: "Smoke Creator", IsActive: true}
		if err := profiles.CreateCreator(ctx, creator); err != nil {
			log.Fatalf("create creator: %v", err)
		}
		owner.CreatorID = &creator.ID
	}

	mission := &domain.Mission{
		CreatorID:  *owner.CreatorID,
		Type:       domain.MissionTypeComment,
		Title:      fmt.Sprintf("ws smoke %d", time.Now().Unix()),
		PointsBase: 10,
		IsActive:   true,
	}
	if err := missions.Create(ctx, mission); err != nil {
		log.Fatalf("create mission: %v", err)
	}

	service.InitJWT()
	token, err := service.GenerateJWT(fan.ID, fan.Role)
	if err != nil {
		log.Fatalf("gen token: %v", err)
	}

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	wsURL := fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// the hub lives in the server process, so the approve must go through
	// the server's studio endpoint; we only open the attempt here and
	// watch the socket
	settlement := service.NewSettlementService(pool, nil)
	attempt, err := settlement.Submit(ctx, fan.ID, mission.ID, "", "")
	if err != nil {
		log.Fatalf("submit: %v", err)
	}
	log.Printf("attempt %d is pending; approve it via the studio API to see the frame arrive", attempt.ID)
	log.Printf("POST /api/v1/studio/attempts/%d/approve", attempt.ID)

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		log.Fatalf("read: %v", err)
	}

	var frame map[string]any
	_ = json.Unmarshal(msg, &frame)
	log.Printf("got frame: %s", string(msg))
	if frame["type"] == "mission_approved" {
		log.Println("smoke test finished")
	} else {
		log.Println("unexpected frame type")
	}
}

func ensure(ctx context.Context, repo *repository.ProfileRepository, email, name string) *domain.Profile {
	p, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return p
	}
	hash, err := service.HashPassword("smoke-password")
	if err != nil {
		log.Fatalf("hash: %v", err)
	}
	p = &domain.Profile{Email: email, PasswordHash: hash, Role: domain.RoleFan, DisplayName: name}
	if err := repo.Create(ctx, p); err != nil {
		log.Fatalf("create profile: %v", err)
	}
	return p
}
