package main

import (
	"context"
	"log"
	"os"

	"fanquest/internal/db"
	"fanquest/internal/domain"
	"fanquest/internal/repository"
	"fanquest/internal/service"
)

// Seeds a demo creator with two open missions and a fan profile, then prints
// tokens for both so the API can be exercised by hand.
func main() {
	// expects DATABASE_URL and JWT_SECRET env vars
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	profiles := repository.NewProfileRepository(pool)
	missions := repository.NewMissionRepository(pool)
	ctx := context.Background()

	fan := ensureProfile(ctx, profiles, "fan@example.com", "Demo Fan")
	owner := ensureProfile(ctx, profiles, "creator@example.com", "Demo Creator")

	if owner.CreatorID == nil {
		creator := &domain.Creator{
			OwnerProfileID: owner.ID,
			Name:           "Demo Creator",
			Platform:       "tiktok",
			IsActive:       true,
		}
		if err := profiles.CreateCreator(ctx, creator); err != nil {
			log.Fatalf("create creator failed: %v", err)
		}
		owner.CreatorID = &creator.ID
		owner.Role = domain.RoleCreator
		log.Printf("creator page created id=%d\n", creator.ID)

		seed := []*domain.Mission{
			{
				CreatorID:  creator.ID,
				Type:       domain.MissionTypeComment,
				Title:      "Yeni videoya yorum yap",
				PointsBase: 10,
				IsActive:   true,
			},
			{
				CreatorID:   creator.ID,
				Type:        domain.MissionTypeScreenshot,
				Title:       "Canli yayin ekran goruntusu",
				PointsBase:  10,
				PointsBonus: 5,
				IsActive:    true,
			},
		}
		for _, m := range seed {
			if err := missions.Create(ctx, m); err != nil {
				log.Fatalf("create mission failed: %v", err)
			}
			log.Printf("mission created id=%d title=%q reward=%d\n", m.ID, m.Title, m.TotalReward())
		}
	}

	service.InitJWT()
	for _, p := range []*domain.Profile{fan, owner} {
		token, err := service.GenerateJWT(p.ID, p.Role)
		if err != nil {
			log.Fatalf("failed to generate token: %v", err)
		}
		log.Printf("%s token=%s\n", p.Role, token)
	}
}

func ensureProfile(ctx context.Context, repo *repository.ProfileRepository, email, name string) *domain.Profile {
	existing, err := repo.GetByEmail(ctx, email)
	if err == nil {
		log.Printf("profile already exists id=%d email=%s\n", existing.ID, email)
		return existing
	}

	hash, err := service.HashPassword("demo-password")
	if err != nil {
		log.Fatalf("hash password failed: %v", err)
	}
	p := &domain.Profile{
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleFan,
		DisplayName:  name,
	}
	if err := repo.Create(ctx, p); err != nil {
		log.Fatalf("create profile failed: %v", err)
	}
	log.Printf("profile created id=%d email=%s\n", p.ID, email)
	return p
}
