package domain

import (
	"testing"
	"time"
)

func TestMissionTotalReward(t *testing.T) {
	cases := []struct {
		name  string
		base  int64
		bonus int64
		want  int64
	}{
		{"base only", 10, 0, 10},
		{"base plus bonus", 10, 5, 15},
		{"negative bonus ignored", 10, -3, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Mission{PointsBase: tc.base, PointsBonus: tc.bonus}
			if got := m.TotalReward(); got != tc.want {
				t.Errorf("TotalReward() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestMissionIsOpen(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	cases := []struct {
		name    string
		mission Mission
		want    bool
	}{
		{"active no window", Mission{IsActive: true}, true},
		{"inactive", Mission{IsActive: false}, false},
		{"inside window", Mission{IsActive: true, StartsAt: &before, EndsAt: &after}, true},
		{"not started", Mission{IsActive: true, StartsAt: &after}, false},
		{"already ended", Mission{IsActive: true, EndsAt: &before}, false},
		{"inactive inside window", Mission{IsActive: false, StartsAt: &before, EndsAt: &after}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.mission.IsOpen(now); got != tc.want {
				t.Errorf("IsOpen() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAttemptStatusIsTerminal(t *testing.T) {
	if AttemptPending.IsTerminal() {
		t.Error("pending must not be terminal")
	}
	if !AttemptApproved.IsTerminal() {
		t.Error("approved must be terminal")
	}
	if !AttemptRejected.IsTerminal() {
		t.Error("rejected must be terminal")
	}
}
