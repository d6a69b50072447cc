package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fanquest/internal/domain"
	"fanquest/internal/repository"
	"fanquest/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)
	return db
}

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func newFan(t *testing.T, db *pgxpool.Pool, tag string) *domain.Profile {
	t.Helper()
	p := &domain.Profile{
		Email:        fmt.Sprintf("%s-%d@test.local", tag, time.Now().UnixNano()),
		PasswordHash: "x",
		Role:         domain.RoleFan,
		DisplayName:  tag,
	}
	if err := repository.NewProfileRepository(db).Create(context.Background(), p); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	return p
}

// newCreator makes a profile with an owned creator page.
func newCreator(t *testing.T, db *pgxpool.Pool, tag string) *domain.Profile {
	t.Helper()
	repo := repository.NewProfileRepository(db)
	p := newFan(t, db, tag)
	c := &domain.Creator{OwnerProfileID: p.ID, Name: tag, IsActive: true}
	if err := repo.CreateCreator(context.Background(), c); err != nil {
		t.Fatalf("create creator: %v", err)
	}
	p.Role = domain.RoleCreator
	p.CreatorID = &c.ID
	return p
}

func newMission(t *testing.T, db *pgxpool.Pool, creatorID, base, bonus int64) *domain.Mission {
	t.Helper()
	m := &domain.Mission{
		CreatorID:   creatorID,
		Type:        domain.MissionTypeComment,
		Title:       fmt.Sprintf("mission %d", time.Now().UnixNano()),
		PointsBase:  base,
		PointsBonus: bonus,
		IsActive:    true,
	}
	if err := repository.NewMissionRepository(db).Create(context.Background(), m); err != nil {
		t.Fatalf("create mission: %v", err)
	}
	return m
}

func TestSettlement_ApproveIsExactlyOnce(t *testing.T) {
	db := newTestPool(t)
	ctx := context.Background()

	owner := newCreator(t, db, "owner")
	fan := newFan(t, db, "fan")
	mission := newMission(t, db, *owner.CreatorID, 10, 5)

	svc := service.NewSettlementService(db, nil)

	attempt, err := svc.Submit(ctx, fan.ID, mission.ID, "proofs/shot.png", "screenshot")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if attempt.Status != domain.AttemptPending {
		t.Fatalf("expected pending, got %s", attempt.Status)
	}

	decided, err := svc.Approve(ctx, attempt.ID, owner.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if decided.Status != domain.AttemptApproved {
		t.Fatalf("expected approved, got %s", decided.Status)
	}

	wallet, err := svc.GetBalance(ctx, fan.ID)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if wallet.PointsBalance != 15 {
		t.Fatalf("expected 15 points (base 10 + bonus 5), got %d", wallet.PointsBalance)
	}

	// a retry must not credit again
	again, err := svc.Approve(ctx, attempt.ID, owner.ID)
	if err != nil {
		t.Fatalf("second approve: %v", err)
	}
	if again.Status != domain.AttemptApproved {
		t.Fatalf("expected approved on retry, got %s", again.Status)
	}

	wallet, err = svc.GetBalance(ctx, fan.ID)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if wallet.PointsBalance != 15 {
		t.Fatalf("double credit: balance %d after retry", wallet.PointsBalance)
	}

	// wallet projection must equal the signed ledger sum
	ledgerRepo := repository.NewLedgerRepository(db)
	sum, err := ledgerRepo.SignedSum(ctx, fan.ID, domain.LedgerKindPoints)
	if err != nil {
		t.Fatalf("signed sum: %v", err)
	}
	if sum != wallet.PointsBalance {
		t.Fatalf("wallet %d does not match ledger sum %d", wallet.PointsBalance, sum)
	}

	// and exactly one credit is tied to the attempt
	tx, err := db.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback(ctx)
	has, err := ledgerRepo.HasCreditForRef(ctx, tx, domain.RefMissionAttempt, attempt.ID)
	if err != nil {
		t.Fatalf("has credit: %v", err)
	}
	if !has {
		t.Fatal("no credit entry recorded for the approved attempt")
	}
}

func TestSettlement_SecondPendingSubmitConflicts(t *testing.T) {
	db := newTestPool(t)
	ctx := context.Background()

	owner := newCreator(t, db, "owner")
	fan := newFan(t, db, "fan")
	mission := newMission(t, db, *owner.CreatorID, 10, 0)

	svc := service.NewSettlementService(db, nil)

	if _, err := svc.Submit(ctx, fan.ID, mission.ID, "", ""); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	_, err := svc.Submit(ctx, fan.ID, mission.ID, "", "")
	if !errors.Is(err, domain.ErrDuplicatePendingAttempt) {
		t.Fatalf("expected ErrDuplicatePendingAttempt, got %v", err)
	}
}

func TestSettlement_ResubmitAfterRejection(t *testing.T) {
	db := newTestPool(t)
	ctx := context.Background()

	owner := newCreator(t, db, "owner")
	fan := newFan(t, db, "fan")
	mission := newMission(t, db, *owner.CreatorID, 10, 0)

	svc := service.NewSettlementService(db, nil)

	attempt, err := svc.Submit(ctx, fan.ID, mission.ID, "", "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Reject(ctx, attempt.ID, owner.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	// rejection frees the pending slot
	if _, err := svc.Submit(ctx, fan.ID, mission.ID, "", ""); err != nil {
		t.Fatalf("resubmit after rejection: %v", err)
	}
}

func TestSettlement_RejectHasNoLedgerEffect(t *testing.T) {
	db := newTestPool(t)
	ctx := context.Background()

	owner := newCreator(t, db, "owner")
	fan := newFan(t, db, "fan")
	mission := newMission(t, db, *owner.CreatorID, 10, 5)

	svc := service.NewSettlementService(db, nil)

	attempt, err := svc.Submit(ctx, fan.ID, mission.ID, "", "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	decided, err := svc.Reject(ctx, attempt.ID, owner.ID)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if decided.Status != domain.AttemptRejected {
		t.Fatalf("expected rejected, got %s", decided.Status)
	}

	wallet, err := svc.GetBalance(ctx, fan.ID)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if wallet.PointsBalance != 0 {
		t.Fatalf("rejection credited %d points", wallet.PointsBalance)
	}

	entries, err := svc.ListLedger(ctx, fan.ID, 10, 0)
	if err != nil {
		t.Fatalf("list ledger: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("rejection wrote %d ledger entries", len(entries))
	}

	// approve after reject must stay a no-op
	after, err := svc.Approve(ctx, attempt.ID, owner.ID)
	if err != nil {
		t.Fatalf("approve after reject: %v", err)
	}
	if after.Status != domain.AttemptRejected {
		t.Fatalf("terminal state changed to %s", after.Status)
	}
}

func TestSettlement_ReviewGate(t *testing.T) {
	db := newTestPool(t)
	ctx := context.Background()

	owner := newCreator(t, db, "owner")
	other := newCreator(t, db, "other")
	fan := newFan(t, db, "fan")
	mission := newMission(t, db, *owner.CreatorID, 10, 0)

	svc := service.NewSettlementService(db, nil)

	attempt, err := svc.Submit(ctx, fan.ID, mission.ID, "", "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	// another creator does not own the mission
	if _, err := svc.Approve(ctx, attempt.ID, other.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign creator, got %v", err)
	}

	// plain fans can never review
	if _, err := svc.Approve(ctx, attempt.ID, fan.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for fan, got %v", err)
	}

	// admins review anything
	admin := newFan(t, db, "admin")
	if _, err := db.Exec(ctx, `UPDATE profiles SET role = 'admin' WHERE id = $1`, admin.ID); err != nil {
		t.Fatalf("promote admin: %v", err)
	}
	if _, err := svc.Approve(ctx, attempt.ID, admin.ID); err != nil {
		t.Fatalf("admin approve: %v", err)
	}
}

func TestSettlement_ClosedMissionRejectsSubmit(t *testing.T) {
	db := newTestPool(t)
	ctx := context.Background()

	owner := newCreator(t, db, "owner")
	fan := newFan(t, db, "fan")
	mission := newMission(t, db, *owner.CreatorID, 10, 0)

	if err := repository.NewMissionRepository(db).SetActive(ctx, mission.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	svc := service.NewSettlementService(db, nil)
	if _, err := svc.Submit(ctx, fan.ID, mission.ID, "", ""); !errors.Is(err, domain.ErrMissionClosed) {
		t.Fatalf("expected ErrMissionClosed, got %v", err)
	}
}

func TestWheel_OneSpinPerDay(t *testing.T) {
	db := newTestPool(t)
	ctx := context.Background()

	fan := newFan(t, db, "spinner")
	svc := service.NewWheelService(db, nil)

	canSpin, err := svc.CanSpin(ctx, fan.ID)
	if err != nil {
		t.Fatalf("can spin: %v", err)
	}
	if !canSpin {
		t.Fatal("fresh profile should be able to spin")
	}

	spin, err := svc.Spin(ctx, fan.ID)
	if err != nil {
		t.Fatalf("spin: %v", err)
	}
	if spin.Amount <= 0 {
		t.Fatalf("prize amount %d", spin.Amount)
	}

	if _, err := svc.Spin(ctx, fan.ID); !errors.Is(err, domain.ErrSpinNotAvailable) {
		t.Fatalf("expected ErrSpinNotAvailable, got %v", err)
	}

	// prize landed in the right wallet column and ledger
	sum, err := repository.NewLedgerRepository(db).SignedSum(ctx, fan.ID, spin.Kind)
	if err != nil {
		t.Fatalf("signed sum: %v", err)
	}
	if sum != spin.Amount {
		t.Fatalf("ledger sum %d, prize %d", sum, spin.Amount)
	}

	wallet, err := repository.NewWalletRepository(db).GetOrCreate(ctx, fan.ID)
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}
	var balance int64
	switch spin.Kind {
	case domain.LedgerKindPoints:
		balance = wallet.PointsBalance
	case domain.LedgerKindCoins:
		balance = wallet.CoinsBalance
	}
	if balance != spin.Amount {
		t.Fatalf("wallet %d, prize %d", balance, spin.Amount)
	}
}

func TestLeaderboard_RanksByPoints(t *testing.T) {
	db := newTestPool(t)
	ctx := context.Background()

	owner := newCreator(t, db, "owner")
	high := newFan(t, db, "high")
	low := newFan(t, db, "low")

	svc := service.NewSettlementService(db, nil)

	big := newMission(t, db, *owner.CreatorID, 100, 0)
	small := newMission(t, db, *owner.CreatorID, 10, 0)

	for fanID, m := range map[int64]*domain.Mission{high.ID: big, low.ID: small} {
		attempt, err := svc.Submit(ctx, fanID, m.ID, "", "")
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if _, err := svc.Approve(ctx, attempt.ID, owner.ID); err != nil {
			t.Fatalf("approve: %v", err)
		}
	}

	highRank, highPoints, err := repository.NewProfileRepository(db).GetRank(ctx, high.ID)
	if err != nil {
		t.Fatalf("rank high: %v", err)
	}
	lowRank, lowPoints, err := repository.NewProfileRepository(db).GetRank(ctx, low.ID)
	if err != nil {
		t.Fatalf("rank low: %v", err)
	}

	if highPoints != 100 || lowPoints != 10 {
		t.Fatalf("points high=%d low=%d", highPoints, lowPoints)
	}
	if highRank >= lowRank {
		t.Fatalf("rank high=%d should beat low=%d", highRank, lowRank)
	}
}
