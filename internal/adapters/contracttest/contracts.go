// Package contracttest holds storage-contract suites shared by every adapter.
// Each backend's package runs these against its own repository construction,
// so memory, postgres, and redis implementations stay behaviorally aligned.
package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/petorang/superpet-api/internal/domain"
	gamesaverepoport "github.com/petorang/superpet-api/internal/ports/out/gamesaverepo"
	gemledgerport "github.com/petorang/superpet-api/internal/ports/out/gemledger"
	memberrepoport "github.com/petorang/superpet-api/internal/ports/out/memberrepo"
	roomkeyrepoport "github.com/petorang/superpet-api/internal/ports/out/roomkeyrepo"
	roomrepoport "github.com/petorang/superpet-api/internal/ports/out/roomrepo"
)

type CleanupFunc = func()

type GemLedgerFactory func(t *testing.T) (gemledgerport.Repository, CleanupFunc)
type GameSaveRepoFactory func(t *testing.T) (gamesaverepoport.Repository, CleanupFunc)
type RoomKeyRepoFactory func(t *testing.T) (roomrepoport.Repository, roomkeyrepoport.Repository, CleanupFunc)
type MemberRepoFactory func(t *testing.T) (memberrepoport.Repository, CleanupFunc)

func RunGemLedger(t *testing.T, newRepo GemLedgerFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	a := domain.MemberID(101)
	b := domain.MemberID(102)

	// No records means balance 0, not an error.
	balance, err := repo.SumBalance(ctx, a)
	if err != nil {
		t.Fatalf("SumBalance empty: %v", err)
	}
	if balance != 0 {
		t.Fatalf("empty balance=%d, want 0", balance)
	}

	now := time.Unix(2000, 0).UTC()
	memo := "welcome"
	appends := []gemledgerport.Record{
		{MemberID: a, Type: gemledgerport.TypeIssue, Amount: 100, Source: "reward", Memo: &memo, CreatedAt: now},
		{MemberID: b, Type: gemledgerport.TypeIssue, Amount: 7, Source: "event", CreatedAt: now},
		{MemberID: a, Type: gemledgerport.TypeUse, Amount: -30, Source: "gacha", CreatedAt: now.Add(time.Second)},
		{MemberID: a, Type: gemledgerport.TypeIssue, Amount: 5, Source: "event", CreatedAt: now.Add(2 * time.Second)},
	}
	for i, rec := range appends {
		if err := repo.Append(ctx, rec); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	balance, err = repo.SumBalance(ctx, a)
	if err != nil {
		t.Fatalf("SumBalance a: %v", err)
	}
	if balance != 75 {
		t.Fatalf("balance a=%d, want 75", balance)
	}
	balance, err = repo.SumBalance(ctx, b)
	if err != nil {
		t.Fatalf("SumBalance b: %v", err)
	}
	if balance != 7 {
		t.Fatalf("balance b=%d, want 7", balance)
	}
}

func RunGameSaveRepo(t *testing.T, newRepo GameSaveRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	m := domain.MemberID(201)

	if _, err := repo.Get(ctx, m); !errors.Is(err, gamesaverepoport.ErrNotFound) {
		t.Fatalf("Get missing: err=%v, want ErrNotFound", err)
	}

	// First rotation creates the save.
	if err := repo.RotateSession(ctx, m, "sess-1"); err != nil {
		t.Fatalf("RotateSession: %v", err)
	}
	save, err := repo.Get(ctx, m)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if save.SessionID != "sess-1" || len(save.Data) != 0 {
		t.Fatalf("save=%+v, want session sess-1 and no data", save)
	}

	// Payload write leaves the session id alone.
	if err := repo.PutData(ctx, m, []byte(`{"level":3}`)); err != nil {
		t.Fatalf("PutData: %v", err)
	}
	save, err = repo.Get(ctx, m)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if save.SessionID != "sess-1" || string(save.Data) != `{"level":3}` {
		t.Fatalf("save=%+v", save)
	}

	// Rotation replaces only the session id; the old id is gone.
	if err := repo.RotateSession(ctx, m, "sess-2"); err != nil {
		t.Fatalf("RotateSession: %v", err)
	}
	save, err = repo.Get(ctx, m)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if save.SessionID != "sess-2" {
		t.Fatalf("session=%q, want sess-2", save.SessionID)
	}
	if string(save.Data) != `{"level":3}` {
		t.Fatalf("data=%s, want preserved payload", save.Data)
	}

	// PutData alone also creates a save (no session yet).
	other := domain.MemberID(202)
	if err := repo.PutData(ctx, other, []byte(`{}`)); err != nil {
		t.Fatalf("PutData other: %v", err)
	}
	save, err = repo.Get(ctx, other)
	if err != nil {
		t.Fatalf("Get other: %v", err)
	}
	if save.SessionID != "" || string(save.Data) != `{}` {
		t.Fatalf("save other=%+v", save)
	}
}

func RunRoomKeyRepo(t *testing.T, newRepo RoomKeyRepoFactory) {
	t.Helper()
	ctx := context.Background()

	rooms, keys, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	owner := domain.MemberID(301)
	roomID, err := rooms.Create(ctx, roomrepoport.Room{OwnerID: owner, Name: "mungchi's room"})
	if err != nil {
		t.Fatalf("Create room: %v", err)
	}
	got, err := rooms.Get(ctx, roomID)
	if err != nil {
		t.Fatalf("Get room: %v", err)
	}
	if got.OwnerID != owner || got.Name != "mungchi's room" {
		t.Fatalf("room=%+v", got)
	}

	now := time.Unix(3000, 0).UTC()
	keyID, err := keys.Create(ctx, roomID, "ABCD1234", now)
	if err != nil {
		t.Fatalf("Create key: %v", err)
	}

	key, err := keys.GetWithOwner(ctx, keyID)
	if err != nil {
		t.Fatalf("GetWithOwner: %v", err)
	}
	if key.RoomID != roomID || key.RoomOwnerID != owner || key.Code != "ABCD1234" {
		t.Fatalf("key=%+v", key)
	}

	if err := keys.Delete(ctx, keyID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := keys.GetWithOwner(ctx, keyID); !errors.Is(err, roomkeyrepoport.ErrNotFound) {
		t.Fatalf("GetWithOwner after delete: err=%v, want ErrNotFound", err)
	}
	if err := keys.Delete(ctx, keyID); !errors.Is(err, roomkeyrepoport.ErrNotFound) {
		t.Fatalf("Delete twice: err=%v, want ErrNotFound", err)
	}

	if _, err := keys.GetWithOwner(ctx, domain.RoomKeyID(99999)); !errors.Is(err, roomkeyrepoport.ErrNotFound) {
		t.Fatalf("GetWithOwner missing: err=%v, want ErrNotFound", err)
	}
}

func RunMemberRepo(t *testing.T, newRepo MemberRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(4000, 0).UTC()
	name := "Alice"
	id, err := repo.Create(ctx, memberrepoport.Member{
		Email:        "alice@example.com",
		Name:         &name,
		PasswordHash: "hash-1",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected assigned id")
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != "alice@example.com" || got.Name == nil || *got.Name != "Alice" {
		t.Fatalf("member=%+v", got)
	}

	got, err = repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != id {
		t.Fatalf("GetByEmail id=%d, want %d", got.ID, id)
	}

	// Email uniqueness.
	if _, err := repo.Create(ctx, memberrepoport.Member{
		Email:        "alice@example.com",
		PasswordHash: "hash-2",
		CreatedAt:    now,
		UpdatedAt:    now,
	}); !errors.Is(err, memberrepoport.ErrEmailTaken) {
		t.Fatalf("Create duplicate: err=%v, want ErrEmailTaken", err)
	}

	// Update replaces mutable fields.
	got.Name = nil
	got.PasswordHash = "hash-3"
	got.UpdatedAt = now.Add(time.Minute)
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if got.Name != nil || got.PasswordHash != "hash-3" {
		t.Fatalf("member after update=%+v", got)
	}

	if err := repo.Update(ctx, memberrepoport.Member{ID: 99999, Email: "x@example.com"}); !errors.Is(err, memberrepoport.ErrNotFound) {
		t.Fatalf("Update missing: err=%v, want ErrNotFound", err)
	}
	if _, err := repo.GetByID(ctx, 99999); !errors.Is(err, memberrepoport.ErrNotFound) {
		t.Fatalf("GetByID missing: err=%v, want ErrNotFound", err)
	}
	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, memberrepoport.ErrNotFound) {
		t.Fatalf("GetByEmail missing: err=%v, want ErrNotFound", err)
	}
}
