package gamesaverepo

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/petorang/superpet-api/internal/adapters/contracttest"
	"github.com/petorang/superpet-api/internal/domain"
	gamesaverepoport "github.com/petorang/superpet-api/internal/ports/out/gamesaverepo"
	"github.com/petorang/superpet-api/internal/ports/out/storage"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	repo := NewWithClient(client)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestContract_RedisGameSaveRepo(t *testing.T) {
	contracttest.RunGameSaveRepo(t, func(t *testing.T) (gamesaverepoport.Repository, contracttest.CleanupFunc) {
		t.Helper()
		return newTestRepo(t), nil
	})
}

func TestKeyLayout(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	repo := NewWithClient(client)
	defer repo.Close()

	ctx := context.Background()
	if err := repo.RotateSession(ctx, domain.MemberID(42), "sess-x"); err != nil {
		t.Fatalf("RotateSession: %v", err)
	}
	got := mini.HGet("superpet:save:42", "session_id")
	if got != "sess-x" {
		t.Fatalf("session_id field=%q, want sess-x", got)
	}
}

func TestUnreachableServerMapsToUnavailable(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	repo := NewWithClient(client)
	defer repo.Close()

	mini.Close()

	err := repo.PutData(context.Background(), domain.MemberID(1), []byte(`{}`))
	if !errors.Is(err, storage.ErrUnavailable) {
		t.Fatalf("err=%v, want storage.ErrUnavailable", err)
	}
}
