package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/petorang/superpet-api/internal/domain"
	gamesaverepoport "github.com/petorang/superpet-api/internal/ports/out/gamesaverepo"
)

func TestGems_IssueAndUseFlow(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	c := env.signup(t, "player@example.com", "password1")

	rec := env.do(t, http.MethodPost, "/api/superpet/gem/issue", map[string]any{
		"amount": 100,
		"source": "reward",
	}, c)
	if rec.Code != http.StatusOK {
		t.Fatalf("issue status=%d body=%s", rec.Code, rec.Body.String())
	}
	var issued struct {
		Success bool  `json:"success"`
		Issued  int64 `json:"issued"`
		Balance int64 `json:"balance"`
	}
	decodeBody(t, rec, &issued)
	if !issued.Success || issued.Issued != 100 || issued.Balance != 100 {
		t.Fatalf("issue body=%+v", issued)
	}

	rec = env.do(t, http.MethodPost, "/api/superpet/gem/use", map[string]any{
		"amount": 30,
		"source": "gacha",
	}, c)
	if rec.Code != http.StatusOK {
		t.Fatalf("use status=%d body=%s", rec.Code, rec.Body.String())
	}
	var used struct {
		Used    int64 `json:"used"`
		Balance int64 `json:"balance"`
	}
	decodeBody(t, rec, &used)
	if used.Used != 30 || used.Balance != 70 {
		t.Fatalf("use body=%+v", used)
	}

	rec = env.do(t, http.MethodGet, "/api/superpet/gem", nil, c)
	var bal struct {
		Balance int64 `json:"balance"`
	}
	decodeBody(t, rec, &bal)
	if bal.Balance != 70 {
		t.Fatalf("balance=%d, want 70", bal.Balance)
	}
}

func TestGems_InsufficientBalance_400(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	c := env.signup(t, "broke@example.com", "password1")

	rec := env.do(t, http.MethodPost, "/api/superpet/gem/use", map[string]any{
		"amount": 50,
		"source": "revive",
	}, c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var er ErrorResponse
	decodeBody(t, rec, &er)
	if er.Error.Code != "INSUFFICIENT_GEMS" {
		t.Fatalf("code=%q", er.Error.Code)
	}
	details, err := er.Error.Details.Get()
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if details["required"] != float64(50) || details["balance"] != float64(0) {
		t.Fatalf("details=%v", details)
	}
}

func TestGems_UnknownSource_422(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	c := env.signup(t, "src@example.com", "password1")

	rec := env.do(t, http.MethodPost, "/api/superpet/gem/issue", map[string]any{
		"amount": 10,
		"source": "hacked",
	}, c)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "VALIDATION_ERROR" {
		t.Fatalf("code=%q", code)
	}
}

func TestRotateSession_ReplacesIdentifier(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	c := env.signup(t, "rotate@example.com", "password1")

	first := rotateSession(t, env, c)
	second := rotateSession(t, env, c)
	if first == second {
		t.Fatalf("rotation returned the same id twice: %q", first)
	}
	if _, err := uuid.Parse(second); err != nil {
		t.Fatalf("session id %q is not a uuid: %v", second, err)
	}

	// Only the latest id is stored; the previous one no longer exists anywhere.
	save, err := env.saves.Get(context.Background(), domain.MemberID(1))
	if err != nil {
		t.Fatalf("Get save: %v", err)
	}
	if save.SessionID != second {
		t.Fatalf("stored session=%q, want %q", save.SessionID, second)
	}
}

func TestRotateSession_Unauthenticated_NoRowCreated(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/superpet/session", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d", rec.Code)
	}
	if _, err := env.saves.Get(context.Background(), domain.MemberID(1)); !errors.Is(err, gamesaverepoport.ErrNotFound) {
		t.Fatalf("save row exists after rejected rotation: err=%v", err)
	}
}

func TestSave_RoundTripAndRotationPreservesPayload(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	c := env.signup(t, "saver@example.com", "password1")

	// Nothing saved yet: explicit null.
	rec := env.do(t, http.MethodGet, "/api/superpet/save", nil, c)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status=%d body=%s", rec.Code, rec.Body.String())
	}
	var got struct {
		Data json.RawMessage `json:"data"`
	}
	decodeBody(t, rec, &got)
	if string(got.Data) != "null" {
		t.Fatalf("data=%s, want null", got.Data)
	}

	rec = env.do(t, http.MethodPost, "/api/superpet/save", map[string]any{
		"data": map[string]any{"level": 3, "coins": 12},
	}, c)
	if rec.Code != http.StatusOK {
		t.Fatalf("post status=%d body=%s", rec.Code, rec.Body.String())
	}

	// Rotating the session must not touch the payload.
	rotateSession(t, env, c)

	rec = env.do(t, http.MethodGet, "/api/superpet/save", nil, c)
	got.Data = nil
	decodeBody(t, rec, &got)
	var payload map[string]any
	if err := json.Unmarshal(got.Data, &payload); err != nil {
		t.Fatalf("payload %s: %v", got.Data, err)
	}
	if payload["level"] != float64(3) || payload["coins"] != float64(12) {
		t.Fatalf("payload=%v", payload)
	}
}

func TestSave_NullPayload_422(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	c := env.signup(t, "nullsave@example.com", "password1")

	rec := env.do(t, http.MethodPost, "/api/superpet/save", map[string]any{
		"data": nil,
	}, c)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "VALIDATION_ERROR" {
		t.Fatalf("code=%q", code)
	}
}

func rotateSession(t *testing.T, env *testEnv, c *http.Cookie) string {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/superpet/session", nil, c)
	if rec.Code != http.StatusOK {
		t.Fatalf("rotate status=%d body=%s", rec.Code, rec.Body.String())
	}
	var body struct {
		GameSessionID string `json:"gameSessionId"`
	}
	decodeBody(t, rec, &body)
	if body.GameSessionID == "" {
		t.Fatalf("empty gameSessionId")
	}
	return body.GameSessionID
}
