package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	memclock "github.com/petorang/superpet-api/internal/adapters/memory/clock"
	memgamesaverepo "github.com/petorang/superpet-api/internal/adapters/memory/gamesaverepo"
	memgemledger "github.com/petorang/superpet-api/internal/adapters/memory/gemledger"
	memmemberrepo "github.com/petorang/superpet-api/internal/adapters/memory/memberrepo"
	memroomkeyrepo "github.com/petorang/superpet-api/internal/adapters/memory/roomkeyrepo"
	memroomrepo "github.com/petorang/superpet-api/internal/adapters/memory/roomrepo"
	"github.com/petorang/superpet-api/internal/app/accounts"
	"github.com/petorang/superpet-api/internal/app/game"
	"github.com/petorang/superpet-api/internal/app/gems"
	"github.com/petorang/superpet-api/internal/app/roomkeys"
	"github.com/petorang/superpet-api/internal/platform/auth/token"
	"github.com/petorang/superpet-api/internal/platform/config"
)

type testEnv struct {
	handler http.Handler
	codec   *token.Codec
	clk     *memclock.ManualClock
	saves   *memgamesaverepo.Repo
	rooms   *memroomrepo.Repo
	keys    *memroomkeyrepo.Repo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clk := memclock.NewManualClock(time.Unix(1_700_000_000, 0).UTC())
	authCfg := config.AuthConfig{
		Secret:     []byte("test-secret"),
		TokenTTL:   7 * 24 * time.Hour,
		CookieName: "auth-token",
	}
	codec := token.NewWithClock(authCfg.Secret, authCfg.TokenTTL, clk)

	members := memmemberrepo.NewRepo()
	ledger := memgemledger.NewRepo()
	saves := memgamesaverepo.NewRepo()
	rooms := memroomrepo.NewRepo()
	keys := memroomkeyrepo.NewRepo(rooms)

	srv := NewServer(
		accounts.NewService(members, clk),
		gems.NewService(ledger, clk),
		game.NewService(saves),
		roomkeys.NewService(rooms, keys, clk),
		codec,
		authCfg,
	)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testEnv{
		handler: NewRouter(srv, codec, logger),
		codec:   codec,
		clk:     clk,
		saves:   saves,
		rooms:   rooms,
		keys:    keys,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// signup registers a member and returns its auth cookie.
func (e *testEnv) signup(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/signup", map[string]any{
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status=%d body=%s", rec.Code, rec.Body.String())
	}
	c := authCookie(rec)
	if c == nil {
		t.Fatalf("signup set no auth cookie")
	}
	return c
}

func authCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "auth-token" {
			return c
		}
	}
	return nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var er ErrorResponse
	decodeBody(t, rec, &er)
	return er.Error.Code
}
