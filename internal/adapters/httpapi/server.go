package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/petorang/superpet-api/internal/app/accounts"
	"github.com/petorang/superpet-api/internal/app/game"
	"github.com/petorang/superpet-api/internal/app/gems"
	"github.com/petorang/superpet-api/internal/app/roomkeys"
	"github.com/petorang/superpet-api/internal/domain"
	"github.com/petorang/superpet-api/internal/platform/auth/token"
	"github.com/petorang/superpet-api/internal/platform/config"
)

// Server is the HTTP adapter. It decodes requests, resolves the caller's
// identity, and delegates to the application services.
type Server struct {
	Accounts *accounts.Service
	Gems     *gems.Service
	Game     *game.Service
	RoomKeys *roomkeys.Service

	codec *token.Codec
	auth  config.AuthConfig
}

func NewServer(
	accountsSvc *accounts.Service,
	gemsSvc *gems.Service,
	gameSvc *game.Service,
	roomKeysSvc *roomkeys.Service,
	codec *token.Codec,
	auth config.AuthConfig,
) *Server {
	return &Server{
		Accounts: accountsSvc,
		Gems:     gemsSvc,
		Game:     gameSvc,
		RoomKeys: roomKeysSvc,
		codec:    codec,
		auth:     auth,
	}
}

// requireIdentity writes a 401 and returns false when the request carries no
// resolved identity.
func requireIdentity(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return domain.Identity{}, false
	}
	return id, true
}

// decodeJSON decodes the request body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", nil)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
