package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/petorang/superpet-api/internal/domain"
)

func (s *Server) handleDeleteRoomKey(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	raw := chi.URLParam(r, "keyId")
	keyID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || keyID <= 0 {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid key id", map[string]any{
			"keyId": "must be a positive integer",
		})
		return
	}

	if err := s.RoomKeys.DeleteKey(r.Context(), id.MemberID, domain.RoomKeyID(keyID)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
