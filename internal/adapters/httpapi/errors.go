package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/nullable"

	"github.com/petorang/superpet-api/internal/app/accounts"
	"github.com/petorang/superpet-api/internal/app/game"
	"github.com/petorang/superpet-api/internal/app/gems"
	"github.com/petorang/superpet-api/internal/app/roomkeys"
	"github.com/petorang/superpet-api/internal/ports/out/storage"
)

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Error struct {
		Code      string                            `json:"code"`
		Message   string                            `json:"message"`
		Details   nullable.Nullable[map[string]any] `json:"details,omitempty"`
		RequestId nullable.Nullable[string]         `json:"requestId,omitempty"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, message string, details map[string]any) {
	var er ErrorResponse
	er.Error.Code = code
	er.Error.Message = message
	if details != nil {
		er.Error.Details = nullable.NewNullableWithValue(details)
	}
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		er.Error.RequestId = nullable.NewNullableWithValue(rid)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(er)
}

// writeServiceError maps application-layer errors onto the envelope. Anything
// unrecognized becomes an opaque 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var accountsErr *accounts.Error
	if errors.As(err, &accountsErr) {
		writeError(w, r, accountsErr.Status, accountsErr.Code, accountsErr.Message, accountsErr.Details)
		return
	}
	var gemsErr *gems.Error
	if errors.As(err, &gemsErr) {
		writeError(w, r, gemsErr.Status, gemsErr.Code, gemsErr.Message, gemsErr.Details)
		return
	}
	var gameErr *game.Error
	if errors.As(err, &gameErr) {
		writeError(w, r, gameErr.Status, gameErr.Code, gameErr.Message, gameErr.Details)
		return
	}
	var roomkeysErr *roomkeys.Error
	if errors.As(err, &roomkeysErr) {
		writeError(w, r, roomkeysErr.Status, roomkeysErr.Code, roomkeysErr.Message, roomkeysErr.Details)
		return
	}
	if errors.Is(err, storage.ErrUnavailable) {
		writeError(w, r, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "storage is temporarily unavailable", nil)
		return
	}
	writeError(w, r, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}
