package game

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/petorang/superpet-api/internal/domain"
	"github.com/petorang/superpet-api/internal/ports/out/gamesaverepo"
)

// Service implements game session rotation and save persistence.
type Service struct {
	saves gamesaverepo.Repository

	newSessionID func() string
}

func NewService(saves gamesaverepo.Repository) *Service {
	return &Service{
		saves:        saves,
		newSessionID: uuid.NewString,
	}
}

// SetNewSessionIDForTest overrides session id generation for deterministic
// tests. It should not be used in production code.
func (s *Service) SetNewSessionIDForTest(fn func() string) {
	if fn != nil {
		s.newSessionID = fn
	}
}

// RotateSession issues a fresh opaque session identifier for the member and
// installs it with a single atomic upsert. Any previously issued identifier is
// invalid from this point on; there is no grace period. The save payload is
// untouched.
func (s *Service) RotateSession(ctx context.Context, member domain.MemberID) (string, error) {
	sessionID := s.newSessionID()
	if err := s.saves.RotateSession(ctx, member, sessionID); err != nil {
		return "", err
	}
	return sessionID, nil
}

// LoadSave returns the member's save payload, or nil when nothing has been
// saved yet (not an error).
func (s *Service) LoadSave(ctx context.Context, member domain.MemberID) (json.RawMessage, error) {
	save, err := s.saves.Get(ctx, member)
	if err != nil {
		if errors.Is(err, gamesaverepo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return save.Data, nil
}

// StoreSave replaces the member's save payload. The session identifier is
// untouched.
func (s *Service) StoreSave(ctx context.Context, member domain.MemberID, data json.RawMessage) error {
	if len(data) == 0 || string(data) == "null" {
		return &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "missing save data",
			Details: map[string]any{"data": "must be present"},
		}
	}
	if !json.Valid(data) {
		return &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid save data",
			Details: map[string]any{"data": "must be valid JSON"},
		}
	}
	return s.saves.PutData(ctx, member, data)
}
