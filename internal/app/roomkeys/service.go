package roomkeys

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/petorang/superpet-api/internal/domain"
	clockport "github.com/petorang/superpet-api/internal/ports/out/clock"
	"github.com/petorang/superpet-api/internal/ports/out/roomkeyrepo"
	"github.com/petorang/superpet-api/internal/ports/out/roomrepo"
)

// Service implements room-key management. Both operations are gated on the
// key's transitive owner: the parent room's member, read at call time.
type Service struct {
	rooms roomrepo.Repository
	keys  roomkeyrepo.Repository
	clk   clockport.Clock

	newCode func() (string, error)
}

func NewService(rooms roomrepo.Repository, keys roomkeyrepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		rooms:   rooms,
		keys:    keys,
		clk:     clk,
		newCode: generateCode,
	}
}

// SetNewCodeForTest overrides key code generation for deterministic tests.
// It should not be used in production code.
func (s *Service) SetNewCodeForTest(fn func() (string, error)) {
	if fn != nil {
		s.newCode = fn
	}
}

type KeyCreated struct {
	ID   domain.RoomKeyID
	Code string
}

// CreateKey mints a new access key for a room the caller owns.
func (s *Service) CreateKey(ctx context.Context, caller domain.MemberID, roomID domain.RoomID) (KeyCreated, error) {
	room, err := s.rooms.Get(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomrepo.ErrNotFound) {
			return KeyCreated{}, &Error{Status: 404, Code: "ROOM_NOT_FOUND", Message: "room not found"}
		}
		return KeyCreated{}, err
	}
	if room.OwnerID != caller {
		return KeyCreated{}, &Error{Status: 403, Code: "FORBIDDEN", Message: "not the room owner"}
	}

	code, err := s.newCode()
	if err != nil {
		return KeyCreated{}, err
	}
	id, err := s.keys.Create(ctx, roomID, code, s.clk.Now())
	if err != nil {
		return KeyCreated{}, err
	}
	return KeyCreated{ID: id, Code: code}, nil
}

// DeleteKey removes a key if and only if the caller owns the key's parent
// room. Existence and ownership are checked in that order: a key owned by
// someone else yields 403, not 404. Deletion is terminal; there is no
// tombstone.
func (s *Service) DeleteKey(ctx context.Context, caller domain.MemberID, keyID domain.RoomKeyID) error {
	key, err := s.keys.GetWithOwner(ctx, keyID)
	if err != nil {
		if errors.Is(err, roomkeyrepo.ErrNotFound) {
			return &Error{Status: 404, Code: "ROOM_KEY_NOT_FOUND", Message: "key not found"}
		}
		return err
	}
	if key.RoomOwnerID != caller {
		return &Error{Status: 403, Code: "FORBIDDEN", Message: "not the room owner"}
	}

	if err := s.keys.Delete(ctx, keyID); err != nil {
		if errors.Is(err, roomkeyrepo.ErrNotFound) {
			// Deleted concurrently between the check and the delete.
			return &Error{Status: 404, Code: "ROOM_KEY_NOT_FOUND", Message: "key not found"}
		}
		return err
	}
	return nil
}

// generateCode returns an 8-character uppercase key code from random bytes.
func generateCode() (string, error) {
	var b [6]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	code := base64.RawURLEncoding.EncodeToString(b[:])
	return strings.ToUpper(code[:8]), nil
}
