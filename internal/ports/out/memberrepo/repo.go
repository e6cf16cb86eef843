package memberrepo

import (
	"context"
	"time"

	"github.com/petorang/superpet-api/internal/domain"
)

// Member is the persistence shape used by the member repository. It is an
// internal record, not an HTTP DTO.
type Member struct {
	ID    domain.MemberID
	Email string
	// Name is the optional display name; nil means unset.
	Name *string
	// PasswordHash is the bcrypt hash of the member's password.
	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository provides access to persisted members.
type Repository interface {
	// Create stores a new member and returns its assigned id.
	// Returns ErrEmailTaken when the email is already bound to a member.
	Create(ctx context.Context, m Member) (domain.MemberID, error)

	// Update replaces the member's mutable fields (name, password hash).
	Update(ctx context.Context, m Member) error

	GetByID(ctx context.Context, id domain.MemberID) (Member, error)
	GetByEmail(ctx context.Context, email string) (Member, error)
}
