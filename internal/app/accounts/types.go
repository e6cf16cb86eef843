package accounts

import (
	"github.com/petorang/superpet-api/internal/domain"
)

// Optional is a tri-state field used to distinguish:
// - unspecified (keep the current value)
// - explicit null (clear the value)
// - a concrete value (replace it)
type Optional[T any] struct {
	specified bool
	isNull    bool
	value     T
}

func Unspecified[T any]() Optional[T] { return Optional[T]{} }
func Null[T any]() Optional[T]        { return Optional[T]{specified: true, isNull: true} }
func Some[T any](v T) Optional[T]     { return Optional[T]{specified: true, value: v} }

func (o Optional[T]) IsSpecified() bool { return o.specified }
func (o Optional[T]) IsNull() bool      { return o.specified && o.isNull }
func (o Optional[T]) Value() T          { return o.value }

// User is the account shape returned to callers; it never carries the
// password hash.
type User struct {
	ID    domain.MemberID
	Email string
	Name  *string
}

// Identity returns the credential payload for this user.
func (u User) Identity() domain.Identity {
	email := u.Email
	return domain.Identity{MemberID: u.ID, Email: &email, Name: u.Name}
}

type SignupInput struct {
	Name     *string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput is a partial update of the caller's own account.
type UpdateProfileInput struct {
	Name Optional[string]

	// NewPassword changes the password; CurrentPassword must then match.
	CurrentPassword *string
	NewPassword     *string
}
