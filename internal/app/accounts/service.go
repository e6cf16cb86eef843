package accounts

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/petorang/superpet-api/internal/domain"
	clockport "github.com/petorang/superpet-api/internal/ports/out/clock"
	"github.com/petorang/superpet-api/internal/ports/out/memberrepo"
)

const (
	minPasswordLen = 6
	minNameLen     = 2
	bcryptCost     = 10
)

// Service implements account signup, login, and profile updates.
//
// Credential issuance is not done here: callers sign a token from the returned
// User's Identity and set the cookie at the HTTP boundary.
type Service struct {
	repo memberrepo.Repository
	clk  clockport.Clock
}

func NewService(repo memberrepo.Repository, clk clockport.Clock) *Service {
	return &Service{repo: repo, clk: clk}
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return User{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "email and password are required",
		}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid email",
			Details: map[string]any{"email": "must be a valid address"},
		}
	}
	if len(in.Password) < minPasswordLen {
		return User{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "password too short",
			Details: map[string]any{"password": "must be at least 6 characters"},
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return User{}, err
	}

	now := s.clk.Now()
	m := memberrepo.Member{
		Email:        email,
		Name:         cloneStringPtr(in.Name),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	id, err := s.repo.Create(ctx, m)
	if err != nil {
		if errors.Is(err, memberrepo.ErrEmailTaken) {
			return User{}, &Error{Status: 409, Code: "EMAIL_TAKEN", Message: "email already in use"}
		}
		return User{}, err
	}
	m.ID = id
	return toUser(m), nil
}

// Login verifies the password against the stored hash. Unknown email and
// wrong password produce the same error so callers cannot probe for accounts.
func (s *Service) Login(ctx context.Context, in LoginInput) (User, error) {
	invalid := &Error{Status: 401, Code: "INVALID_CREDENTIALS", Message: "invalid email or password"}

	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return User{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "email and password are required",
		}
	}

	m, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, memberrepo.ErrNotFound) {
			return User{}, invalid
		}
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(in.Password)); err != nil {
		return User{}, invalid
	}
	return toUser(m), nil
}

// UpdateProfile applies a partial update to the caller's own account and
// returns the updated user, from which a fresh credential is issued.
func (s *Service) UpdateProfile(ctx context.Context, caller domain.MemberID, in UpdateProfileInput) (User, error) {
	m, err := s.repo.GetByID(ctx, caller)
	if err != nil {
		if errors.Is(err, memberrepo.ErrNotFound) {
			return User{}, &Error{Status: 404, Code: "MEMBER_NOT_FOUND", Message: "member not found"}
		}
		return User{}, err
	}

	if in.NewPassword != nil {
		if in.CurrentPassword == nil {
			return User{}, &Error{
				Status:  422,
				Code:    "VALIDATION_ERROR",
				Message: "current password required",
				Details: map[string]any{"currentPassword": "required to change password"},
			}
		}
		if len(*in.NewPassword) < minPasswordLen {
			return User{}, &Error{
				Status:  422,
				Code:    "VALIDATION_ERROR",
				Message: "new password too short",
				Details: map[string]any{"newPassword": "must be at least 6 characters"},
			}
		}
		if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(*in.CurrentPassword)); err != nil {
			return User{}, &Error{Status: 400, Code: "WRONG_PASSWORD", Message: "current password does not match"}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.NewPassword), bcryptCost)
		if err != nil {
			return User{}, err
		}
		m.PasswordHash = string(hash)
	}

	if in.Name.IsSpecified() {
		if in.Name.IsNull() {
			m.Name = nil
		} else {
			name := strings.TrimSpace(in.Name.Value())
			if len([]rune(name)) < minNameLen {
				return User{}, &Error{
					Status:  422,
					Code:    "VALIDATION_ERROR",
					Message: "invalid name",
					Details: map[string]any{"name": "must be at least 2 characters"},
				}
			}
			m.Name = &name
		}
	}

	m.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, m); err != nil {
		return User{}, err
	}
	return toUser(m), nil
}

func toUser(m memberrepo.Member) User {
	return User{ID: m.ID, Email: m.Email, Name: cloneStringPtr(m.Name)}
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
