package httpapi

import (
	"net/http"

	"github.com/oapi-codegen/nullable"

	"github.com/petorang/superpet-api/internal/app/accounts"
)

type userPayload struct {
	ID    int64   `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

func toUserPayload(u accounts.User) userPayload {
	return userPayload{ID: int64(u.ID), Email: u.Email, Name: u.Name}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     *string `json:"name"`
		Email    string  `json:"email"`
		Password string  `json:"password"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	user, err := s.Accounts.Signup(r.Context(), accounts.SignupInput{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !s.issueCredential(w, r, user) {
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"user":    toUserPayload(user),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	user, err := s.Accounts.Login(r.Context(), accounts.LoginInput{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !s.issueCredential(w, r, user) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    toUserPayload(user),
	})
}

// handleLogout clears the credential cookie. Tokens are stateless, so a copy
// the client kept remains valid until its expiry.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var body struct {
		Name            nullable.Nullable[string] `json:"name"`
		CurrentPassword *string                   `json:"currentPassword"`
		NewPassword     *string                   `json:"newPassword"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	in := accounts.UpdateProfileInput{
		CurrentPassword: body.CurrentPassword,
		NewPassword:     body.NewPassword,
	}
	// The name field is tri-state: absent keeps it, null clears it.
	if body.Name.IsSpecified() {
		if body.Name.IsNull() {
			in.Name = accounts.Null[string]()
		} else {
			in.Name = accounts.Some(body.Name.MustGet())
		}
	}

	user, err := s.Accounts.UpdateProfile(r.Context(), id.MemberID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	// Profile changes alter the claims, so re-issue the cookie.
	if !s.issueCredential(w, r, user) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    toUserPayload(user),
	})
}

// issueCredential signs a fresh token for user and sets the cookie. On
// signing failure it writes a 500 and returns false.
func (s *Server) issueCredential(w http.ResponseWriter, r *http.Request, user accounts.User) bool {
	tok, err := s.codec.Sign(user.Identity())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
		return false
	}
	s.setAuthCookie(w, tok, s.auth.TokenTTL)
	return true
}
