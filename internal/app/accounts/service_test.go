package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	memclock "github.com/petorang/superpet-api/internal/adapters/memory/clock"
	memmemberrepo "github.com/petorang/superpet-api/internal/adapters/memory/memberrepo"
)

func newTestService() (*Service, *memmemberrepo.Repo) {
	repo := memmemberrepo.NewRepo()
	clk := memclock.NewManualClock(time.Unix(1000, 0).UTC())
	return NewService(repo, clk), repo
}

func TestService_SignupThenLogin(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	ctx := context.Background()

	name := "Alice"
	u, err := svc.Signup(ctx, SignupInput{Name: &name, Email: "alice@example.com", Password: "s3cret!"})
	if err != nil {
		t.Fatalf("Signup err=%v", err)
	}
	if u.ID == 0 || u.Email != "alice@example.com" {
		t.Fatalf("user=%+v", u)
	}

	got, err := svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "s3cret!"})
	if err != nil {
		t.Fatalf("Login err=%v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("login id=%d, want %d", got.ID, u.ID)
	}
}

func TestService_Signup_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	ctx := context.Background()

	for name, in := range map[string]SignupInput{
		"missing email":    {Password: "s3cret!"},
		"missing password": {Email: "a@example.com"},
		"bad email":        {Email: "not-an-email", Password: "s3cret!"},
		"short password":   {Email: "a@example.com", Password: "12345"},
	} {
		_, err := svc.Signup(ctx, in)
		ae := (*Error)(nil)
		if !errors.As(err, &ae) || ae.Status != 422 {
			t.Fatalf("%s: err=%v, want VALIDATION_ERROR 422", name, err)
		}
	}
}

func TestService_Signup_EmailTaken(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupInput{Email: "a@example.com", Password: "s3cret!"}); err != nil {
		t.Fatalf("Signup err=%v", err)
	}
	_, err := svc.Signup(ctx, SignupInput{Email: "a@example.com", Password: "other-pass"})
	ae := (*Error)(nil)
	if !errors.As(err, &ae) || ae.Status != 409 || ae.Code != "EMAIL_TAKEN" {
		t.Fatalf("err=%v, want EMAIL_TAKEN 409", err)
	}
}

func TestService_Login_UniformFailure(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupInput{Email: "a@example.com", Password: "s3cret!"}); err != nil {
		t.Fatalf("Signup err=%v", err)
	}

	// Unknown account and wrong password must be indistinguishable.
	_, errUnknown := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "s3cret!"})
	_, errWrongPw := svc.Login(ctx, LoginInput{Email: "a@example.com", Password: "wrong"})

	for _, err := range []error{errUnknown, errWrongPw} {
		ae := (*Error)(nil)
		if !errors.As(err, &ae) || ae.Status != 401 || ae.Code != "INVALID_CREDENTIALS" {
			t.Fatalf("err=%v, want INVALID_CREDENTIALS 401", err)
		}
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Fatalf("login failures differ: %q vs %q", errUnknown, errWrongPw)
	}
}

func TestService_UpdateProfile_Name(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Signup(ctx, SignupInput{Email: "a@example.com", Password: "s3cret!"})
	if err != nil {
		t.Fatalf("Signup err=%v", err)
	}

	updated, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{Name: Some("Mungchi")})
	if err != nil {
		t.Fatalf("UpdateProfile err=%v", err)
	}
	if updated.Name == nil || *updated.Name != "Mungchi" {
		t.Fatalf("name=%v", updated.Name)
	}

	// Explicit null clears; unspecified keeps.
	updated, err = svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{Name: Null[string]()})
	if err != nil {
		t.Fatalf("UpdateProfile err=%v", err)
	}
	if updated.Name != nil {
		t.Fatalf("name=%v, want nil", updated.Name)
	}

	_, err = svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{Name: Some("x")})
	ae := (*Error)(nil)
	if !errors.As(err, &ae) || ae.Status != 422 {
		t.Fatalf("err=%v, want VALIDATION_ERROR 422", err)
	}
}

func TestService_UpdateProfile_PasswordChange(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService()
	ctx := context.Background()

	u, err := svc.Signup(ctx, SignupInput{Email: "a@example.com", Password: "s3cret!"})
	if err != nil {
		t.Fatalf("Signup err=%v", err)
	}

	cur := "s3cret!"
	next := "n3wpass!"

	// Missing current password.
	_, err = svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{NewPassword: &next})
	ae := (*Error)(nil)
	if !errors.As(err, &ae) || ae.Status != 422 {
		t.Fatalf("err=%v, want VALIDATION_ERROR 422", err)
	}

	// Wrong current password.
	wrong := "nope"
	_, err = svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{CurrentPassword: &wrong, NewPassword: &next})
	if !errors.As(err, &ae) || ae.Code != "WRONG_PASSWORD" {
		t.Fatalf("err=%v, want WRONG_PASSWORD", err)
	}

	// Correct flow; the stored hash now matches the new password.
	if _, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{CurrentPassword: &cur, NewPassword: &next}); err != nil {
		t.Fatalf("UpdateProfile err=%v", err)
	}
	m, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID err=%v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(next)) != nil {
		t.Fatalf("stored hash does not match new password")
	}
}
