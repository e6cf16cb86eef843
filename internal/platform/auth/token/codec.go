package token

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/petorang/superpet-api/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// claims is the credential payload. The subject is the member id; email and
// name ride along as display attributes and carry no authority.
type claims struct {
	jwt.RegisteredClaims
	Email *string `json:"email,omitempty"`
	Name  *string `json:"name,omitempty"`
}

// Codec signs and verifies the self-contained auth credential.
//
// The trust boundary is solely the signing secret: no server-side session
// table backs verification.
type Codec struct {
	secret []byte
	ttl    time.Duration
	clock  Clock
}

func New(secret []byte, ttl time.Duration) *Codec {
	return NewWithClock(secret, ttl, nil)
}

func NewWithClock(secret []byte, ttl time.Duration, clk Clock) *Codec {
	if clk == nil {
		clk = realClock{}
	}
	return &Codec{secret: secret, ttl: ttl, clock: clk}
}

// Sign issues a credential for id, expiring TTL from now.
func (c *Codec) Sign(id domain.Identity) (string, error) {
	now := c.clock.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(int64(id.MemberID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Email: id.Email,
		Name:  id.Name,
	})
	return t.SignedString(c.secret)
}

// Verify validates raw and returns the identity it carries.
//
// Any failure — malformed structure, signature mismatch, expiry in the past —
// yields ok=false. Callers must treat ok=false exactly like an absent
// credential; the reasons are deliberately not distinguished.
func (c *Codec) Verify(raw string) (domain.Identity, bool) {
	var cl claims
	t, err := jwt.ParseWithClaims(raw, &cl,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !t.Valid {
		return domain.Identity{}, false
	}
	memberID, err := strconv.ParseInt(cl.Subject, 10, 64)
	if err != nil || memberID <= 0 {
		return domain.Identity{}, false
	}
	return domain.Identity{
		MemberID: domain.MemberID(memberID),
		Email:    cl.Email,
		Name:     cl.Name,
	}, true
}
