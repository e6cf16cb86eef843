package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// AuthConfig configures credential signing and the auth cookie.
//
// These values are deployment-provided.
type AuthConfig struct {
	// Secret is the symmetric signing key trusted by every instance.
	Secret []byte

	// TokenTTL is the credential lifetime embedded at signing time.
	TokenTTL time.Duration

	CookieName string
	// CookieSecure marks the auth cookie Secure; enable in production.
	CookieSecure bool
}

func LoadAuthConfigFromEnv() (AuthConfig, error) {
	secret := os.Getenv("AUTH_SECRET")
	if secret == "" {
		return AuthConfig{}, fmt.Errorf("missing required env var: AUTH_SECRET")
	}

	cfg := AuthConfig{
		Secret: []byte(secret),
		// 7 days, matching the expiry baked into issued credentials.
		TokenTTL:   7 * 24 * time.Hour,
		CookieName: "auth-token",
	}

	if v := os.Getenv("AUTH_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return AuthConfig{}, fmt.Errorf("AUTH_TOKEN_TTL must be a duration (e.g. 168h): %w", err)
		}
		cfg.TokenTTL = d
	}
	if v := os.Getenv("AUTH_COOKIE_NAME"); v != "" {
		cfg.CookieName = v
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return AuthConfig{}, fmt.Errorf("COOKIE_SECURE must be a boolean: %w", err)
		}
		cfg.CookieSecure = b
	}

	return cfg, nil
}
