package bearer

import (
	"os"
	"time"

	"github.com/goliatone/go-router"
)

// DefaultSigningKey is the fallback used when JWT_SECRET is unset. Tokens
// signed with it are forgeable by anyone reading this source; EnvConfig
// exposes IsDefaultSigningKey so operators can detect the misconfiguration
// at startup.
const DefaultSigningKey = "your-secret-key"

// EnvConfig is the process-wide auth configuration, read once at startup.
// All values are immutable afterwards; there is no reload mechanism.
type EnvConfig struct {
	SigningKey  string
	TokenTTL    time.Duration
	ContextKey  string
	TokenLookup string
	AuthScheme  string
	Issuer      string
	Audience    []string
}

var _ Config = (*EnvConfig)(nil)

// NewConfigFromEnv builds an EnvConfig from the process environment:
//   - JWT_SECRET: shared signing key, falls back to DefaultSigningKey.
//   - AUTH_TOKEN_TTL: token validity window in Go duration syntax, 1h default.
//   - AUTH_ISSUER: optional iss claim.
func NewConfigFromEnv() *EnvConfig {
	cfg := &EnvConfig{
		SigningKey: DefaultSigningKey,
		TokenTTL:   DefaultTokenTTL,
		Issuer:     os.Getenv("AUTH_ISSUER"),
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.SigningKey = secret
	}

	if raw := os.Getenv("AUTH_TOKEN_TTL"); raw != "" {
		if ttl, err := time.ParseDuration(raw); err == nil && ttl > 0 {
			cfg.TokenTTL = ttl
		}
	}

	return cfg
}

// IsDefaultSigningKey reports whether the known fallback secret is in effect
func (c *EnvConfig) IsDefaultSigningKey() bool {
	return c.SigningKey == DefaultSigningKey
}

func (c *EnvConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *EnvConfig) GetSigningMethod() string {
	return "HS256"
}

func (c *EnvConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return "user"
	}
	return c.ContextKey
}

func (c *EnvConfig) GetTokenTTL() time.Duration {
	if c.TokenTTL == 0 {
		return DefaultTokenTTL
	}
	return c.TokenTTL
}

func (c *EnvConfig) GetTokenLookup() string {
	if c.TokenLookup == "" {
		return "header:" + router.HeaderAuthorization
	}
	return c.TokenLookup
}

func (c *EnvConfig) GetAuthScheme() string {
	if c.AuthScheme == "" {
		return "Bearer"
	}
	return c.AuthScheme
}

func (c *EnvConfig) GetIssuer() string {
	return c.Issuer
}

func (c *EnvConfig) GetAudience() []string {
	return c.Audience
}
