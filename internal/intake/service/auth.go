package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/intake/pkg/cryptox"
	"github.com/aussiebroadwan/intake/pkg/jwtx"
)

// TokenMode selects the kind of bearer token the AuthGate issues.
type TokenMode string

const (
	// TokenModeJWT issues HS256 tokens that expire after AuthConfig.TTL.
	TokenModeJWT TokenMode = "jwt"

	// TokenModeLegacy issues the static digest of the admin credential.
	// It never expires and is shared by every process with the same
	// configuration.
	TokenModeLegacy TokenMode = "legacy"
)

// ParseTokenMode accepts "jwt" or "legacy", case-insensitively.
func ParseTokenMode(s string) (TokenMode, error) {
	switch TokenMode(strings.ToLower(strings.TrimSpace(s))) {
	case TokenModeJWT, "":
		return TokenModeJWT, nil
	case TokenModeLegacy:
		return TokenModeLegacy, nil
	default:
		return "", fmt.Errorf("unknown token mode %q", s)
	}
}

// AuthConfig is the single admin credential and token policy.
type AuthConfig struct {
	Username string
	Password string

	Mode   TokenMode
	Secret []byte // HS256 key; generated when empty
	TTL    time.Duration
	Issuer string

	Clock Clock
}

// Token is a bearer credential handed out on login. ExpiresIn is zero for
// legacy tokens.
type Token struct {
	Value     string
	ExpiresIn time.Duration
}

// AuthGate checks the admin credential and the bearer tokens derived from it.
type AuthGate struct {
	mode         TokenMode
	username     string
	passwordHash string
	legacy       string
	ttl          time.Duration
	issuer       string
	clock        Clock

	signer          jwtx.Signer
	verifier        jwtx.Verifier
	ephemeralSecret bool
}

// ComputeToken is the legacy token for a credential: the lowercase hex
// SHA-256 of "username:password".
func ComputeToken(username, password string) string {
	return cryptox.DigestHex(username + ":" + password)
}

// NewAuthGate hashes the configured password and prepares token signing.
func NewAuthGate(cfg AuthConfig) (*AuthGate, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("admin username and password must be set")
	}

	hash, err := cryptox.HashPassword(cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	g := &AuthGate{
		mode:         cfg.Mode,
		username:     cfg.Username,
		passwordHash: hash,
		legacy:       ComputeToken(cfg.Username, cfg.Password),
		ttl:          cfg.TTL,
		issuer:       cfg.Issuer,
		clock:        cfg.Clock,
	}
	if g.mode == "" {
		g.mode = TokenModeJWT
	}
	if g.ttl <= 0 {
		g.ttl = jwtx.DefaultAccessTokenTTL
	}

	if g.mode == TokenModeJWT {
		secret := cfg.Secret
		if len(secret) == 0 {
			generated, err := cryptox.GenerateToken(cryptox.TokenSize256)
			if err != nil {
				return nil, err
			}
			secret = []byte(generated)
			g.ephemeralSecret = true
		}

		signer, err := jwtx.NewSignerHS256(secret)
		if err != nil {
			return nil, err
		}
		g.signer = signer
		g.verifier = jwtx.NewVerifierHS256(secret, g.issuer, g.clock.now)
	}

	return g, nil
}

// Mode reports the configured token mode.
func (g *AuthGate) Mode() TokenMode { return g.mode }

// EphemeralSecret is true when no signing secret was configured and tokens
// will not survive a restart.
func (g *AuthGate) EphemeralSecret() bool { return g.ephemeralSecret }

// LegacyToken is ComputeToken for the configured credential.
func (g *AuthGate) LegacyToken() string { return g.legacy }

// Authenticate checks a login attempt and issues a token on success.
func (g *AuthGate) Authenticate(username, password string) (Token, error) {
	userOK := cryptox.EqualConstantTime(username, g.username)
	// Always verify the password so a wrong username costs the same.
	passErr := cryptox.VerifyPassword(password, g.passwordHash)
	if !userOK || passErr != nil {
		return Token{}, ErrInvalidCredentials
	}

	if g.mode == TokenModeLegacy {
		return Token{Value: g.legacy}, nil
	}

	claims := jwtx.NewAdminClaims(g.username, g.issuer, g.ttl, g.clock.now())
	signed, err := g.signer.Sign(claims)
	if err != nil {
		return Token{}, fmt.Errorf("sign admin token: %w", err)
	}
	return Token{Value: signed, ExpiresIn: g.ttl}, nil
}

// Verify reports whether presented grants admin access.
func (g *AuthGate) Verify(presented string) bool {
	if presented == "" {
		return false
	}

	if g.mode == TokenModeLegacy {
		return cryptox.EqualConstantTime(presented, g.legacy)
	}

	claims, err := g.verifier.Verify(presented)
	if err != nil {
		return false
	}
	return claims.Role == jwtx.RoleAdmin && cryptox.EqualConstantTime(claims.Subject, g.username)
}
