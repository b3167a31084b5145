package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	minSecretLength = 32
	separator       = "."

	kindMagicLink = "magic-link"
	kindSession   = "session"
)

// Signer issues and verifies tokens under a single secret.
// Each claims kind signs with its own key derived from the secret, so a
// token of one kind never verifies as the other.
// Rotating the secret invalidates every outstanding token at once.
type Signer struct {
	keys map[string][]byte
	now  func() time.Time
}

// Option configures a Signer.
type Option func(*Signer)

// WithClock overrides the time source. Nil is ignored.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSigner returns a Signer for the given secret.
// An empty or short secret is a configuration error: there is no fallback key.
func NewSigner(secret string, opts ...Option) (*Signer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrSecretTooShort, len(secret), minSecretLength)
	}

	s := &Signer{
		keys: map[string][]byte{
			kindMagicLink: deriveKey(secret, kindMagicLink),
			kindSession:   deriveKey(secret, kindSession),
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// MustNewSigner is like NewSigner but panics on error.
func MustNewSigner(secret string, opts ...Option) *Signer {
	s, err := NewSigner(secret, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Issue stamps claims with exp = now + ttl and returns the signed token.
// Identical claims issued at the same instant produce identical tokens.
func Issue[C Claims, P claimsPtr[C]](s *Signer, claims C, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", ErrInvalidTTL
	}

	p := P(&claims)
	if p.email() == "" {
		return "", ErrMissingEmail
	}
	p.setExpiry(s.now().Add(ttl).UnixMilli())

	data, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("token: encode claims: %w", err)
	}

	payload := base64.RawURLEncoding.EncodeToString(data)
	return payload + separator + s.sign(p.kind(), payload), nil
}

// Verify authenticates the token and decodes its claims.
// The returned error is one of ErrInvalidFormat, ErrInvalidSignature,
// ErrInvalidToken or ErrExpired.
func Verify[C Claims, P claimsPtr[C]](s *Signer, token string) (C, error) {
	var claims C

	payload, sig, ok := split(token)
	if !ok {
		return claims, ErrInvalidFormat
	}

	if subtle.ConstantTimeCompare([]byte(sig), []byte(s.sign(P(&claims).kind(), payload))) != 1 {
		return claims, ErrInvalidSignature
	}

	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return claims, ErrInvalidToken
	}
	if err := json.Unmarshal(data, &claims); err != nil {
		var zero C
		return zero, ErrInvalidToken
	}

	if s.now().UnixMilli() >= P(&claims).expiry() {
		return claims, ErrExpired
	}

	return claims, nil
}

// IssueMagicLink issues a sign-in token for email.
func (s *Signer) IssueMagicLink(email string, ttl time.Duration) (string, error) {
	return Issue(s, MagicLinkClaims{Email: email}, ttl)
}

// VerifyMagicLink verifies a sign-in token.
func (s *Signer) VerifyMagicLink(token string) (MagicLinkClaims, error) {
	return Verify[MagicLinkClaims](s, token)
}

// IssueSession issues a session token. userData may be nil.
func (s *Signer) IssueSession(email string, userData *UserData, ttl time.Duration) (string, error) {
	return Issue(s, SessionClaims{Email: email, UserData: userData}, ttl)
}

// VerifySession verifies a session token.
func (s *Signer) VerifySession(token string) (SessionClaims, error) {
	return Verify[SessionClaims](s, token)
}

func (s *Signer) sign(kind, payload string) string {
	mac := hmac.New(sha256.New, s.keys[kind])
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// deriveKey returns HMAC-SHA256(secret, kind).
func deriveKey(secret, kind string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(kind))
	return mac.Sum(nil)
}

// Signature returns the signature segment of a well-formed token, or "".
// It does not verify anything.
func Signature(token string) string {
	_, sig, ok := split(token)
	if !ok {
		return ""
	}
	return sig
}

func split(token string) (payload, sig string, ok bool) {
	parts := strings.Split(token, separator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
