package token

import "time"

// Claims is the set of payload kinds a Signer can issue and verify.
type Claims interface {
	MagicLinkClaims | SessionClaims
}

// claimsPtr gives Issue and Verify access to the shared fields of a Claims type.
type claimsPtr[C Claims] interface {
	*C
	kind() string
	email() string
	expiry() int64
	setExpiry(exp int64)
}

// MagicLinkClaims is the payload of the short-lived sign-in link.
type MagicLinkClaims struct {
	Email string `json:"email"`
	Exp   int64  `json:"exp"`
}

// ExpiresAt returns the expiry as a time.
func (c MagicLinkClaims) ExpiresAt() time.Time { return time.UnixMilli(c.Exp) }

func (c *MagicLinkClaims) kind() string        { return kindMagicLink }
func (c *MagicLinkClaims) email() string       { return c.Email }
func (c *MagicLinkClaims) expiry() int64       { return c.Exp }
func (c *MagicLinkClaims) setExpiry(exp int64) { c.Exp = exp }

// SessionClaims is the payload of the auth cookie.
// UserData is a snapshot taken at issue time and may be stale.
type SessionClaims struct {
	Email    string    `json:"email"`
	Exp      int64     `json:"exp"`
	UserData *UserData `json:"userData,omitempty"`
}

// ExpiresAt returns the expiry as a time.
func (c SessionClaims) ExpiresAt() time.Time { return time.UnixMilli(c.Exp) }

func (c *SessionClaims) kind() string        { return kindSession }
func (c *SessionClaims) email() string       { return c.Email }
func (c *SessionClaims) expiry() int64       { return c.Exp }
func (c *SessionClaims) setExpiry(exp int64) { c.Exp = exp }

// UserData is the member snapshot cached inside a session token.
type UserData struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Tokens   int    `json:"tokens"`
	Image    string `json:"image,omitempty"`
}
