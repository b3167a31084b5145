// Package token issues and verifies the signed, expiring tokens used for
// magic-link sign in and for the session cookie.
//
// A token is the base64url (unpadded) JSON payload followed by a dot and the
// base64url (unpadded) HMAC-SHA256 of that encoded payload under the key of
// its kind:
//
//	eyJlbWFpbCI6ImFAYi5jb20iLCJleHAiOjE3MDAwMDAwMDAwMDB9.3q2-7w...
//
// The string is safe to place in a URL query parameter or a cookie value
// without further escaping. The "exp" claim is expressed in epoch
// milliseconds.
//
// # Kinds
//
// Two payload kinds share the codec: MagicLinkClaims (email only) and
// SessionClaims (email plus an optional cached UserData blob). The Claims
// constraint restricts Issue and Verify to those two types, so a caller
// always states which kind it expects. Each kind is signed with its own key,
// HMAC-SHA256(secret, "magic-link") or HMAC-SHA256(secret, "session"), so a
// sign-in link is rejected as a session cookie and the reverse:
//
//	signer, err := token.NewSigner(os.Getenv("AUTH_SECRET"))
//	if err != nil {
//	    log.Fatal(err) // missing or short secret, refuse to start
//	}
//
//	link, _ := signer.IssueMagicLink("a@b.com", 20*time.Minute)
//	claims, err := signer.VerifyMagicLink(link)
//	switch {
//	case errors.Is(err, token.ErrExpired):
//	    // offer to send a new link
//	case err != nil:
//	    // invalid link
//	}
//
// # Verification order
//
// Verify checks, in order: the two-segment format (ErrInvalidFormat), the
// signature in constant time (ErrInvalidSignature), the payload encoding
// (ErrInvalidToken) and finally the expiry (ErrExpired). Expiry is only
// reported for authentic tokens. Verify never panics on untrusted input.
//
// There is no revocation list: a token stays valid until it expires or the
// secret changes. Single-use semantics for magic links live in package replay.
//
// A Signer holds no mutable state and is safe for concurrent use.
package token
