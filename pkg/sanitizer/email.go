package sanitizer

import "strings"

// NormalizeEmail trims surrounding whitespace and lowercases the address so
// that the same mailbox always maps to the same member record.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailLocalPart returns the part before the last "@", or the whole input
// when there is none.
func EmailLocalPart(email string) string {
	i := strings.LastIndex(email, "@")
	if i < 0 {
		return email
	}
	return email[:i]
}
