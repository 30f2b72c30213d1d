package domain

import "time"

// Token is a single-use, time-boxed authorization to complete
// verification for one subject. The record itself never leaves the
// token store; collaborators only hold the opaque Value.
type Token struct {
	Value     string
	SubjectID string
	ExpiresAt time.Time
}

// Expired reports whether the token is past its expiry at the given instant.
func (t Token) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
