package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/spec-kit/verify-service/internal/domain"
)

const tokenBytes = 16

// Store owns the mapping from opaque token value to its record. All
// operations are atomic with respect to each other; callers only ever
// hold the token's string value, never the record itself.
type Store struct {
	mu     sync.Mutex
	tokens map[string]domain.Token
	ttl    time.Duration
}

// NewStore creates an empty store issuing tokens with the given lifetime.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		tokens: make(map[string]domain.Token),
		ttl:    ttl,
	}
}

// Create issues a new token for the subject and returns its opaque
// value. Each call produces an independent token; prior tokens for the
// same subject stay live. Fails only when the entropy source does.
func (s *Store) Create(subjectID string) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	value := hex.EncodeToString(buf)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[value] = domain.Token{
		Value:     value,
		SubjectID: subjectID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	return value, nil
}

// Lookup returns the stored record if present, regardless of expiry
// state. Expiry is the caller's concern.
func (s *Store) Lookup(value string) (domain.Token, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := s.tokens[value]
	return tok, ok
}

// Invalidate removes the entry unconditionally. Invalidating an absent
// token is a no-op.
func (s *Store) Invalidate(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, value)
}

// Redeem atomically claims the token: the record is removed and
// returned only if it is present, unexpired at now, and owned by
// subjectID. A concurrent duplicate submission observes ok=false.
func (s *Store) Redeem(value, subjectID string, now time.Time) (domain.Token, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := s.tokens[value]
	if !ok || tok.Expired(now) || tok.SubjectID != subjectID {
		return domain.Token{}, false
	}
	delete(s.tokens, value)
	return tok, true
}

// Restore re-inserts a previously claimed record with its original
// expiry, so the subject can retry after a failed role grant.
func (s *Store) Restore(tok domain.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tok.Value] = tok
}

// Sweep removes every record expired at now and reports how many were
// evicted. Correctness never depends on the sweep; it only bounds
// memory growth from abandoned tokens.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for value, tok := range s.tokens {
		if tok.Expired(now) {
			delete(s.tokens, value)
			removed++
		}
	}
	return removed
}

// Len reports the number of live and not-yet-swept entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}
