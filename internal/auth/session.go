package auth

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"sync"

	"github.com/dom/account-service/internal/domain"
)

// SessionTokenLen is the size of an opaque session token in bytes.
const SessionTokenLen = 16

// SessionToken is an opaque 128-bit credential. Clients see the hex cookie
// form; the database stores the raw bytes.
type SessionToken [SessionTokenLen]byte

// ParseSessionToken decodes the cookie form of a session token.
func ParseSessionToken(s string) (SessionToken, error) {
	var t SessionToken
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != SessionTokenLen {
		return t, domain.ErrInvalidToken
	}
	copy(t[:], raw)
	return t, nil
}

// CookieValue returns the client-facing encoding of the token.
func (t SessionToken) CookieValue() string {
	return hex.EncodeToString(t[:])
}

// DatabaseValue returns the token bytes as stored in the sessions table.
func (t SessionToken) DatabaseValue() []byte {
	return t[:]
}

// TokenSource draws session tokens from an entropy source. The source is a
// single shared resource that is not safe for uncoordinated concurrent use,
// so reads are serialized behind a mutex. Production code passes
// crypto/rand.Reader; tests may pass a deterministic reader.
type TokenSource struct {
	mu     sync.Mutex
	random io.Reader
}

func NewTokenSource(random io.Reader) *TokenSource {
	if random == nil {
		random = rand.Reader
	}
	return &TokenSource{random: random}
}

// Generate draws a fresh 128-bit session token.
func (s *TokenSource) Generate() (SessionToken, error) {
	var t SessionToken
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.ReadFull(s.random, t[:]); err != nil {
		return t, err
	}
	return t, nil
}
