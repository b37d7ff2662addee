// Package csrf issues and checks session-bound form tokens.
//
// Each session carries a random 32-byte base. The emitted token is an
// HMAC-SHA256 of that base keyed by the application secret, so a token cannot
// be forged without the server key and cannot be replayed across sessions.
package csrf

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// FieldName is the form field every state-changing POST must carry.
const FieldName = "csrf_token"

const baseSize = 32

// Session is the slice of session state the token service needs.
type Session interface {
	CSRFBase() string
	SetCSRFBase(base string)
}

// Service signs and validates tokens for one application secret.
type Service struct {
	secret []byte
}

// NewService builds a Service. The secret must be the configured application
// signing key; an empty secret is a configuration error caught at startup.
func NewService(secret []byte) *Service {
	return &Service{secret: secret}
}

// Generate returns the token for the session, creating the session base on
// first use.
func (s *Service) Generate(sess Session) (string, error) {
	base := sess.CSRFBase()
	if base == "" {
		raw := make([]byte, baseSize)
		if _, err := rand.Read(raw); err != nil {
			return "", fmt.Errorf("generate csrf base: %w", err)
		}
		base = hex.EncodeToString(raw)
		sess.SetCSRFBase(base)
	}
	return s.sign(base), nil
}

// Validate reports whether the token matches the session's base. A missing
// base, empty token or any single-character mutation all fail.
func (s *Service) Validate(sess Session, token string) bool {
	base := sess.CSRFBase()
	if base == "" || token == "" {
		return false
	}
	expected := s.sign(base)
	return hmac.Equal([]byte(expected), []byte(token))
}

func (s *Service) sign(base string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(base))
	return hex.EncodeToString(mac.Sum(nil))
}
