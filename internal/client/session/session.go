// Package session models the logged-in user explicitly. Services that need
// the current user receive a *Holder instead of looking one up globally.
package session

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/agroassist/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// Session is the authenticated user plus the bearer token issued at login.
type Session struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token,omitempty"`
	Subject     string       `json:"subject,omitempty"`
	ExpiresAt   time.Time    `json:"expires_at,omitempty"`
}

// New builds a Session. When token is a JWT its sub and exp claims are
// copied out; the signature is not verified because only the backend holds
// the key. Opaque tokens are kept as they are with no expiry.
func New(user *models.User, token string) *Session {
	s := &Session{User: user, AccessToken: token}
	if token == "" {
		return s
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return s
	}
	s.Subject = claims.Subject
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s
}

// Expired reports whether the token has an expiry that is not after now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Holder is the concurrency-safe slot for the current session.
type Holder struct {
	mu sync.RWMutex
	s  *Session
}

func NewHolder(s *Session) *Holder {
	return &Holder{s: s}
}

// Current returns the session, or nil when logged out.
func (h *Holder) Current() *Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.s
}

// User returns the current user, or nil when logged out.
func (h *Holder) User() *models.User {
	if s := h.Current(); s != nil {
		return s.User
	}
	return nil
}

// AccessToken implements client.TokenSource.
func (h *Holder) AccessToken() string {
	if s := h.Current(); s != nil {
		return s.AccessToken
	}
	return ""
}

func (h *Holder) Set(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.s = s
}

func (h *Holder) Clear() {
	h.Set(nil)
}
