package preferences

import (
	"context"
	"strings"
)

// Keys used by the client.
const (
	KeyLanguage = "language"
	KeySession  = "session"
)

// Store exposes typed access to the preferences the client reads before
// issuing language-sensitive requests.
type Store struct {
	repo     Repository
	fallback string
}

// NewStore wraps repo. fallback is returned by Language when no language
// has been chosen yet.
func NewStore(repo Repository, fallback string) *Store {
	return &Store{repo: repo, fallback: fallback}
}

// Language returns the stored language code or the fallback.
func (s *Store) Language(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, KeyLanguage)
	if err != nil {
		return s.fallback, err
	}
	if code := strings.TrimSpace(string(v)); code != "" {
		return code, nil
	}
	return s.fallback, nil
}

// SetLanguage stores code as the preferred language.
func (s *Store) SetLanguage(ctx context.Context, code string) error {
	return s.repo.Set(ctx, KeyLanguage, []byte(strings.TrimSpace(code)))
}

// Repository returns the underlying raw store.
func (s *Store) Repository() Repository {
	return s.repo
}
