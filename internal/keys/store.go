package keys

import (
	"errors"
)

// TokenStore holds secrets such as the serve bearer token.
type TokenStore interface {
	Get(id string) (string, error)
	Put(id, value string) error
	Delete(id string) error
}

// AuthTokenID names the serve bearer token.
const AuthTokenID = "auth.token"

var ErrTokenNotFound = errors.New("token not found")

// MemoryStore keeps secrets in process memory.
type MemoryStore struct {
	Tokens map[string]string
}

func (s *MemoryStore) Get(id string) (string, error) {
	if s == nil || s.Tokens == nil {
		return "", ErrTokenNotFound
	}
	val, ok := s.Tokens[id]
	if !ok || val == "" {
		return "", ErrTokenNotFound
	}
	return val, nil
}

func (s *MemoryStore) Put(id, value string) error {
	if s.Tokens == nil {
		s.Tokens = map[string]string{}
	}
	s.Tokens[id] = value
	return nil
}

func (s *MemoryStore) Delete(id string) error {
	if s == nil || s.Tokens == nil {
		return nil
	}
	delete(s.Tokens, id)
	return nil
}

// ResolveToken prefers the configured token and falls back to the store.
// A missing stored token resolves to "" which disables auth.
func ResolveToken(configured string, store TokenStore) (string, error) {
	if configured != "" || store == nil {
		return configured, nil
	}
	tok, err := store.Get(AuthTokenID)
	if errors.Is(err, ErrTokenNotFound) {
		return "", nil
	}
	return tok, err
}
