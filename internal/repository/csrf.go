package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// TokenStorage issues and consumes single-use anti-forgery tokens.
// Consume reports whether the token was valid; a token can be consumed
// at most once.
type TokenStorage interface {
	Issue() string
	Consume(token string) bool
}

// MapTokenStorage keeps tokens in process memory with an expiry
// timestamp per entry and a periodic sweep removing stale ones.
type MapTokenStorage struct {
	mu     sync.Mutex
	tokens map[string]time.Time
	ttl    time.Duration
	done   chan struct{}
}

func NewMapTokenStorage(ttl, sweepInterval time.Duration) *MapTokenStorage {
	s := &MapTokenStorage{
		tokens: make(map[string]time.Time),
		ttl:    ttl,
		done:   make(chan struct{}),
	}
	go s.sweep(sweepInterval)
	return s
}

func (s *MapTokenStorage) Issue() string {
	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = time.Now().Add(s.ttl)
	s.mu.Unlock()
	return token
}

func (s *MapTokenStorage) Consume(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, found := s.tokens[token]
	if !found {
		return false
	}
	delete(s.tokens, token)
	return time.Now().Before(expiry)
}

func (s *MapTokenStorage) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for token, expiry := range s.tokens {
				if now.After(expiry) {
					delete(s.tokens, token)
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *MapTokenStorage) Stop() {
	close(s.done)
}
