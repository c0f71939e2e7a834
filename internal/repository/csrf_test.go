package repository

import (
	"testing"
	"time"
)

func TestMapTokenStorageIssueAndConsumeOnce(t *testing.T) {
	s := NewMapTokenStorage(time.Minute, time.Minute)
	defer s.Stop()

	token := s.Issue()
	if token == "" {
		t.Fatal("Issue returned empty token")
	}
	if !s.Consume(token) {
		t.Fatal("first Consume of a fresh token failed")
	}
	if s.Consume(token) {
		t.Fatal("second Consume of the same token succeeded")
	}
}

func TestMapTokenStorageRejectsUnknownToken(t *testing.T) {
	s := NewMapTokenStorage(time.Minute, time.Minute)
	defer s.Stop()

	if s.Consume("never-issued") {
		t.Fatal("Consume accepted a token that was never issued")
	}
}

func TestMapTokenStorageExpiry(t *testing.T) {
	s := NewMapTokenStorage(time.Millisecond, time.Hour)
	defer s.Stop()

	token := s.Issue()
	time.Sleep(5 * time.Millisecond)
	if s.Consume(token) {
		t.Fatal("Consume accepted an expired token")
	}
}

func TestMapTokenStorageSweepRemovesExpired(t *testing.T) {
	s := NewMapTokenStorage(time.Millisecond, 5*time.Millisecond)
	defer s.Stop()

	s.Issue()
	s.Issue()
	time.Sleep(30 * time.Millisecond)

	s.mu.Lock()
	remaining := len(s.tokens)
	s.mu.Unlock()
	if remaining != 0 {
		t.Fatalf("sweep left %d expired tokens behind", remaining)
	}
}
