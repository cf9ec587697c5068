package server

import (
	"testing"
	"time"

	"github.com/matzehuels/dagcheck/pkg/errors"
)

func TestSessionsExpire(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newSessions(2, time.Minute)
	s.now = func() time.Time { return now }

	idA, _, err := s.create()
	if err != nil {
		t.Fatal(err)
	}
	idB, _, err := s.create()
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := s.create(); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Fatalf("create over limit: err = %v", err)
	}

	// Touching A keeps it alive past B's expiry.
	now = now.Add(50 * time.Second)
	if _, err := s.get(idA); err != nil {
		t.Fatal(err)
	}
	now = now.Add(30 * time.Second)

	if _, err := s.get(idB); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("expired session: err = %v, want NOT_FOUND", err)
	}
	if _, err := s.get(idA); err != nil {
		t.Errorf("touched session expired: %v", err)
	}

	// A slot is free again, so create succeeds.
	if _, _, err := s.create(); err != nil {
		t.Errorf("create after expiry: %v", err)
	}
}

func TestSessionsCleanup(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newSessions(10, time.Minute)
	s.now = func() time.Time { return now }

	for range 3 {
		if _, _, err := s.create(); err != nil {
			t.Fatal(err)
		}
	}
	if n := s.cleanup(); n != 0 {
		t.Errorf("cleanup before expiry removed %d", n)
	}
	now = now.Add(2 * time.Minute)
	if n := s.cleanup(); n != 3 {
		t.Errorf("cleanup removed %d, want 3", n)
	}
	if s.len() != 0 {
		t.Errorf("len = %d after cleanup", s.len())
	}
}

func TestSessionsRemove(t *testing.T) {
	s := newSessions(1, time.Minute)
	id, _, err := s.create()
	if err != nil {
		t.Fatal(err)
	}
	if !s.remove(id) {
		t.Error("remove existing = false")
	}
	if s.remove(id) {
		t.Error("remove twice = true")
	}
}
