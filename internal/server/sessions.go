package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/dagcheck/pkg/editor"
	"github.com/matzehuels/dagcheck/pkg/errors"
)

// session is one open editor. It expires after ttl without any request.
type session struct {
	editor    *editor.Editor
	expiresAt time.Time
}

func (s *session) isExpired(now time.Time) bool {
	return now.After(s.expiresAt)
}

// sessions is the in-memory registry of open editors.
type sessions struct {
	mu  sync.Mutex
	max int
	ttl time.Duration
	m   map[string]*session
	now func() time.Time
}

func newSessions(max int, ttl time.Duration) *sessions {
	return &sessions{max: max, ttl: ttl, m: make(map[string]*session), now: time.Now}
}

func (s *sessions) create(opts ...editor.Option) (string, *editor.Editor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.m) >= s.max {
		s.cleanupLocked()
	}
	if len(s.m) >= s.max {
		return "", nil, errors.New(errors.ErrCodeUnsupported, "session limit of %d reached", s.max)
	}
	id := uuid.NewString()
	ed := editor.New(opts...)
	s.m[id] = &session{editor: ed, expiresAt: s.now().Add(s.ttl)}
	return id, ed, nil
}

// get returns the editor for id and extends its lifetime.
func (s *sessions) get(id string) (*editor.Editor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess, ok := s.m[id]
	if ok && sess.isExpired(now) {
		delete(s.m, id)
		ok = false
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "editor %q not found", id)
	}
	sess.expiresAt = now.Add(s.ttl)
	return sess.editor, nil
}

func (s *sessions) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.m[id]
	delete(s.m, id)
	return ok
}

// cleanup drops expired sessions and returns how many were removed.
func (s *sessions) cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleanupLocked()
}

func (s *sessions) cleanupLocked() int {
	now := s.now()
	n := 0
	for id, sess := range s.m {
		if sess.isExpired(now) {
			delete(s.m, id)
			n++
		}
	}
	return n
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
