package server

import (
	"net/http"
	"sync"
	"time"

	"esports-registration/internal/registration"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "er_session"

// formSession binds one browser session to its form controller.
type formSession struct {
	id         string
	controller *registration.Controller
	lastSeen   time.Time
}

type sessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	create   func(id string) *registration.Controller
	sessions map[string]*formSession
}

func newSessionStore(ttl time.Duration, create func(id string) *registration.Controller) *sessionStore {
	return &sessionStore{
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
		create:   create,
		sessions: make(map[string]*formSession),
	}
}

// Ensure returns the caller's session, issuing a fresh cookie when the
// request carries none or one the store no longer knows.
func (s *sessionStore) Ensure(c *gin.Context) *formSession {
	if sess, ok := s.Lookup(c); ok {
		return sess
	}
	id := newSessionID()
	sess := &formSession{
		id:         id,
		controller: s.create(id),
		lastSeen:   s.now(),
	}
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// Lookup finds the session named by the request cookie without creating one.
func (s *sessionStore) Lookup(c *gin.Context) (*formSession, bool) {
	cookie, err := c.Request.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[cookie.Value]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess, true
}

// Sweep closes and forgets sessions idle for longer than the TTL and returns
// their ids.
func (s *sessionStore) Sweep() []string {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	expired := make([]*formSession, 0)
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	ids := make([]string, 0, len(expired))
	for _, sess := range expired {
		sess.controller.Close()
		ids = append(ids, sess.id)
	}
	return ids
}

func (s *sessionStore) CloseAll() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*formSession)
	s.mu.Unlock()
	for _, sess := range sessions {
		sess.controller.Close()
	}
}

func (s *sessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func newSessionID() string {
	return uuid.NewString()
}
