package web

import (
	"sync"
	"time"

	"github.com/erazemk/bamboorat/internal/listview"
	"github.com/erazemk/bamboorat/internal/notice"
)

// SessionIdle is how long an unused session is kept.
const SessionIdle = 2 * time.Hour

// Session is the per-identity UI state.
type Session struct {
	List    listview.Controller
	Notices *notice.Board

	lastSeen time.Time
}

// Sessions maps identity UIDs to their UI state.
type Sessions struct {
	noticeTTL time.Duration
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessions returns an empty session table.
func NewSessions(noticeTTL time.Duration, now func() time.Time) *Sessions {
	if now == nil {
		now = time.Now
	}
	return &Sessions{
		noticeTTL: noticeTTL,
		now:       now,
		sessions:  make(map[string]*Session),
	}
}

// Get returns the session of uid, creating it if needed. Idle sessions of
// other identities are dropped.
func (s *Sessions) Get(uid string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, sess := range s.sessions {
		if id != uid && now.Sub(sess.lastSeen) > SessionIdle {
			delete(s.sessions, id)
		}
	}

	sess, ok := s.sessions[uid]
	if !ok {
		sess = &Session{Notices: notice.NewBoard(s.noticeTTL, s.now)}
		s.sessions[uid] = sess
	}
	sess.lastSeen = now
	return sess
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
