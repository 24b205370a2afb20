package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/portfolio-builder/internal/editor"
)

// maxNotifications bounds the acknowledgements kept per session
const maxNotifications = 20

// session is one editor controller plus the acknowledgements it produced
type session struct {
	id         string
	controller *editor.Controller
	createdAt  time.Time

	mu            sync.Mutex
	notifications []editor.Notification
	lastSeen      time.Time
}

func (s *session) Notify(_ context.Context, n editor.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}
}

func (s *session) recent() []editor.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]editor.Notification{}, s.notifications...)
}

func (s *session) latest() *editor.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.notifications) == 0 {
		return nil
	}
	n := s.notifications[len(s.notifications)-1]
	return &n
}

func (s *session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// sessionStore keeps editing sessions in memory, keyed by a random id
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
	idleTTL  time.Duration
}

func newSessionStore(idleTTL time.Duration) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		idleTTL:  idleTTL,
	}
}

// create registers a session whose controller is built by newController. The session
// doubles as the controller's notifier, alongside the log notifier.
func (st *sessionStore) create(logger *zap.Logger, newController func(editor.Notifier) *editor.Controller) *session {
	now := time.Now()
	sess := &session{
		id:        uuid.NewString(),
		createdAt: now,
		lastSeen:  now,
	}
	logNotifier := editor.NewLogNotifier(logger.With(zap.String("session_id", sess.id)))
	sess.controller = newController(editor.NotifierFunc(func(ctx context.Context, n editor.Notification) {
		sess.Notify(ctx, n)
		logNotifier.Notify(ctx, n)
	}))

	st.mu.Lock()
	st.sessions[sess.id] = sess
	st.mu.Unlock()
	return sess
}

func (st *sessionStore) get(id string) (*session, error) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, &ErrSessionNotFound{SessionID: id}
	}
	sess.touch(time.Now())
	return sess, nil
}

func (st *sessionStore) delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// evictIdle drops sessions untouched since now minus the idle TTL and returns how many
func (st *sessionStore) evictIdle(now time.Time) int {
	if st.idleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-st.idleTTL)

	st.mu.Lock()
	defer st.mu.Unlock()
	evicted := 0
	for id, sess := range st.sessions {
		if sess.idleSince().Before(cutoff) {
			delete(st.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (st *sessionStore) count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
