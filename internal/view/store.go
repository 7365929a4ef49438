package view

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/SAACyberV99/VibeFlix/internal/browse"
	"github.com/SAACyberV99/VibeFlix/internal/cache"
	"github.com/SAACyberV99/VibeFlix/internal/catalog"
	"github.com/SAACyberV99/VibeFlix/pkg/logger"
)

// Store keeps live sessions in memory, bounded by count and idle time.
// Nothing is persisted; a restart forgets every session.
type Store struct {
	sessions *cache.LRUCache[*Session]
	svc      catalog.Service
	engine   *browse.Engine
	logger   logger.Logger
}

func NewStore(capacity int, ttl time.Duration, svc catalog.Service, engine *browse.Engine, log logger.Logger) *Store {
	sessions := cache.New[*Session](capacity, ttl)
	sessions.OnEvict(func(id string, s *Session) {
		log.Debugf("[Sessions] dropping session %s", id)
		s.Close()
	})
	return &Store{
		sessions: sessions,
		svc:      svc,
		engine:   engine,
		logger:   log,
	}
}

// Get returns a live session and extends its lifetime.
func (st *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	s, ok := st.sessions.Get(id)
	if ok {
		st.sessions.Touch(id)
	}
	return s, ok
}

// Create registers a new session under a fresh random id.
func (st *Store) Create() *Session {
	s := NewSession(uuid.NewString(), st.svc, st.engine, st.logger)
	st.sessions.Set(s.ID, s)
	return s
}

// GetOrCreate returns the session for id, or a new one when id is unknown or expired.
func (st *Store) GetOrCreate(id string) (*Session, bool) {
	if s, ok := st.Get(id); ok {
		return s, false
	}
	return st.Create(), true
}

func (st *Store) Len() int {
	return st.sessions.Len()
}

// Close drops every session, cancelling their fetches.
func (st *Store) Close() {
	st.sessions.Clear()
}

// StartCleanup expires idle sessions until ctx is done.
func (st *Store) StartCleanup(ctx context.Context, every time.Duration) {
	st.sessions.StartCleanup(ctx, every)
}
