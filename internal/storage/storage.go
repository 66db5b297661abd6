package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lehigh-university-libraries/sketchbook/internal/gallery"
	"github.com/lehigh-university-libraries/sketchbook/internal/models"
)

// SessionStore keeps drawing sessions in memory. Nothing survives a restart
// except files already saved to disk.
type SessionStore struct {
	sessions map[string]*models.DrawingSession
	sink     gallery.Sink
	mu       sync.RWMutex
}

// New returns an empty store whose galleries save through sink.
func New(sink gallery.Sink) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.DrawingSession),
		sink:     sink,
	}
}

// Create starts a new session with an empty gallery.
func (s *SessionStore) Create() *models.DrawingSession {
	session := &models.DrawingSession{
		ID:        uuid.NewString(),
		Gallery:   gallery.New(s.sink),
		CreatedAt: time.Now(),
	}
	s.Set(session.ID, session)
	return session
}

func (s *SessionStore) Get(sessionID string) (*models.DrawingSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

func (s *SessionStore) Set(sessionID string, session *models.DrawingSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = session
}

// GetAll returns every session ordered by creation time.
func (s *SessionStore) GetAll() []*models.DrawingSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.DrawingSession, 0, len(s.sessions))
	for _, v := range s.sessions {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
