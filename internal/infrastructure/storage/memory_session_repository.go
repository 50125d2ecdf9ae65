package storage

import (
	"context"
	"fmt"
	"sync"

	"agriassure/internal/domain/entity"
	"agriassure/internal/domain/port"
)

// MemorySessionRepository keeps chat sessions in process memory.
// Sessions are copied in and out so callers never share a pointer with the store.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[int64]entity.ChatSession
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[int64]entity.ChatSession),
	}
}

// Get returns the session by user ID, creating an idle one if not found.
func (r *MemorySessionRepository) Get(ctx context.Context, userID, chatID int64) (*entity.ChatSession, error) {
	r.mu.RLock()
	s, exists := r.sessions[userID]
	r.mu.RUnlock()
	if exists {
		return &s, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, exists := r.sessions[userID]; exists {
		return &s, nil
	}
	created := entity.NewChatSession(userID, chatID)
	r.sessions[userID] = *created
	return created, nil
}

func (r *MemorySessionRepository) Save(ctx context.Context, session *entity.ChatSession) error {
	r.mu.Lock()
	r.sessions[session.UserID] = *session
	r.mu.Unlock()

	return nil
}

func (r *MemorySessionRepository) UpdateState(ctx context.Context, userID int64, state entity.ChatState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.sessions[userID]
	if !exists {
		return fmt.Errorf("session for user %d not found", userID)
	}
	s.SetState(state)
	r.sessions[userID] = s
	return nil
}

var _ port.SessionRepository = (*MemorySessionRepository)(nil)
