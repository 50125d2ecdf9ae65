package port

import (
	"context"

	"agriassure/internal/domain/entity"
)

// SessionRepository stores bot chat sessions.
type SessionRepository interface {
	// Get returns the session for the user, creating an idle one if absent
	Get(ctx context.Context, userID, chatID int64) (*entity.ChatSession, error)

	// Save stores the session
	Save(ctx context.Context, session *entity.ChatSession) error

	// UpdateState changes the state of an existing session
	UpdateState(ctx context.Context, userID int64, state entity.ChatState) error
}
