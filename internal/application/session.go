package app

import (
	"context"
	"errors"

	"agriassure/internal/domain/entity"
	"agriassure/internal/domain/port"
)

// SessionService drives the bot dialogue and hands photos to the cascade.
type SessionService struct {
	repo    port.SessionRepository
	cascade *CascadeService
}

func NewSessionService(repo port.SessionRepository, cascade *CascadeService) *SessionService {
	return &SessionService{
		repo:    repo,
		cascade: cascade,
	}
}

func (s *SessionService) Get(ctx context.Context, userID, chatID int64) (*entity.ChatSession, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *SessionService) SetState(ctx context.Context, userID, chatID int64, state entity.ChatState) (*entity.ChatSession, error) {
	session, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	session.SetState(state)
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// BeginCheck puts the chat into waiting for a photo.
func (s *SessionService) BeginCheck(ctx context.Context, userID, chatID int64) (*entity.ChatSession, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingPhoto)
}

func (s *SessionService) Cancel(ctx context.Context, userID, chatID int64) (*entity.ChatSession, error) {
	return s.SetState(ctx, userID, chatID, entity.StateIdle)
}

// Diagnose classifies a photo and records the outcome on the session.
// A failed classification still returns the chat to idle.
func (s *SessionService) Diagnose(ctx context.Context, userID, chatID int64, photo []byte) (entity.PredictionResult, error) {
	if s.cascade == nil {
		return entity.PredictionResult{}, errors.New("cascade is not configured")
	}
	if err := s.repo.UpdateState(ctx, userID, entity.StateProcessing); err != nil {
		if _, err := s.SetState(ctx, userID, chatID, entity.StateProcessing); err != nil {
			return entity.PredictionResult{}, err
		}
	}

	result, cerr := s.cascade.Classify(ctx, photo)

	session, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return result, err
	}
	session.Record(result)
	if err := s.repo.Save(ctx, session); err != nil {
		return result, err
	}
	return result, cerr
}
