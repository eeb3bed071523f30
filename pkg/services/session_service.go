// Package services contains business logic service layer implementations.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openhouselabs/porchlight/pkg/chat"
	"github.com/openhouselabs/porchlight/pkg/models"
)

const dbTimeout = 5 * time.Second

// SessionService persists chat sessions. Session ids are caller-generated
// opaque strings; the service never inspects or validates their shape.
type SessionService struct {
	db *gorm.DB
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

// Get returns the session for sessionID, or chat.ErrSessionNotFound.
func (s *SessionService) Get(httpCtx context.Context, sessionID string) (*models.ChatSession, error) {
	if sessionID == "" {
		return nil, NewValidationError("session_id", "required")
	}

	ctx, cancel := context.WithTimeout(httpCtx, dbTimeout)
	defer cancel()

	var sess models.ChatSession
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&sess).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, chat.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &sess, nil
}

// Create inserts a new session row seeded with the given message log.
func (s *SessionService) Create(httpCtx context.Context, sessionID string, agentID int64, messages []models.ChatMessage) (*models.ChatSession, error) {
	if sessionID == "" {
		return nil, NewValidationError("session_id", "required")
	}
	if agentID <= 0 {
		return nil, NewValidationError("agent_id", "must be positive")
	}

	ctx, cancel := context.WithTimeout(httpCtx, dbTimeout)
	defer cancel()

	now := time.Now().UTC()
	sess := &models.ChatSession{
		ID:        uuid.New(),
		SessionID: sessionID,
		AgentID:   agentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := sess.SetMessageLog(messages); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(sess).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return sess, nil
}

// Update replaces the session's message array wholesale and bumps updated_at.
func (s *SessionService) Update(httpCtx context.Context, sessionID string, messages []models.ChatMessage) (*models.ChatSession, error) {
	if sessionID == "" {
		return nil, NewValidationError("session_id", "required")
	}

	ctx, cancel := context.WithTimeout(httpCtx, dbTimeout)
	defer cancel()

	var sess models.ChatSession
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&sess).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, chat.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session for update: %w", err)
	}

	if err := sess.SetMessageLog(messages); err != nil {
		return nil, err
	}
	sess.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(&sess).Error; err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	return &sess, nil
}
