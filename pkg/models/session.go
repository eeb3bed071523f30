// Package models contains persisted entities and service-layer input types.
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatSession is one caller-identified conversation between a site visitor
// and the virtual assistant, scoped to a single agent. The session identifier
// is generated client-side and treated as an opaque unique key; the message
// log is stored as a single JSON column and replaced wholesale on update.
type ChatSession struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID string         `gorm:"type:text;not null;uniqueIndex" json:"session_id"`
	AgentID   int64          `gorm:"not null;index" json:"agent_id"`
	Messages  datatypes.JSON `gorm:"not null;default:'[]'" json:"messages"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (ChatSession) TableName() string { return "chat_sessions" }

// MessageLog decodes the stored message array.
func (s *ChatSession) MessageLog() ([]ChatMessage, error) {
	if len(s.Messages) == 0 {
		return nil, nil
	}
	var msgs []ChatMessage
	if err := json.Unmarshal(s.Messages, &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode session messages: %w", err)
	}
	return msgs, nil
}

// SetMessageLog encodes msgs into the stored message column.
func (s *ChatSession) SetMessageLog(msgs []ChatMessage) error {
	raw, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("failed to encode session messages: %w", err)
	}
	s.Messages = datatypes.JSON(raw)
	return nil
}
