package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/openhouselabs/porchlight/pkg/models"
)

// AgentService reads agent profiles.
type AgentService struct {
	db *gorm.DB
}

// NewAgentService creates a new AgentService.
func NewAgentService(db *gorm.DB) *AgentService {
	return &AgentService{db: db}
}

// Get returns the agent by id, or ErrNotFound.
func (s *AgentService) Get(httpCtx context.Context, agentID int64) (*models.Agent, error) {
	if agentID <= 0 {
		return nil, NewValidationError("agent_id", "must be positive")
	}

	ctx, cancel := context.WithTimeout(httpCtx, dbTimeout)
	defer cancel()

	var agent models.Agent
	if err := s.db.WithContext(ctx).First(&agent, agentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	return &agent, nil
}

// DisplayName resolves the agent's presentable name. Satisfies the chat
// pipeline's AgentDirectory port.
func (s *AgentService) DisplayName(httpCtx context.Context, agentID int64) (string, error) {
	agent, err := s.Get(httpCtx, agentID)
	if err != nil {
		return "", err
	}
	return agent.DisplayName(), nil
}
