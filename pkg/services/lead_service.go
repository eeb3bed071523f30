package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openhouselabs/porchlight/pkg/models"
)

const defaultLeadListLimit = 50

// LeadService persists lead records.
type LeadService struct {
	db *gorm.DB
}

// NewLeadService creates a new LeadService.
func NewLeadService(db *gorm.DB) *LeadService {
	return &LeadService{db: db}
}

// Create inserts a lead row. New leads always enter with status "new".
func (s *LeadService) Create(httpCtx context.Context, input models.CreateLeadInput) (*models.Lead, error) {
	if input.AgentID <= 0 {
		return nil, NewValidationError("agent_id", "must be positive")
	}
	if input.Email == "" && input.Phone == "" {
		return nil, NewValidationError("contact", "email or phone is required")
	}

	ctx, cancel := context.WithTimeout(httpCtx, dbTimeout)
	defer cancel()

	source := input.Source
	if source == "" {
		source = models.LeadSourceWebForm
	}

	lead := &models.Lead{
		ID:            uuid.New(),
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         input.Email,
		Phone:         input.Phone,
		Interest:      input.Interest,
		Neighborhoods: input.Neighborhoods,
		Message:       input.Message,
		AgentID:       input.AgentID,
		Source:        source,
		Status:        models.LeadStatusNew,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(lead).Error; err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	return lead, nil
}

// List returns leads newest-first, optionally filtered by agent.
func (s *LeadService) List(httpCtx context.Context, filters models.LeadFilters) ([]models.Lead, error) {
	ctx, cancel := context.WithTimeout(httpCtx, dbTimeout)
	defer cancel()

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultLeadListLimit
	}

	q := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(filters.Offset)
	if filters.AgentID > 0 {
		q = q.Where("agent_id = ?", filters.AgentID)
	}

	var leads []models.Lead
	if err := q.Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}
