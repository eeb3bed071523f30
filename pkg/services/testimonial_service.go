package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openhouselabs/porchlight/pkg/models"
	"github.com/openhouselabs/porchlight/pkg/reviews"
)

// ReviewSource supplies live public reviews for the agent's business listing.
type ReviewSource interface {
	Fetch(ctx context.Context) ([]reviews.Review, error)
}

// TestimonialService serves stored testimonials blended with live reviews.
type TestimonialService struct {
	db     *gorm.DB
	source ReviewSource
	logger *zap.Logger
}

// NewTestimonialService creates a new TestimonialService. source may be nil
// when no review integration is configured.
func NewTestimonialService(db *gorm.DB, source ReviewSource, logger *zap.Logger) *TestimonialService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TestimonialService{db: db, source: source, logger: logger}
}

// Create stores a site-submitted testimonial.
func (s *TestimonialService) Create(httpCtx context.Context, input models.CreateTestimonialInput) (*models.Testimonial, error) {
	if input.AgentID <= 0 {
		return nil, NewValidationError("agent_id", "must be positive")
	}
	if input.Text == "" {
		return nil, NewValidationError("text", "required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, NewValidationError("rating", "must be between 1 and 5")
	}

	ctx, cancel := context.WithTimeout(httpCtx, dbTimeout)
	defer cancel()

	row := &models.Testimonial{
		ID:        uuid.New(),
		AgentID:   input.AgentID,
		Author:    input.Author,
		Text:      input.Text,
		Rating:    input.Rating,
		Source:    models.TestimonialSourceSite,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to create testimonial: %w", err)
	}
	return row, nil
}

// ListForAgent returns stored testimonials for the agent unioned with live
// review-source entries whose text mentions the agent's first name. A
// review-source outage degrades silently to stored-only results; the request
// never fails for that reason.
func (s *TestimonialService) ListForAgent(httpCtx context.Context, agent *models.Agent) ([]models.Testimonial, error) {
	ctx, cancel := context.WithTimeout(httpCtx, dbTimeout)
	defer cancel()

	var stored []models.Testimonial
	err := s.db.WithContext(ctx).
		Where("agent_id = ?", agent.ID).
		Order("created_at DESC").
		Find(&stored).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}

	if s.source == nil {
		return stored, nil
	}

	live, err := s.source.Fetch(httpCtx)
	if err != nil {
		s.logger.Warn("review source unavailable, serving stored testimonials only",
			zap.Int64("agent_id", agent.ID), zap.Error(err))
		return stored, nil
	}

	firstName := strings.ToLower(agent.FirstName)
	for _, rv := range live {
		if firstName != "" && !strings.Contains(strings.ToLower(rv.Text), firstName) {
			continue
		}
		stored = append(stored, models.Testimonial{
			AgentID:   agent.ID,
			Author:    rv.Author,
			Text:      rv.Text,
			Rating:    rv.Rating,
			Source:    models.TestimonialSourceGoogle,
			CreatedAt: rv.Time,
		})
	}
	return stored, nil
}
