package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/openhouselabs/porchlight/pkg/models"
)

// NeighborhoodService serves area guide content.
type NeighborhoodService struct {
	db *gorm.DB
}

// NewNeighborhoodService creates a new NeighborhoodService.
func NewNeighborhoodService(db *gorm.DB) *NeighborhoodService {
	return &NeighborhoodService{db: db}
}

// List returns all neighborhoods ordered by name.
func (s *NeighborhoodService) List(httpCtx context.Context) ([]models.Neighborhood, error) {
	ctx, cancel := context.WithTimeout(httpCtx, dbTimeout)
	defer cancel()

	var hoods []models.Neighborhood
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&hoods).Error; err != nil {
		return nil, fmt.Errorf("failed to list neighborhoods: %w", err)
	}
	return hoods, nil
}

// GetBySlug returns one neighborhood, or ErrNotFound.
func (s *NeighborhoodService) GetBySlug(httpCtx context.Context, slug string) (*models.Neighborhood, error) {
	if slug == "" {
		return nil, NewValidationError("slug", "required")
	}

	ctx, cancel := context.WithTimeout(httpCtx, dbTimeout)
	defer cancel()

	var hood models.Neighborhood
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&hood).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get neighborhood: %w", err)
	}
	return &hood, nil
}
