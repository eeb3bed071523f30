package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Neighborhood is guide content for an area the agent serves.
type Neighborhood struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Slug        string         `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Name        string         `gorm:"type:text;not null" json:"name"`
	Summary     string         `gorm:"type:text;not null;default:''" json:"summary"`
	MedianPrice int64          `gorm:"not null;default:0" json:"median_price"`
	Highlights  datatypes.JSON `gorm:"not null;default:'[]'" json:"highlights"`
}

func (Neighborhood) TableName() string { return "neighborhoods" }
