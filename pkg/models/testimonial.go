package models

import (
	"time"

	"github.com/google/uuid"
)

// Testimonial sources. Stored rows are site-submitted; review-source entries
// are merged in at read time and never persisted.
const (
	TestimonialSourceSite   = "site"
	TestimonialSourceGoogle = "google"
)

// Testimonial is a client endorsement shown on an agent's profile page.
type Testimonial struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AgentID   int64     `gorm:"not null;index" json:"agent_id"`
	Author    string    `gorm:"type:text;not null" json:"author"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Rating    int       `gorm:"not null;default:5" json:"rating"`
	Source    string    `gorm:"type:text;not null" json:"source"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Testimonial) TableName() string { return "testimonials" }

// CreateTestimonialInput contains the fields accepted when storing a testimonial.
type CreateTestimonialInput struct {
	AgentID int64  `json:"agent_id"`
	Author  string `json:"author"`
	Text    string `json:"text"`
	Rating  int    `json:"rating"`
}
