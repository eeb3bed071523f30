package models

import (
	"time"

	"github.com/google/uuid"
)

// Lead statuses. New leads always start as "new"; later transitions belong to
// the CRM, not this service.
const (
	LeadStatusNew = "new"
)

// Lead sources distinguish where a lead entered the funnel.
const (
	LeadSourceChat    = "chat"
	LeadSourceWebForm = "web_form"
)

// Lead is a prospective client's contact details and stated interest,
// destined for the CRM.
type Lead struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName     string    `gorm:"type:text;not null;default:''" json:"first_name"`
	LastName      string    `gorm:"type:text;not null;default:''" json:"last_name"`
	Email         string    `gorm:"type:text;not null;default:''" json:"email"`
	Phone         string    `gorm:"type:text;not null;default:''" json:"phone"`
	Interest      string    `gorm:"type:text;not null;default:''" json:"interest"`
	Neighborhoods string    `gorm:"type:text;not null;default:''" json:"neighborhoods"`
	Message       string    `gorm:"type:text;not null;default:''" json:"message"`
	AgentID       int64     `gorm:"not null;index" json:"agent_id"`
	Source        string    `gorm:"type:text;not null" json:"source"`
	Status        string    `gorm:"type:text;not null" json:"status"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}

func (Lead) TableName() string { return "leads" }

// CreateLeadInput contains the fields accepted when creating a lead.
type CreateLeadInput struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Interest      string `json:"interest"`
	Neighborhoods string `json:"neighborhoods"`
	Message       string `json:"message"`
	AgentID       int64  `json:"agent_id"`
	Source        string `json:"source"`
}

// LeadFilters narrows lead listings.
type LeadFilters struct {
	AgentID int64
	Limit   int
	Offset  int
}
