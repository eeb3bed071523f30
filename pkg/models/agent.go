package models

// Agent is a real-estate agent profile served on the marketing site.
type Agent struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"type:text;not null" json:"first_name"`
	LastName  string `gorm:"type:text;not null" json:"last_name"`
	Email     string `gorm:"type:text;not null;default:''" json:"email"`
	Phone     string `gorm:"type:text;not null;default:''" json:"phone"`
	Title     string `gorm:"type:text;not null;default:''" json:"title"`
	Bio       string `gorm:"type:text;not null;default:''" json:"bio"`
}

func (Agent) TableName() string { return "agents" }

// DisplayName is the agent's name as presented by the chat assistant.
func (a *Agent) DisplayName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}
