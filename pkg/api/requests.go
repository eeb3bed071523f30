package api

// ChatRequest is the request body for POST /api/chat.
type ChatRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	AgentID   int64  `json:"agent_id" validate:"required,gt=0"`
	Message   string `json:"message" validate:"required"`
}

// CreateLeadRequest is the request body for POST /api/leads.
type CreateLeadRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	Interest      string `json:"interest"`
	Neighborhoods string `json:"neighborhoods"`
	Message       string `json:"message"`
	AgentID       int64  `json:"agent_id" validate:"required,gt=0"`
	Source        string `json:"source"`
}

// CreateTestimonialRequest is the request body for
// POST /api/agents/:agentId/testimonials.
type CreateTestimonialRequest struct {
	Author string `json:"author" validate:"required"`
	Text   string `json:"text" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}
