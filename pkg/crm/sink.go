package crm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/openhouselabs/porchlight/pkg/chat"
	"github.com/openhouselabs/porchlight/pkg/models"
)

// chatLeadType labels leads generated from chat conversations.
const chatLeadType = "Chat Lead"

// ForwardResult reports how a lead reached the CRM side.
type ForwardResult struct {
	Success bool   `json:"success"`
	Method  string `json:"method"` // "email" or "logged"
}

// LeadCreator persists local lead rows. Satisfied by services.LeadService.
type LeadCreator interface {
	Create(ctx context.Context, input models.CreateLeadInput) (*models.Lead, error)
}

// Sink implements the chat pipeline's lead capture: deduplicate, store a
// local lead row, and forward to the CRM intake.
type Sink struct {
	leads  LeadCreator
	agents chat.AgentDirectory
	mailer Mailer
	dedup  IdempotencyStore
	logger *zap.Logger
}

// NewSink wires the lead sink. mailer may be nil (forwarding then always
// falls back to logging); dedup may be nil (an in-process store is used).
func NewSink(leads LeadCreator, agents chat.AgentDirectory, mailer Mailer, dedup IdempotencyStore, logger *zap.Logger) *Sink {
	if dedup == nil {
		dedup = NewMemoryIdempotencyStore()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{leads: leads, agents: agents, mailer: mailer, dedup: dedup, logger: logger}
}

// Capture records a chat lead. A contact already captured for this session
// within the suppression window is skipped without error.
func (s *Sink) Capture(ctx context.Context, lead chat.ChatLead) error {
	key := LeadKey(lead.SessionID, lead.Contact.Phone, lead.Contact.Email)
	if !s.dedup.FirstSeen(ctx, key) {
		s.logger.Debug("duplicate chat lead suppressed",
			zap.String("session_id", lead.SessionID))
		return nil
	}

	_, err := s.leads.Create(ctx, models.CreateLeadInput{
		FirstName: lead.Contact.FirstName,
		LastName:  lead.Contact.LastName,
		Email:     lead.Contact.Email,
		Phone:     lead.Contact.Phone,
		Interest:  lead.Contact.Interest,
		Message:   fmt.Sprintf("%s: %s", chatLeadType, lead.Message),
		AgentID:   lead.AgentID,
		Source:    models.LeadSourceChat,
	})
	if err != nil {
		// Give the claim back: a transient storage failure must not suppress
		// the same contact for the rest of the dedup window.
		s.dedup.Release(ctx, key)
		return fmt.Errorf("failed to store chat lead: %w", err)
	}

	agentName, err := s.agents.DisplayName(ctx, lead.AgentID)
	if err != nil {
		agentName = ""
	}

	result := s.Forward(ctx, ForwardPayload{
		FirstName: lead.Contact.FirstName,
		LastName:  lead.Contact.LastName,
		Email:     lead.Contact.Email,
		Phone:     lead.Contact.Phone,
		Interest:  lead.Contact.Interest,
		Message:   lead.Message,
		AgentName: agentName,
		LeadType:  chatLeadType,
	})
	s.logger.Info("chat lead forwarded",
		zap.String("session_id", lead.SessionID),
		zap.String("method", result.Method))
	return nil
}

// Forward attempts the transactional email; on transport failure it logs the
// full payload and still reports success with method "logged". Having the
// lead recorded somewhere a human can see is the bar; delivery failure is
// never surfaced to the caller.
func (s *Sink) Forward(ctx context.Context, payload ForwardPayload) ForwardResult {
	if s.mailer != nil {
		err := s.mailer.Send(ctx, payload)
		if err == nil {
			return ForwardResult{Success: true, Method: "email"}
		}
		s.logger.Warn("lead email delivery failed, falling back to log", zap.Error(err))
	}

	s.logger.Info("lead forwarded via log",
		zap.String("first_name", payload.FirstName),
		zap.String("last_name", payload.LastName),
		zap.String("email", payload.Email),
		zap.String("phone", payload.Phone),
		zap.String("interest", payload.Interest),
		zap.String("neighborhoods", payload.Neighborhoods),
		zap.String("agent_name", payload.AgentName),
		zap.String("lead_type", payload.LeadType),
		zap.String("message", payload.Message))
	return ForwardResult{Success: true, Method: "logged"}
}
