package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/openhouselabs/porchlight/pkg/models"
)

// fallbackAgentName is used when the agent lookup fails; a missing profile
// must not break the visitor's conversation.
const fallbackAgentName = "the agent"

// leadMessageTailChars bounds the transcript slice stored as the lead's
// message body.
const leadMessageTailChars = 400

// ErrSessionNotFound is returned by SessionStore implementations when no
// session exists for the given id.
var ErrSessionNotFound = errors.New("chat session not found")

// SessionStore persists chat sessions keyed by their opaque caller-generated
// session id.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.ChatSession, error)
	Create(ctx context.Context, sessionID string, agentID int64, messages []models.ChatMessage) (*models.ChatSession, error)
	Update(ctx context.Context, sessionID string, messages []models.ChatMessage) (*models.ChatSession, error)
}

// AgentDirectory resolves agent display names.
type AgentDirectory interface {
	DisplayName(ctx context.Context, agentID int64) (string, error)
}

// Generator produces the next assistant message for a conversation. It is
// the one collaborator whose failure fails the whole turn.
type Generator interface {
	Generate(ctx context.Context, agentName string, history []models.ChatMessage) (string, error)
}

// ChatLead is the payload handed to the lead sink when a conversation yields
// usable contact details.
type ChatLead struct {
	SessionID string
	AgentID   int64
	Contact   ContactInfo
	Message   string
}

// LeadSink records qualified leads. Capture is best-effort from the
// orchestrator's point of view: errors are logged, never surfaced to the
// visitor.
type LeadSink interface {
	Capture(ctx context.Context, lead ChatLead) error
}

// Orchestrator runs one chat turn end to end: session load, context
// analysis, paced reply generation, contact extraction, lead capture, and
// session persistence.
type Orchestrator struct {
	sessions SessionStore
	agents   AgentDirectory
	gen      Generator
	sink     LeadSink
	pacer    *Pacer
	locks    *sessionLocks
	logger   *zap.Logger
}

// NewOrchestrator wires the pipeline's collaborators.
func NewOrchestrator(sessions SessionStore, agents AgentDirectory, gen Generator, sink LeadSink, pacer *Pacer, logger *zap.Logger) *Orchestrator {
	if pacer == nil {
		pacer = NewPacer(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		sessions: sessions,
		agents:   agents,
		gen:      gen,
		sink:     sink,
		pacer:    pacer,
		locks:    newSessionLocks(),
		logger:   logger,
	}
}

// HandleTurn processes one inbound user message and returns the persisted
// session including the assistant's reply. Reply delivery is the primary
// obligation: generation failure aborts the turn with no partial persistence,
// while lead capture failures are swallowed after logging.
func (o *Orchestrator) HandleTurn(ctx context.Context, sessionID string, agentID int64, message string) (*models.ChatSession, error) {
	release := o.locks.acquire(sessionID)
	defer release()

	// Load or seed the session. A brand-new session is not persisted until
	// the full turn has succeeded.
	existing := true
	var messages []models.ChatMessage

	sess, err := o.sessions.Get(ctx, sessionID)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		existing = false
	case err != nil:
		return nil, fmt.Errorf("failed to load session: %w", err)
	default:
		messages, err = sess.MessageLog()
		if err != nil {
			return nil, err
		}
		agentID = sess.AgentID
	}
	messages = append(messages, models.NewUserMessage(message))

	// Context analysis is a side-observation: logged for routing and
	// follow-up tooling, not wired into the reply or lead decisions.
	convCtx := AnalyzeConversation(messages)
	o.logger.Info("conversation context",
		zap.String("session_id", sessionID),
		zap.Int("lead_score", convCtx.LeadScore),
		zap.String("stage", convCtx.Stage),
		zap.Strings("topics", convCtx.Topics),
		zap.Bool("has_name", convCtx.HasName))

	agentName, err := o.agents.DisplayName(ctx, agentID)
	if err != nil {
		o.logger.Warn("agent lookup failed, using placeholder",
			zap.Int64("agent_id", agentID), zap.Error(err))
		agentName = fallbackAgentName
	}

	if err := o.pacer.Wait(ctx, o.pacer.DelayFor(message)); err != nil {
		return nil, fmt.Errorf("failed waiting for reply pacing: %w", err)
	}

	reply, err := o.gen.Generate(ctx, agentName, conversationHistory(messages))
	if err != nil {
		return nil, fmt.Errorf("failed to generate reply: %w", err)
	}
	messages = append(messages, models.NewAssistantMessage(reply))

	o.captureLead(ctx, sessionID, agentID, messages)

	if existing {
		sess, err = o.sessions.Update(ctx, sessionID, messages)
	} else {
		sess, err = o.sessions.Create(ctx, sessionID, agentID, messages)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return sess, nil
}

// captureLead scans the full transcript and, when valid contact details are
// present, hands a lead to the sink. Best-effort by design: a broken CRM
// integration must never disrupt the chat experience.
func (o *Orchestrator) captureLead(ctx context.Context, sessionID string, agentID int64, messages []models.ChatMessage) {
	transcript := buildTranscript(messages)
	info := ExtractContactInfo(transcript)
	if !info.HasValidContact {
		return
	}

	err := o.sink.Capture(ctx, ChatLead{
		SessionID: sessionID,
		AgentID:   agentID,
		Contact:   info,
		Message:   transcriptTail(transcript, leadMessageTailChars),
	})
	if err != nil {
		o.logger.Error("lead capture failed",
			zap.String("session_id", sessionID),
			zap.Int64("agent_id", agentID),
			zap.Error(err))
		return
	}
	o.logger.Info("chat lead captured",
		zap.String("session_id", sessionID),
		zap.String("interest", info.Interest))
}

// conversationHistory filters the log to the user/assistant exchange sent to
// the generator. System or meta roles, should they ever appear, are excluded.
func conversationHistory(messages []models.ChatMessage) []models.ChatMessage {
	history := make([]models.ChatMessage, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == models.RoleUser || msg.Role == models.RoleAssistant {
			history = append(history, msg)
		}
	}
	return history
}

func buildTranscript(messages []models.ChatMessage) string {
	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		parts = append(parts, msg.Content)
	}
	return strings.Join(parts, " ")
}

func transcriptTail(transcript string, maxChars int) string {
	if len(transcript) <= maxChars {
		return transcript
	}
	start := len(transcript) - maxChars
	// Never split a multi-byte rune at the cut point.
	for start < len(transcript) && !utf8.RuneStart(transcript[start]) {
		start++
	}
	return transcript[start:]
}
