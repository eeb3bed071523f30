package chat

import (
	"regexp"
	"strings"

	"github.com/openhouselabs/porchlight/pkg/models"
)

// Conversation stages, ordered by engagement depth.
const (
	StageGreeting      = "greeting"
	StageRapport       = "rapport"
	StageQualification = "qualification"
)

// Topic flags surfaced by the analyzer.
const (
	TopicNeighborhoods = "neighborhoods"
	TopicPricing       = "pricing"
	TopicMarket        = "market"
	TopicTimeline      = "timeline"
)

// ConversationContext is a pure projection over a session's message history.
// Recomputed from scratch on every turn and never stored. In the current
// pipeline it is observed only as a logged signal: it does not gate lead
// creation or alter the generated reply.
type ConversationContext struct {
	HasName   bool     `json:"has_name"`
	LeadScore int      `json:"lead_score"`
	Stage     string   `json:"stage"`
	Topics    []string `json:"topics"`
}

// hasNamePattern intentionally differs from the extractor's introduction
// regex (note "call me" here vs "i am" there, and the trailing spaces).
// The two heuristics have always been maintained separately; do not unify
// them without revisiting the tests on both sides.
var hasNamePattern = regexp.MustCompile(`my name is|i'm |call me |this is `)

// Scoring keywords. Each occurrence counts independently; a single message
// can hit several categories and the total is unbounded above.
var (
	highValueKeywords  = []string{"selling", "listing", "buying", "moving", "relocating", "looking to buy", "want to sell"}
	midValueKeywords   = []string{"interested", "considering", "thinking about", "timeline", "price range"}
	engagementKeywords = []string{"thank you", "that helps", "great", "perfect", "sounds good"}
)

const (
	highValueWeight  = 3
	midValueWeight   = 2
	engagementWeight = 1
)

// AnalyzeConversation computes the lead score, conversation stage, and topic
// tags for a message history. Only user-role messages are considered. Pure
// and deterministic, O(n) in transcript size.
func AnalyzeConversation(messages []models.ChatMessage) ConversationContext {
	var b strings.Builder
	userCount := 0
	for _, msg := range messages {
		if msg.Role != models.RoleUser {
			continue
		}
		b.WriteString(strings.ToLower(msg.Content))
		b.WriteString(" ")
		userCount++
	}
	buf := b.String()

	ctx := ConversationContext{
		HasName:   hasNamePattern.MatchString(buf),
		LeadScore: scoreKeywords(buf),
		Topics:    detectTopics(buf),
	}
	ctx.Stage = classifyStage(ctx.LeadScore, userCount)
	return ctx
}

func scoreKeywords(buf string) int {
	score := 0
	for _, kw := range highValueKeywords {
		score += strings.Count(buf, kw) * highValueWeight
	}
	for _, kw := range midValueKeywords {
		score += strings.Count(buf, kw) * midValueWeight
	}
	for _, kw := range engagementKeywords {
		score += strings.Count(buf, kw) * engagementWeight
	}
	return score
}

// classifyStage is a priority ladder, not independent flags.
func classifyStage(score, userMessages int) string {
	switch {
	case score >= 6:
		return StageQualification
	case score >= 3 || userMessages >= 3:
		return StageRapport
	default:
		return StageGreeting
	}
}

func detectTopics(buf string) []string {
	topics := []string{}
	if strings.Contains(buf, "neighborhood") || strings.Contains(buf, "area") {
		topics = append(topics, TopicNeighborhoods)
	}
	if strings.Contains(buf, "price") || strings.Contains(buf, "cost") {
		topics = append(topics, TopicPricing)
	}
	if strings.Contains(buf, "market") || strings.Contains(buf, "trend") {
		topics = append(topics, TopicMarket)
	}
	if strings.Contains(buf, "timeline") || strings.Contains(buf, "when") {
		topics = append(topics, TopicTimeline)
	}
	return topics
}
