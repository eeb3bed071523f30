package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openhouselabs/porchlight/pkg/models"
)

func userMsg(content string) models.ChatMessage {
	return models.NewUserMessage(content)
}

func assistantMsg(content string) models.ChatMessage {
	return models.NewAssistantMessage(content)
}

func TestAnalyzeConversation_LeadScore(t *testing.T) {
	t.Run("high value keyword scores three", func(t *testing.T) {
		ctx := AnalyzeConversation([]models.ChatMessage{userMsg("I am relocating next month")})
		assert.Equal(t, 3, ctx.LeadScore)
	})

	t.Run("categories sum independently", func(t *testing.T) {
		// "selling" (+3) and "price range" (+2) and "thank you" (+1)
		ctx := AnalyzeConversation([]models.ChatMessage{
			userMsg("thinking about selling, what price range is realistic? thank you"),
		})
		// "thinking about" also scores +2.
		assert.Equal(t, 8, ctx.LeadScore)
	})

	t.Run("appending a high value keyword adds exactly three", func(t *testing.T) {
		base := []models.ChatMessage{userMsg("hello there"), assistantMsg("Hi! How can I help?")}
		before := AnalyzeConversation(base).LeadScore

		grown := append(append([]models.ChatMessage{}, base...), userMsg("we are relocating"))
		after := AnalyzeConversation(grown).LeadScore

		assert.Equal(t, before+3, after)
	})

	t.Run("assistant messages are ignored", func(t *testing.T) {
		ctx := AnalyzeConversation([]models.ChatMessage{
			userMsg("hello"),
			assistantMsg("Are you thinking about selling? What's your price range?"),
		})
		assert.Equal(t, 0, ctx.LeadScore)
	})
}

func TestAnalyzeConversation_Stage(t *testing.T) {
	t.Run("score six reaches qualification", func(t *testing.T) {
		// "selling" +3, "buying" +3
		ctx := AnalyzeConversation([]models.ChatMessage{userMsg("selling one place, buying another")})
		assert.Equal(t, 6, ctx.LeadScore)
		assert.Equal(t, StageQualification, ctx.Stage)
	})

	t.Run("score four with few messages is rapport", func(t *testing.T) {
		// "interested" +2, "considering" +2
		ctx := AnalyzeConversation([]models.ChatMessage{userMsg("interested and considering options")})
		assert.Equal(t, 4, ctx.LeadScore)
		assert.Equal(t, StageRapport, ctx.Stage)
	})

	t.Run("three user messages reach rapport regardless of score", func(t *testing.T) {
		ctx := AnalyzeConversation([]models.ChatMessage{
			userMsg("hello"), userMsg("anyone home"), userMsg("hmm"),
		})
		assert.Equal(t, 0, ctx.LeadScore)
		assert.Equal(t, StageRapport, ctx.Stage)
	})

	t.Run("single quiet message is greeting", func(t *testing.T) {
		ctx := AnalyzeConversation([]models.ChatMessage{userMsg("hello")})
		assert.Equal(t, StageGreeting, ctx.Stage)
	})
}

func TestAnalyzeConversation_Topics(t *testing.T) {
	t.Run("one message can set several topics", func(t *testing.T) {
		ctx := AnalyzeConversation([]models.ChatMessage{
			userMsg("which neighborhood fits our price, and when should we start?"),
		})
		assert.ElementsMatch(t, []string{TopicNeighborhoods, TopicPricing, TopicTimeline}, ctx.Topics)
	})

	t.Run("no matches yields empty set", func(t *testing.T) {
		ctx := AnalyzeConversation([]models.ChatMessage{userMsg("hello")})
		assert.Empty(t, ctx.Topics)
	})

	t.Run("market trends", func(t *testing.T) {
		ctx := AnalyzeConversation([]models.ChatMessage{userMsg("how is the market doing")})
		assert.Equal(t, []string{TopicMarket}, ctx.Topics)
	})
}

func TestAnalyzeConversation_HasName(t *testing.T) {
	t.Run("detects introduction", func(t *testing.T) {
		ctx := AnalyzeConversation([]models.ChatMessage{userMsg("my name is Jordan")})
		assert.True(t, ctx.HasName)
	})

	t.Run("detects call me", func(t *testing.T) {
		// "call me" is detected here but not by the extractor's patterns;
		// the two heuristics are intentionally separate.
		ctx := AnalyzeConversation([]models.ChatMessage{userMsg("call me Alex")})
		assert.True(t, ctx.HasName)
	})

	t.Run("no introduction", func(t *testing.T) {
		ctx := AnalyzeConversation([]models.ChatMessage{userMsg("tell me about the schools")})
		assert.False(t, ctx.HasName)
	})
}

func TestAnalyzeConversation_Empty(t *testing.T) {
	ctx := AnalyzeConversation(nil)
	assert.Equal(t, 0, ctx.LeadScore)
	assert.Equal(t, StageGreeting, ctx.Stage)
	assert.Empty(t, ctx.Topics)
	assert.False(t, ctx.HasName)
}
