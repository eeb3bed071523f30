// Package llm wraps the text-completion service that produces assistant
// replies for the chat widget.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/openhouselabs/porchlight/pkg/models"
)

// Config holds completion service settings.
type Config struct {
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

const (
	defaultModel       = "gpt-4o-mini"
	defaultTemperature = 0.7
	defaultMaxTokens   = 300
)

// Client generates assistant replies via an OpenAI-compatible chat API.
type Client struct {
	model llms.Model
	cfg   Config
}

// NewClient creates a completion client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}
	return &Client{model: model, cfg: cfg}, nil
}

// Generate produces the next assistant message for the conversation,
// speaking as the given agent.
func (c *Client) Generate(ctx context.Context, agentName string, history []models.ChatMessage) (string, error) {
	content := make([]llms.MessageContent, 0, len(history)+1)
	content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt(agentName)))

	for _, msg := range history {
		switch msg.Role {
		case models.RoleUser:
			content = append(content, llms.TextParts(llms.ChatMessageTypeHuman, msg.Content))
		case models.RoleAssistant:
			content = append(content, llms.TextParts(llms.ChatMessageTypeAI, msg.Content))
		}
	}

	resp, err := c.model.GenerateContent(ctx, content,
		llms.WithTemperature(c.cfg.Temperature),
		llms.WithMaxTokens(c.cfg.MaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion service returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

func systemPrompt(agentName string) string {
	return fmt.Sprintf(
		"You are the virtual assistant for real-estate agent %s. "+
			"Answer questions about neighborhoods, pricing, and the local market "+
			"conversationally and briefly. When a visitor shows interest in buying "+
			"or selling, invite them to share their name and the best way to reach them. "+
			"Never invent listings or quote exact prices.",
		agentName,
	)
}
