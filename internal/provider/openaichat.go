package provider

import (
	"context"
	"fmt"
)

const (
	groqDefaultBaseURL = "https://api.groq.com/openai"
	groqDefaultModel   = "llama-3.1-8b-instant"

	openAIDefaultBaseURL = "https://api.openai.com"
	openAIDefaultModel   = "gpt-4o-mini"
)

// OpenAIChat speaks the chat-completions dialect shared by Groq and OpenAI.
// The chain holds two instances of it: Groq as the fast second tier and
// OpenAI as a legacy fallback.
type OpenAIChat struct {
	name string
	cfg  AdapterConfig
}

// NewGroq creates the fast deterministic second-tier adapter.
func NewGroq(cfg AdapterConfig) *OpenAIChat {
	cfg = cfg.WithDefaults(groqDefaultBaseURL)
	if cfg.Model == "" {
		cfg.Model = groqDefaultModel
	}
	return &OpenAIChat{name: "groq", cfg: cfg}
}

// NewOpenAI creates the legacy chat fallback adapter.
func NewOpenAI(cfg AdapterConfig) *OpenAIChat {
	cfg = cfg.WithDefaults(openAIDefaultBaseURL)
	if cfg.Model == "" {
		cfg.Model = openAIDefaultModel
	}
	return &OpenAIChat{name: "openai", cfg: cfg}
}

func (o *OpenAIChat) Name() string     { return o.name }
func (o *OpenAIChat) Family() Family   { return FamilyOpenAIChat }
func (o *OpenAIChat) Configured() bool { return o.cfg.APIKey != "" }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (o *OpenAIChat) Generate(ctx context.Context, prompt string) (string, error) {
	if !o.Configured() {
		return "", ErrNotConfigured
	}

	var resp chatResponse
	err := postJSON(ctx, o.cfg, o.cfg.BaseURL+"/v1/chat/completions",
		map[string]string{"Authorization": "Bearer " + o.cfg.APIKey},
		chatRequest{
			Model:       o.cfg.Model,
			Messages:    []chatMessage{{Role: "user", Content: prompt}},
			Temperature: 0.9,
		},
		&resp,
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", o.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices returned", o.name)
	}
	return resp.Choices[0].Message.Content, nil
}
