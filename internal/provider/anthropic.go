package provider

import (
	"context"
	"fmt"
)

const (
	anthropicDefaultBaseURL = "https://api.anthropic.com"
	anthropicDefaultModel   = "claude-3-5-sonnet-latest"
	anthropicVersion        = "2023-06-01"
)

// Anthropic is the primary provider: highest creative quality, tried first.
type Anthropic struct {
	cfg AdapterConfig
}

func NewAnthropic(cfg AdapterConfig) *Anthropic {
	cfg = cfg.WithDefaults(anthropicDefaultBaseURL)
	if cfg.Model == "" {
		cfg.Model = anthropicDefaultModel
	}
	return &Anthropic{cfg: cfg}
}

func (a *Anthropic) Name() string     { return "anthropic" }
func (a *Anthropic) Family() Family   { return FamilyAnthropic }
func (a *Anthropic) Configured() bool { return a.cfg.APIKey != "" }

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (a *Anthropic) Generate(ctx context.Context, prompt string) (string, error) {
	if !a.Configured() {
		return "", ErrNotConfigured
	}

	var resp anthropicResponse
	err := postJSON(ctx, a.cfg, a.cfg.BaseURL+"/v1/messages",
		map[string]string{
			"x-api-key":         a.cfg.APIKey,
			"anthropic-version": anthropicVersion,
		},
		anthropicRequest{
			Model:     a.cfg.Model,
			MaxTokens: 1024,
			Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
		},
		&resp,
	)
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("anthropic: empty content blocks")
	}
	return resp.Content[0].Text, nil
}
