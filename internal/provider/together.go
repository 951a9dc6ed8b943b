package provider

import (
	"context"
	"fmt"
)

const (
	togetherDefaultBaseURL = "https://api.together.xyz"
	togetherDefaultModel   = "mistralai/Mixtral-8x7B-Instruct-v0.1"
)

// Together is the last fallback tier. It speaks the legacy completions
// envelope: generated text sits at choices[0].text, not inside a message.
type Together struct {
	cfg AdapterConfig
}

func NewTogether(cfg AdapterConfig) *Together {
	cfg = cfg.WithDefaults(togetherDefaultBaseURL)
	if cfg.Model == "" {
		cfg.Model = togetherDefaultModel
	}
	return &Together{cfg: cfg}
}

func (t *Together) Name() string     { return "together" }
func (t *Together) Family() Family   { return FamilyCompletions }
func (t *Together) Configured() bool { return t.cfg.APIKey != "" }

type completionRequest struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

func (t *Together) Generate(ctx context.Context, prompt string) (string, error) {
	if !t.Configured() {
		return "", ErrNotConfigured
	}

	var resp completionResponse
	err := postJSON(ctx, t.cfg, t.cfg.BaseURL+"/v1/completions",
		map[string]string{"Authorization": "Bearer " + t.cfg.APIKey},
		completionRequest{
			Model:     t.cfg.Model,
			Prompt:    prompt,
			MaxTokens: 1024,
		},
		&resp,
	)
	if err != nil {
		return "", fmt.Errorf("together: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("together: no choices returned")
	}
	return resp.Choices[0].Text, nil
}
