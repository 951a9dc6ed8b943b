// Package provider holds the LLM adapters and the ordered fallback chain
// that turns a combo request into raw model text. Each adapter normalizes
// its provider's response envelope into a plain string; everything past the
// transport level (JSON shape, format obedience) is the parser's and
// validator's problem, not the chain's.
package provider

import (
	"context"
	"errors"
)

// Family groups providers whose prompt dialect and response envelope match.
// The prompt builder and the result assembler branch on this instead of on
// individual provider names.
type Family string

const (
	// FamilyAnthropic is the messages API: text at content[0].text.
	FamilyAnthropic Family = "anthropic"
	// FamilyOpenAIChat is the chat-completions envelope:
	// choices[0].message.content.
	FamilyOpenAIChat Family = "openai-chat"
	// FamilyCompletions is the legacy completions envelope:
	// choices[0].text.
	FamilyCompletions Family = "completions"
)

var (
	// ErrNotConfigured marks an adapter skipped for a missing credential.
	ErrNotConfigured = errors.New("provider not configured")

	// ErrNoProvider means no adapter in the chain had credentials at all.
	ErrNoProvider = errors.New("no provider configured")

	// ErrAllProvidersFailed means every configured adapter failed at the
	// transport level.
	ErrAllProvidersFailed = errors.New("all providers failed")
)

// Adapter is one upstream LLM endpoint.
type Adapter interface {
	Name() string
	Family() Family
	Configured() bool

	// Generate posts the prompt and returns the generated text extracted
	// from the provider's envelope. Any non-2xx status or transport error
	// is returned as an error; content validity is not checked here.
	Generate(ctx context.Context, prompt string) (string, error)
}
