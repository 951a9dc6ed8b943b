package combo

import (
	"fmt"
	"strings"
)

// Mode selects which kinds of combos the pipeline produces.
type Mode string

const (
	ModeEmoji Mode = "emoji"
	ModeAscii Mode = "ascii"
	ModeBoth  Mode = "both"
)

// ParseMode validates a client-supplied mode string. Unknown values are a
// client error, rejected before any rate-limit or provider work happens.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeEmoji, ModeAscii, ModeBoth:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid mode %q", s)
	}
}

// WantsEmoji reports whether the emoji bucket may be non-empty.
func (m Mode) WantsEmoji() bool { return m == ModeEmoji || m == ModeBoth }

// WantsAscii reports whether the ascii bucket may be non-empty.
func (m Mode) WantsAscii() bool { return m == ModeAscii || m == ModeBoth }

// Field caps applied before the request is used anywhere: fingerprinting,
// prompting, or logging.
const (
	MaxTopicLen = 160
	MaxToneLen  = 40
	MaxSeedLen  = 32
)

const (
	// RequestedCandidates is how many combos the model is asked for.
	RequestedCandidates = 6
	// MaxPerBucket caps each result bucket.
	MaxPerBucket = 6
	// MinLines and MaxLines bound the non-empty line count of a candidate.
	MinLines = 1
	MaxLines = 3
)

// GenerationRequest is a normalized combo request.
type GenerationRequest struct {
	Topic    string `json:"topic"`
	Mode     Mode   `json:"mode"`
	Tone     string `json:"tone"`
	Seed     string `json:"seed"`
	LineHint int    `json:"lineHint"`
}

// Normalize truncates free-text fields to their caps and clamps the line
// hint. Every consumer sees the request only through this.
func (r GenerationRequest) Normalize() GenerationRequest {
	r.Topic = truncate(strings.TrimSpace(r.Topic), MaxTopicLen)
	r.Tone = truncate(strings.TrimSpace(strings.ToLower(r.Tone)), MaxToneLen)
	r.Seed = truncate(r.Seed, MaxSeedLen)
	if r.LineHint < 1 || r.LineHint > 2 {
		r.LineHint = 1
	}
	return r
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Cut on a rune boundary so truncation never splits an emoji.
	b := []byte(s[:max])
	for len(b) > 0 && b[len(b)-1]&0xC0 == 0x80 {
		b = b[:len(b)-1]
	}
	return string(b)
}

// Candidate is one generated combo before or after validation. Text may
// contain newlines; the JSON encoding carries them as the usual two-character
// escape and the consumer renders them as line breaks.
type Candidate struct {
	Text string `json:"combo"`
	Name string `json:"name"`
}

// Meta echoes the request parameters that shaped a result.
type Meta struct {
	Mode Mode   `json:"mode"`
	Tone string `json:"tone"`
	Seed string `json:"seed"`
}

// GenerationResult is the externally visible artifact. Buckets excluded by
// the mode are empty, never nil, so the JSON shape is stable.
type GenerationResult struct {
	Meta  Meta        `json:"meta"`
	Emoji []Candidate `json:"emoji"`
	Ascii []Candidate `json:"ascii"`
}
