package pipeline

import (
	"errors"
	"testing"
)

const wellFormed = `{"combos":[{"text":"coffee ☕ :)","name":"morning"},{"text":"brew crew","name":"crew"}]}`

func TestParsePlainJSON(t *testing.T) {
	got, err := Parse(wellFormed)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Name != "morning" {
		t.Fatalf("unexpected first candidate: %+v", got[0])
	}
}

func TestParseMarkdownFenced(t *testing.T) {
	for _, raw := range []string{
		"```json\n" + wellFormed + "\n```",
		"```\n" + wellFormed + "\n```",
	} {
		got, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", raw[:10], err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 candidates, got %d", len(got))
		}
	}
}

func TestParseMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"sorry, I can't do that",
		`{"combos":[{"text":"truncated`,
		`{"combos":[]}`,
		`{"items":[{"text":"wrong key","name":"x"}]}`,
		"Here you go!\n" + wellFormed + "\nHope you like them.",
	} {
		_, err := Parse(raw)
		if !errors.Is(err, ErrMalformedOutput) {
			t.Errorf("Parse(%q): expected ErrMalformedOutput, got %v", raw, err)
		}
	}
}
