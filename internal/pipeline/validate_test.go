package pipeline

import (
	"testing"

	"comboforge/internal/combo"
)

func texts(cands []combo.Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Text)
	}
	return out
}

func TestValidateLineBounds(t *testing.T) {
	cands := []combo.Candidate{
		{Text: "a\nb\nc\nd", Name: "four"},       // 4 lines: rejected
		{Text: "one\ntwo\nthree", Name: "three"}, // exactly 3: accepted
		{Text: "\n \n", Name: "blank"},           // 0 non-empty lines: rejected
	}

	got := Validate(cands, combo.ModeEmoji)
	if len(got) != 1 || got[0].Name != "three" {
		t.Fatalf("expected only the 3-line candidate to survive, got %v", texts(got))
	}
}

func TestValidateHybridEnforcement(t *testing.T) {
	cands := []combo.Candidate{
		{Text: "\U0001F60A (^_^)", Name: "hybrid"},         // emoji + ascii class
		{Text: "\U0001F60A\U0001F31F", Name: "emoji only"}, // dropped
		{Text: "(^_^) plain", Name: "ascii only"},          // dropped
	}

	got := Validate(cands, combo.ModeBoth)
	if len(got) != 1 || got[0].Name != "hybrid" {
		t.Fatalf("expected only hybrid candidate to survive, got %v", texts(got))
	}

	// Same candidates pass untouched when the mode is not hybrid.
	got = Validate(cands, combo.ModeEmoji)
	if len(got) != 3 {
		t.Fatalf("non-hybrid mode should not enforce composition, got %v", texts(got))
	}
}

func TestValidateNearDuplicates(t *testing.T) {
	// Edit distance 3: second candidate is a near-duplicate.
	nearPair := []combo.Candidate{
		{Text: "hello world :)", Name: "a"},
		{Text: "hallo wxrld :(", Name: "b"},
	}
	got := Validate(nearPair, combo.ModeAscii)
	if len(got) != 1 {
		t.Fatalf("expected near-duplicate dropped, got %v", texts(got))
	}

	// Edit distance well above the threshold: both survive.
	far := []combo.Candidate{
		{Text: "hello world :)", Name: "a"},
		{Text: "goodbye pal :D", Name: "b"},
	}
	got = Validate(far, combo.ModeAscii)
	if len(got) != 2 {
		t.Fatalf("expected distinct candidates kept, got %v", texts(got))
	}
}

func TestValidatePreservesOrder(t *testing.T) {
	cands := []combo.Candidate{
		{Text: "first combo here :)", Name: "one"},
		{Text: "a completely different one :D", Name: "two"},
		{Text: "and yet another thing ;)", Name: "three"},
	}

	got := Validate(cands, combo.ModeAscii)
	if len(got) != 3 {
		t.Fatalf("expected all to survive, got %v", texts(got))
	}
	for i, name := range []string{"one", "two", "three"} {
		if got[i].Name != name {
			t.Fatalf("order not preserved: %v", got)
		}
	}
}

func TestContainsEmoji(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"coffee ☕", true},         // misc symbols
		{"love ❤️", true},          // dingbats heart
		{"party \U0001F389", true}, // pictographs
		{"plain text :D", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := containsEmoji(tc.in); got != tc.want {
			t.Errorf("containsEmoji(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
