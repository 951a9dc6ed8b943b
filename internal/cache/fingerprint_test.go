package cache

import (
	"strings"
	"testing"

	"comboforge/internal/combo"
)

func baseRequest() combo.GenerationRequest {
	return combo.GenerationRequest{
		Topic:    "coffee",
		Mode:     combo.ModeBoth,
		Tone:     "cute",
		Seed:     "x",
		LineHint: 1,
	}
}

func TestFingerprintDeterminism(t *testing.T) {
	a := Fingerprint(baseRequest())
	b := Fingerprint(baseRequest())

	if a.String() != b.String() {
		t.Fatalf("same request produced different keys: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a.String(), "combo:both:") {
		t.Fatalf("unexpected key format: %q", a.String())
	}
}

func TestFingerprintFieldSensitivity(t *testing.T) {
	base := Fingerprint(baseRequest()).Hash

	variants := map[string]combo.GenerationRequest{}

	r := baseRequest()
	r.Topic = "tea"
	variants["topic"] = r

	r = baseRequest()
	r.Mode = combo.ModeEmoji
	variants["mode"] = r

	r = baseRequest()
	r.Tone = "chaotic"
	variants["tone"] = r

	r = baseRequest()
	r.Seed = "y"
	variants["seed"] = r

	r = baseRequest()
	r.LineHint = 2
	variants["lineHint"] = r

	for field, req := range variants {
		if got := Fingerprint(req).Hash; got == base {
			t.Errorf("changing %s did not change the fingerprint", field)
		}
	}
}

func TestFingerprintNormalizedTruncation(t *testing.T) {
	long := combo.GenerationRequest{
		Topic: strings.Repeat("a", 500),
		Mode:  combo.ModeEmoji,
	}.Normalize()

	capped := combo.GenerationRequest{
		Topic: strings.Repeat("a", combo.MaxTopicLen),
		Mode:  combo.ModeEmoji,
	}.Normalize()

	if Fingerprint(long).Hash != Fingerprint(capped).Hash {
		t.Fatalf("truncated topic should fingerprint identically to its cap")
	}
}
