package provider

import (
	"fmt"
	"strings"

	"comboforge/internal/combo"
)

// toneHints flavors the known tones. Unrecognized tones are passed to the
// model verbatim and left to its interpretation.
var toneHints = map[string]string{
	"cute":         "soft, affectionate, lots of warmth",
	"cool":         "understated, confident, sparing punctuation",
	"chaotic":      "loud, unhinged, keyboard-smash energy",
	"romantic":     "tender, dreamy, heart-forward",
	"minimal":      "as few characters as possible, quiet",
	"nostalgic":    "early-internet, retro messenger vibes",
	"aesthetic":    "curated, symmetrical, vaporwave-adjacent",
	"professional": "restrained, workplace-safe, polished",
}

// BuildPrompt renders the instruction block for one provider family.
// Every constraint the validator later re-checks is requested here first,
// but never trusted to have been honored: the model is an unreliable
// generator and the prompt is only the first line of defense.
func BuildPrompt(family Family, req combo.GenerationRequest) string {
	var b strings.Builder

	b.WriteString("You generate tiny emoji/emoticon micro-phrases (\"combos\").\n\n")
	fmt.Fprintf(&b, "Topic: %q\n", req.Topic)
	fmt.Fprintf(&b, "Tone: %s\n", toneLine(req.Tone))
	b.WriteString("\nRules:\n")
	fmt.Fprintf(&b, "- Produce exactly %d combos.\n", combo.RequestedCandidates)
	b.WriteString(modeRule(req.Mode))
	b.WriteString(lineRule(family, req.LineHint))
	b.WriteString("- Keep every line under 40 visible characters.\n")
	b.WriteString("- Never use double spaces. Never write \"<3\": use ❤️ instead.\n")
	b.WriteString("- No spaces inside emoticons: write \":D\", never \": D\".\n")
	fmt.Fprintf(&b, "- At least %d of the %d combos must contain the topic words verbatim; the rest are free creative riffs.\n",
		combo.RequestedCandidates/2, combo.RequestedCandidates)
	b.WriteString("- Rotate emoji categories across combos (faces, hearts, celebration, stars, hands).\n")
	b.WriteString("- No two combos may be near-duplicates of each other.\n")
	b.WriteString("\nRespond with a single JSON object and nothing else: no prose, no markdown fences.\n")
	b.WriteString(`Format: {"combos":[{"text":"...","name":"..."}]}` + "\n")
	b.WriteString(`"name" is a short lowercase label. Use "\n" inside "text" for line breaks.` + "\n")

	if family == FamilyCompletions {
		// Legacy completion models continue the text instead of answering,
		// so end on an explicit cue.
		b.WriteString("\nJSON:\n")
	}

	return b.String()
}

func toneLine(tone string) string {
	if tone == "" {
		return "neutral"
	}
	if hint, ok := toneHints[tone]; ok {
		return tone + " (" + hint + ")"
	}
	return tone
}

func modeRule(mode combo.Mode) string {
	switch mode {
	case combo.ModeEmoji:
		return "- Use emoji only. No ASCII emoticons.\n"
	case combo.ModeAscii:
		return "- Use ASCII emoticons and plain text only. No emoji.\n"
	default:
		return "- Every combo must contain at least one emoji AND at least one ASCII emoticon.\n"
	}
}

// lineRule encodes the line-count bound. Only the primary family obeys an
// exact line hint reliably; the others get the permissive range.
func lineRule(family Family, lineHint int) string {
	if family == FamilyAnthropic && lineHint >= 1 {
		return fmt.Sprintf("- Each combo has exactly %d line(s).\n", lineHint)
	}
	return fmt.Sprintf("- Each combo has between %d and %d lines.\n", combo.MinLines, combo.MaxLines)
}
