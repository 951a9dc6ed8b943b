package pipeline

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"comboforge/internal/combo"
)

// dedupeThreshold is the minimum edit distance between accepted candidates.
// Intentionally small: it catches punctuation/emoji swaps, not candidates
// that merely say similar things in different words.
const dedupeThreshold = 5

// asciiEmoticonClass is the punctuation class that counts as emoticon
// material for the hybrid check.
const asciiEmoticonClass = "()^_:;"

// Validate runs the single left-to-right accepting pass over raw
// candidates: sanitize, bound the line count, enforce hybrid composition
// when the mode demands it, and drop near-duplicates of anything already
// accepted. Rejected candidates are skipped, never an error; provider order
// is preserved. Quadratic in candidate count, but n never exceeds a dozen.
func Validate(cands []combo.Candidate, mode combo.Mode) []combo.Candidate {
	accepted := make([]combo.Candidate, 0, len(cands))

	for _, c := range cands {
		c.Text = Sanitize(c.Text)
		c.Name = strings.ToLower(strings.TrimSpace(c.Name))

		n := countNonEmptyLines(c.Text)
		if n < combo.MinLines || n > combo.MaxLines {
			continue
		}

		if mode == combo.ModeBoth && !isHybrid(c.Text) {
			continue
		}

		if nearDuplicate(c.Text, accepted) {
			continue
		}

		accepted = append(accepted, c)
	}

	return accepted
}

func countNonEmptyLines(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

// isHybrid requires at least one emoji-range rune and at least one rune
// from the ASCII emoticon class.
func isHybrid(text string) bool {
	return containsEmoji(text) && strings.ContainsAny(text, asciiEmoticonClass)
}

// containsEmoji reports whether text has a rune in the Unicode emoji
// blocks: faces, pictographs, transport, supplemental symbols, misc
// symbols, and dingbats (which include the heart glyph).
func containsEmoji(text string) bool {
	for _, r := range text {
		switch {
		case r >= 0x1F300 && r <= 0x1F5FF,
			r >= 0x1F600 && r <= 0x1F64F,
			r >= 0x1F680 && r <= 0x1F6FF,
			r >= 0x1F900 && r <= 0x1F9FF,
			r >= 0x1FA70 && r <= 0x1FAFF,
			r >= 0x2600 && r <= 0x26FF,
			r >= 0x2700 && r <= 0x27BF:
			return true
		}
	}
	return false
}

func nearDuplicate(text string, accepted []combo.Candidate) bool {
	for _, a := range accepted {
		if levenshtein.ComputeDistance(text, a.Text) < dedupeThreshold {
			return true
		}
	}
	return false
}
