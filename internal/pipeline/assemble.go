package pipeline

import (
	"comboforge/internal/combo"
)

// Assemble splits validated candidates into the emoji and ascii buckets and
// shapes the final result. Providers hand back one flat list with no native
// split, so bucketing is heuristic; if the heuristic empties a bucket while
// content did come back, every candidate goes into all allowed buckets
// rather than handing the caller an erroneously empty result.
func Assemble(accepted []combo.Candidate, mode combo.Mode, meta combo.Meta) combo.GenerationResult {
	emoji := make([]combo.Candidate, 0, len(accepted))
	ascii := make([]combo.Candidate, 0, len(accepted))

	for _, c := range accepted {
		if isPureASCII(c.Text) {
			ascii = append(ascii, c)
		} else {
			emoji = append(emoji, c)
		}
	}

	if len(accepted) > 0 {
		emptyAllowed := (mode.WantsEmoji() && len(emoji) == 0) ||
			(mode.WantsAscii() && len(ascii) == 0)
		if emptyAllowed {
			emoji = append(emoji[:0], accepted...)
			ascii = append(ascii[:0], accepted...)
		}
	}

	if !mode.WantsEmoji() {
		emoji = emoji[:0]
	}
	if !mode.WantsAscii() {
		ascii = ascii[:0]
	}

	return combo.GenerationResult{
		Meta:  meta,
		Emoji: capBucket(emoji),
		Ascii: capBucket(ascii),
	}
}

// isPureASCII is the bucket heuristic: printable ASCII plus newlines means
// the ascii bucket, anything else means emoji. A known-fragile
// approximation (a non-ASCII word with no emoji misclassifies); kept
// behind this one name so it can be swapped for a per-candidate tag if the
// prompt ever requests one.
func isPureASCII(text string) bool {
	for _, r := range text {
		if r == '\n' {
			continue
		}
		if r < 0x20 || r > 0x7E {
			return false
		}
	}
	return true
}

func capBucket(b []combo.Candidate) []combo.Candidate {
	if len(b) > combo.MaxPerBucket {
		b = b[:combo.MaxPerBucket]
	}
	return b
}
