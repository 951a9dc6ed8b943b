package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"comboforge/internal/combo"
)

// ErrMalformedOutput means the model's raw text did not contain the
// required JSON object. Fatal for the request; there is no speculative
// repair, since "fixing" truncated JSON risks fabricating content.
var ErrMalformedOutput = errors.New("malformed model output")

type comboEnvelope struct {
	Combos []rawCombo `json:"combos"`
}

type rawCombo struct {
	Text string `json:"text"`
	Name string `json:"name"`
}

// Parse extracts the candidate list from raw model text. Markdown code
// fences are tolerated because models add them despite being told not to;
// anything beyond that is a parse failure, including prose around the
// object.
func Parse(raw string) ([]combo.Candidate, error) {
	text := stripFences(strings.TrimSpace(raw))

	var env comboEnvelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if len(env.Combos) == 0 {
		return nil, fmt.Errorf("%w: empty combos array", ErrMalformedOutput)
	}

	out := make([]combo.Candidate, 0, len(env.Combos))
	for _, rc := range env.Combos {
		out = append(out, combo.Candidate{Text: rc.Text, Name: rc.Name})
	}
	return out, nil
}

// stripFences removes an optional markdown code-fence wrapper.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop a language tag like "json" on the opening fence line.
	if idx := strings.Index(s, "\n"); idx >= 0 {
		first := strings.TrimSpace(s[:idx])
		if first != "" && !strings.ContainsAny(first, "{}") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
