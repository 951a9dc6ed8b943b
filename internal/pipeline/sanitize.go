package pipeline

import (
	"regexp"
	"strings"
)

// heartGlyph replaces the banned "<3" shorthand, which renders as a broken
// less-than sign in some consumers.
const heartGlyph = "❤️"

// emoticonSpaceFixes closes up accidental spaces inside common emoticon
// tokens. Models insert these under pressure from other spacing rules.
var emoticonSpaceFixes = [][2]string{
	{": D", ":D"},
	{": P", ":P"},
	{": 3", ":3"},
	{": )", ":)"},
	{": (", ":("},
	{"; )", ";)"},
	{"; D", ";D"},
	{"^ ^", "^^"},
	{"> <", "><"},
}

var multiSpace = regexp.MustCompile(` {2,}`)

// Sanitize applies the deterministic spacing fixes to one candidate's text:
// heart-shorthand replacement, emoticon de-spacing, multi-space collapse,
// and per-line trimming. Newlines are preserved.
func Sanitize(text string) string {
	text = strings.ReplaceAll(text, "&lt;3", heartGlyph)
	text = strings.ReplaceAll(text, "<3", heartGlyph)

	for _, fix := range emoticonSpaceFixes {
		text = strings.ReplaceAll(text, fix[0], fix[1])
	}

	text = multiSpace.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
