package pipeline

import (
	"strings"
	"testing"
)

func TestSanitizeSpacing(t *testing.T) {
	got := Sanitize("happy : D  heart <3")

	if !strings.Contains(got, ":D") {
		t.Errorf("expected spaced emoticon closed up, got %q", got)
	}
	if strings.Contains(got, "<3") {
		t.Errorf("expected heart shorthand replaced, got %q", got)
	}
	if !strings.Contains(got, heartGlyph) {
		t.Errorf("expected heart glyph present, got %q", got)
	}
	if strings.Contains(got, "  ") {
		t.Errorf("expected no double spaces, got %q", got)
	}
}

func TestSanitizeCases(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  hello  world  ", "hello world"},
		{"smile ; )", "smile ;)"},
		{"wave ^ ^", "wave ^^"},
		{"&lt;3 you", heartGlyph + " you"},
		{"line one \nline two", "line one\nline two"},
		{"already fine :D", "already fine :D"},
	}

	for _, tc := range cases {
		if got := Sanitize(tc.in); got != tc.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
