package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestContextName(t *testing.T) {
	t.Parallel()

	if got := ContextName("dev", false); got != "  dev" {
		t.Errorf("ContextName(dev, false) = %q, want %q", got, "  dev")
	}
	if got := ansi.Strip(ContextName("prod", true)); got != "* prod" {
		t.Errorf("ContextName(prod, true) = %q, want %q", got, "* prod")
	}
}

func TestHighlight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		matched []int
	}{
		{"no matches", "production", nil},
		{"some matches", "production", []int{0, 3, 9}},
		{"all matches", "dev", []int{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Highlight(tt.in, tt.matched)
			if plain := ansi.Strip(got); plain != tt.in {
				t.Errorf("Highlight() text = %q, want %q", plain, tt.in)
			}
			if len(tt.matched) == 0 && strings.Contains(got, "\x1b") {
				t.Errorf("Highlight() with no matches should not style, got %q", got)
			}
		})
	}
}
