// Package styles provides shared lipgloss styles for imsctx output and
// prompts.
package styles

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// Palette
var (
	Primary color.Color = lipgloss.Color("62")  // cyan/teal
	Accent  color.Color = lipgloss.Color("212") // pink
	Success color.Color = lipgloss.Color("82")  // green
	Error   color.Color = lipgloss.Color("196") // red
	Warning color.Color = lipgloss.Color("214") // orange
	Muted   color.Color = lipgloss.Color("240") // gray
)

var (
	Bold = lipgloss.NewStyle().Bold(true)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)

	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// HighlightStyle marks fuzzy-matched characters
	HighlightStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Underline(true)
)

// CurrentMarker prefixes the current context in listings.
const CurrentMarker = "*"

// ContextName renders a context name for a listing, marking the current one.
func ContextName(name string, current bool) string {
	if current {
		return AccentStyle.Render(CurrentMarker + " " + name)
	}
	return "  " + name
}

// Highlight renders s with the runes at the given byte offsets highlighted.
// Offsets come from fuzzy.Match.MatchedIndexes.
func Highlight(s string, matched []int) string {
	if len(matched) == 0 {
		return s
	}

	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}

	var b strings.Builder
	for i, r := range s {
		if set[i] {
			b.WriteString(HighlightStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
