// Package static renders non-interactive terminal output such as the
// long context listing.
package static

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/imsctx/internal/ui/styles"
)

// ContextHeaders are the columns of the long context listing.
var ContextHeaders = []string{"NAME", "STORE", "KEYS"}

// RenderTable lays out headers and rows in aligned columns without
// borders. Returns "" when there are no rows.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	return t.String() + "\n"
}

// ContextRow builds one row of the long listing. tiers names the stores
// the context is kept in; data is its merged value.
func ContextRow(name string, current bool, tiers []string, data any) []string {
	keys := "-"
	if m, ok := data.(map[string]any); ok {
		keys = fmt.Sprint(len(m))
	}
	return []string{styles.ContextName(name, current), strings.Join(tiers, ","), keys}
}
