package doctor

import (
	"context"
	"fmt"
	"io"

	"github.com/raphi011/imsctx/internal/ims"
)

var categoryNames = map[IssueCategory]string{
	CategoryCurrent:  "Current context issues",
	CategoryContexts: "Context issues",
	CategoryPlugins:  "Plugin issues",
}

// Run checks the store, prints a report to w and, if fix is set, repairs
// the fixable issues.
func Run(ctx context.Context, w io.Writer, c *ims.ConfigContext, fix bool) error {
	fmt.Fprintln(w, "Checking store...")
	issues, stats, err := Check(ctx, c)
	if err != nil {
		return err
	}

	printSummary(w, stats)

	if len(issues) == 0 {
		fmt.Fprintln(w, "\n✓ No issues found")
		return nil
	}

	fmt.Fprintf(w, "\nFound %d issues:\n", len(issues))
	printIssuesByCategory(w, issues)

	if !fix {
		if stats.Fixable > 0 {
			fmt.Fprintln(w, "\nRun 'imsctx doctor --fix' to repair.")
		}
		return nil
	}

	fixed, err := Fix(ctx, c, issues)
	if fixed > 0 {
		fmt.Fprintf(w, "\n✓ Fixed %d issues\n", fixed)
	}
	if err != nil {
		return err
	}
	if remaining := len(issues) - fixed; remaining > 0 {
		fmt.Fprintf(w, "⚠ %d issues need manual attention\n", remaining)
	}
	return nil
}

func printSummary(w io.Writer, stats Stats) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  ✓ %d of %d contexts valid\n", stats.ValidContexts, stats.Contexts)
	if stats.Issues > 0 {
		fmt.Fprintf(w, "  ⚠ %d issues (%d fixable)\n", stats.Issues, stats.Fixable)
	}
}

func printIssuesByCategory(w io.Writer, issues []Issue) {
	byCategory := make(map[IssueCategory][]Issue)
	for _, issue := range issues {
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}

	for _, cat := range []IssueCategory{CategoryCurrent, CategoryContexts, CategoryPlugins} {
		catIssues := byCategory[cat]
		if len(catIssues) == 0 {
			continue
		}

		fmt.Fprintf(w, "\n%s:\n", categoryNames[cat])
		for _, issue := range catIssues {
			where := ""
			if issue.Location != "" {
				where = " (" + string(issue.Location) + ")"
			}
			fmt.Fprintf(w, "  • %s%s: %s\n", issue.Key, where, issue.Description)
		}
	}
}
