package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/raphi011/imsctx/internal/config"
	"github.com/raphi011/imsctx/internal/history"
	"github.com/raphi011/imsctx/internal/log"
	"github.com/raphi011/imsctx/internal/ui/prompt"
	"github.com/raphi011/imsctx/internal/ui/styles"
)

func newUseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "use [name|-]",
		Short:   "Switch the current context",
		GroupID: GroupContext,
		Args:    cobra.MaximumNArgs(1),
		Long: `Switch the current context.

The choice is recorded in the local store of the working directory.
Without a name, an interactive picker is shown when running in a terminal.
"-" switches back to the context that was current before the last switch.

Switching to a context that does not exist is allowed; a warning lists
similar names.`,
		Example: `  imsctx use prod   # Make prod the current context
  imsctx use -      # Switch back to the previous context
  imsctx use        # Pick from a list`,
		ValidArgsFunction: completeContextNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)
			localStore := storeOptions(ctx).LocalFile

			c, err := openContexts(ctx)
			if err != nil {
				return err
			}
			current, err := c.Current(ctx)
			if err != nil {
				return err
			}
			names, err := c.Keys(ctx)
			if err != nil {
				return err
			}

			var name string
			switch {
			case len(args) == 1 && args[0] == "-":
				name, err = history.Previous(cfg.HistoryFile, localStore)
				if err != nil {
					return fmt.Errorf("read history: %w", err)
				}
				if name == "" {
					return errors.New("no previous context to switch back to")
				}
			case len(args) == 1:
				name = args[0]
			case isInteractive():
				res, err := prompt.Select("Select context", names, current)
				if err != nil {
					return err
				}
				if res.Cancelled {
					return nil
				}
				name = res.Value
			default:
				return errors.New("context name required (no terminal for the picker)")
			}

			if !slices.Contains(names, name) {
				l.Printf("Warning: context %q does not exist\n", name)
				if matches := prompt.Suggest(name, names); len(matches) > 0 {
					l.Printf("Did you mean: %s?\n", formatSuggestions(matches))
				}
			}

			if err := c.SetCurrent(ctx, name); err != nil {
				return err
			}
			if err := history.RecordSwitch(cfg.HistoryFile, localStore, current, name); err != nil {
				l.Printf("Warning: failed to record history: %v\n", err)
			}

			l.Printf("Switched to context %q\n", name)
			return nil
		},
	}

	return cmd
}

// formatSuggestions joins the matched names, highlighting the matched
// characters.
func formatSuggestions(matches fuzzy.Matches) string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, styles.Highlight(m.Str, m.MatchedIndexes))
	}
	return strings.Join(out, ", ")
}
