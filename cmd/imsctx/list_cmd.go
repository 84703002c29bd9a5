package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/raphi011/imsctx/internal/ims"
	"github.com/raphi011/imsctx/internal/log"
	"github.com/raphi011/imsctx/internal/output"
	"github.com/raphi011/imsctx/internal/ui/static"
	"github.com/raphi011/imsctx/internal/ui/styles"
)

// listResult is the JSON shape of 'imsctx list --json'.
type listResult struct {
	Current  string   `json:"current"`
	Contexts []string `json:"contexts"`
}

func newListCmd() *cobra.Command {
	var (
		jsonOutput bool
		long       bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List contexts",
		Aliases: []string{"ls"},
		GroupID: GroupContext,
		Args:    cobra.NoArgs,
		Long: `List all stored contexts, local and global, sorted by name.
The current context is marked with *.`,
		Example: `  imsctx list          # List contexts
  imsctx ls -l         # Show stores and key counts
  imsctx ls --json     # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			c, err := openContexts(ctx)
			if err != nil {
				return err
			}
			names, err := c.Keys(ctx)
			if err != nil {
				return err
			}
			current, err := c.Current(ctx)
			if err != nil {
				return err
			}

			if jsonOutput {
				return out.JSON(listResult{Current: current, Contexts: names})
			}

			if len(names) == 0 {
				l.Println("No contexts stored")
				return nil
			}

			// Strips styling when stdout is not a terminal
			w := colorprofile.NewWriter(out.Writer(), os.Environ())

			if long {
				rows, err := contextRows(ctx, c, names, current)
				if err != nil {
					return err
				}
				fmt.Fprint(w, static.RenderTable(static.ContextHeaders, rows))
				return nil
			}

			for _, name := range names {
				fmt.Fprintln(w, styles.ContextName(name, name == current))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&long, "long", "l", false, "Show stores and key counts")
	cmd.MarkFlagsMutuallyExclusive("json", "long")

	return cmd
}

// contextRows builds the long listing: which stores hold each context and
// how many keys its merged data has.
func contextRows(ctx context.Context, c *ims.ConfigContext, names []string, current string) ([][]string, error) {
	local, err := c.ContextKeysIn(ctx, ims.LocationLocal)
	if err != nil {
		return nil, err
	}
	global, err := c.ContextKeysIn(ctx, ims.LocationGlobal)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		var tiers []string
		if slices.Contains(local, name) {
			tiers = append(tiers, string(ims.LocationLocal))
		}
		if slices.Contains(global, name) {
			tiers = append(tiers, string(ims.LocationGlobal))
		}
		if len(tiers) == 0 {
			tiers = append(tiers, "env")
		}

		data, err := c.ContextValue(ctx, name)
		if err != nil {
			return nil, err
		}
		rows = append(rows, static.ContextRow(name, name == current, tiers, data))
	}
	return rows, nil
}
