package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/imsctx/internal/ims"
	"github.com/raphi011/imsctx/internal/log"
)

func newSetCmd() *cobra.Command {
	var (
		data  string
		local bool
	)

	cmd := &cobra.Command{
		Use:     "set [name] [path=value...]",
		Short:   "Store a context's data",
		GroupID: GroupContext,
		Long: `Store data for a context, replacing what was stored before.
Without a name (the first argument contains "="), the current context is used.

Data is given either as path=value pairs or as JSON with --data.
Values that are valid JSON are stored as JSON (numbers, booleans, lists,
quoted strings); anything else is stored as a string.`,
		Example: `  imsctx set prod client_id=abc org=my-org
  imsctx set prod access_token.token=t0k3n access_token.expiry=3600
  imsctx set client_secret=s3cr3t          # Current context
  imsctx set dev --data '{"client_id": "x"}' --local
  cat ctx.json | imsctx set dev --data -`,
		ValidArgsFunction: completeContextNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			name, pairs := splitNameAndPairs(args)
			value, err := readData(data, pairs, cmd.InOrStdin())
			if err != nil {
				return err
			}

			c, err := openContexts(ctx)
			if err != nil {
				return err
			}
			if err := c.Set(ctx, name, value, local); err != nil {
				if errors.Is(err, ims.ErrMissingContextLabel) {
					return fmt.Errorf("%w (no current context set, see 'imsctx use')", err)
				}
				return err
			}

			if name == "" {
				l.Printf("Stored the current context in the %s store\n", ims.LocationFor(local))
			} else {
				l.Printf("Stored context %q in the %s store\n", name, ims.LocationFor(local))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "Context data as JSON (- reads stdin)")
	cmd.Flags().BoolVar(&local, "local", false, "Write to the local store")

	return cmd
}

func newDeleteCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:     "delete <name>",
		Short:   "Delete a context",
		Aliases: []string{"rm"},
		GroupID: GroupContext,
		Args:    cobra.ExactArgs(1),
		Long: `Delete a context from the global store, or with --local from the local store.
A context stored in both keeps its other copy.`,
		ValidArgsFunction: completeContextNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			name := args[0]

			c, err := openContexts(ctx)
			if err != nil {
				return err
			}
			if err := c.Set(ctx, name, nil, local); err != nil {
				return err
			}

			current, err := c.Current(ctx)
			if err != nil {
				return err
			}
			if current == name {
				if data, err := c.ContextValue(ctx, name); err == nil && data == nil {
					l.Printf("Warning: %q was the current context; see 'imsctx use'\n", name)
				}
			}

			l.Printf("Deleted context %q from the %s store\n", name, ims.LocationFor(local))
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Delete from the local store")

	return cmd
}
