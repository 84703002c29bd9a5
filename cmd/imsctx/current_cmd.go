package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/imsctx/internal/log"
	"github.com/raphi011/imsctx/internal/output"
)

func newCurrentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "current",
		Short:   "Show the current context",
		GroupID: GroupContext,
		Args:    cobra.NoArgs,
		Long: `Show the name of the current context.

The local store is consulted first, then the global store.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			c, err := openContexts(ctx)
			if err != nil {
				return err
			}
			name, err := c.Current(ctx)
			if err != nil {
				return err
			}
			if name == "" {
				l.Println("No current context")
				return nil
			}
			out.Println(name)
			return nil
		},
	}

	return cmd
}
