package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/imsctx/internal/ims"
	"github.com/raphi011/imsctx/internal/log"
	"github.com/raphi011/imsctx/internal/output"
)

func newCLICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cli",
		Short:   "Manage the CLI context",
		GroupID: GroupContext,
		Long: `Manage the CLI context, where command-line tools keep their own settings.

Unlike 'imsctx set', 'imsctx cli set' merges into the stored data by default:
top-level keys in the new data replace the stored ones, other keys stay.`,
	}

	cmd.AddCommand(newCLIGetCmd())
	cmd.AddCommand(newCLISetCmd())

	return cmd
}

func newCLIGetCmd() *cobra.Command {
	var (
		query      string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show the CLI context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			c, err := openContexts(ctx)
			if err != nil {
				return err
			}
			data, err := c.CLI(ctx)
			if err != nil {
				return err
			}
			if data == nil {
				l.Println("No CLI context stored")
				return nil
			}

			value, err := selectValue(ims.Context{Name: c.KeyNames().CLI, Data: data}, query)
			if err != nil {
				return err
			}
			if jsonOutput {
				return out.JSON(value)
			}
			return out.Value(value)
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Select a value by dot path")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newCLISetCmd() *cobra.Command {
	var (
		data    string
		local   bool
		replace bool
	)

	cmd := &cobra.Command{
		Use:   "set [path=value...]",
		Short: "Update the CLI context",
		Long: `Update the CLI context. The data must be an object.

By default the new data is merged into the data stored in the target store
(top-level keys only). --replace writes the data as is.`,
		Example: `  imsctx cli set env=prod
  imsctx cli set --data '{"org": "my-org"}' --local
  imsctx cli set --replace env=stage`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			value, err := readData(data, args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			c, err := openContexts(ctx)
			if err != nil {
				return err
			}
			if err := c.SetCLI(ctx, value, local, !replace); err != nil {
				if errors.Is(err, ims.ErrInvalidContextData) {
					return fmt.Errorf("CLI context data must be a JSON object: %w", err)
				}
				return err
			}

			l.Printf("Updated CLI context in the %s store\n", ims.LocationFor(local))
			return nil
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "Context data as a JSON object (- reads stdin)")
	cmd.Flags().BoolVar(&local, "local", false, "Write to the local store")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace the stored data instead of merging")

	return cmd
}
