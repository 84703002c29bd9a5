package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/imsctx/internal/ims"
	"github.com/raphi011/imsctx/internal/log"
	"github.com/raphi011/imsctx/internal/output"
)

func newPluginsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plugins",
		Short:   "Manage the plugin list",
		GroupID: GroupContext,
		Long:    `Manage the list of plugin identifiers stored with the contexts.`,
	}

	cmd.AddCommand(newPluginsListCmd())
	cmd.AddCommand(newPluginsSetCmd())
	cmd.AddCommand(newPluginsClearCmd())

	return cmd
}

func newPluginsListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List plugins",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			c, err := openContexts(ctx)
			if err != nil {
				return err
			}
			plugins, err := c.Plugins(ctx)
			if err != nil {
				return err
			}

			if jsonOutput {
				if plugins == nil {
					plugins = []string{}
				}
				return out.JSON(plugins)
			}
			for _, p := range plugins {
				out.Println(p)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newPluginsSetCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:     "set <id>...",
		Short:   "Replace the plugin list",
		Args:    cobra.MinimumNArgs(1),
		Example: `  imsctx plugins set @adobe/plugin-a @adobe/plugin-b`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			c, err := openContexts(ctx)
			if err != nil {
				return err
			}
			if err := c.SetPlugins(ctx, args, local); err != nil {
				return err
			}

			l.Printf("Stored %d plugins in the %s store\n", len(args), ims.LocationFor(local))
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Write to the local store")

	return cmd
}

func newPluginsClearCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Store an empty plugin list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			c, err := openContexts(ctx)
			if err != nil {
				return err
			}
			if err := c.SetPlugins(ctx, []string{}, local); err != nil {
				return err
			}

			l.Printf("Cleared plugins in the %s store\n", ims.LocationFor(local))
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Write to the local store")

	return cmd
}
