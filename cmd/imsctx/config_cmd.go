package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/imsctx/internal/config"
	"github.com/raphi011/imsctx/internal/log"
	"github.com/raphi011/imsctx/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage imsctx configuration.

Config file: ~/.config/imsctx/config.toml (override with IMSCTX_CONFIG)`,
		Example: `  imsctx config init    # Create default config
  imsctx config show    # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Example: `  imsctx config init      # Create config
  imsctx config init -f   # Overwrite existing config
  imsctx config init -s   # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if stdout {
				out.Printf("%s", config.DefaultConfig())
				return nil
			}

			path, err := config.Init(force)
			if err != nil {
				return fmt.Errorf("%w (use -f to overwrite)", err)
			}

			l.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show effective configuration, after defaults, the config file and
environment overrides are applied. The local store is shown resolved
against the working directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			effective := *cfg
			effective.Store.LocalFile = storeOptions(ctx).LocalFile

			if jsonOutput {
				return out.JSON(effective)
			}

			path, err := config.Path()
			if err != nil {
				path = "(unknown)"
			}
			out.Printf("Config file: %s\n\n", path)
			out.Printf("store.global_file: %s\n", effective.Store.GlobalFile)
			out.Printf("store.local_file: %s\n", effective.Store.LocalFile)
			out.Printf("store.env_prefix: %s\n", effective.Store.EnvPrefix)
			out.Printf("history_file: %s\n", effective.HistoryFile)
			out.Printf("keys: ims=%s config=%s contexts=%s current=%s plugins=%s cli=%s\n",
				effective.Keys.IMS, effective.Keys.Config, effective.Keys.Contexts,
				effective.Keys.Current, effective.Keys.Plugins, effective.Keys.CLI)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
