package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/imsctx/internal/doctor"
	"github.com/raphi011/imsctx/internal/log"
	"github.com/raphi011/imsctx/internal/output"
	"github.com/raphi011/imsctx/internal/ui/prompt"
)

func newDoctorCmd() *cobra.Command {
	var (
		fix bool
		yes bool
	)

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose and repair store issues",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Diagnose and repair store issues.

Checks:
- Current context names a stored context
- Context data is an object
- Plugin list is a list of names

--fix clears broken current pointers and plugin lists. In a terminal it
asks before changing anything unless --yes is given.`,
		Example: `  imsctx doctor          # Check for issues
  imsctx doctor --fix    # Repair what can be repaired`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			w := output.FromContext(ctx).Writer()

			c, err := openContexts(ctx)
			if err != nil {
				return err
			}

			if !fix || yes || !isInteractive() {
				return doctor.Run(ctx, w, c, fix)
			}

			// Report first, then ask
			if err := doctor.Run(ctx, w, c, false); err != nil {
				return err
			}
			issues, stats, err := doctor.Check(ctx, c)
			if err != nil {
				return err
			}
			if stats.Fixable == 0 {
				return nil
			}

			res, err := prompt.Confirm(fmt.Sprintf("Fix %d issues?", stats.Fixable))
			if err != nil {
				return err
			}
			if !res.Confirmed {
				l.Println("Nothing changed")
				return nil
			}

			fixed, err := doctor.Fix(ctx, c, issues)
			if err != nil {
				return err
			}
			l.Printf("Fixed %d issues\n", fixed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Repair fixable issues")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask before fixing")

	return cmd
}
