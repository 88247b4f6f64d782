package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cutter/internal/preflight"
	"cutter/internal/services"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify external tools and directories are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			results := preflight.RunAll(cfg)
			for _, line := range renderSectionHeader("Preflight", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, result := range results {
				fmt.Fprintln(out, renderStatusLine(result.Name, preflightStatus(result), result.Detail, colorize))
			}

			if failed := preflight.Failed(results); len(failed) > 0 {
				return services.Wrap(services.ErrConfiguration, "", "preflight",
					fmt.Sprintf("%d required check(s) failed", len(failed)), nil)
			}
			fmt.Fprintln(out, "All required checks passed")
			return nil
		},
	}
}
