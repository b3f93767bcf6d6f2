package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"filesort/internal/picker"
)

func newPickCommand(ctx *commandContext) *cobra.Command {
	var organizeAfter bool
	var opts organizeOptions

	cmd := &cobra.Command{
		Use:   "pick [start]",
		Short: "Choose a directory interactively",
		Long: "Browse directories in the terminal and print the chosen path. " +
			"With --organize the chosen directory is organized immediately.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := ""
			if len(args) == 1 {
				start = args[0]
			}
			selected, err := picker.Run(start, cmd.InOrStdin(), cmd.OutOrStderr())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if selected == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "No directory selected")
				return nil
			}
			if !organizeAfter {
				fmt.Fprintln(out, selected)
				return nil
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return runOrganize(cmd, cfg, selected, opts)
		},
	}

	cmd.Flags().BoolVar(&organizeAfter, "organize", false, "Organize the chosen directory")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the organize report as JSON")
	return cmd
}
