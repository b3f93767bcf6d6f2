package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	root := &cobra.Command{
		Use:   "filesort",
		Short: "Sort files into category folders",
		Long: "filesort moves the files directly inside a directory into folders named\n" +
			"after their type (Images, Documents, Audio, ...), keeping identical copies\n" +
			"out and renaming on collisions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !needsConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
	}
	root.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path")

	root.AddCommand(
		newOrganizeCommand(ctx),
		newCategoriesCommand(),
		newPickCommand(ctx),
		newServeCommand(ctx),
		newStatusCommand(ctx),
		newConfigCommand(ctx),
	)
	return root
}
