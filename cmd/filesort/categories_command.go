package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"filesort/internal/api"
)

func newCategoriesCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "categories [folder...]",
		Short:       "List category folders and the extensions routed to them",
		Annotations: withoutConfig(),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := api.SelectCategories(args...)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), resp)
			}

			rows := make([][]string, 0, len(resp.Categories))
			for _, c := range resp.Categories {
				exts := strings.Join(c.Extensions, " ")
				if exts == "" {
					exts = "(anything else)"
				}
				rows = append(rows, []string{c.Name, exts})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(tableSpec{
				headers: []string{"Folder", "Extensions"},
				rows:    rows,
				color:   shouldColorize(out),
			}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the category table as JSON")
	return cmd
}
