package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"filesort/internal/client"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the state of the running filesortd",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			c, err := client.New(cfg.API.Bind, cfg.API.Token)
			if err != nil {
				return err
			}
			status, err := c.Status(cmd.Context())
			if err != nil {
				if client.IsAPIUnavailable(err) {
					return fmt.Errorf("filesortd is not reachable at %s", cfg.API.Bind)
				}
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), status)
			}

			started := status.StartedAt
			if t, err := time.Parse(time.RFC3339, status.StartedAt); err == nil {
				started = fmt.Sprintf("%s (%s)", status.StartedAt, humanize.Time(t))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(tableSpec{
				headers: []string{"Field", "Value"},
				rows: [][]string{
					{"Running", yesNo(status.Running)},
					{"PID", fmt.Sprint(status.PID)},
					{"Bind", status.Bind},
					{"Started", started},
					{"Workers", formatCount(status.Workers)},
					{"Lock entries", formatCount(status.LockEntries)},
					{"Idle locks", formatCount(status.IdleLocks)},
					{"Requests", formatCount(int(status.Requests))},
					{"Lock file", status.LockFilePath},
					{"Log file", status.LogPath},
				},
				color: shouldColorize(out),
			}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print status as JSON")
	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
