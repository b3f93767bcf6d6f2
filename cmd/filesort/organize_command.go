package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"filesort/internal/api"
	"filesort/internal/client"
	"filesort/internal/config"
	"filesort/internal/logging"
	"filesort/internal/organizer"
)

type organizeOptions struct {
	jsonOutput bool
	workers    int
	verbose    bool
	remote     bool
}

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var opts organizeOptions

	cmd := &cobra.Command{
		Use:   "organize <directory>",
		Short: "Sort the files in a directory into category folders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				opts.workers = 0
			}
			return runOrganize(cmd, cfg, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the full report as JSON")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 1, "Files processed in parallel (overrides organizer.workers)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log per-file progress to stderr")
	cmd.Flags().BoolVar(&opts.remote, "remote", false, "Send the request to the running filesortd at api.bind")
	return cmd
}

// runOrganize organizes dir in-process and prints the report. The returned
// error is non-nil when any file failed or the directory was rejected.
func runOrganize(cmd *cobra.Command, base *config.Config, dir string, opts organizeOptions) error {
	if opts.remote {
		return runRemoteOrganize(cmd, base, dir, opts)
	}
	cfg := *base
	if opts.workers != 0 {
		cfg.Organizer.Workers = opts.workers
	}
	if !opts.verbose {
		cfg.Logging.Level = "warn"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newCLILogger(cmd.ErrOrStderr(), &cfg)
	if err != nil {
		return err
	}

	svc := api.NewService(organizer.NewFromConfig(&cfg, organizer.NewLockRegistry(&cfg), logger))
	report, err := svc.Organize(cmd.Context(), api.OrganizeRequest{Directory: dir})
	if err != nil {
		return err
	}

	return emitReport(cmd, report, opts)
}

func runRemoteOrganize(cmd *cobra.Command, cfg *config.Config, dir string, opts organizeOptions) error {
	expanded, err := config.ExpandPath(dir)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return err
	}
	c, err := client.New(cfg.API.Bind, cfg.API.Token)
	if err != nil {
		return err
	}
	report, err := c.Organize(cmd.Context(), abs)
	if err != nil {
		if client.IsAPIUnavailable(err) {
			return fmt.Errorf("filesortd is not reachable at %s; start it with `filesort serve`", cfg.API.Bind)
		}
		return err
	}
	return emitReport(cmd, report, opts)
}

func emitReport(cmd *cobra.Command, report api.OrganizeReport, opts organizeOptions) error {
	if opts.jsonOutput {
		if err := printJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else {
		printReport(cmd.OutOrStdout(), report, shouldColorize(cmd.OutOrStdout()))
	}

	if report.ErrorCount > 0 || !strings.HasPrefix(report.Message, "Moved ") {
		return fmt.Errorf("organize %s: %s", report.Directory, report.Message)
	}
	return nil
}

func newCLILogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: w,
	})
}

func printReport(out io.Writer, report api.OrganizeReport, color bool) {
	if len(report.Files) > 0 {
		rows := make([][]string, 0, len(report.Files))
		var movedBytes int64
		for _, f := range report.Files {
			detail := f.Destination
			if f.Error != "" {
				detail = f.Error
			}
			if f.Status == string(organizer.StatusMoved) {
				movedBytes += f.Size
			}
			rows = append(rows, []string{
				f.Name,
				f.Category,
				colorize(statusLabel(f.Status), statusColor(f.Status), color),
				humanize.IBytes(uint64(max(f.Size, 0))),
				detail,
			})
		}
		fmt.Fprintln(out, renderTable(tableSpec{
			headers: []string{"File", "Category", "Status", "Size", "Detail"},
			rows:    rows,
			aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			footer:  []string{"Total", "", formatCount(report.FilesMoved) + " moved", humanize.IBytes(uint64(movedBytes))},
			color:   color,
		}))
	}

	summaryColor := ansiGreen
	if !report.Success || report.ErrorCount > 0 {
		summaryColor = ansiRed
	}
	fmt.Fprintln(out, colorize(report.Message, summaryColor, color))
	if report.Duplicates > 0 {
		fmt.Fprintf(out, "Duplicates skipped: %s\n", formatCount(report.Duplicates))
	}
	if report.Vanished > 0 {
		fmt.Fprintf(out, "Vanished during run: %s\n", formatCount(report.Vanished))
	}
	for _, e := range report.Errors {
		fmt.Fprintln(out, colorize("  "+e, ansiRed, color))
	}
}
