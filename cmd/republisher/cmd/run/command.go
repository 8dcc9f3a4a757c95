// Package run provides the run command implementation.
package run

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/lblod/republisher/cmd/application"
)

// Flags holds the run command flags.
type Flags struct {
	DryRun        bool
	Units         []string
	ReportPath    string
	ReportFormat  string
	Interval      time.Duration
	SkipReadiness bool
}

// NewCommand creates the run command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "run",
		GroupID: "core",
		Short:   "Reconcile and republish documents for every unit",
		Args:    cobra.NoArgs,
		Long: `Run performs one reconciliation pass over all organizational units.

For every unit the command will:
• Load the unit's document status records from the graph store
• Select the one authoritative document, or route the unit to manual review
• Promote the recorded status when the published sessions are ahead of it
• Remove the artifacts published earlier for the unit's sessions
• Republish the document and record it in the ledger

The command waits until the graph store answers before it starts. A run
stops when it finds the same document twice in a unit's record set.
The run report is written to --report (default republish-report.txt).`,
		Example: `  republisher run                              # Republish every unit
  republisher run --dry-run                    # Decide and report without writing
  republisher run --unit 5c3f...               # Restrict to one unit
  republisher run --report-format yaml         # Write a YAML report
  republisher run --interval 1h                # Run every hour until interrupted`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := flags.apply(cmd, app.RunSettings())
			return Execute(cmd.Context(), app, settings, cmd.OutOrStdout())
		},
	}

	flags = addFlags(cmd)

	return cmd
}

// addFlags registers the run flags on cmd.
func addFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "decide and report without store mutations, publish calls or ledger writes")
	cmd.Flags().StringSliceVar(&flags.Units, "unit", nil, "restrict the run to these unit uuids (repeatable)")
	cmd.Flags().StringVar(&flags.ReportPath, "report", "", "run report file (empty keeps the configured path)")
	cmd.Flags().StringVar(&flags.ReportFormat, "report-format", "", "run report format: text, yaml, json")
	cmd.Flags().DurationVar(&flags.Interval, "interval", 0, "repeat the run at this interval until interrupted")
	cmd.Flags().BoolVar(&flags.SkipReadiness, "skip-readiness", false, "do not wait for the graph store before running")
	return flags
}

// apply overrides settings with the flags set on the command line.
func (f *Flags) apply(cmd *cobra.Command, settings application.RunSettings) application.RunSettings {
	changed := cmd.Flags().Changed
	if changed("dry-run") {
		settings.DryRun = f.DryRun
	}
	if changed("unit") {
		settings.Units = f.Units
	}
	if changed("report") {
		settings.ReportPath = f.ReportPath
	}
	if changed("report-format") {
		settings.ReportFormat = f.ReportFormat
	}
	if changed("interval") {
		settings.Interval = f.Interval
	}
	if changed("skip-readiness") {
		settings.SkipReadiness = f.SkipReadiness
	}
	return settings
}
