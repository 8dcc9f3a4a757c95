// Package application provides the application interface for republisher commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            settings := app.RunSettings()
//	            r, err := app.Republisher(settings)
//	            if err != nil {
//	                return err
//	            }
//	            _, err = r.Run(cmd.Context())
//	            return err
//	        },
//	    }
//	}
package application

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lblod/republisher"
)

// RunSettings are the per-invocation settings of a reconciliation run.
type RunSettings struct {
	DryRun        bool
	Units         []string
	ReportPath    string
	ReportFormat  string
	Interval      time.Duration
	SkipReadiness bool
}

// Application provides the application interface that commands need.
// The App struct from cmd/republisher/app implements this interface.
type Application interface {
	// Republisher builds a Republisher wired to the configured store,
	// publish service and ledger.
	Republisher(settings RunSettings) (*republisher.Republisher, error)

	// WaitForStore blocks until the graph store answers, or ctx is done.
	WaitForStore(ctx context.Context) error

	// RunSettings returns the run settings from configuration.
	RunSettings() RunSettings

	// LedgerPath returns the ProgressLedger file location.
	LedgerPath() string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string
}
