// Package ledger provides the commands that inspect the progress ledger.
package ledger

import (
	"github.com/spf13/cobra"

	"github.com/lblod/republisher/cmd/application"
)

// NewCommand creates the ledger command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ledger",
		GroupID: "management",
		Short:   "Inspect the ledger of republished documents",
		Long: `The ledger records every document that completed a publish cycle.
Runs skip the documents it lists. Remove a line from the file to make a
document eligible again.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newListCommand(app))
	cmd.AddCommand(newCheckCommand(app))

	return cmd
}
