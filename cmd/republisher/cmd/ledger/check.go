package ledger

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lblod/republisher/cmd/application"
	"github.com/lblod/republisher/internal/cmd/emoji"
	"github.com/lblod/republisher/internal/ledger"
	"github.com/lblod/republisher/pkg/errors"
)

func newCheckCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "check <document-id>",
		Short: "Report whether a document was republished",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			led, err := ledger.Open(app.LedgerPath())
			if err != nil {
				return err
			}
			defer led.Close() //nolint:errcheck

			id := args[0]
			if !led.Seen(id) {
				return fmt.Errorf("document %s in %s: %w", id, led.Path(), errors.ErrNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is recorded in %s\n", emoji.Success, id, led.Path())
			return nil
		},
	}
}
