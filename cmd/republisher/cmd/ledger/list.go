package ledger

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lblod/republisher/cmd/application"
	"github.com/lblod/republisher/internal/cmd/output"
	"github.com/lblod/republisher/internal/ledger"
)

// recorded lists ledger ids in record order.
type recorded []string

// Table implements output.Tabular.
func (r recorded) Table() output.Data {
	data := output.Data{Headers: []string{"#", "Document"}}
	for i, id := range r {
		data.Rows = append(data.Rows, []string{strconv.Itoa(i + 1), id})
	}
	return data
}

func newListCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded document ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			led, err := ledger.Open(app.LedgerPath())
			if err != nil {
				return err
			}
			defer led.Close() //nolint:errcheck

			app.Logger().Debug().
				Str("path", led.Path()).
				Int("documents", led.Len()).
				Msg("Loaded ledger")

			return output.Write(cmd.OutOrStdout(), output.Resolve(app.OutputFormat()), recorded(led.List()))
		},
	}
}
