package run

import (
	"fmt"
	"io"

	"github.com/lblod/republisher"
	"github.com/lblod/republisher/internal/cmd/emoji"
	"github.com/lblod/republisher/internal/report"
)

// outcomePrinter returns a hook printing one line per unit outcome.
func outcomePrinter(out io.Writer) republisher.OutcomeHook {
	return func(category report.Category, entry report.Entry) {
		line := fmt.Sprintf("%s %s", symbolFor(category), entry.Unit)
		if entry.DocumentID != "" {
			line += " [" + entry.DocumentID + "]"
		}
		line += ": " + category.Title()
		if entry.Reason != "" {
			line += " (" + entry.Reason + ")"
		}
		fmt.Fprintln(out, line)
	}
}

// symbolFor maps a category to its status symbol.
func symbolFor(category report.Category) string {
	switch category {
	case report.CategorySuccess:
		return emoji.Success
	case report.CategoryManualReview:
		return emoji.Warning
	case report.CategoryNoSession:
		return emoji.Optional
	case report.CategoryCleanupFailure, report.CategoryPublishFailure, report.CategoryUnitError:
		return emoji.Error
	default:
		return emoji.Unknown
	}
}
