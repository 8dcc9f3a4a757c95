package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lblod/republisher/pkg/constants"
	"github.com/lblod/republisher/pkg/errors"
)

// Format is a report rendering format.
type Format string

const (
	// FormatText renders sectioned plain-text tables.
	FormatText Format = "text"
	// FormatYAML renders YAML.
	FormatYAML Format = "yaml"
	// FormatJSON renders indented JSON.
	FormatJSON Format = "json"
)

// ParseFormat converts a string to a Format. The empty string is text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", errors.NewValidationError("report_format", s, "must be one of: text, yaml, json")
	}
}

// Write renders the report to w.
func (r *Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(r)
	case FormatYAML:
		data, err := yaml.MarshalWithOptions(r,
			yaml.Indent(2),
			yaml.IndentSequence(false),
		)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatText, "":
		return r.writeText(w)
	default:
		return errors.NewValidationError("report_format", string(format), "unsupported format")
	}
}

// WriteFile renders the report into path, replacing any previous report.
func (r *Report) WriteFile(path string, format Format) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("mkdir", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions) //nolint:gosec
	if err != nil {
		return errors.WrapIO("open", path, err)
	}
	if err := r.Write(f, format); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	return errors.WrapIO("close", path, f.Close())
}

func (r *Report) writeText(w io.Writer) error {
	caser := cases.Title(language.English)

	header := []string{
		fmt.Sprintf("Run:      %s", r.RunID),
		fmt.Sprintf("Started:  %s", r.StartedAt.Time.Format(constants.TimeFormatReport)),
	}
	if !r.FinishedAt.Time.IsZero() {
		header = append(header,
			fmt.Sprintf("Finished: %s", r.FinishedAt.Time.Format(constants.TimeFormatReport)),
			fmt.Sprintf("Duration: %s", r.Duration().Round(time.Millisecond)),
		)
	}
	if r.DryRun {
		header = append(header, "Mode:     dry run")
	}
	header = append(header, r.Summary(), "")
	if _, err := io.WriteString(w, strings.Join(header, "\n")+"\n"); err != nil {
		return err
	}

	for _, category := range Categories {
		entries := r.Entries(category)
		if _, err := fmt.Fprintf(w, "%s (%d)\n", caser.String(category.Title()), len(entries)); err != nil {
			return err
		}
		if len(entries) == 0 {
			if _, err := io.WriteString(w, "  none\n\n"); err != nil {
				return err
			}
			continue
		}
		if err := writeTable(w, entries); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, entries []Entry) error {
	table := tablewriter.NewTable(w)
	table.Header("Unit", "Classification", "Document", "Status", "Reason")
	for _, e := range entries {
		if err := table.Append(e.Unit, e.Classification, e.DocumentID, e.Status, e.Reason); err != nil {
			return err
		}
	}
	return table.Render()
}
