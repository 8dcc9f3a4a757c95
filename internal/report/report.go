// Package report aggregates the per-unit outcomes of one run and renders
// them for post-run inspection.
package report

import (
	"fmt"
	"time"

	"github.com/agentstation/utc"
)

// Category classifies a unit outcome.
type Category string

// Outcome categories, in report order.
const (
	CategoryManualReview   Category = "manual-review"
	CategoryNoSession      Category = "no-session"
	CategoryCleanupFailure Category = "cleanup-failure"
	CategoryPublishFailure Category = "publish-failure"
	CategorySuccess        Category = "success"
	CategoryUnitError      Category = "unit-error"
)

// Categories lists every category in report order.
var Categories = []Category{
	CategoryManualReview,
	CategoryNoSession,
	CategoryCleanupFailure,
	CategoryPublishFailure,
	CategorySuccess,
	CategoryUnitError,
}

var categoryTitles = map[Category]string{
	CategoryManualReview:   "ambiguous documents, check manually",
	CategoryNoSession:      "publication status without linked session",
	CategoryCleanupFailure: "cleanup failures",
	CategoryPublishFailure: "publish failures",
	CategorySuccess:        "successfully republished",
	CategoryUnitError:      "units not processed",
}

// Title returns the section heading of the category.
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return string(c)
}

// Entry is one unit outcome.
type Entry struct {
	Unit           string `json:"unit" yaml:"unit"`
	Classification string `json:"classification" yaml:"classification"`
	DocumentID     string `json:"document_id,omitempty" yaml:"document_id,omitempty"`
	Title          string `json:"title,omitempty" yaml:"title,omitempty"`
	Status         string `json:"status,omitempty" yaml:"status,omitempty"`
	Reason         string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Report collects the outcomes of one run. It is owned by the run that
// creates it and is not safe for concurrent use.
type Report struct {
	RunID      string   `json:"run_id" yaml:"run_id"`
	StartedAt  utc.Time `json:"started_at" yaml:"started_at"`
	FinishedAt utc.Time `json:"finished_at" yaml:"finished_at"`
	DryRun     bool     `json:"dry_run" yaml:"dry_run"`
	Units      int      `json:"units" yaml:"units"`
	Skipped    int      `json:"-" yaml:"-"`

	ManualReview    []Entry `json:"manual_review" yaml:"manual_review"`
	NoSession       []Entry `json:"no_session" yaml:"no_session"`
	CleanupFailures []Entry `json:"cleanup_failures" yaml:"cleanup_failures"`
	PublishFailures []Entry `json:"publish_failures" yaml:"publish_failures"`
	Successes       []Entry `json:"successes" yaml:"successes"`
	UnitErrors      []Entry `json:"unit_errors" yaml:"unit_errors"`
}

// New starts a report for a run.
func New(runID string, started time.Time) *Report {
	return &Report{
		RunID:           runID,
		StartedAt:       utc.Time{Time: started.UTC()},
		ManualReview:    []Entry{},
		NoSession:       []Entry{},
		CleanupFailures: []Entry{},
		PublishFailures: []Entry{},
		Successes:       []Entry{},
		UnitErrors:      []Entry{},
	}
}

// Add records an entry under category.
func (r *Report) Add(category Category, entry Entry) {
	if list := r.list(category); list != nil {
		*list = append(*list, entry)
	}
}

// Entries returns the entries of a category.
func (r *Report) Entries(category Category) []Entry {
	if list := r.list(category); list != nil {
		return *list
	}
	return nil
}

// Count returns the number of entries in a category.
func (r *Report) Count(category Category) int {
	return len(r.Entries(category))
}

// Finish stamps the end time.
func (r *Report) Finish(finished time.Time) {
	r.FinishedAt = utc.Time{Time: finished.UTC()}
}

// Duration returns the run duration, or zero before Finish.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.Time.IsZero() {
		return 0
	}
	return r.FinishedAt.Time.Sub(r.StartedAt.Time)
}

// HasFailures reports whether any unit failed to clean, publish or load.
func (r *Report) HasFailures() bool {
	return len(r.CleanupFailures) > 0 || len(r.PublishFailures) > 0 || len(r.UnitErrors) > 0
}

// Summary returns a one-line human-readable summary.
func (r *Report) Summary() string {
	prefix := "Run"
	if r.DryRun {
		prefix = "Dry run"
	}
	return fmt.Sprintf("%s completed: %d unit(s), %d republished, %d manual review, %d without session, %d cleanup failure(s), %d publish failure(s), %d not processed, %d already republished",
		prefix, r.Units, len(r.Successes), len(r.ManualReview), len(r.NoSession),
		len(r.CleanupFailures), len(r.PublishFailures), len(r.UnitErrors), r.Skipped)
}

func (r *Report) list(category Category) *[]Entry {
	switch category {
	case CategoryManualReview:
		return &r.ManualReview
	case CategoryNoSession:
		return &r.NoSession
	case CategoryCleanupFailure:
		return &r.CleanupFailures
	case CategoryPublishFailure:
		return &r.PublishFailures
	case CategorySuccess:
		return &r.Successes
	case CategoryUnitError:
		return &r.UnitErrors
	default:
		return nil
	}
}
