package republisher

import (
	"time"

	"github.com/google/uuid"

	"github.com/lblod/republisher/pkg/errors"
)

// Option is a function that configures a Republisher.
type Option func(*options) error

type options struct {
	dryRun bool
	units  map[string]struct{}
	now    func() time.Time
	runID  func() string
}

func defaultOptions() *options {
	return &options{
		now:   time.Now,
		runID: uuid.NewString,
	}
}

// WithDryRun decides, reconciles in memory and reports without writing to
// the store, calling the publish service or recording in the ledger.
// The Publisher passed to New is expected to be in dry-run mode as well.
func WithDryRun(enabled bool) Option {
	return func(o *options) error {
		o.dryRun = enabled
		return nil
	}
}

// WithUnits restricts a run to the given unit uuids. Empty values are ignored.
func WithUnits(ids ...string) Option {
	return func(o *options) error {
		for _, id := range ids {
			if id == "" {
				continue
			}
			if o.units == nil {
				o.units = make(map[string]struct{})
			}
			o.units[id] = struct{}{}
		}
		return nil
	}
}

// WithClock overrides the clock used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) error {
		if now == nil {
			return errors.NewValidationError("clock", nil, "clock must not be nil")
		}
		o.now = now
		return nil
	}
}

// WithRunID fixes the run identifier instead of generating a uuid per run.
func WithRunID(id string) Option {
	return func(o *options) error {
		if id == "" {
			return errors.NewValidationError("run_id", id, "run id must not be empty")
		}
		o.runID = func() string { return id }
		return nil
	}
}
