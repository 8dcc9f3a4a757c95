// Package republisher reconciles the publication state of meeting documents
// per organizational unit. For every unit it selects the one authoritative
// document, promotes a lagging recorded status, removes the artifacts
// published earlier for the unit's sessions and republishes the document.
// A durable ledger makes repeated runs skip documents already republished.
//
// Example usage:
//
//	r, err := republisher.New(st, pub, led,
//	    republisher.WithDryRun(false),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rep, err := r.Run(ctx)
//	if err != nil {
//	    log.Fatal(err) // duplicate document in a unit's record set
//	}
//	fmt.Println(rep.Summary())
package republisher

import (
	"context"
	"fmt"
	"strings"

	"github.com/lblod/republisher/internal/cleanup"
	"github.com/lblod/republisher/internal/ledger"
	"github.com/lblod/republisher/internal/publish"
	"github.com/lblod/republisher/internal/reconcile"
	"github.com/lblod/republisher/internal/report"
	"github.com/lblod/republisher/internal/store"
	"github.com/lblod/republisher/pkg/decision"
	"github.com/lblod/republisher/pkg/documents"
	"github.com/lblod/republisher/pkg/errors"
	"github.com/lblod/republisher/pkg/logging"
)

// Compile-time interface checks to ensure proper implementation.
var (
	_ Store     = (*store.Store)(nil)
	_ Publisher = (*publish.Executor)(nil)
	_ Ledger    = (*ledger.Ledger)(nil)
)

// Store is the graph store as seen by a run.
type Store interface {
	ListUnits(ctx context.Context) ([]documents.UnitRef, error)
	LoadDocumentSet(ctx context.Context, unit documents.UnitRef) ([]documents.DocumentStatusRecord, error)
	SessionsForUnit(ctx context.Context, unit documents.OrganizationalUnit) ([]documents.Session, error)

	reconcile.StatusUpdater
	cleanup.Remover
}

// Publisher publishes a candidate's artifacts.
type Publisher interface {
	Publish(ctx context.Context, candidate *documents.Candidate) ([]publish.Artifact, error)
}

// Ledger remembers documents that completed a publish cycle.
type Ledger interface {
	Seen(docID string) bool
	Record(docID string) error
}

// Republisher runs reconciliation passes.
type Republisher struct {
	store     Store
	publisher Publisher
	ledger    Ledger
	options   *options
	hooks     *hooks

	reconciler *reconcile.Engine
	cleaner    *cleanup.Executor
}

// New creates a Republisher.
func New(st Store, pub Publisher, led Ledger, opts ...Option) (*Republisher, error) {
	if st == nil || pub == nil || led == nil {
		return nil, errors.NewValidationError("republisher", nil, "store, publisher and ledger are required")
	}

	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	return &Republisher{
		store:      st,
		publisher:  pub,
		ledger:     led,
		options:    o,
		hooks:      newHooks(),
		reconciler: reconcile.New(st, reconcile.WithDryRun(o.dryRun)),
		cleaner:    cleanup.New(st, cleanup.WithDryRun(o.dryRun)),
	}, nil
}

// OnOutcome registers a callback invoked for every unit outcome added to the report.
func (r *Republisher) OnOutcome(fn OutcomeHook) {
	r.hooks.OnOutcome(fn)
}

// Run processes every discovered unit, one at a time, and returns the run
// report. Per-unit failures are recorded in the report. A duplicate document
// aborts the run and is returned with a nil report. When ctx is cancelled
// the run stops before the next unit and the partial report is returned
// with ctx.Err().
func (r *Republisher) Run(ctx context.Context) (*report.Report, error) {
	runID := r.options.runID()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.FromContext(ctx)

	rep := report.New(runID, r.options.now())
	rep.DryRun = r.options.dryRun

	units, err := r.store.ListUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing units: %w", err)
	}
	units = r.filter(units)
	rep.Units = len(units)
	logger.Info().Int("units", len(units)).Bool("dry_run", r.options.dryRun).Msg("Starting run")

	for _, unit := range units {
		if err := ctx.Err(); err != nil {
			rep.Finish(r.options.now())
			return rep, err
		}
		if err := r.processUnit(logging.WithUnit(ctx, unit.ID), unit, rep); err != nil {
			logger.Error().Err(err).Str("unit_id", unit.ID).Msg("Aborting run")
			return nil, err
		}
	}

	rep.Finish(r.options.now())
	logger.Info().Str("summary", rep.Summary()).Msg("Run finished")
	return rep, nil
}

// processUnit runs one unit through the pipeline. Only fatal errors are returned.
func (r *Republisher) processUnit(ctx context.Context, unit documents.UnitRef, rep *report.Report) error {
	logger := logging.FromContext(ctx)

	records, err := r.store.LoadDocumentSet(ctx, unit)
	if err != nil {
		r.add(rep, report.CategoryUnitError, report.Entry{Unit: unit.ID, Reason: "loading documents: " + err.Error()})
		return nil
	}
	if len(records) == 0 {
		logger.Debug().Msg("No publication documents, skipping unit")
		return nil
	}

	result, err := decision.Select(records)
	if err != nil {
		if errors.IsFatal(err) {
			return err
		}
		r.add(rep, report.CategoryUnitError, entryFor(records[len(records)-1], err.Error()))
		return nil
	}

	if result.Outcome == decision.OutcomeManualReview {
		ambiguous := errors.NewAmbiguousStateError(result.Last.Unit.Label(), result.Reason)
		logger.Warn().Err(ambiguous).Int("records", len(records)).Msg("Manual review required")
		r.add(rep, report.CategoryManualReview, entryFor(result.Last, result.Reason))
		return nil
	}

	candidate := result.Candidate
	ctx = logging.WithDocument(ctx, candidate.DocumentID)
	logger = logging.FromContext(ctx)

	if r.ledger.Seen(candidate.DocumentID) {
		rep.Skipped++
		logger.Debug().Msg("Already republished, skipping")
		return nil
	}

	sessions, err := r.store.SessionsForUnit(ctx, candidate.Unit)
	if err != nil {
		r.add(rep, report.CategoryUnitError, entryFor(candidate.DocumentStatusRecord, "loading sessions: "+err.Error()))
		return nil
	}
	if len(sessions) == 0 {
		logger.Warn().Err(errors.ErrNoSession).Str("status", candidate.Status.String()).Msg("No session linked to unit")
		r.add(rep, report.CategoryNoSession, entryFor(candidate.DocumentStatusRecord, ""))
		return nil
	}

	if _, err := r.reconciler.Reconcile(ctx, candidate, sessions); err != nil {
		logger.Error().Err(err).Msg("Status promotion failed, not publishing")
		r.add(rep, report.CategoryCleanupFailure, entryFor(candidate.DocumentStatusRecord, "status update: "+err.Error()))
		return nil
	}

	if err := r.cleaner.Cleanup(ctx, candidate.Unit, sessions); err != nil {
		logger.Error().Err(err).Msg("Cleanup incomplete, not publishing")
		r.add(rep, report.CategoryCleanupFailure, entryFor(candidate.DocumentStatusRecord, err.Error()))
		return nil
	}

	artifacts, err := r.publisher.Publish(ctx, candidate)
	if err != nil {
		logger.Error().Err(err).Msg("Publish failed")
		r.add(rep, report.CategoryPublishFailure, entryFor(candidate.DocumentStatusRecord, err.Error()))
		return nil
	}

	if !r.options.dryRun {
		if err := r.ledger.Record(candidate.DocumentID); err != nil {
			logger.Error().Err(err).Msg("Published but not recorded in ledger")
			r.add(rep, report.CategoryUnitError, entryFor(candidate.DocumentStatusRecord, "recording in ledger: "+err.Error()))
			return nil
		}
	}

	logger.Info().Str("status", candidate.Status.String()).Int("sessions", len(sessions)).Msg("Republished")
	r.add(rep, report.CategorySuccess, entryFor(candidate.DocumentStatusRecord, artifactList(artifacts)))
	return nil
}

func (r *Republisher) add(rep *report.Report, category report.Category, entry report.Entry) {
	rep.Add(category, entry)
	r.hooks.trigger(category, entry)
}

func (r *Republisher) filter(units []documents.UnitRef) []documents.UnitRef {
	if len(r.options.units) == 0 {
		return units
	}
	out := make([]documents.UnitRef, 0, len(r.options.units))
	for _, u := range units {
		if _, ok := r.options.units[u.ID]; ok {
			out = append(out, u)
		}
	}
	return out
}

func entryFor(record documents.DocumentStatusRecord, reason string) report.Entry {
	return report.Entry{
		Unit:           record.Unit.Label(),
		Classification: record.Unit.Classification,
		DocumentID:     record.DocumentID,
		Title:          record.Title,
		Status:         record.Status.String(),
		Reason:         reason,
	}
}

func artifactList(artifacts []publish.Artifact) string {
	names := make([]string, len(artifacts))
	for i, a := range artifacts {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}
