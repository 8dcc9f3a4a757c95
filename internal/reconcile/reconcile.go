// Package reconcile promotes a candidate's recorded status when the artifacts
// already published for its sessions show it has advanced further.
package reconcile

import (
	"context"
	"fmt"

	"github.com/lblod/republisher/pkg/documents"
	"github.com/lblod/republisher/pkg/logging"
)

// StatusUpdater persists a new status for a document record.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, record documents.DocumentStatusRecord, status documents.Status) error
}

// Upgrade describes one status promotion.
type Upgrade struct {
	Session string
	From    documents.Status
	To      documents.Status
}

// Engine applies status promotions to candidates.
type Engine struct {
	updater StatusUpdater
	dryRun  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithDryRun promotes candidates in memory only.
func WithDryRun(dryRun bool) Option {
	return func(e *Engine) {
		e.dryRun = dryRun
	}
}

// New creates an Engine writing promotions through updater.
func New(updater StatusUpdater, opts ...Option) *Engine {
	e := &Engine{updater: updater}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reconcile walks sessions in order and promotes candidate one tier whenever
// a session already carries the artifacts of the next tier. The store is
// updated before the in-memory candidate, so on error candidate keeps the
// last status that was actually written. The upgrades applied so far are
// returned together with any error.
func (e *Engine) Reconcile(ctx context.Context, candidate *documents.Candidate, sessions []documents.Session) ([]Upgrade, error) {
	var upgrades []Upgrade
	for _, session := range sessions {
		next, ok := promotion(candidate.Status, session.Artifacts.Tier())
		if !ok {
			continue
		}

		logger := logging.FromContext(logging.WithSession(ctx, session.ID))
		if !e.dryRun {
			if err := e.updater.UpdateStatus(ctx, candidate.DocumentStatusRecord, next); err != nil {
				return upgrades, fmt.Errorf("promoting %s to %s for session %s: %w", candidate.DocumentID, next, session.ID, err)
			}
		}
		logger.Info().
			Str("from", candidate.Status.String()).
			Str("to", next.String()).
			Bool("dry_run", e.dryRun).
			Msg("Promoted recorded status")

		upgrades = append(upgrades, Upgrade{Session: session.ID, From: candidate.Status, To: next})
		candidate.Status = next
	}
	return upgrades, nil
}

// promotion returns the status implied by tier when it exceeds current.
func promotion(current documents.Status, tier documents.ArtifactTier) (documents.Status, bool) {
	switch {
	case current == documents.StatusDecisionListPublic && tier >= documents.TierMinutes:
		return documents.StatusApproved, true
	case current == documents.StatusAgendaPublic && tier >= documents.TierDecisions:
		return documents.StatusDecisionListPublic, true
	default:
		return current, false
	}
}
