// Package cleanup removes the artifacts previously published for the
// sessions of an organizational unit.
package cleanup

import (
	"context"

	"github.com/lblod/republisher/pkg/documents"
	"github.com/lblod/republisher/pkg/errors"
	"github.com/lblod/republisher/pkg/logging"
)

// Remover issues the two removal patterns against the store. Each call is a
// no-op when its pattern does not match the session.
type Remover interface {
	RemoveFullChain(ctx context.Context, session documents.Session) error
	RemoveAgendaOnly(ctx context.Context, session documents.Session) error
}

// Executor runs cleanup passes.
type Executor struct {
	remover Remover
	dryRun  bool
}

// Option configures an Executor.
type Option func(*Executor)

// WithDryRun logs the sessions that would be cleaned without removing anything.
func WithDryRun(dryRun bool) Option {
	return func(e *Executor) {
		e.dryRun = dryRun
	}
}

// New creates an Executor.
func New(remover Remover, opts ...Option) *Executor {
	e := &Executor{remover: remover}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cleanup applies both removals to every session of unit. A failing session
// does not stop the others. The returned error is a *errors.CleanupError
// listing each failed session, or nil when all sessions were cleaned.
func (e *Executor) Cleanup(ctx context.Context, unit documents.OrganizationalUnit, sessions []documents.Session) error {
	ctx = logging.WithOperation(ctx, "cleanup")
	failed := make(map[string]error)
	for _, session := range sessions {
		sctx := logging.WithSession(ctx, session.ID)
		if err := e.cleanSession(sctx, session); err != nil {
			logging.FromContext(sctx).Error().Err(err).Msg("Cleanup failed for session")
			failed[session.ID] = err
		}
	}

	if len(failed) > 0 {
		return &errors.CleanupError{Unit: unit.Label(), Sessions: failed}
	}
	return nil
}

// cleanSession always issues both removals; the first error is reported.
func (e *Executor) cleanSession(ctx context.Context, session documents.Session) error {
	logger := logging.FromContext(ctx)
	if e.dryRun {
		logger.Info().Str("tier", session.Artifacts.Tier().String()).Msg("Would clean session")
		return nil
	}

	fullErr := e.remover.RemoveFullChain(ctx, session)
	agendaErr := e.remover.RemoveAgendaOnly(ctx, session)
	if fullErr != nil {
		return fullErr
	}
	if agendaErr != nil {
		return agendaErr
	}

	logger.Debug().Str("tier", session.Artifacts.Tier().String()).Msg("Cleaned session")
	return nil
}
