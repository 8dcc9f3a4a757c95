// Package store maps republisher operations onto graph store queries and
// updates. Every query result is converted into a typed record right after
// the call; no raw bindings leave this package.
package store

import (
	"context"
	"strings"

	"github.com/lblod/republisher/internal/sparql"
	"github.com/lblod/republisher/pkg/constants"
	"github.com/lblod/republisher/pkg/documents"
	"github.com/lblod/republisher/pkg/logging"
)

// Store is a graph store holding one named graph per organizational unit
// plus a shared public graph.
type Store struct {
	exec        sparql.Executor
	publicGraph string
	graphPrefix string
}

// Option configures a Store.
type Option func(*Store)

// WithPublicGraph overrides the public graph URI.
func WithPublicGraph(graph string) Option {
	return func(s *Store) {
		if graph != "" {
			s.publicGraph = graph
		}
	}
}

// WithOrganizationGraphPrefix overrides the prefix of per-unit graphs.
func WithOrganizationGraphPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.graphPrefix = prefix
		}
	}
}

// New creates a Store on top of a query executor.
func New(exec sparql.Executor, opts ...Option) *Store {
	s := &Store{
		exec:        exec,
		publicGraph: constants.DefaultPublicGraph,
		graphPrefix: constants.DefaultOrganizationGraphPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListUnits returns the units whose graph holds at least one editor document,
// in the order the store reports their graphs.
func (s *Store) ListUnits(ctx context.Context) ([]documents.UnitRef, error) {
	bindings, err := s.exec.Query(ctx, graphsWithDocumentsQuery)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	units := make([]documents.UnitRef, 0, len(bindings))
	for _, b := range bindings {
		graph := b.Value("g")
		id, ok := strings.CutPrefix(graph, s.graphPrefix)
		if !ok || id == "" {
			logger.Warn().Str("graph", graph).Msg("Skipping graph outside the organization namespace")
			continue
		}
		units = append(units, documents.UnitRef{ID: id, Graph: graph})
	}
	return units, nil
}
