package store

import (
	"context"

	"github.com/lblod/republisher/internal/sparql"
	"github.com/lblod/republisher/pkg/documents"
)

// UpdateStatus replaces the recorded status of a document in its unit graph.
func (s *Store) UpdateStatus(ctx context.Context, record documents.DocumentStatusRecord, status documents.Status) error {
	graph, err := sparql.IRI(record.Unit.Graph)
	if err != nil {
		return err
	}
	doc, err := sparql.IRI(record.URI)
	if err != nil {
		return err
	}
	statusIRI, err := sparql.IRI(status.URI())
	if err != nil {
		return err
	}
	return s.exec.Update(ctx, updateStatusQuery(graph, doc, statusIRI))
}

// RemoveFullChain deletes a session's agenda through to its decision articles.
// It does nothing when the session lacks that chain.
func (s *Store) RemoveFullChain(ctx context.Context, session documents.Session) error {
	public, err := sparql.IRI(s.publicGraph)
	if err != nil {
		return err
	}
	return s.exec.Update(ctx, removeFullChainQuery(public, session.ID))
}

// RemoveAgendaOnly deletes a session's agenda and agenda items.
// It does nothing when the session has no agenda with items.
func (s *Store) RemoveAgendaOnly(ctx context.Context, session documents.Session) error {
	public, err := sparql.IRI(s.publicGraph)
	if err != nil {
		return err
	}
	return s.exec.Update(ctx, removeAgendaOnlyQuery(public, session.ID))
}
