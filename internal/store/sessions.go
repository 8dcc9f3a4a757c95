package store

import (
	"context"

	"github.com/lblod/republisher/internal/sparql"
	"github.com/lblod/republisher/pkg/documents"
)

// SessionsForUnit returns the sessions held by a governing body of unit in
// the public graph, with the artifacts already published for each session.
func (s *Store) SessionsForUnit(ctx context.Context, unit documents.OrganizationalUnit) ([]documents.Session, error) {
	public, err := sparql.IRI(s.publicGraph)
	if err != nil {
		return nil, err
	}
	unitIRI, err := sparql.IRI(unit.URI)
	if err != nil {
		return nil, err
	}

	bindings, err := s.exec.Query(ctx, sessionsQuery(public, unitIRI))
	if err != nil {
		return nil, err
	}

	// OPTIONAL joins may return several rows per session.
	index := make(map[string]int)
	var sessions []documents.Session
	for _, b := range bindings {
		uri := b.Value("zitting")
		i, ok := index[uri]
		if !ok {
			i = len(sessions)
			index[uri] = i
			sessions = append(sessions, documents.Session{
				URI:  uri,
				ID:   b.Value("zittingId"),
				Unit: unit,
			})
		}
		artifacts := &sessions[i].Artifacts
		setIfEmpty(&artifacts.Agenda, b.Value("agenda"))
		setIfEmpty(&artifacts.DecisionList, b.Value("besluitenlijst"))
		setIfEmpty(&artifacts.Minutes, b.Value("notulen"))
	}
	return sessions, nil
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}
