package store

import (
	"context"
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/lblod/republisher/internal/sparql"
	"github.com/lblod/republisher/pkg/documents"
	"github.com/lblod/republisher/pkg/errors"
)

// LoadDocumentSet returns the current (not superseded) publication-status
// records of a unit, ascending by modification time. The result is empty
// when the unit has no such documents.
func (s *Store) LoadDocumentSet(ctx context.Context, unit documents.UnitRef) ([]documents.DocumentStatusRecord, error) {
	public, err := sparql.IRI(s.publicGraph)
	if err != nil {
		return nil, err
	}
	graph, err := sparql.IRI(unit.Graph)
	if err != nil {
		return nil, err
	}

	bindings, err := s.exec.Query(ctx, documentSetQuery(public, graph, unit.ID))
	if err != nil {
		return nil, err
	}

	records := make([]documents.DocumentStatusRecord, 0, len(bindings))
	for _, b := range bindings {
		record, err := toRecord(b, unit)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func toRecord(b sparql.Binding, unit documents.UnitRef) (documents.DocumentStatusRecord, error) {
	status, err := documents.ParseStatusURI(b.Value("status"))
	if err != nil {
		return documents.DocumentStatusRecord{}, err
	}
	modified, err := parseDateTime(b.Value("modified"))
	if err != nil {
		return documents.DocumentStatusRecord{}, errors.WrapParse("datetime", b.Value("doc"), err)
	}

	return documents.DocumentStatusRecord{
		DocumentID: b.Value("docId"),
		URI:        b.Value("doc"),
		Title:      b.Value("title"),
		Modified:   utc.Time{Time: modified},
		Status:     status,
		Unit: documents.OrganizationalUnit{
			URI:            b.Value("eenheid"),
			ID:             unit.ID,
			Name:           b.Value("eenheidNaam"),
			Classification: b.Value("eenheidType"),
			Graph:          unit.Graph,
		},
	}, nil
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// parseDateTime accepts xsd:dateTime with or without a zone; values without
// a zone are taken as UTC.
func parseDateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range dateTimeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
