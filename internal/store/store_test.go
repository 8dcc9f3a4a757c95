package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lblod/republisher/internal/sparql"
	"github.com/lblod/republisher/pkg/documents"
	pkgerrors "github.com/lblod/republisher/pkg/errors"
)

// fakeExecutor records every query and update and answers queries from a script.
type fakeExecutor struct {
	queries  []string
	updates  []string
	bindings []sparql.Binding
	err      error
}

func (f *fakeExecutor) Query(_ context.Context, q string) ([]sparql.Binding, error) {
	f.queries = append(f.queries, q)
	return f.bindings, f.err
}

func (f *fakeExecutor) Update(_ context.Context, u string) error {
	f.updates = append(f.updates, u)
	return f.err
}

func uri(v string) sparql.Term { return sparql.Term{Type: "uri", Value: v} }
func lit(v string) sparql.Term { return sparql.Term{Type: "literal", Value: v} }

const orgGraph = "http://mu.semte.ch/graphs/organizations/"

func TestListUnits(t *testing.T) {
	exec := &fakeExecutor{bindings: []sparql.Binding{
		{"g": uri(orgGraph + "a1")},
		{"g": uri("http://mu.semte.ch/graphs/public")},
		{"g": uri(orgGraph + "b2")},
		{"g": uri(orgGraph)},
	}}

	units, err := New(exec).ListUnits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []documents.UnitRef{
		{ID: "a1", Graph: orgGraph + "a1"},
		{ID: "b2", Graph: orgGraph + "b2"},
	}, units)
	assert.Contains(t, exec.queries[0], "ext:EditorDocument")
}

func TestListUnits_CustomPrefix(t *testing.T) {
	exec := &fakeExecutor{bindings: []sparql.Binding{{"g": uri("http://example.org/orgs/x")}}}
	units, err := New(exec, WithOrganizationGraphPrefix("http://example.org/orgs/")).ListUnits(context.Background())
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "x", units[0].ID)
}

func TestLoadDocumentSet(t *testing.T) {
	exec := &fakeExecutor{bindings: []sparql.Binding{
		{
			"doc":         uri("http://data.lblod.info/editor-documents/1"),
			"docId":       lit("1"),
			"modified":    lit("2019-03-01T09:00:00Z"),
			"title":       lit("Gemeenteraad 1 maart"),
			"status":      uri(documents.StatusAgendaPublic.URI()),
			"eenheid":     uri("http://data.lblod.info/id/bestuurseenheden/a1"),
			"eenheidNaam": lit("Aalst"),
			"eenheidType": lit("Gemeente"),
		},
		{
			"doc":         uri("http://data.lblod.info/editor-documents/2"),
			"docId":       lit("2"),
			"modified":    lit("2019-03-02T10:30:00.123"),
			"title":       lit("Gemeenteraad 1 maart"),
			"status":      uri(documents.StatusDecisionListPublic.URI()),
			"eenheid":     uri("http://data.lblod.info/id/bestuurseenheden/a1"),
			"eenheidNaam": lit("Aalst"),
			"eenheidType": lit("Gemeente"),
		},
	}}

	unit := documents.UnitRef{ID: "a1", Graph: orgGraph + "a1"}
	records, err := New(exec).LoadDocumentSet(context.Background(), unit)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "1", first.DocumentID)
	assert.Equal(t, "http://data.lblod.info/editor-documents/1", first.URI)
	assert.Equal(t, documents.StatusAgendaPublic, first.Status)
	assert.True(t, first.Modified.Time.Equal(time.Date(2019, 3, 1, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, documents.OrganizationalUnit{
		URI:            "http://data.lblod.info/id/bestuurseenheden/a1",
		ID:             "a1",
		Name:           "Aalst",
		Classification: "Gemeente",
		Graph:          orgGraph + "a1",
	}, first.Unit)

	assert.Equal(t, documents.StatusDecisionListPublic, records[1].Status)
	assert.True(t, records[1].Modified.Time.After(first.Modified.Time))

	q := exec.queries[0]
	assert.Contains(t, q, `mu:uuid "a1"`)
	assert.Contains(t, q, "<"+orgGraph+"a1>")
	assert.Contains(t, q, "pav:previousVersion")
	assert.Contains(t, q, "ORDER BY ?modified")
	for _, s := range documents.PublicationStatuses {
		assert.Contains(t, q, s.URI())
	}
	assert.NotContains(t, q, documents.StatusTrashed.URI())
}

func TestLoadDocumentSet_Empty(t *testing.T) {
	records, err := New(&fakeExecutor{}).LoadDocumentSet(context.Background(), documents.UnitRef{ID: "a", Graph: orgGraph + "a"})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadDocumentSet_BadValues(t *testing.T) {
	t.Run("unknown status", func(t *testing.T) {
		exec := &fakeExecutor{bindings: []sparql.Binding{{"status": uri("http://other"), "modified": lit("2019-03-01T09:00:00Z")}}}
		_, err := New(exec).LoadDocumentSet(context.Background(), documents.UnitRef{ID: "a", Graph: orgGraph + "a"})
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("bad timestamp", func(t *testing.T) {
		exec := &fakeExecutor{bindings: []sparql.Binding{{"status": uri(documents.StatusApproved.URI()), "modified": lit("yesterday")}}}
		_, err := New(exec).LoadDocumentSet(context.Background(), documents.UnitRef{ID: "a", Graph: orgGraph + "a"})
		var parseErr *pkgerrors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("invalid graph", func(t *testing.T) {
		exec := &fakeExecutor{}
		_, err := New(exec).LoadDocumentSet(context.Background(), documents.UnitRef{ID: "a", Graph: "not a graph"})
		assert.Error(t, err)
		assert.Empty(t, exec.queries)
	})
}

func TestSessionsForUnit(t *testing.T) {
	exec := &fakeExecutor{bindings: []sparql.Binding{
		{"zitting": uri("http://data/z/1"), "zittingId": lit("z1"), "agenda": uri("http://data/a/1")},
		{"zitting": uri("http://data/z/1"), "zittingId": lit("z1"), "agenda": uri("http://data/a/2"), "besluitenlijst": uri("http://data/b/1")},
		{"zitting": uri("http://data/z/2"), "zittingId": lit("z2")},
		{"zitting": uri("http://data/z/3"), "zittingId": lit("z3"), "agenda": uri("http://data/a/3"), "besluitenlijst": uri("http://data/b/3"), "notulen": uri("http://data/n/3")},
	}}
	unit := documents.OrganizationalUnit{URI: "http://data.lblod.info/id/bestuurseenheden/a1", ID: "a1", Name: "Aalst"}

	sessions, err := New(exec).SessionsForUnit(context.Background(), unit)
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	assert.Equal(t, "z1", sessions[0].ID)
	assert.Equal(t, "http://data/a/1", sessions[0].Artifacts.Agenda)
	assert.Equal(t, documents.TierDecisions, sessions[0].Artifacts.Tier())
	assert.Equal(t, documents.TierNone, sessions[1].Artifacts.Tier())
	assert.Equal(t, documents.TierMinutes, sessions[2].Artifacts.Tier())
	assert.Equal(t, unit, sessions[2].Unit)

	assert.Contains(t, exec.queries[0], "besluit:bestuurt <http://data.lblod.info/id/bestuurseenheden/a1>")
}

func TestSessionsForUnit_NoUnitURI(t *testing.T) {
	_, err := New(&fakeExecutor{}).SessionsForUnit(context.Background(), documents.OrganizationalUnit{ID: "a1"})
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestUpdateStatus(t *testing.T) {
	exec := &fakeExecutor{}
	record := documents.DocumentStatusRecord{
		DocumentID: "1",
		URI:        "http://data.lblod.info/editor-documents/1",
		Status:     documents.StatusDecisionListPublic,
		Unit:       documents.OrganizationalUnit{ID: "a1", Graph: orgGraph + "a1"},
	}

	require.NoError(t, New(exec).UpdateStatus(context.Background(), record, documents.StatusApproved))
	require.Len(t, exec.updates, 1)

	u := exec.updates[0]
	assert.Contains(t, u, "GRAPH <"+orgGraph+"a1>")
	assert.Contains(t, u, "<http://data.lblod.info/editor-documents/1> ext:editorDocumentStatus <"+documents.StatusApproved.URI()+">")
	assert.True(t, strings.Index(u, "DELETE") < strings.Index(u, "INSERT"))
}

func TestRemovals(t *testing.T) {
	exec := &fakeExecutor{}
	s := New(exec, WithPublicGraph("http://example.org/public"))
	session := documents.Session{ID: "z\"1"}

	require.NoError(t, s.RemoveFullChain(context.Background(), session))
	require.NoError(t, s.RemoveAgendaOnly(context.Background(), session))
	require.Len(t, exec.updates, 2)

	full, agendaOnly := exec.updates[0], exec.updates[1]
	for _, u := range exec.updates {
		assert.Contains(t, u, "GRAPH <http://example.org/public>")
		assert.Contains(t, u, `?s mu:uuid "z\"1".`)
		assert.Contains(t, u, "besluit:heeftAgendapunt")
	}
	assert.Contains(t, full, "eli:has_part ?artikel")
	assert.Contains(t, full, "prov:generated ?besluit")
	assert.NotContains(t, agendaOnly, "prov:generated")
}

func TestRemovals_PropagateErrors(t *testing.T) {
	boom := errors.New("boom")
	err := New(&fakeExecutor{err: boom}).RemoveAgendaOnly(context.Background(), documents.Session{ID: "z1"})
	assert.ErrorIs(t, err, boom)
}
