package store

import (
	"fmt"
	"strings"

	"github.com/lblod/republisher/internal/sparql"
	"github.com/lblod/republisher/pkg/documents"
)

// Query builders take graph, document and unit references already rendered
// as IRIs; plain values are escaped here as literals.

const prefixes = `PREFIX pav: <http://purl.org/pav/>
PREFIX besluit: <http://data.vlaanderen.be/ns/besluit#>
PREFIX mandaat: <http://data.vlaanderen.be/ns/mandaat#>
PREFIX skos: <http://www.w3.org/2004/02/skos/core#>
PREFIX ext: <http://mu.semte.ch/vocabularies/ext/>
PREFIX mu: <http://mu.semte.ch/vocabularies/core/>
PREFIX dct: <http://purl.org/dc/terms/>
PREFIX prov: <http://www.w3.org/ns/prov#>
PREFIX eli: <http://data.europa.eu/eli/ontology#>
`

const graphsWithDocumentsQuery = prefixes + `
SELECT DISTINCT ?g
WHERE {
  GRAPH ?g {
    ?s a ext:EditorDocument.
  }
}`

func documentSetQuery(publicGraph, unitGraph, unitID string) string {
	statuses := make([]string, 0, len(documents.PublicationStatuses))
	for _, s := range documents.PublicationStatuses {
		statuses = append(statuses, sparql.MustIRI(s.URI()))
	}

	return fmt.Sprintf(prefixes+`
SELECT DISTINCT ?doc ?docId ?modified ?title ?status ?eenheid ?eenheidNaam ?eenheidType
WHERE {
  GRAPH %s {
    ?eenheid mu:uuid %s.
    ?eenheid skos:prefLabel ?eenheidNaam.
    ?eenheid besluit:classificatie ?classS.
    ?classS skos:prefLabel ?eenheidType.
  }
  GRAPH %s {
    ?doc a ext:EditorDocument.
    ?doc mu:uuid ?docId.
    ?doc ext:editorDocumentStatus ?status.
    ?doc pav:lastUpdateOn ?modified.
    ?doc dct:title ?title.
    FILTER NOT EXISTS { ?newer pav:previousVersion ?doc. }
    FILTER (?status IN (%s))
  }
}
ORDER BY ?modified`, publicGraph, sparql.Literal(unitID), unitGraph, strings.Join(statuses, ", "))
}

// sessionsQuery finds the sessions held by a governing body of the unit,
// together with the artifacts already published for them.
func sessionsQuery(publicGraph, unit string) string {
	return fmt.Sprintf(prefixes+`
SELECT DISTINCT ?zitting ?zittingId ?agenda ?besluitenlijst ?notulen
WHERE {
  GRAPH %[1]s {
    ?zitting a besluit:Zitting.
    ?zitting mu:uuid ?zittingId.
    ?zitting besluit:isGehoudenDoor ?orgaanInTijd.
    ?orgaanInTijd mandaat:isTijdspecialisatieVan ?orgaan.
    ?orgaan besluit:bestuurt %[2]s.
    OPTIONAL { ?zitting besluit:heeftAgenda ?agenda. }
    OPTIONAL { ?zitting besluit:heeftBesluitenlijst ?besluitenlijst. }
    OPTIONAL { ?zitting besluit:heeftNotulen ?notulen. }
  }
}
ORDER BY ?zittingId`, publicGraph, unit)
}

func updateStatusQuery(unitGraph, doc, status string) string {
	return fmt.Sprintf(prefixes+`
DELETE {
  GRAPH %[1]s { %[2]s ext:editorDocumentStatus ?status. }
}
INSERT {
  GRAPH %[1]s { %[2]s ext:editorDocumentStatus %[3]s. }
}
WHERE {
  GRAPH %[1]s { %[2]s ext:editorDocumentStatus ?status. }
}`, unitGraph, doc, status)
}

// removeFullChainQuery removes a session's agenda, agenda items, the
// decision-related activities, their decisions and the decisions' articles.
// It is a no-op unless the whole chain is present.
func removeFullChainQuery(publicGraph, sessionID string) string {
	return fmt.Sprintf(prefixes+`
DELETE {
  GRAPH %[1]s {
    ?s ?p ?o.
    ?agenda ?agendaP ?agendaO.
    ?agendapunt ?agendapuntP ?agendapuntO.
    ?bav ?bavP ?bavO.
    ?besluit ?besluitP ?besluitO.
    ?artikel ?artikelP ?artikelO.
  }
}
WHERE {
  GRAPH %[1]s {
    ?s mu:uuid %[2]s.
    ?s ?p ?o.
    ?s besluit:heeftAgenda ?agenda.
    ?agenda ?agendaP ?agendaO.
    ?agenda besluit:heeftAgendapunt ?agendapunt.
    ?agendapunt ?agendapuntP ?agendapuntO.
    ?bav dct:subject ?agendapunt.
    ?bav ?bavP ?bavO.
    ?bav prov:generated ?besluit.
    ?besluit ?besluitP ?besluitO.
    ?besluit eli:has_part ?artikel.
    ?artikel ?artikelP ?artikelO.
  }
}`, publicGraph, sparql.Literal(sessionID))
}

// removeAgendaOnlyQuery removes a session's agenda and agenda items.
func removeAgendaOnlyQuery(publicGraph, sessionID string) string {
	return fmt.Sprintf(prefixes+`
DELETE {
  GRAPH %[1]s {
    ?s ?p ?o.
    ?agenda ?agendaP ?agendaO.
    ?agendapunt ?agendapuntP ?agendapuntO.
  }
}
WHERE {
  GRAPH %[1]s {
    ?s mu:uuid %[2]s.
    ?s ?p ?o.
    ?s besluit:heeftAgenda ?agenda.
    ?agenda ?agendaP ?agendaO.
    ?agenda besluit:heeftAgendapunt ?agendapunt.
    ?agendapunt ?agendapuntP ?agendapuntO.
  }
}`, publicGraph, sparql.Literal(sessionID))
}
