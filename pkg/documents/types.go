// Package documents defines the data model of the republisher: organizational
// units, the status-tagged document records observed for them, and the
// sessions whose published artifacts are cleaned and republished.
package documents

import (
	"github.com/agentstation/utc"
)

// OrganizationalUnit is an administrative body whose meeting documents are published.
type OrganizationalUnit struct {
	URI            string `json:"uri" yaml:"uri"`
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Classification string `json:"classification" yaml:"classification"`
	Graph          string `json:"graph,omitempty" yaml:"graph,omitempty"`
}

// Label returns the unit name, falling back to its identifier.
func (u OrganizationalUnit) Label() string {
	if u.Name != "" {
		return u.Name
	}
	return u.ID
}

// UnitRef identifies a unit discovered through its named graph, before its
// descriptive data is loaded.
type UnitRef struct {
	ID    string
	Graph string
}

// DocumentStatusRecord is one observed state of a logical document.
// DocumentID is the document's uuid; URI is its resource in the unit graph.
type DocumentStatusRecord struct {
	DocumentID string             `json:"document_id" yaml:"document_id"`
	URI        string             `json:"uri" yaml:"uri"`
	Title      string             `json:"title" yaml:"title"`
	Modified   utc.Time           `json:"modified" yaml:"modified"`
	Status     Status             `json:"status" yaml:"status"`
	Unit       OrganizationalUnit `json:"unit" yaml:"unit"`
}

// Candidate is the record selected as authoritative for publication.
type Candidate struct {
	DocumentStatusRecord
}

// NewCandidate wraps a selected record.
func NewCandidate(record DocumentStatusRecord) *Candidate {
	return &Candidate{DocumentStatusRecord: record}
}

// ArtifactTier describes how far a session was published downstream.
type ArtifactTier int

// Artifact tiers in increasing order.
const (
	TierNone ArtifactTier = iota
	TierAgenda
	TierDecisions
	TierMinutes
)

// String returns the tier label.
func (t ArtifactTier) String() string {
	switch t {
	case TierAgenda:
		return "agenda"
	case TierDecisions:
		return "agenda+decisions"
	case TierMinutes:
		return "agenda+decisions+minutes"
	default:
		return "none"
	}
}

// PublicationArtifactSet lists the artifacts attached to a session in the public graph.
type PublicationArtifactSet struct {
	Agenda       string
	DecisionList string
	Minutes      string
}

// Tier returns the highest tier the artifact set implies.
func (a PublicationArtifactSet) Tier() ArtifactTier {
	switch {
	case a.Minutes != "":
		return TierMinutes
	case a.DecisionList != "":
		return TierDecisions
	case a.Agenda != "":
		return TierAgenda
	default:
		return TierNone
	}
}

// Session is one meeting ("zitting") of an organizational unit.
type Session struct {
	URI       string
	ID        string
	Unit      OrganizationalUnit
	Artifacts PublicationArtifactSet
}
