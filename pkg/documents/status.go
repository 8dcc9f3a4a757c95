package documents

import (
	"fmt"

	"github.com/lblod/republisher/pkg/errors"
)

// Status is the publication status of an editor document.
// Publication tiers are ordered: AgendaPublic < DecisionListPublic < Approved.
type Status int

// Status values. StatusUnknown is the zero value and never a valid tier.
const (
	StatusUnknown Status = iota
	StatusAgendaPublic
	StatusDecisionListPublic
	StatusApproved
	StatusTrashed

	statusCount
)

// statusURIs maps each Status to its stable external identifier.
var statusURIs = [statusCount]string{
	StatusUnknown:            "",
	StatusAgendaPublic:       "http://mu.semte.ch/application/editor-document-statuses/627aec5d144c422bbd1077022c9b45d1",
	StatusDecisionListPublic: "http://mu.semte.ch/application/editor-document-statuses/b763390a63d548bb977fb4804293084a",
	StatusApproved:           "http://mu.semte.ch/application/editor-document-statuses/c272d47d756d4aeaa0be72081f1389c6",
	StatusTrashed:            "http://mu.semte.ch/application/editor-document-statuses/5A8304E8C093B00009000010",
}

var statusNames = [statusCount]string{
	StatusUnknown:            "unknown",
	StatusAgendaPublic:       "agenda publiek",
	StatusDecisionListPublic: "besluitenlijst publiek",
	StatusApproved:           "goedgekeurd",
	StatusTrashed:            "prullenbak",
}

var uriStatuses = func() map[string]Status {
	m := make(map[string]Status, statusCount)
	for s := StatusAgendaPublic; s < statusCount; s++ {
		m[statusURIs[s]] = s
	}
	return m
}()

// PublicationStatuses are the statuses considered for republication, in tier order.
var PublicationStatuses = []Status{StatusAgendaPublic, StatusDecisionListPublic, StatusApproved}

// URI returns the external identifier of the status.
func (s Status) URI() string {
	if s < 0 || s >= statusCount {
		return ""
	}
	return statusURIs[s]
}

// String returns the human readable status label.
func (s Status) String() string {
	if s < 0 || s >= statusCount {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// IsPublication reports whether s is one of the publication tiers.
func (s Status) IsPublication() bool {
	return s == StatusAgendaPublic || s == StatusDecisionListPublic || s == StatusApproved
}

// AtLeast reports whether s is a publication tier at or above other.
func (s Status) AtLeast(other Status) bool {
	return s.IsPublication() && other.IsPublication() && s >= other
}

// ParseStatusURI resolves an external status identifier.
func ParseStatusURI(uri string) (Status, error) {
	if s, ok := uriStatuses[uri]; ok {
		return s, nil
	}
	return StatusUnknown, errors.NewValidationError("status", uri, "unknown document status")
}

// MarshalText encodes the status by its label.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
