// Package decision selects the authoritative document of an organizational
// unit from its history of status records.
package decision

import (
	"github.com/lblod/republisher/pkg/documents"
	"github.com/lblod/republisher/pkg/errors"
)

// Outcome classifies the result of a selection.
type Outcome int

const (
	// OutcomeCandidate means a single authoritative record was selected.
	OutcomeCandidate Outcome = iota
	// OutcomeManualReview means the record set must be inspected by hand.
	OutcomeManualReview
)

// String returns the outcome label.
func (o Outcome) String() string {
	if o == OutcomeCandidate {
		return "candidate"
	}
	return "manual-review"
}

// Result is the outcome of Select. Candidate is set only for OutcomeCandidate;
// Reason is set only for OutcomeManualReview.
type Result struct {
	Outcome   Outcome
	Candidate *documents.Candidate
	Reason    string
	// Last is the most recently modified record, used to identify the unit in reports.
	Last documents.DocumentStatusRecord
}

// Manual review reasons.
const (
	ReasonTitlesDiffer        = "records do not share one title"
	ReasonApprovedRegressed   = "approved record followed by a less advanced record"
	ReasonDecisionListNotLast = "decision list record is not the most recent record"
	ReasonUnsupportedStatus   = "most recent record has no publication status"
)

// Select picks the authoritative record from records, which must be non-empty,
// ordered by ascending modification time and unique by document identifier.
// A duplicate document identifier yields a *errors.DuplicateDocumentError,
// which callers must treat as fatal. Select has no side effects.
func Select(records []documents.DocumentStatusRecord) (Result, error) {
	if len(records) == 0 {
		return Result{}, errors.NewValidationError("records", nil, "record set is empty")
	}
	if err := checkUnique(records); err != nil {
		return Result{}, err
	}

	last := records[len(records)-1]
	manual := func(reason string) (Result, error) {
		return Result{Outcome: OutcomeManualReview, Reason: reason, Last: last}, nil
	}
	selectLast := func() (Result, error) {
		if !sameTitle(records) {
			return manual(ReasonTitlesDiffer)
		}
		return Result{Outcome: OutcomeCandidate, Candidate: documents.NewCandidate(last), Last: last}, nil
	}

	hasApproved := contains(records, documents.StatusApproved)
	hasDecisionList := contains(records, documents.StatusDecisionListPublic)

	switch {
	case last.Status == documents.StatusApproved:
		return selectLast()
	case hasApproved:
		return manual(ReasonApprovedRegressed)
	case last.Status == documents.StatusDecisionListPublic:
		return selectLast()
	case last.Status == documents.StatusAgendaPublic && !hasDecisionList:
		return selectLast()
	case last.Status == documents.StatusAgendaPublic:
		return manual(ReasonDecisionListNotLast)
	default:
		return manual(ReasonUnsupportedStatus)
	}
}

func checkUnique(records []documents.DocumentStatusRecord) error {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.DocumentID]; dup {
			return errors.NewDuplicateDocumentError(r.Unit.Label(), r.DocumentID)
		}
		seen[r.DocumentID] = struct{}{}
	}
	return nil
}

func sameTitle(records []documents.DocumentStatusRecord) bool {
	for _, r := range records[1:] {
		if r.Title != records[0].Title {
			return false
		}
	}
	return true
}

func contains(records []documents.DocumentStatusRecord, status documents.Status) bool {
	for _, r := range records {
		if r.Status == status {
			return true
		}
	}
	return false
}
