package decision

import (
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lblod/republisher/pkg/documents"
	"github.com/lblod/republisher/pkg/errors"
)

var (
	base = time.Date(2019, 3, 1, 9, 0, 0, 0, time.UTC)
	unit = documents.OrganizationalUnit{ID: "u1", Name: "Gemeente Aalst", Classification: "Gemeente"}
)

// rec builds a record modified i hours after base.
func rec(i int, status documents.Status, title string) documents.DocumentStatusRecord {
	return documents.DocumentStatusRecord{
		DocumentID: "http://data.lblod.info/editor-documents/" + string(rune('a'+i)),
		Title:      title,
		Modified:   utc.Time{Time: base.Add(time.Duration(i) * time.Hour)},
		Status:     status,
		Unit:       unit,
	}
}

func TestSelect(t *testing.T) {
	const (
		A  = documents.StatusAgendaPublic
		DL = documents.StatusDecisionListPublic
		AP = documents.StatusApproved
		TR = documents.StatusTrashed
	)

	tests := []struct {
		name       string
		records    []documents.DocumentStatusRecord
		wantIndex  int // index of the selected record, -1 for manual review
		wantReason string
	}{
		{
			name:      "scenario A: agenda then decision list",
			records:   []documents.DocumentStatusRecord{rec(0, A, "Council Meeting"), rec(1, DL, "Council Meeting")},
			wantIndex: 1,
		},
		{
			name:       "scenario B: titles differ",
			records:    []documents.DocumentStatusRecord{rec(0, A, "Title A"), rec(1, AP, "Title B")},
			wantIndex:  -1,
			wantReason: ReasonTitlesDiffer,
		},
		{
			name:       "scenario C: approved then agenda",
			records:    []documents.DocumentStatusRecord{rec(0, AP, "Meeting X"), rec(1, A, "Meeting X")},
			wantIndex:  -1,
			wantReason: ReasonApprovedRegressed,
		},
		{
			name:      "single approved",
			records:   []documents.DocumentStatusRecord{rec(0, AP, "Meeting")},
			wantIndex: 0,
		},
		{
			name:      "approved last after full history",
			records:   []documents.DocumentStatusRecord{rec(0, A, "M"), rec(1, DL, "M"), rec(2, AP, "M")},
			wantIndex: 2,
		},
		{
			name:      "approved last after earlier approved",
			records:   []documents.DocumentStatusRecord{rec(0, AP, "M"), rec(1, AP, "M")},
			wantIndex: 1,
		},
		{
			name:       "approved then decision list",
			records:    []documents.DocumentStatusRecord{rec(0, AP, "M"), rec(1, DL, "M")},
			wantIndex:  -1,
			wantReason: ReasonApprovedRegressed,
		},
		{
			name:      "single decision list",
			records:   []documents.DocumentStatusRecord{rec(0, DL, "M")},
			wantIndex: 0,
		},
		{
			name:       "decision list last with differing titles",
			records:    []documents.DocumentStatusRecord{rec(0, A, "M"), rec(1, DL, "N")},
			wantIndex:  -1,
			wantReason: ReasonTitlesDiffer,
		},
		{
			name:      "single agenda",
			records:   []documents.DocumentStatusRecord{rec(0, A, "M")},
			wantIndex: 0,
		},
		{
			name:      "several agendas",
			records:   []documents.DocumentStatusRecord{rec(0, A, "M"), rec(1, A, "M"), rec(2, A, "M")},
			wantIndex: 2,
		},
		{
			name:       "agendas with differing titles",
			records:    []documents.DocumentStatusRecord{rec(0, A, "M"), rec(1, A, "m")},
			wantIndex:  -1,
			wantReason: ReasonTitlesDiffer,
		},
		{
			name:       "decision list not at tail",
			records:    []documents.DocumentStatusRecord{rec(0, DL, "M"), rec(1, A, "M")},
			wantIndex:  -1,
			wantReason: ReasonDecisionListNotLast,
		},
		{
			name:       "trashed last",
			records:    []documents.DocumentStatusRecord{rec(0, A, "M"), rec(1, TR, "M")},
			wantIndex:  -1,
			wantReason: ReasonUnsupportedStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(tt.records)
			require.NoError(t, err)

			last := tt.records[len(tt.records)-1]
			assert.Equal(t, last.DocumentID, got.Last.DocumentID)

			if tt.wantIndex < 0 {
				assert.Equal(t, OutcomeManualReview, got.Outcome)
				assert.Nil(t, got.Candidate)
				assert.Equal(t, tt.wantReason, got.Reason)
				return
			}

			assert.Equal(t, OutcomeCandidate, got.Outcome)
			require.NotNil(t, got.Candidate)
			assert.Equal(t, tt.records[tt.wantIndex], got.Candidate.DocumentStatusRecord)
		})
	}
}

func TestSelect_ApprovedAnywhereButLastIsManual(t *testing.T) {
	statuses := []documents.Status{
		documents.StatusAgendaPublic,
		documents.StatusDecisionListPublic,
		documents.StatusTrashed,
	}
	for _, tail := range statuses {
		for pos := 0; pos < 3; pos++ {
			records := []documents.DocumentStatusRecord{
				rec(0, documents.StatusAgendaPublic, "M"),
				rec(1, documents.StatusAgendaPublic, "M"),
				rec(2, documents.StatusAgendaPublic, "M"),
				rec(3, tail, "M"),
			}
			records[pos].Status = documents.StatusApproved

			got, err := Select(records)
			require.NoError(t, err)
			assert.Equal(t, OutcomeManualReview, got.Outcome, "approved at %d, tail %s", pos, tail)
		}
	}
}

func TestSelect_Deterministic(t *testing.T) {
	records := []documents.DocumentStatusRecord{
		rec(0, documents.StatusAgendaPublic, "M"),
		rec(1, documents.StatusDecisionListPublic, "M"),
	}
	first, err := Select(records)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Select(records)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestSelect_DuplicateDocumentIsFatal(t *testing.T) {
	dup := rec(1, documents.StatusDecisionListPublic, "M")
	dup.DocumentID = rec(0, documents.StatusAgendaPublic, "M").DocumentID

	_, err := Select([]documents.DocumentStatusRecord{rec(0, documents.StatusAgendaPublic, "M"), dup})
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))

	var dupErr *errors.DuplicateDocumentError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, dup.DocumentID, dupErr.Document)
	assert.Equal(t, "Gemeente Aalst", dupErr.Unit)
}

func TestSelect_Empty(t *testing.T) {
	_, err := Select(nil)
	assert.True(t, errors.IsValidationError(err))
	assert.False(t, errors.IsFatal(err))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "candidate", OutcomeCandidate.String())
	assert.Equal(t, "manual-review", OutcomeManualReview.String())
}
