package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/lblod/republisher/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestDuplicateDocumentError(t *testing.T) {
	t.Run("with unit", func(t *testing.T) {
		err := pkgerrors.NewDuplicateDocumentError("Gemeente Aalst", "http://data/doc/1")
		assert.Equal(t, "duplicate document http://data/doc/1 found for unit Gemeente Aalst", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrDuplicateDocument))
		assert.True(t, pkgerrors.IsFatal(err))
	})

	t.Run("wrapped stays fatal", func(t *testing.T) {
		wrapped := fmt.Errorf("selecting: %w", pkgerrors.NewDuplicateDocumentError("", "d"))
		assert.True(t, pkgerrors.IsFatal(wrapped))
		assert.Equal(t, "selecting: duplicate document d found", wrapped.Error())
	})
}

func TestAmbiguousStateError(t *testing.T) {
	err := pkgerrors.NewAmbiguousStateError("OCMW Gent", "titles differ")
	assert.Contains(t, err.Error(), "OCMW Gent")
	assert.Contains(t, err.Error(), "titles differ")
	assert.ErrorIs(t, err, pkgerrors.ErrAmbiguousState)
	assert.False(t, pkgerrors.IsFatal(err))
}

func TestStoreError(t *testing.T) {
	t.Run("transport failure is unavailable", func(t *testing.T) {
		err := pkgerrors.NewStoreError("query", "http://db:8890/sparql", 0, errors.New("connection refused"))
		assert.True(t, pkgerrors.IsStoreUnavailable(err))
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("server error is unavailable", func(t *testing.T) {
		err := pkgerrors.NewStoreError("update", "http://db", 503, errors.New("busy"))
		assert.True(t, pkgerrors.IsStoreUnavailable(err))
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("client error is not unavailable", func(t *testing.T) {
		err := pkgerrors.NewStoreError("query", "http://db", 400, errors.New("syntax"))
		assert.False(t, pkgerrors.IsStoreUnavailable(err))
	})

	t.Run("unwrap", func(t *testing.T) {
		base := errors.New("boom")
		err := pkgerrors.WrapStore("query", "http://db", base)
		var storeErr *pkgerrors.StoreError
		require.True(t, errors.As(err, &storeErr))
		assert.Equal(t, base, errors.Unwrap(storeErr))
	})

	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapStore("query", "http://db", nil))
	})
}

func TestCleanupError(t *testing.T) {
	err := &pkgerrors.CleanupError{
		Unit:     "Gemeente Aalst",
		Sessions: map[string]error{"z1": errors.New("boom")},
	}
	assert.True(t, errors.Is(err, pkgerrors.ErrCleanupFailed))
	assert.Contains(t, err.Error(), "z1: boom")
	assert.Contains(t, err.Error(), "1 session(s)")
}

func TestCleanupError_StableMessage(t *testing.T) {
	err := &pkgerrors.CleanupError{
		Unit:     "Gemeente Aalst",
		Sessions: map[string]error{
			"z4": errors.New("timeout"),
			"z2": errors.New("rejected"),
			"z3": errors.New("forbidden"),
			"z1": errors.New("boom"),
		},
	}
	want := "cleanup failed for unit Gemeente Aalst on 4 session(s): z1: boom; z2: rejected; z3: forbidden; z4: timeout"
	for i := 0; i < 50; i++ {
		require.Equal(t, want, err.Error())
	}
}

func TestPublishError(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		err := &pkgerrors.PublishError{Document: "d1", Artifact: "agenda", StatusCode: 500}
		assert.Equal(t, "publish agenda for document d1 returned status 500", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrPublishFailed))
	})

	t.Run("transport", func(t *testing.T) {
		base := errors.New("dial tcp: refused")
		err := &pkgerrors.PublishError{Document: "d1", Artifact: "notule", Err: base}
		assert.Contains(t, err.Error(), "refused")
		assert.True(t, errors.Is(err, base))
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("missing")
	err := pkgerrors.NewConfigError("endpoint", "ENDPOINT is required", base)
	assert.Equal(t, "configuration error in endpoint: ENDPOINT is required", err.Error())
	assert.True(t, errors.Is(err, base))
}

func TestValidationError(t *testing.T) {
	err := pkgerrors.NewValidationError("report_format", "xml", "unsupported format")
	assert.Contains(t, err.Error(), "report_format")
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestWrapIO(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapIO("read", "/tmp/x", nil))

	err := pkgerrors.WrapIO("write", "/tmp/ledger", errors.New("disk full"))
	assert.Equal(t, "IO error during write of /tmp/ledger: disk full", err.Error())
}

func TestWrapParse(t *testing.T) {
	err := pkgerrors.WrapParse("datetime", "pav:lastUpdateOn", errors.New("bad value"))
	var parseErr *pkgerrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "datetime", parseErr.Format)
	assert.Equal(t, "datetime parse error in pav:lastUpdateOn: bad value", err.Error())
}
