package sparql

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lblod/republisher/pkg/errors"
	"github.com/lblod/republisher/pkg/logging"
)

const selectResponse = `{
  "head": {"vars": ["g", "n"]},
  "results": {"bindings": [
    {"g": {"type": "uri", "value": "http://mu.semte.ch/graphs/organizations/a"},
     "n": {"type": "literal", "value": "Aalst", "xml:lang": "nl"}},
    {"g": {"type": "uri", "value": "http://mu.semte.ch/graphs/organizations/b"}}
  ]}
}`

func TestClient_Query(t *testing.T) {
	var gotQuery, gotAccept, gotSudo string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		gotQuery = r.PostForm.Get("query")
		gotAccept = r.Header.Get("Accept")
		gotSudo = r.Header.Get("mu-auth-sudo")
		w.Header().Set("Content-Type", "application/sparql-results+json")
		_, _ = w.Write([]byte(selectResponse))
	}))
	defer server.Close()

	client := New(server.URL, WithTimeout(time.Second), WithHeader("mu-auth-sudo", "true"))
	bindings, err := client.Query(context.Background(), "SELECT ?g WHERE { GRAPH ?g { ?s ?p ?o } }")
	require.NoError(t, err)

	assert.Equal(t, "SELECT ?g WHERE { GRAPH ?g { ?s ?p ?o } }", gotQuery)
	assert.Equal(t, "application/sparql-results+json", gotAccept)
	assert.Equal(t, "true", gotSudo)

	require.Len(t, bindings, 2)
	assert.Equal(t, "http://mu.semte.ch/graphs/organizations/a", bindings[0].Value("g"))
	assert.Equal(t, "nl", bindings[0]["n"].Lang)
	assert.Equal(t, "", bindings[1].Value("n"))
}

func TestClient_Update(t *testing.T) {
	var gotUpdate string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotUpdate = r.PostForm.Get("update")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := New(server.URL).Update(context.Background(), "DELETE WHERE { ?s ?p ?o }")
	require.NoError(t, err)
	assert.Equal(t, "DELETE WHERE { ?s ?p ?o }", gotUpdate)
}

func TestClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "SP030: SPARQL compiler, line 1: syntax error", http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := New(server.URL).Query(context.Background(), "SELEKT")
	require.Error(t, err)

	var storeErr *errors.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, http.StatusBadRequest, storeErr.StatusCode)
	assert.Equal(t, "query", storeErr.Operation)
	assert.Contains(t, storeErr.Message, "syntax error")
	assert.False(t, errors.IsStoreUnavailable(err))
}

func TestClient_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	_, err := New(server.URL).Query(context.Background(), "SELECT * WHERE {}")
	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "sparql-json", parseErr.Format)
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := New(url).Update(context.Background(), "DELETE WHERE { ?s ?p ?o }")
	require.Error(t, err)
	assert.True(t, errors.IsStoreUnavailable(err))
}

func TestWaitUntilReady(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tl := logging.NewTestLogger(t)
	err := WaitUntilReady(context.Background(), New(server.URL), time.Millisecond, tl.Logger)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	tl.AssertContains(t, "Waiting for database...")
	tl.AssertContains(t, "Database is up")
}

func TestWaitUntilReady_Canceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := WaitUntilReady(ctx, New(server.URL), 10*time.Millisecond, logging.NewNopLogger())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTerms(t *testing.T) {
	assert.Equal(t, `"a \"quoted\"\nline"`, Literal("a \"quoted\"\nline"))
	assert.Equal(t, `"back\\slash"`, Literal(`back\slash`))

	iri, err := IRI("http://data.lblod.info/id/zittingen/1")
	require.NoError(t, err)
	assert.Equal(t, "<http://data.lblod.info/id/zittingen/1>", iri)

	for _, bad := range []string{"", "http://x/a b", "http://x/>", "http://x/{y}"} {
		_, err := IRI(bad)
		assert.True(t, errors.IsValidationError(err), "expected %q to be rejected", bad)
	}

	assert.Panics(t, func() { MustIRI("not an iri") })
}
