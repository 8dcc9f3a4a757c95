// Package sparql is a minimal client for a SPARQL 1.1 query/update endpoint.
// Queries return typed bindings decoded from application/sparql-results+json.
package sparql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lblod/republisher/pkg/constants"
	"github.com/lblod/republisher/pkg/errors"
)

// Term is a single RDF term in a result binding.
type Term struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty"`
}

// Binding maps variable names to the terms bound in one solution.
type Binding map[string]Term

// Value returns the lexical value bound to name, or "" when unbound.
func (b Binding) Value(name string) string {
	return b[name].Value
}

// Results is the JSON results document of a SELECT query.
type Results struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []Binding `json:"bindings"`
	} `json:"results"`
}

// Executor runs queries and updates against a graph store.
type Executor interface {
	Query(ctx context.Context, query string) ([]Binding, error)
	Update(ctx context.Context, update string) error
}

// Client talks to a SPARQL endpoint over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
	headers  http.Header
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request made by the client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithHeader adds a header sent with every request (e.g. mu-auth-sudo).
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// New creates a client for the given endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: constants.DefaultStoreTimeout},
		headers:  make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Query runs a SELECT query and returns its bindings in result order.
func (c *Client) Query(ctx context.Context, query string) ([]Binding, error) {
	resp, err := c.post(ctx, "query", query, "application/sparql-results+json")
	if err != nil {
		return nil, err
	}

	var results Results
	if err := decodeResponse(resp, "query", c.endpoint, &results); err != nil {
		return nil, err
	}
	return results.Results.Bindings, nil
}

// Update runs a SPARQL update (DELETE/INSERT).
func (c *Client) Update(ctx context.Context, update string) error {
	resp, err := c.post(ctx, "update", update, "application/json")
	if err != nil {
		return err
	}
	return decodeResponse(resp, "update", c.endpoint, nil)
}

// Ping issues a GET against the endpoint and succeeds on any 2xx response.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return errors.WrapStore("probe", c.endpoint, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapStore("probe", c.endpoint, err)
	}
	defer resp.Body.Close() //nolint:errcheck
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewStoreError("probe", c.endpoint, resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status))
	}
	return nil
}

func (c *Client) post(ctx context.Context, field, body, accept string) (*http.Response, error) {
	form := url.Values{field: {body}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.WrapStore(field, c.endpoint, err)
	}
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", accept)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapStore(field, c.endpoint, err)
	}
	return resp, nil
}

// decodeResponse checks the status and, when target is non-nil, decodes the JSON body.
func decodeResponse(resp *http.Response, operation, endpoint string, target any) error {
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewStoreError(operation, endpoint, resp.StatusCode, fmt.Errorf("%s", strings.TrimSpace(string(body))))
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("sparql-json", endpoint, err)
	}
	return nil
}
