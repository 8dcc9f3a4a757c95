package transport

import (
	"net/http"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request) {}

// BearerAuth implements Bearer token authentication.
type BearerAuth struct {
	Token string
}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request) {
	if a.Token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+a.Token)
}

// HeaderAuth implements custom header authentication, such as the
// mu-auth-sudo header honoured by semantic.works services.
type HeaderAuth struct {
	Header string
	Value  string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request) {
	if a.Header == "" {
		return
	}
	req.Header.Set(a.Header, a.Value)
}

// AuthenticatorFor picks an authenticator from configuration values.
// A token wins over a header; with neither, requests are sent as is.
func AuthenticatorFor(token, header, value string) Authenticator {
	switch {
	case token != "":
		return &BearerAuth{Token: token}
	case header != "":
		return &HeaderAuth{Header: header, Value: value}
	default:
		return &NoAuth{}
	}
}
