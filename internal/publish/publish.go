// Package publish posts a candidate's artifacts to the publish service.
package publish

import (
	"context"
	"net/url"
	"strings"

	"github.com/lblod/republisher/internal/transport"
	"github.com/lblod/republisher/pkg/documents"
	"github.com/lblod/republisher/pkg/errors"
	"github.com/lblod/republisher/pkg/logging"
)

// Artifact is one publish endpoint.
type Artifact string

// Publish endpoints, in the order they are called.
const (
	ArtifactAgenda   Artifact = "agenda"
	ArtifactDecision Artifact = "decision"
	ArtifactMinutes  Artifact = "notule"
)

// ArtifactsFor returns the artifacts published for a status tier.
func ArtifactsFor(status documents.Status) []Artifact {
	switch status {
	case documents.StatusApproved:
		return []Artifact{ArtifactAgenda, ArtifactDecision, ArtifactMinutes}
	case documents.StatusDecisionListPublic:
		return []Artifact{ArtifactAgenda, ArtifactDecision}
	case documents.StatusAgendaPublic:
		return []Artifact{ArtifactAgenda}
	default:
		return nil
	}
}

// Poster sends a bodiless POST and returns the response status.
type Poster interface {
	Post(ctx context.Context, url string) (int, error)
}

// Executor publishes candidates.
type Executor struct {
	poster Poster
	base   string
	dryRun bool
}

// Option configures an Executor.
type Option func(*Executor)

// WithDryRun logs the publish URLs without calling them.
func WithDryRun(dryRun bool) Option {
	return func(e *Executor) {
		e.dryRun = dryRun
	}
}

// New creates an Executor posting to {base}/publish/{artifact}/{docId}.
func New(poster Poster, base string, opts ...Option) *Executor {
	e := &Executor{poster: poster, base: strings.TrimRight(base, "/")}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewHTTP creates an Executor backed by a transport client.
func NewHTTP(client *transport.Client, base string, opts ...Option) *Executor {
	return New(client, base, opts...)
}

// URL returns the publish URL of one artifact of a document.
func (e *Executor) URL(artifact Artifact, docID string) string {
	return e.base + "/publish/" + string(artifact) + "/" + url.PathEscape(docID)
}

// Publish posts every artifact of the candidate's tier in order. The first
// non-2xx response or transport error stops the sequence and is returned as
// a *errors.PublishError. The artifacts posted successfully are returned.
func (e *Executor) Publish(ctx context.Context, candidate *documents.Candidate) ([]Artifact, error) {
	artifacts := ArtifactsFor(candidate.Status)
	if len(artifacts) == 0 {
		return nil, errors.NewValidationError("status", candidate.Status.String(), "status has no publication tier")
	}

	logger := logging.FromContext(logging.WithOperation(ctx, "publish"))
	done := make([]Artifact, 0, len(artifacts))
	for _, artifact := range artifacts {
		target := e.URL(artifact, candidate.DocumentID)
		if e.dryRun {
			logger.Info().Str("url", target).Msg("Would publish")
			done = append(done, artifact)
			continue
		}

		status, err := e.poster.Post(ctx, target)
		if err != nil {
			return done, &errors.PublishError{Document: candidate.DocumentID, Artifact: string(artifact), URL: target, Err: err}
		}
		if !transport.IsSuccess(status) {
			return done, &errors.PublishError{Document: candidate.DocumentID, Artifact: string(artifact), URL: target, StatusCode: status}
		}

		logger.Debug().Str("url", target).Int("status", status).Msg("Published artifact")
		done = append(done, artifact)
	}
	return done, nil
}
