// Package application provides test doubles for the command application interface.
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lblod/republisher"
	app "github.com/lblod/republisher/cmd/application"
)

var _ app.Application = (*Mock)(nil)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    LedgerPathFunc: func() string { return filepath.Join(t.TempDir(), "republished.txt") },
//	}
//	cmd := ledger.NewCommand(mock)
type Mock struct {
	RepublisherFunc  func(settings app.RunSettings) (*republisher.Republisher, error)
	WaitForStoreFunc func(ctx context.Context) error
	RunSettingsFunc  func() app.RunSettings
	LedgerPathFunc   func() string
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
}

// Republisher returns a republisher using the mock function or nil.
func (m *Mock) Republisher(settings app.RunSettings) (*republisher.Republisher, error) {
	if m.RepublisherFunc != nil {
		return m.RepublisherFunc(settings)
	}
	return nil, nil
}

// WaitForStore uses the mock function or returns immediately.
func (m *Mock) WaitForStore(ctx context.Context) error {
	if m.WaitForStoreFunc != nil {
		return m.WaitForStoreFunc(ctx)
	}
	return nil
}

// RunSettings returns settings using the mock function or zero settings.
func (m *Mock) RunSettings() app.RunSettings {
	if m.RunSettingsFunc != nil {
		return m.RunSettingsFunc()
	}
	return app.RunSettings{}
}

// LedgerPath returns the ledger path using the mock function or "republished.txt".
func (m *Mock) LedgerPath() string {
	if m.LedgerPathFunc != nil {
		return m.LedgerPathFunc()
	}
	return "republished.txt"
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}
