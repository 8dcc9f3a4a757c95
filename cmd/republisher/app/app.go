// Package app provides the application context and dependency management
// for the republisher CLI. It centralizes configuration, logging and the
// lifecycle of the graph store client and the progress ledger.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lblod/republisher"
	"github.com/lblod/republisher/cmd/application"
	"github.com/lblod/republisher/internal/ledger"
	"github.com/lblod/republisher/internal/publish"
	"github.com/lblod/republisher/internal/sparql"
	"github.com/lblod/republisher/internal/store"
	"github.com/lblod/republisher/internal/transport"
	"github.com/lblod/republisher/pkg/errors"
)

var _ application.Application = (*App)(nil)

// App represents the republisher application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Lazily created, shared by all commands of one invocation
	mu     sync.Mutex
	client *sparql.Client
	ledger *ledger.Ledger
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the default locations; use WithConfig to
// replace it.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// LedgerPath returns the ProgressLedger file location.
func (a *App) LedgerPath() string {
	return a.config.LedgerPath
}

// RunSettings returns the run settings from configuration.
func (a *App) RunSettings() application.RunSettings {
	return application.RunSettings{
		DryRun:       a.config.DryRun,
		Units:        append([]string(nil), a.config.Units...),
		ReportPath:   a.config.ReportPath,
		ReportFormat: a.config.ReportFormat,
		Interval:     a.config.Interval,
	}
}

// WaitForStore blocks until the graph store answers a probe.
func (a *App) WaitForStore(ctx context.Context) error {
	client, err := a.storeClient()
	if err != nil {
		return err
	}
	return sparql.WaitUntilReady(ctx, client, a.config.ReadinessDelay, a.logger)
}

// Republisher builds a Republisher wired to the configured graph store,
// publish service and ledger.
func (a *App) Republisher(settings application.RunSettings) (*republisher.Republisher, error) {
	if !settings.DryRun && a.config.PublishBase == "" {
		return nil, errors.NewConfigError("publish_base", "PUBLISH_BASE is required unless running dry", nil)
	}

	client, err := a.storeClient()
	if err != nil {
		return nil, err
	}
	led, err := a.progressLedger()
	if err != nil {
		return nil, err
	}

	st := store.New(client,
		store.WithPublicGraph(a.config.PublicGraph),
		store.WithOrganizationGraphPrefix(a.config.OrganizationGraphPrefix),
	)

	httpClient := transport.New(
		transport.WithTimeout(a.config.PublishTimeout),
		transport.WithAuthenticator(transport.AuthenticatorFor(
			a.config.PublishToken,
			a.config.PublishAuthHeader,
			a.config.PublishAuthValue,
		)),
	)
	pub := publish.NewHTTP(httpClient, a.config.PublishBase, publish.WithDryRun(settings.DryRun))

	return republisher.New(st, pub, led,
		republisher.WithDryRun(settings.DryRun),
		republisher.WithUnits(settings.Units...),
	)
}

// Shutdown releases the resources held by the application.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ledger == nil {
		return nil
	}
	err := a.ledger.Close()
	a.ledger = nil
	return err
}

// storeClient returns the graph store client, creating it on first use.
func (a *App) storeClient() (*sparql.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}
	if a.config.Endpoint == "" {
		return nil, errors.NewConfigError("endpoint", "ENDPOINT is required", nil)
	}

	opts := []sparql.Option{sparql.WithTimeout(a.config.StoreTimeout)}
	if a.config.StoreSudo {
		opts = append(opts, sparql.WithHeader("mu-auth-sudo", "true"))
	}
	a.client = sparql.New(a.config.Endpoint, opts...)
	return a.client, nil
}

// progressLedger opens the ledger on first use.
func (a *App) progressLedger() (*ledger.Ledger, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ledger != nil {
		return a.ledger, nil
	}
	led, err := ledger.Open(a.config.LedgerPath)
	if err != nil {
		return nil, err
	}
	a.ledger = led
	return led, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewValidationError("config", nil, "config cannot be nil")
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
