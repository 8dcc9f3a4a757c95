package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/lblod/republisher/pkg/constants"
	"github.com/lblod/republisher/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Graph store
	Endpoint                string
	StoreSudo               bool
	StoreTimeout            time.Duration
	ReadinessDelay          time.Duration
	PublicGraph             string
	OrganizationGraphPrefix string

	// Publish service
	PublishBase       string
	PublishTimeout    time.Duration
	PublishToken      string
	PublishAuthHeader string
	PublishAuthValue  string

	// Run settings
	LedgerPath   string
	ReportPath   string
	ReportFormat string
	DryRun       bool
	Units        []string
	Interval     time.Duration

	// Logging configuration
	LogLevel    string // --log-level
	EnvLogLevel string // LOG_LEVEL
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.republisher.yaml)
// 5. Defaults
//
// An explicit configFile must exist; the default locations are optional.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// .env files are loaded before viper binds the environment
	loadEnvFiles()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
		return configFrom(v), nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetConfigName(constants.DefaultConfigName)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "cannot parse config file", err)
		}
	}

	return configFrom(v), nil
}

// setDefaults registers the default value of every configuration key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("ledger_path", constants.DefaultLedgerPath)
	v.SetDefault("report_path", constants.DefaultReportPath)
	v.SetDefault("report_format", "text")
	v.SetDefault("public_graph", constants.DefaultPublicGraph)
	v.SetDefault("organization_graph_prefix", constants.DefaultOrganizationGraphPrefix)
	v.SetDefault("store_timeout", constants.DefaultStoreTimeout)
	v.SetDefault("publish_timeout", constants.DefaultPublishTimeout)
	v.SetDefault("readiness_delay", constants.ReadinessPollDelay)
}

// configFrom builds a Config from a populated viper instance.
func configFrom(v *viper.Viper) *Config {
	return &Config{
		ConfigFile: v.ConfigFileUsed(),

		Endpoint:                v.GetString("endpoint"),
		StoreSudo:               v.GetBool("store_sudo"),
		StoreTimeout:            v.GetDuration("store_timeout"),
		ReadinessDelay:          v.GetDuration("readiness_delay"),
		PublicGraph:             v.GetString("public_graph"),
		OrganizationGraphPrefix: v.GetString("organization_graph_prefix"),

		PublishBase:       v.GetString("publish_base"),
		PublishTimeout:    v.GetDuration("publish_timeout"),
		PublishToken:      v.GetString("publish_token"),
		PublishAuthHeader: v.GetString("publish_auth_header"),
		PublishAuthValue:  v.GetString("publish_auth_value"),

		LedgerPath:   v.GetString("ledger_path"),
		ReportPath:   v.GetString("report_path"),
		ReportFormat: v.GetString("report_format"),
		DryRun:       v.GetBool("dry_run"),
		Units:        splitUnits(v.GetString("unit")),
		Interval:     v.GetDuration("interval"),

		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}
}

// UpdateFromFlags updates config values from parsed command flags.
// Flag values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are never overridden.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// splitUnits parses a comma separated list of unit uuids.
func splitUnits(s string) []string {
	var units []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			units = append(units, part)
		}
	}
	return units
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
