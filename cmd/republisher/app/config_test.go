package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lblod/republisher/pkg/constants"
)

// isolate points HOME at an empty directory and clears the keys tests rely on.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"ENDPOINT", "PUBLISH_BASE", "STORE_TIMEOUT", "UNIT", "DRY_RUN", "LOG_LEVEL", "LEDGER_PATH", "STORE_SUDO"} {
		t.Setenv(key, "")
	}
	return home
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultLedgerPath, config.LedgerPath)
	assert.Equal(t, constants.DefaultReportPath, config.ReportPath)
	assert.Equal(t, "text", config.ReportFormat)
	assert.Equal(t, constants.DefaultPublicGraph, config.PublicGraph)
	assert.Equal(t, constants.DefaultOrganizationGraphPrefix, config.OrganizationGraphPrefix)
	assert.Equal(t, constants.DefaultStoreTimeout, config.StoreTimeout)
	assert.Equal(t, constants.ReadinessPollDelay, config.ReadinessDelay)
	assert.Zero(t, config.PublishTimeout)
	assert.Empty(t, config.Endpoint)
	assert.Empty(t, config.Units)
	assert.Empty(t, config.LogLevel)
	assert.Equal(t, "auto", config.LogFormat)
}

func TestLoadConfig_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("ENDPOINT", "http://database:8890/sparql")
	t.Setenv("PUBLISH_BASE", "http://publisher")
	t.Setenv("STORE_TIMEOUT", "5m")
	t.Setenv("UNIT", "u1, u2,")
	t.Setenv("DRY_RUN", "true")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "http://database:8890/sparql", config.Endpoint)
	assert.Equal(t, "http://publisher", config.PublishBase)
	assert.Equal(t, 5*time.Minute, config.StoreTimeout)
	assert.Equal(t, []string{"u1", "u2"}, config.Units)
	assert.True(t, config.DryRun)
	assert.Equal(t, "debug", config.EnvLogLevel)
	assert.Empty(t, config.LogLevel, "LOG_LEVEL must not act as an explicit flag")
}

func TestLoadConfig_HomeConfigFile(t *testing.T) {
	home := isolate(t)
	content := "endpoint: http://db/sparql\nstore_sudo: true\nledger_path: /data/republished.txt\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, ".republisher.yaml"), []byte(content), 0o644))

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "http://db/sparql", config.Endpoint)
	assert.True(t, config.StoreSudo)
	assert.Equal(t, "/data/republished.txt", config.LedgerPath)
	assert.Equal(t, filepath.Join(home, ".republisher.yaml"), config.ConfigFile)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: http://file/sparql\nreport_format: yaml\n"), 0o644))
	t.Setenv("ENDPOINT", "http://env/sparql")

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://env/sparql", config.Endpoint)
	assert.Equal(t, "yaml", config.ReportFormat)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration error in config")
}

func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Format: "json", LogLevel: ""}

	config.UpdateFromFlags(true, false, true, "", "")
	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "json", config.Format, "empty flag keeps configured format")
	assert.Empty(t, config.LogLevel)

	config.UpdateFromFlags(false, true, false, "yaml", "error")
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "error", config.LogLevel)
	assert.True(t, config.Quiet)
}

func TestSplitUnits(t *testing.T) {
	assert.Nil(t, splitUnits(""))
	assert.Equal(t, []string{"a"}, splitUnits(" a "))
	assert.Equal(t, []string{"a", "b"}, splitUnits("a,,b"))
}
