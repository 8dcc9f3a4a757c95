// Package constants provides shared constants used throughout the republisher.
// This includes timeouts, file permissions, graph locations and other values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultStoreTimeout is the maximum wait for a single graph store request
	DefaultStoreTimeout = 60 * time.Second

	// DefaultPublishTimeout is the timeout for publish calls. Zero means no timeout.
	DefaultPublishTimeout = 0 * time.Second

	// ReadinessPollDelay is the fixed delay between graph store readiness probes
	ReadinessPollDelay = 2 * time.Second

	// ShutdownTimeout is how long graceful shutdown may take after an error
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Graph locations
const (
	// DefaultPublicGraph holds sessions, units and published artifacts
	DefaultPublicGraph = "http://mu.semte.ch/graphs/public"

	// DefaultOrganizationGraphPrefix prefixes every per-unit graph; the remainder is the unit uuid
	DefaultOrganizationGraphPrefix = "http://mu.semte.ch/graphs/organizations/"
)

// Default file locations
const (
	// DefaultLedgerPath is the default ProgressLedger file
	DefaultLedgerPath = "republished.txt"

	// DefaultReportPath is the default run report file
	DefaultReportPath = "republish-report.txt"

	// DefaultConfigName is the config file name searched in $HOME and the working directory
	DefaultConfigName = ".republisher"
)

// Format constants
const (
	// TimeFormatReport is the time format used in run reports
	TimeFormatReport = time.RFC3339
)
