// Package emoji provides symbol constants for CLI output.
package emoji

// Symbols used for per-unit outcome lines.
const (
	// Success marks a republished unit.
	Success = "✓"

	// Error marks a cleanup, publish or load failure.
	Error = "✗"

	// Warning marks a unit that needs manual review.
	Warning = "!"

	// Optional marks a unit without a linked session.
	Optional = "-"

	// Unknown marks an unrecognized outcome.
	Unknown = "?"
)
