package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/lblod/republisher/pkg/constants"
)

// Config holds logger configuration options.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error, off.
	Level string

	// Format is json, console or auto (console on a terminal).
	Format string

	// Output is stderr, stdout, discard or a file path opened for append.
	Output string

	// TimeFormat for console timestamps: kitchen, rfc3339, rfc3339nano or a Go layout.
	TimeFormat string

	NoColor   bool
	AddCaller bool

	// Fields are attached to every event, e.g. a service name for a log shipper.
	Fields map[string]any
}

// DefaultConfig returns the configuration used before flags are parsed.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "rfc3339",
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
}

// NewLoggerFromConfig builds a logger and sets the zerolog global level.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	builder := zerolog.New(writerFor(cfg)).Level(level).With().Timestamp()
	if cfg.AddCaller {
		builder = builder.Caller()
	}
	if len(cfg.Fields) > 0 {
		builder = builder.Fields(cfg.Fields)
	}
	return builder.Logger()
}

// ParseLevel parses a log level, falling back to info.
func ParseLevel(level string) zerolog.Level {
	switch level = strings.ToLower(level); level {
	case "":
		return zerolog.InfoLevel
	case "warning":
		return zerolog.WarnLevel
	case "off", "none":
		return zerolog.Disabled
	}
	if l, err := zerolog.ParseLevel(level); err == nil {
		return l
	}
	return zerolog.InfoLevel
}

// writerFor opens the output and wraps it in a console writer when needed.
// An output file that cannot be opened falls back to stderr.
func writerFor(cfg *Config) io.Writer {
	out, terminal := openOutput(cfg.Output)

	switch strings.ToLower(cfg.Format) {
	case "console", "pretty":
	case "json":
		return out
	default:
		if !terminal {
			return out
		}
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: consoleTimeFormat(cfg.TimeFormat),
		NoColor:    cfg.NoColor,
	}
}

func openOutput(output string) (io.Writer, bool) {
	switch strings.ToLower(output) {
	case "", "stderr":
		return os.Stderr, isatty.IsTerminal(os.Stderr.Fd())
	case "stdout":
		return os.Stdout, isatty.IsTerminal(os.Stdout.Fd())
	case "discard", "none":
		return io.Discard, false
	}
	file, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions) //nolint:gosec
	if err != nil {
		return os.Stderr, isatty.IsTerminal(os.Stderr.Fd())
	}
	return file, false
}

func consoleTimeFormat(format string) string {
	switch strings.ToLower(format) {
	case "", "rfc3339":
		return time.RFC3339
	case "rfc3339nano":
		return time.RFC3339Nano
	case "kitchen":
		return time.Kitchen
	}
	if strings.Contains(format, "2006") || strings.Contains(format, "15:04") {
		return format
	}
	return time.RFC3339
}
