package logger

import (
	"os"
)

// ColoredLogger renders log messages using colours when supported by the output writer.
type ColoredLogger struct {
	*StandardLogger
}

// NewColoredLogger returns a logger configured for colourful terminal output when possible.
func NewColoredLogger(options ...Option) *ColoredLogger {
	std := NewStandardLogger(options...)

	writer := std.output
	if writer == nil {
		writer = os.Stderr
	}

	std.formatter = &TextFormatter{
		TimestampFormat: "15:04:05",
		Output:          writer,
	}

	return &ColoredLogger{StandardLogger: std}
}
