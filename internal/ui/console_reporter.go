package ui

import (
	"io"

	"go.uber.org/zap"

	"github.com/temirov/rawdrop/internal/utils"
)

const (
	consoleMessageLogConstant = "console message"
	consoleLineFieldConstant  = "line"
	consoleLineEndingConstant = "\n"
)

// ConsoleReporter writes human-readable messages and mirrors them to a zap logger.
type ConsoleReporter struct {
	writer    io.Writer
	logger    *zap.Logger
	formatter MessageFormatter
}

// NewConsoleReporter constructs a reporter writing to output.
func NewConsoleReporter(output io.Writer, logger *zap.Logger) *ConsoleReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if output == nil {
		output = io.Discard
	}
	return &ConsoleReporter{writer: utils.NewFlushingWriter(output), logger: logger, formatter: MessageFormatter{}}
}

// Formatter exposes the message formatter used by the reporter.
func (reporter *ConsoleReporter) Formatter() MessageFormatter {
	return reporter.formatter
}

// Writer returns the console writer so prompts share the same output stream.
func (reporter *ConsoleReporter) Writer() io.Writer {
	return reporter.writer
}

// Print writes one message followed by a line ending.
func (reporter *ConsoleReporter) Print(message string) {
	if reporter == nil {
		return
	}
	reporter.logger.Debug(consoleMessageLogConstant, zap.String(consoleLineFieldConstant, message))
	if _, writeError := io.WriteString(reporter.writer, message+consoleLineEndingConstant); writeError != nil {
		reporter.logger.Warn(consoleMessageLogConstant, zap.Error(writeError))
	}
}

// Failure reports a failed action.
func (reporter *ConsoleReporter) Failure(action string, failure error) {
	if reporter == nil {
		return
	}
	reporter.Print(reporter.formatter.ActionFailed(action, failure))
}
