// Package cli implements the flighttree command-line interface.
//
// The commands build a balanced search tree from the flight codes of a
// schedule and draw it in one of several formats. Schedules come from a CSV
// file (--file), a stored dataset (--dataset) or the bundled sample.
//
// # Commands
//
//   - tree, inorder, search: draw the structure, the traversal or a search path
//   - codes: list the codes a tree would be built from
//   - sample: write the bundled sample schedule to disk
//   - dataset: add, list and remove stored schedules
//   - store: inspect and clear the dataset store
//   - serve: run the HTTP API
//   - browse: pick codes interactively and watch their search paths
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The serve
// command logs to a rotating file when server.log_file is configured.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// Rotation settings for the server log file.
const (
	logMaxSizeMB  = 50
	logMaxBackups = 5
	logMaxAgeDays = 28
)

// newFileLogger creates a JSON logger writing to a size-rotated file. The
// returned closer flushes and closes the current file.
func newFileLogger(path string, level log.Level) (*log.Logger, io.Closer) {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
		Compress:   true,
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
		Formatter:       log.JSONFormatter,
	})
	return logger, w
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 2 files (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
