// Package cli implements the wiregraph command-line interface.
//
// The CLI runs edit scripts against the wire-graph engine, steps through them
// interactively, serves a live graph over HTTP and manages the render cache.
// It is built using cobra and logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - run: Execute a script and print each delta, the nets or a rendering
//   - replay: Step through a script in a terminal UI
//   - serve: Serve the graph over HTTP, optionally preloaded from a script
//   - config: Print the effective configuration
//   - cache: Manage the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which includes
// one line per rule applied by the engine.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Ran 12 steps (3ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
