// Package cli implements the anchorflow command-line interface.
//
// The commands solve scene files with the direct resolution engine, render the
// results, expose the dependency graph, run the HTTP API and manage the result
// cache. The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - solve: Solve a scene and write json, svg or png outputs
//   - graph: Export the resolution dependency graph as DOT or SVG
//   - explore: Step through a solve interactively
//   - serve: Run the HTTP API
//   - cache: Manage the result cache
//
// # Output
//
// Results go to stdout through the helpers in ui.go. Logs go to stderr through
// one charmbracelet/log logger owned by [CLI]; --verbose lowers it to debug.
// Long-running commands attach it to the command context with log.WithContext.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level, stamped "15:04:05.00".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the completion of a pipeline stage with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time and any extra key/value pairs, e.g.
// "Solved dialog elapsed=1.2ms resolved=true".
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg, append([]any{"elapsed", formatDuration(time.Since(p.start))}, keyvals...)...)
}
