// Package diag provides the structured logging and terminal reporting used
// by the scheduler and the cmd/agdlrun entry point. The logger setup is
// grounded on open-platform-model-cli's internal/output/log.go
// (charmbracelet/log with a lipgloss-styled module prefix); the long-form
// summary renderer is grounded on dekarrin-tunaq's engine.go use of
// github.com/dekarrin/rosed to wrap free-form text to a terminal width.
package diag

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dekarrin/rosed"
)

var (
	colorCyan   = lipgloss.Color("14")
	colorYellow = lipgloss.Color("220")
	colorGreen  = lipgloss.Color("82")
	styleDim    = lipgloss.NewStyle().Faint(true)
)

// logger is the process-wide logger; SetupLogging reconfigures it once the
// CLI has parsed --debug.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05",
})

// SetupLogging configures the global logger's level and caller reporting.
// debug enables DebugLevel and caller info, mirroring the supplemented
// DEBUG configuration flag described in SPEC_FULL.md.
func SetupLogging(debug bool) {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		ReportCaller:    debug,
		TimeFormat:      "15:04:05",
	})
}

// ModuleLogger returns a child logger scoped to a named component (e.g. a
// scheduler run-ID or a transformer instance name).
func ModuleLogger(name string) *log.Logger {
	prefix := fmt.Sprintf("%s%s",
		styleDim.Render("m:"),
		lipgloss.NewStyle().Foreground(colorCyan).Render(name),
	)
	return logger.WithPrefix(prefix)
}

// Debug logs at debug level on the root logger.
func Debug(msg string, keyvals ...interface{}) { logger.Debug(msg, keyvals...) }

// Info logs at info level on the root logger.
func Info(msg string, keyvals ...interface{}) { logger.Info(msg, keyvals...) }

// Warn logs at warn level on the root logger.
func Warn(msg string, keyvals ...interface{}) { logger.Warn(msg, keyvals...) }

// Error logs at error level on the root logger.
func Error(msg string, keyvals ...interface{}) { logger.Error(msg, keyvals...) }

const reportWidth = 88

// Summary renders a short styled completion panel: a headline plus a body
// of free-form text wrapped to terminal width via rosed, inside a rounded
// lipgloss border colored by ok.
func Summary(headline string, body string, ok bool) string {
	borderColor := colorGreen
	if !ok {
		borderColor = colorYellow
	}

	wrapped := rosed.Edit(body).Wrap(reportWidth).String()

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	title := lipgloss.NewStyle().Bold(true).Foreground(borderColor).Render(headline)
	return box.Render(title + "\n" + wrapped)
}
