package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/anchorflow/pkg/pipeline"
)

// stdout receives all human-readable command output. Logs go to stderr.
var stdout io.Writer = os.Stdout

// Palette, by role.
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorOK)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)
	StyleError     = lipgloss.NewStyle().Foreground(colorFail)

	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleCommand = lipgloss.NewStyle().Foreground(colorLink)
	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

// level is the leading marker of a status line.
type level struct {
	icon  string
	style lipgloss.Style
	body  *lipgloss.Style
}

var (
	levelSuccess = level{"✓", StyleSuccess, nil}
	levelError   = level{"✗", StyleError, nil}
	levelWarning = level{"!", StyleWarning, &StyleWarning}
	levelInfo    = level{"›", styleMuted, nil}
)

func (l level) line(format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if l.body != nil {
		msg = l.body.Render(msg)
	}
	return l.style.Render(l.icon) + " " + msg
}

func printSuccess(format string, args ...any) { fmt.Fprintln(stdout, levelSuccess.line(format, args...)) }
func printError(format string, args ...any)   { fmt.Fprintln(stdout, levelError.line(format, args...)) }
func printWarning(format string, args ...any) { fmt.Fprintln(stdout, levelWarning.line(format, args...)) }
func printInfo(format string, args ...any)    { fmt.Fprintln(stdout, levelInfo.line(format, args...)) }

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written output file.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleMuted.Width(12).Render(key)+" "+StyleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printStats(st pipeline.Stats, cached bool) {
	fmt.Fprintln(stdout, statsLine(st, cached))
}

// statsLine renders "N boxes · M runs · 1.2ms · fresh". Zero counts are left out.
func statsLine(st pipeline.Stats, cached bool) string {
	var parts []string
	if st.BoxCount > 0 {
		parts = append(parts, fmt.Sprintf("%d boxes", st.BoxCount))
	}
	if st.RunCount > 0 {
		parts = append(parts, fmt.Sprintf("%d runs", st.RunCount))
	}
	if d := st.SolveTime + st.RenderTime; d > 0 {
		parts = append(parts, formatDuration(d))
	}
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}

	status := styleMuted.Render("fresh")
	if cached {
		status = StyleSuccess.Render("cached")
	}
	return "  " + strings.Join(append(parts, status), StyleDim.Render(" · "))
}

// formatDuration rounds d for display: microseconds below 1ms, tenths of a
// millisecond below 1s.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	case d < time.Second:
		return d.Round(100 * time.Microsecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}
