// Package output provides consistent CLI output for human-readable diagnostics.
// Lines are styled with lipgloss only when the destination is a terminal, so
// build systems capturing stderr always see plain text.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color palette, shared with the rest of the tooling.
const (
	ColorGray   = "245" // Probe traces
	ColorRed    = "196" // Errors
	ColorYellow = "220" // Warnings
	ColorLime   = "154" // Success
)

// Styles holds the styles used for each kind of line.
type Styles struct {
	Warning lipgloss.Style
	Error   lipgloss.Style
	Trace   lipgloss.Style
	Success lipgloss.Style
}

// DefaultStyles returns the colored styles used on terminals.
func DefaultStyles() Styles {
	return Styles{
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorRed)),
		Trace:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLime)),
	}
}

// Writer provides formatted output for CLI.
type Writer struct {
	out      io.Writer
	useColor bool
	verbose  bool
	styles   Styles
}

// Option configures a Writer.
type Option func(*Writer)

// WithColor forces color on or off, overriding terminal detection.
func WithColor(enabled bool) Option {
	return func(w *Writer) {
		w.useColor = enabled
	}
}

// WithVerbose enables Trace lines.
func WithVerbose(verbose bool) Option {
	return func(w *Writer) {
		w.verbose = verbose
	}
}

// New creates a new output Writer. Color is enabled when out is a terminal.
func New(out io.Writer, opts ...Option) *Writer {
	w := &Writer{
		out:      out,
		useColor: IsTerminal(out),
		styles:   DefaultStyles(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// line writes msg styled with s.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) line(s lipgloss.Style, msg string) {
	if w.useColor {
		msg = s.Render(msg)
	}
	_, _ = fmt.Fprintln(w.out, msg)
}

// Warning prints a recoverable diagnostic.
func (w *Writer) Warning(msg string) {
	w.line(w.styles.Warning, msg)
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints a fatal diagnostic.
func (w *Writer) Error(msg string) {
	w.line(w.styles.Error, msg)
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Success prints a success message.
func (w *Writer) Success(msg string) {
	w.line(w.styles.Success, msg)
}

// Trace prints msg only in verbose mode.
func (w *Writer) Trace(msg string) {
	if !w.verbose {
		return
	}
	w.line(w.styles.Trace, msg)
}

// Tracef prints a formatted trace message.
func (w *Writer) Tracef(format string, args ...any) {
	if !w.verbose {
		return
	}
	w.Trace(fmt.Sprintf(format, args...))
}

// Verbose reports whether Trace lines are printed.
func (w *Writer) Verbose() bool {
	return w.verbose
}
