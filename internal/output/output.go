package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ALT-F4-LLC/sonarexport/internal/render"
)

// Writer handles output for a command, dispatching between JSON and
// human-readable formats based on mode flags.
type Writer struct {
	JSONMode  bool
	QuietMode bool
	Stdout    io.Writer
	Stderr    io.Writer
}

// New creates a Writer configured by the given mode flags.
// Data output goes to os.Stdout; diagnostics go to os.Stderr.
func New(jsonMode, quietMode bool) *Writer {
	return &Writer{
		JSONMode:  jsonMode,
		QuietMode: quietMode,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}

// hints point at the setting most likely behind an error code.
var hints = map[ErrorCode]string{
	ErrUnavailable: "check SONAR_URL (--url) and that the server is running",
	ErrNotFound:    "check PROJECT_KEY (--project) against the projects on the server",
	ErrExport:      "check that SONAR_EXPORT_DIR (--out-dir) is writable",
	ErrValidation:  "run 'sonarexport --help' for the accepted flags and variables",
}

// Success renders a successful export. In JSON mode the result is wrapped in
// a success envelope written to Stdout. In human mode the message is printed
// to Stdout behind a checkmark; the file list is printed separately.
func (w *Writer) Success(data any, message string) {
	if w.JSONMode {
		writeJSONSuccess(w.Stdout, data, message)
		return
	}
	if message == "" {
		return
	}
	if render.ColorsEnabled() {
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render("\u2714")
		fmt.Fprintf(w.Stdout, "%s %s\n", icon, message)
	} else {
		fmt.Fprintln(w.Stdout, message)
	}
}

// Error renders an error. In JSON mode the error is wrapped in an error
// envelope written to Stdout. In human mode the error is printed to Stderr
// with an "Error: " prefix, followed by a hint for codes that have one. The
// corresponding exit code is returned so the caller can pass it to os.Exit.
func (w *Writer) Error(err error, code ErrorCode) int {
	if w.JSONMode {
		writeJSONError(w.Stdout, err, code)
		return ExitCodeForError(code)
	}

	hint := hints[code]
	if render.ColorsEnabled() {
		red := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
		fmt.Fprintf(w.Stderr, "%s %s %s\n", red.Render("\u2718"), red.Render("Error:"), err)
		if hint != "" {
			fmt.Fprintln(w.Stderr, lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("  Hint: "+hint))
		}
	} else {
		fmt.Fprintf(w.Stderr, "Error: %s\n", err)
		if hint != "" {
			fmt.Fprintf(w.Stderr, "  Hint: %s\n", hint)
		}
	}
	return ExitCodeForError(code)
}

// Print writes formatted human content (summaries, tables) to Stdout. It is
// a no-op in JSON mode and in quiet mode.
func (w *Writer) Print(content string) {
	if w.JSONMode || w.QuietMode || content == "" {
		return
	}
	fmt.Fprintln(w.Stdout, strings.TrimRight(content, "\n"))
}

// Info writes an informational message to Stderr. In quiet mode or JSON mode,
// Info is a no-op (the JSON envelope on Stdout is the sole structured output).
func (w *Writer) Info(format string, args ...any) {
	if w.QuietMode || w.JSONMode {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if render.ColorsEnabled() {
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("\u2139")
		text := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(msg)
		fmt.Fprintf(w.Stderr, "%s %s\n", icon, text)
	} else {
		fmt.Fprintln(w.Stderr, msg)
	}
}

// Warn writes a warning to Stderr. Warnings are always emitted in human mode,
// even in quiet mode, but are suppressed in JSON mode (the JSON envelope
// on Stdout is the sole output channel).
func (w *Writer) Warn(format string, args ...any) {
	if w.JSONMode {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if render.ColorsEnabled() {
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true).Render("\u26a0")
		label := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true).Render("Warning:")
		fmt.Fprintf(w.Stderr, "%s %s %s\n", icon, label, msg)
	} else {
		fmt.Fprintf(w.Stderr, "Warning: %s\n", msg)
	}
}
