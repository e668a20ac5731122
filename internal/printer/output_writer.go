package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type outputWriter struct {
	w      io.Writer
	styles Styles

	// width of the line number column
	gutter int
}

func (w *outputWriter) writeGutter(line int) {
	if line == 0 {
		fmt.Fprintf(w.w, "%s | ", strings.Repeat(" ", w.gutter))
	} else {
		fmt.Fprintf(w.w, "%*d | ", w.gutter, line)
	}
}

func (w *outputWriter) WriteHeader(severity, message string) {
	fmt.Fprintf(w.w, "%s: %s\n", w.styles.Severity.Render(severity), w.styles.Message.Render(message))
}

func (w *outputWriter) WriteLocation(fileName, location string) {
	fmt.Fprintf(w.w, "%s--> %s: %s\n", strings.Repeat(" ", w.gutter), fileName, w.styles.Location.Render(location))
}

func (w *outputWriter) WriteSourceLine(line int, contents string) {
	w.writeGutter(0)
	fmt.Fprint(w.w, "\n")

	w.writeGutter(line)
	fmt.Fprintf(w.w, "%s\n", contents)
}

func (w *outputWriter) WriteUnderline(prefix string, length int) {
	if length < 1 {
		length = 1
	}

	w.writeGutter(0)
	fmt.Fprintf(w.w, "%s%s\n", prefix, w.styles.Underline.Render(strings.Repeat("^", length)))
}

func (w *outputWriter) WriteToken(location, kind, payload string) {
	fmt.Fprintf(w.w, "%-*s  %-10s", w.gutter, location, kind)

	if payload != "" {
		fmt.Fprintf(w.w, "  %s", payload)
	}

	fmt.Fprint(w.w, "\n")
}

// Styles controls how diagnostics are decorated.
type Styles struct {
	Severity  lipgloss.Style
	Message   lipgloss.Style
	Location  lipgloss.Style
	Underline lipgloss.Style
}

// DefaultStyles colors diagnostics according to what the renderer's output
// supports, so r should wrap the writer diagnostics go to.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Severity:  r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Message:   r.NewStyle().Bold(true),
		Location:  r.NewStyle().Foreground(lipgloss.Color("12")),
		Underline: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// PlainStyles renders everything without decoration.
func PlainStyles() Styles {
	return Styles{
		Severity:  lipgloss.NewStyle(),
		Message:   lipgloss.NewStyle(),
		Location:  lipgloss.NewStyle(),
		Underline: lipgloss.NewStyle(),
	}
}
