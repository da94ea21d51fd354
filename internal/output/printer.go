package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Printer handles formatted human-readable output.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	isTTY  bool
	styles *Styles
}

// Styles holds lipgloss styles for human-readable output.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Code    lipgloss.Style
	Bold    lipgloss.Style
}

// NewPrinter creates a new Printer. Colors are enabled only when isTTY is true.
func NewPrinter(writer io.Writer, isTTY bool) *Printer {
	styles := &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true), // Red
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // Yellow
		Info:    lipgloss.NewStyle(),
		Code:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // Cyan
		Bold:    lipgloss.NewStyle().Bold(true),
	}

	if !isTTY {
		styles = &Styles{
			Error:   lipgloss.NewStyle(),
			Success: lipgloss.NewStyle(),
			Warning: lipgloss.NewStyle(),
			Info:    lipgloss.NewStyle(),
			Code:    lipgloss.NewStyle(),
			Bold:    lipgloss.NewStyle(),
		}
	}

	return &Printer{
		w:      writer,
		errW:   writer,
		isTTY:  isTTY,
		styles: styles,
	}
}

// WithStderr sets a separate writer for errors and warnings.
// Returns the printer for chaining.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// IsTTY returns true if the printer output is a TTY.
func (p *Printer) IsTTY() bool {
	return p.isTTY
}

// Info writes a plain progress line. An empty format writes a blank line.
func (p *Printer) Info(format string, args ...any) {
	if format == "" {
		mustWrite(fmt.Fprintln(p.w))
		return
	}
	mustWrite(fmt.Fprintln(p.w, p.styles.Info.Render(fmt.Sprintf(format, args...))))
}

// Success writes a highlighted completion line.
func (p *Printer) Success(format string, args ...any) {
	mustWrite(fmt.Fprintln(p.w, p.styles.Success.Render(fmt.Sprintf(format, args...))))
}

// Code writes a command or snippet the user is expected to copy.
func (p *Printer) Code(format string, args ...any) {
	mustWrite(fmt.Fprintln(p.w, "  "+p.styles.Code.Render(fmt.Sprintf(format, args...))))
}

// Warn writes a warning to the error writer.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Warning.Render("Warning"), msg))
}

// Error writes a recognized configuration error to the error writer.
func (p *Printer) Error(err error) {
	mustWrite(fmt.Fprintln(p.errW, p.styles.Error.Render(err.Error())))
}

// Fatal writes an unrecognized error with its full diagnostic to the error writer.
func (p *Printer) Fatal(err error) {
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Error.Render("Unexpected error"), err.Error()))
}

// mustWrite panics if a write operation fails.
// Use this to wrap write operations that should never fail
// (e.g., writing to stdout/stderr or buffers).
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}
