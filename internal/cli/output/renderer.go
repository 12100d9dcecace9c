// Package output renders CLI results as styled text, markdown, or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// OutputMode selects how results are written.
type OutputMode string //nolint:revive

// Output modes accepted by --output.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Modes lists the values offered for shell completion.
var Modes = []string{string(ModeAuto), string(ModeText), string(ModeMarkdown), string(ModeJSON)}

// Mode parses an output format name. Unknown names fall back to auto.
func Mode(s string) OutputMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt":
		return ModeText
	case "markdown", "md":
		return ModeMarkdown
	case "json":
		return ModeJSON
	default:
		return ModeAuto
	}
}

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
}

func newStyles(w io.Writer, isTTY bool) *Styles {
	lr := lipgloss.NewRenderer(w)
	if !isTTY {
		lr.SetColorProfile(termenv.Ascii)
	}
	return &Styles{
		Header:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Success: lr.NewStyle().Foreground(lipgloss.Color("10")),
		Error:   lr.NewStyle().Foreground(lipgloss.Color("9")),
		Warning: lr.NewStyle().Foreground(lipgloss.Color("11")),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	isTTY  bool
	mode   OutputMode
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		isTTY:  isTTY,
		mode:   mode,
		styles: newStyles(out, isTTY),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec
}

// EffectiveMode resolves auto to text on a terminal and markdown otherwise.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Styles returns the text styles.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Out returns the primary writer.
func (r *Renderer) Out() io.Writer {
	return r.out
}

// Println writes a line to the primary writer.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to the primary writer.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header writes a section title at the given markdown level.
func (r *Renderer) Header(level int, title string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Printf("%s %s\n\n", strings.Repeat("#", max(level, 1)), title)
		return
	}
	r.Println(r.styles.Header.Render(title))
}

// StatusLine writes one item with a status marker and optional detail.
func (r *Renderer) StatusLine(name, status, detail string) {
	var marker string
	switch status {
	case "success":
		marker = r.styles.Success.Render("✓")
	case "skipped":
		marker = r.styles.Muted.Render("-")
	case "error":
		marker = r.styles.Error.Render("✗")
	default:
		marker = r.styles.Warning.Render("!")
	}
	if r.EffectiveMode() == ModeMarkdown {
		marker = "- " + status + ":"
	}
	if detail != "" {
		r.Printf("%s %s %s\n", marker, name, r.Muted("("+detail+")"))
		return
	}
	r.Printf("%s %s\n", marker, name)
}

// Success writes a confirmation line.
func (r *Renderer) Success(msg string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(msg)
		return
	}
	r.Println(r.styles.Success.Render("✓ " + msg))
}

// Warning writes a warning to the error writer.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("! "+msg))
}

// Error writes an error to the error writer.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("✗ "+msg))
}

// Muted returns s in the muted style.
func (r *Renderer) Muted(s string) string {
	return r.styles.Muted.Render(s)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table writes rows as a light box table in text mode and a pipe table in
// markdown mode. Callers handle JSON themselves.
func (r *Renderer) Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		r.Println(r.Muted("(0 rows)"))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	t.AppendHeader(header)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}

	if r.EffectiveMode() == ModeMarkdown {
		t.RenderMarkdown()
		r.Println()
		return
	}
	t.Render()
}
