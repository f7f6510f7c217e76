// Package output renders CLI output in terminal, markdown and JSON
// modes. Terminal mode uses styled text; markdown is the plain fallback
// for piped output; JSON serves scripting and CI.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Mode selects the rendering style.
type Mode string

// Rendering modes.
const (
	// ModeAuto picks text on a TTY and markdown otherwise.
	ModeAuto Mode = "auto"
	// ModeText renders styled terminal output.
	ModeText Mode = "text"
	// ModeMarkdown renders plain markdown-friendly output.
	ModeMarkdown Mode = "markdown"
	// ModeJSON renders machine-readable JSON.
	ModeJSON Mode = "json"
)

// StyleSet holds the lipgloss styles used by terminal output.
type StyleSet struct {
	Header  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
}

func defaultStyles() StyleSet {
	return StyleSet{
		Header:  lipgloss.NewStyle().Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Renderer writes output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles StyleSet
}

// NewRenderer creates a renderer. Mode auto resolves against whether
// out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	r := &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTerminal(out),
		styles: defaultStyles(),
	}
	// Piped output and dumb terminals get unstyled text even in text mode.
	if !r.isTTY || termenv.EnvColorProfile() == termenv.Ascii {
		r.styles = StyleSet{}
	}
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// EffectiveMode resolves ModeAuto to text or markdown.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether the output stream is a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Writer returns the underlying output stream.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the underlying error stream.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errOut
}

// Styles returns the style set for ad-hoc styling by commands.
func (r *Renderer) Styles() StyleSet {
	return r.styles
}

// Println writes a plain line to the output stream.
func (r *Renderer) Println(a ...any) {
	fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to the output stream.
func (r *Renderer) Printf(format string, a ...any) {
	fmt.Fprintf(r.out, format, a...)
}

// Header writes a section header.
func (r *Renderer) Header(text string) {
	switch r.EffectiveMode() {
	case ModeText:
		fmt.Fprintln(r.out, r.styles.Header.Render(text))
	case ModeMarkdown:
		fmt.Fprintf(r.out, "## %s\n", text)
	default:
		fmt.Fprintln(r.out, text)
	}
}

// Success writes a success notice.
func (r *Renderer) Success(text string) {
	if r.EffectiveMode() == ModeText {
		fmt.Fprintln(r.out, r.styles.Success.Render("✓ "+text))
		return
	}
	fmt.Fprintln(r.out, text)
}

// Warning writes a warning notice to the error stream.
func (r *Renderer) Warning(text string) {
	if r.EffectiveMode() == ModeText {
		fmt.Fprintln(r.errOut, r.styles.Warning.Render("! "+text))
		return
	}
	fmt.Fprintln(r.errOut, "Warning: "+text)
}

// Error writes an error notice to the error stream.
func (r *Renderer) Error(text string) {
	if r.EffectiveMode() == ModeText {
		fmt.Fprintln(r.errOut, r.styles.Error.Render("ERROR  "+text))
		return
	}
	fmt.Fprintln(r.errOut, "Error: "+text)
}

// Muted writes de-emphasized text.
func (r *Renderer) Muted(text string) {
	if r.EffectiveMode() == ModeText {
		fmt.Fprintln(r.out, r.styles.Muted.Render(text))
		return
	}
	fmt.Fprintln(r.out, text)
}

// JSON writes v as indented JSON to the output stream.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
