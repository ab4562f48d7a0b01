// Package output renders command results for terminals and scripts.
//
// Rendering adapts to the environment: a terminal gets styled text, a
// pipe gets the same text unstyled, and --report json switches to
// machine-readable output for CI integration.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode selects how command results are rendered.
type Mode string

const (
	// ModeAuto styles output when stdout is a terminal, plain otherwise.
	ModeAuto Mode = "auto"
	// ModeText renders the human-readable text form.
	ModeText Mode = "text"
	// ModeJSON renders machine-readable JSON.
	ModeJSON Mode = "json"
)

// Styles holds the lipgloss styles applied to text output.
type Styles struct {
	Header  lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

func styledStyles() *Styles {
	return &Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// plainStyles render their input unchanged, for pipes and scripts.
func plainStyles() *Styles {
	return &Styles{
		Header:  lipgloss.NewStyle(),
		Bold:    lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles *Styles
}

// NewRenderer builds a renderer, detecting terminal capabilities from
// the output writer. NO_COLOR and friends are honored via termenv.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	isTTY := termenv.NewOutput(out).EnvColorProfile() != termenv.Ascii
	return NewRendererWithTTY(out, errOut, isTTY, mode)
}

// NewRendererWithTTY builds a renderer with an explicit terminal flag.
// Tests use it to pin styled or plain rendering.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	styles := plainStyles()
	if isTTY {
		styles = styledStyles()
	}
	return &Renderer{out: out, errOut: errOut, mode: mode, isTTY: isTTY, styles: styles}
}

// EffectiveMode resolves ModeAuto to the concrete mode in use.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode == "" || r.mode == ModeAuto {
		return ModeText
	}
	return r.mode
}

// IsTTY reports whether output is going to a styled terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Styles returns the active style set.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Println writes a line to standard output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to standard output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Warn writes a warning line to standard error.
func (r *Renderer) Warn(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("Warning: "+msg))
}

// JSON encodes v to standard output, indented.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
