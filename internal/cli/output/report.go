package output

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Summary is the renderable outcome of one completed run or rebuild.
type Summary struct {
	RunID     string     `json:"run_id"`
	Artifacts []Artifact `json:"artifacts"`
	Warnings  []string   `json:"warnings,omitempty"`
}

// Artifact is one written bundle with its measured footprint.
type Artifact struct {
	File   string `json:"file"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
	Gzip   int64  `json:"gzip"`
}

// RenderSummary writes the per-artifact size table, or the JSON form
// when that mode is selected. Warnings go to standard error so piped
// output stays clean.
func (r *Renderer) RenderSummary(s *Summary) error {
	if r.EffectiveMode() == ModeJSON {
		return r.JSON(s)
	}

	for _, w := range s.Warnings {
		r.Warn(w)
	}

	if len(s.Artifacts) == 0 {
		r.Println("(no output)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Format", "Size", "Gzip"})
	for _, a := range s.Artifacts {
		t.AppendRow(table.Row{a.File, a.Format, FormatSize(a.Size), FormatSize(a.Gzip)})
	}
	t.Render()
	return nil
}

// FormatSize renders a byte count in decimal units, the convention
// bundler users compare against published package sizes.
func FormatSize(n int64) string {
	switch {
	case n < 1000:
		return fmt.Sprintf("%d B", n)
	case n < 1000*1000:
		return fmt.Sprintf("%.1f kB", float64(n)/1000)
	default:
		return fmt.Sprintf("%.2f MB", float64(n)/(1000*1000))
	}
}
