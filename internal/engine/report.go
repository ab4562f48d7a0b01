package engine

// report.go - per-artifact size summary of a completed run

import (
	"bytes"
	"compress/gzip"
	"strings"
	"time"

	"github.com/PatrickMcKenzier/microbundle/internal/bundler"
	"github.com/PatrickMcKenzier/microbundle/pkg/core"
)

// Row is the size summary of one written artifact.
type Row struct {
	File   string
	Format core.Format
	Size   int64
	Gzip   int64
}

// Report summarizes completed builds: every written artifact with its
// raw and compressed size, plus engine warnings that did not fail the
// build.
type Report struct {
	RunID    string
	Started  time.Time
	Rows     []Row
	Warnings []string
}

func newReport(runID string) *Report {
	return &Report{RunID: runID, Started: time.Now().UTC()}
}

// add records the artifacts of one completed step. Source maps are
// written but not reported.
func (r *Report) add(format core.Format, res *bundler.Result) {
	r.Rows = append(r.Rows, row(format, res.Bundle))
	for _, a := range res.Extras {
		if strings.HasSuffix(a.File, ".map") {
			continue
		}
		r.Rows = append(r.Rows, row(format, a))
	}
	r.Warnings = append(r.Warnings, res.Warnings...)
}

func row(format core.Format, a core.Artifact) Row {
	return Row{
		File:   a.File,
		Format: format,
		Size:   int64(len(a.Code)),
		Gzip:   gzipSize(a.Code),
	}
}

// gzipSize measures the compressed footprint the artifact would have on
// the wire.
func gzipSize(data []byte) int64 {
	var buf bytes.Buffer
	w, _ := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	_, _ = w.Write(data)
	_ = w.Close()
	return int64(buf.Len())
}
