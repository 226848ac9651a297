package report

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jenian/i18ngrd/internal/analyzer"
	"github.com/spf13/afero"
)

const reportPrefix = "translation-analysis-"

// Files saves each report under a timestamped name in a directory, keeps a
// latest.<ext> copy and regenerates an index.html listing every report.
type Files struct {
	fs     afero.Fs
	dir    string
	logger *slog.Logger
}

// NewFiles creates a file reporter writing to dir. A nil fs writes to the
// operating system.
func NewFiles(fs afero.Fs, dir string) *Files {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Files{
		fs:     fs,
		dir:    dir,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger used to announce saved reports
func (f *Files) SetLogger(logger *slog.Logger) {
	if logger != nil {
		f.logger = logger
	}
}

// FileName returns the timestamped report name for a run
func FileName(run Run) string {
	ts := run.StartedAt.UTC().Format("2006-01-02T15-04-05.000Z")
	return reportPrefix + strings.ReplaceAll(ts, ".", "-") + "." + extension(run)
}

func extension(run Run) string {
	if run.Extension != "" {
		return run.Extension
	}
	return "txt"
}

// Report writes the formatted output and refreshes latest.<ext> and index.html
func (f *Files) Report(ctx context.Context, run Run, _ analyzer.AnalysisResult, formatted string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := f.fs.MkdirAll(f.dir, 0755); err != nil {
		return fmt.Errorf("create report directory %s: %w", f.dir, err)
	}

	path := filepath.Join(f.dir, FileName(run))
	if err := afero.WriteFile(f.fs, path, []byte(formatted), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	f.logger.Info("report saved", "path", path)

	latest := filepath.Join(f.dir, "latest."+extension(run))
	if err := afero.WriteFile(f.fs, latest, []byte(formatted), 0644); err != nil {
		return fmt.Errorf("write latest report: %w", err)
	}

	// The index is a convenience; failing to build it does not fail the report
	if err := f.writeIndex(run); err != nil {
		f.logger.Warn("failed to generate report index", "error", err)
	}
	return nil
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Translation Analysis Reports</title>
<style>
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 40px; background: #f5f5f5; }
.container { max-width: 800px; margin: 0 auto; background: white; padding: 30px; border-radius: 8px; }
li { margin: 8px 0; }
.latest { background: #4caf50; color: white; padding: 2px 8px; border-radius: 12px; font-size: 0.8em; margin-left: 10px; }
</style>
</head>
<body>
<div class="container">
<h1>Translation Analysis Reports</h1>
{{- with .SrcPath}}
<p>Source: <strong>{{.}}</strong></p>
{{- end}}
<ul>
{{- range $i, $name := .Reports}}
<li><a href="{{$name}}">{{$name}}</a>{{if eq $i 0}}<span class="latest">Latest</span>{{end}}</li>
{{- end}}
</ul>
</div>
</body>
</html>
`))

func (f *Files) writeIndex(run Run) error {
	entries, err := afero.ReadDir(f.fs, f.dir)
	if err != nil {
		return err
	}
	var reports []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), reportPrefix) {
			reports = append(reports, entry.Name())
		}
	}
	// Newest first; names embed a sortable timestamp
	sort.Sort(sort.Reverse(sort.StringSlice(reports)))

	var b strings.Builder
	data := struct {
		SrcPath string
		Reports []string
	}{run.SrcPath, reports}
	if err := indexTemplate.Execute(&b, data); err != nil {
		return err
	}
	return afero.WriteFile(f.fs, filepath.Join(f.dir, "index.html"), []byte(b.String()), 0644)
}
