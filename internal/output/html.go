package output

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/jenian/i18ngrd/internal/analyzer"
)

const htmlLimit = 50

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"join":  strings.Join,
	"limit": limitItems,
	"more":  moreItems,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Translation Analysis Report</title>
<style>
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 20px; background: #f5f5f5; }
.container { max-width: 1200px; margin: 0 auto; background: white; padding: 30px; border-radius: 8px; }
.meta { color: #666; }
.grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 16px; margin: 24px 0; }
.card { background: #007acc; color: white; padding: 16px; border-radius: 8px; text-align: center; }
.card .value { font-size: 2em; font-weight: bold; }
.progress { background: #e0e0e0; border-radius: 10px; height: 20px; overflow: hidden; }
.progress .fill { height: 100%; background: #4caf50; }
.key { background: #f8f9fa; margin: 6px 0; padding: 10px; border-left: 4px solid #007acc; }
.missing { border-left-color: #f44336; }
.unused { border-left-color: #ff9800; }
.dynamic { border-left-color: #9c27b0; }
.location { color: #666; font-size: 0.9em; }
code { background: #f0f0f0; padding: 2px 6px; margin: 2px; display: inline-block; }
</style>
</head>
<body>
<div class="container">
<h1>Translation Analysis Report</h1>
<div class="meta">{{with .GeneratedAt}}Generated {{.}} | {{end}}{{with .Meta.SrcPath}}Source: {{.}} | {{end}}{{with .Meta.LocalesPath}}Locales: {{.}}{{end}}</div>
{{- if .Summary}}
<div class="grid">
<div class="card"><div class="value">{{.Result.TotalKeys}}</div>Total keys</div>
<div class="card"><div class="value">{{.Result.Coverage}}%</div>Coverage</div>
<div class="card"><div class="value">{{len .Result.MissingKeys}}</div>Missing keys</div>
<div class="card"><div class="value">{{len .Result.UnusedKeys}}</div>Unused keys</div>
</div>
<div class="progress"><div class="fill" style="width: {{.Width}}%"></div></div>
<p>Used {{.Result.UsedKeysCount}} of {{.Result.TotalKeys}} keys ({{.Result.Coverage}}% coverage){{with .Result.Languages}}, languages: {{join . ", "}}{{end}}</p>
{{- end}}
{{- if .Missing}}
<h2>Missing Keys ({{len .Result.MissingKeys}})</h2>
{{- range .Result.MissingKeys}}
<div class="key missing"><strong>{{.}}</strong>{{range index $.Result.MissingLocations .}}<div class="location">{{.File}}:{{.Line}}{{if .Column}}:{{.Column}}{{end}} ({{.Context}})</div>{{end}}</div>
{{- else}}
<p>No missing keys found.</p>
{{- end}}
{{- end}}
{{- if .Unused}}
<h2>Unused Keys ({{len .Result.UnusedKeys}})</h2>
{{- range .Result.UnusedKeys}}
<div class="key unused">{{.}}</div>
{{- else}}
<p>No unused keys found.</p>
{{- end}}
{{- end}}
{{- if .Dynamic}}
<h2>Dynamic Patterns ({{len .Patterns}})</h2>
{{- range .Patterns}}
<div class="key dynamic"><strong>{{.Pattern}}</strong> <span class="location">{{len .Matches}} match(es)</span><div>{{range limit .Matches 5}}<code>{{.}}</code>{{end}}{{with more .Matches 5}} ... and {{.}} more{{end}}</div></div>
{{- else}}
<p>No dynamic patterns detected.</p>
{{- end}}
{{- end}}
{{- if .Ignored}}
<h2>Ignored Keys ({{len .Result.IgnoredKeys}})</h2>
{{- range .Result.IgnoredKeys}}
<div class="key">{{.}}</div>
{{- end}}
{{- end}}
{{- if .Used}}
<h2>Used Keys ({{len .Result.UsedKeys}})</h2>
{{- range limit .Result.UsedKeys .Limit}}
<div class="key">{{.}}</div>
{{- end}}
{{- with more .Result.UsedKeys .Limit}}
<p>... and {{.}} more used keys</p>
{{- end}}
{{- end}}
{{- if .Translation}}
<h2>Translation Keys ({{len .Result.TranslationKeys}})</h2>
{{- range $lang, $gaps := .Result.LanguageGaps}}
<p>{{$lang}} lacks {{len $gaps}} key(s): {{range $gaps}}<code>{{.}}</code>{{end}}</p>
{{- end}}
{{- range limit .Result.TranslationKeys .Limit}}
<div class="key">{{.}}</div>
{{- end}}
{{- end}}
</div>
</body>
</html>
`))

type htmlData struct {
	Result      analyzer.AnalysisResult
	Patterns    []analyzer.DynamicPattern
	Meta        Meta
	GeneratedAt string
	Width       int
	Limit       int

	Summary, Missing, Unused, Dynamic, Ignored, Used, Translation bool
}

func limitItems(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func moreItems(items []string, n int) int {
	if len(items) > n {
		return len(items) - n
	}
	return 0
}

func formatHTML(result analyzer.AnalysisResult, sections []string, opts Options) (string, error) {
	width := result.Coverage
	if width > 100 {
		width = 100
	}
	limit := htmlLimit
	if opts.Verbose {
		limit = len(result.UsedKeys) + len(result.TranslationKeys)
	}

	data := htmlData{
		Result:      result,
		Patterns:    result.Patterns(),
		Meta:        opts.Meta,
		GeneratedAt: timestamp(opts.Meta),
		Width:       width,
		Limit:       limit,
		Summary:     hasSection(sections, "summary"),
		Missing:     hasSection(sections, "missing"),
		Unused:      hasSection(sections, "unused"),
		Dynamic:     hasSection(sections, "dynamicPatterns"),
		Ignored:     hasSection(sections, "ignored"),
		Used:        hasSection(sections, "usedKeys"),
		Translation: hasSection(sections, "translationKeys"),
	}

	var b strings.Builder
	if err := htmlTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render html report: %w", err)
	}
	return b.String(), nil
}
