package report

import (
	"html"
	"html/template"
	"io"
	"path"
	"strings"

	"github.com/vibewolf/vibewolf/internal/highlight"
	"github.com/vibewolf/vibewolf/internal/types"
)

// HTMLFileName is the default file name for the HTML report.
const HTMLFileName = "!VIBEWOLF-SECURITY-REPORT.html"

type htmlItem struct {
	Index          int
	Location       string
	File           string
	Line           int
	RuleID         string
	Type           string
	Description    string
	Code           template.HTML
	Recommendation string
}

type htmlSection struct {
	Severity string
	Class    string
	Emoji    string
	Items    []htmlItem
}

type htmlFile struct {
	Path  string
	Count int
}

type htmlData struct {
	Project  string
	Date     string
	Version  string
	Summary  Summary
	Sections []htmlSection
	Files    []htmlFile
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>VibeWolf Security Report - {{.Project}}</title>
<style>
body{font-family:system-ui,sans-serif;background:#0d1117;color:#c9d1d9;margin:0;padding:2rem}
h1{margin-top:0}
.summary{display:flex;gap:1rem;margin:1rem 0}
.count{padding:.75rem 1rem;border-radius:6px;background:#161b22;min-width:6rem}
.count b{display:block;font-size:1.5rem}
.critical{border-left:4px solid #f85149}.high{border-left:4px solid #db6d28}
.medium{border-left:4px solid #d29922}.low{border-left:4px solid #58a6ff}
.vuln-item{background:#161b22;margin:.75rem 0;padding:.75rem 1rem;border-radius:6px}
.vuln-item pre{background:#272822;padding:.5rem;overflow-x:auto;margin:.5rem 0}
.muted{color:#8b949e}
.all-clear{font-size:1.25rem;color:#3fb950}
</style>
</head>
<body>
<h1>🐺 VibeWolf Security Report</h1>
<p class="muted">Project: <strong>{{.Project}}</strong> · Scanned {{.Date}}</p>
{{- if eq .Summary.Total 0}}
<div class="all-clear" id="all-clear">
<p>🎉 No security issues found</p>
<p class="muted">No rule matched at the configured severity.</p>
</div>
{{- else}}
<div class="summary" id="summary">
<div class="count" id="total"><b>{{.Summary.Total}}</b>Total</div>
<div class="count critical" data-severity="CRITICAL"><b>{{.Summary.Critical}}</b>Critical</div>
<div class="count high" data-severity="HIGH"><b>{{.Summary.High}}</b>High</div>
<div class="count medium" data-severity="MEDIUM"><b>{{.Summary.Medium}}</b>Medium</div>
<div class="count low" data-severity="LOW"><b>{{.Summary.Low}}</b>Low</div>
</div>
{{- range .Sections}}
<section class="vulnerability-section {{.Class}}" data-severity="{{.Severity}}">
<h2>{{.Emoji}} {{.Severity}} ({{len .Items}})</h2>
{{- range .Items}}
<div class="vuln-item" data-rule="{{.RuleID}}">
<div class="vuln-location">{{.Index}}. <code>{{.Location}}:{{.Line}}</code></div>
<div class="vuln-type">Type: {{.Type}}</div>
<div class="vuln-issue">Issue: {{.Description}}</div>
<pre><code>{{.Code}}</code></pre>
{{- if .Recommendation}}
<div class="vuln-fix">Fix: {{.Recommendation}}</div>
{{- end}}
</div>
{{- end}}
</section>
{{- end}}
<section id="files">
<h2>Files</h2>
<ul>
{{- range .Files}}
<li><code>{{.Path}}</code> <span class="muted">({{.Count}})</span></li>
{{- end}}
</ul>
</section>
{{- end}}
<footer class="muted"><p>Generated by VibeWolf {{.Version}}</p></footer>
</body>
</html>
`))

func writeHTML(w io.Writer, findings []types.Finding, opts Options) error {
	data := htmlData{
		Project: opts.project(),
		Date:    opts.timestamp().Format("2006-01-02 15:04:05"),
		Version: opts.version(),
		Summary: Summarize(findings),
	}
	for _, sec := range bySeverity(findings) {
		hs := htmlSection{
			Severity: string(sec.Severity),
			Class:    strings.ToLower(string(sec.Severity)),
			Emoji:    severityEmoji(sec.Severity),
		}
		for i, f := range sec.Findings {
			loc := opts.display(f.FilePath)
			hs.Items = append(hs.Items, htmlItem{
				Index:          i + 1,
				Location:       loc,
				File:           path.Base(loc),
				Line:           f.LineNumber,
				RuleID:         f.RuleID,
				Type:           issueType(f.RuleID),
				Description:    f.Description,
				Code:           htmlCode(f, opts.Highlight),
				Recommendation: f.Recommendation,
			})
		}
		data.Sections = append(data.Sections, hs)
	}
	for _, g := range SortedGroups(findings) {
		data.Files = append(data.Files, htmlFile{Path: opts.display(g.Path), Count: len(g.Findings)})
	}
	return reportTmpl.Execute(w, data)
}

// htmlCode returns the snippet as safe markup. Chroma output is already
// escaped; otherwise the text is escaped here.
func htmlCode(f types.Finding, hl bool) template.HTML {
	if hl {
		return template.HTML(highlight.HTML(f.CodeSnippet, f.FilePath))
	}
	return template.HTML(html.EscapeString(f.CodeSnippet))
}
