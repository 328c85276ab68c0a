// Package report turns findings into presentation output. Every format
// lists severities in the same fixed order (CRITICAL, HIGH, MEDIUM, LOW)
// and shares one aggregate of per-severity counts.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vibewolf/vibewolf/internal/types"
)

// ErrUnknownFormat is returned by ParseFormat and Render for an
// unsupported format name.
var ErrUnknownFormat = errors.New("unknown report format")

// Format names an output rendering.
type Format string

const (
	FormatPlain    Format = "plain"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatSARIF    Format = "sarif"
	FormatTable    Format = "table"
)

// Formats lists every supported format.
var Formats = []Format{FormatPlain, FormatMarkdown, FormatHTML, FormatJSON, FormatSARIF, FormatTable}

// ParseFormat accepts a format name (case-insensitive) plus the aliases
// "text", "md" and "htm".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain", "text", "":
		return FormatPlain, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "sarif":
		return FormatSARIF, nil
	case "table":
		return FormatTable, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Options tune rendering. The zero value is valid.
type Options struct {
	// ProjectName is shown in report headers; defaults to the base of Root.
	ProjectName string
	// GeneratedAt stamps the report; zero means now.
	GeneratedAt time.Time
	// NoColor disables ANSI styling in plain and table output.
	NoColor bool
	// Highlight enables syntax highlighting of code snippets.
	Highlight bool
	// Root, when set, makes displayed file paths relative to it.
	Root string
	// Version is written into SARIF and footers.
	Version string
}

func (o Options) project() string {
	if o.ProjectName != "" {
		return o.ProjectName
	}
	if o.Root != "" {
		if abs, err := filepath.Abs(o.Root); err == nil {
			return filepath.Base(abs)
		}
	}
	return "Your Project"
}

func (o Options) timestamp() time.Time {
	if o.GeneratedAt.IsZero() {
		return time.Now()
	}
	return o.GeneratedAt
}

func (o Options) version() string {
	if o.Version == "" {
		return "dev"
	}
	return o.Version
}

// display returns p relative to Root with forward slashes.
func (o Options) display(p string) string {
	if o.Root != "" {
		if rel, err := filepath.Rel(o.Root, p); err == nil && !strings.HasPrefix(rel, "..") {
			p = rel
		}
	}
	return filepath.ToSlash(p)
}

// Render writes findings to w in the given format.
func Render(w io.Writer, findings []types.Finding, format Format, opts Options) error {
	switch format {
	case FormatPlain:
		return writePlain(w, findings, opts)
	case FormatMarkdown:
		return writeMarkdown(w, findings, opts)
	case FormatHTML:
		return writeHTML(w, findings, opts)
	case FormatJSON:
		return WriteJSON(w, findings, opts)
	case FormatSARIF:
		return WriteSARIF(w, findings, opts)
	case FormatTable:
		return writeTable(w, findings, opts)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// RenderString is Render into a string.
func RenderString(findings []types.Finding, format Format, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, findings, format, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Group buckets findings by file path. Each finding lands under exactly
// one key and keeps its relative order within the bucket.
func Group(findings []types.Finding) map[string][]types.Finding {
	out := make(map[string][]types.Finding)
	for _, f := range findings {
		out[f.FilePath] = append(out[f.FilePath], f)
	}
	return out
}

// FileGroup is one file's findings.
type FileGroup struct {
	Path     string
	Findings []types.Finding
}

// SortedGroups returns Group's buckets ordered by byte-wise path comparison.
func SortedGroups(findings []types.Finding) []FileGroup {
	g := Group(findings)
	paths := make([]string, 0, len(g))
	for p := range g {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	out := make([]FileGroup, len(paths))
	for i, p := range paths {
		out[i] = FileGroup{Path: p, Findings: g[p]}
	}
	return out
}

// Summary holds per-severity counts and the grand total.
type Summary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Total    int `json:"total"`
}

// Count returns the number of findings for s.
func (s Summary) Count(sev types.Severity) int {
	switch sev {
	case types.SevCritical:
		return s.Critical
	case types.SevHigh:
		return s.High
	case types.SevMedium:
		return s.Medium
	case types.SevLow:
		return s.Low
	}
	return 0
}

// Summarize counts findings by severity. Unrecognized severities count as
// MEDIUM.
func Summarize(findings []types.Finding) Summary {
	var s Summary
	for _, f := range findings {
		switch severityOf(f) {
		case types.SevCritical:
			s.Critical++
		case types.SevHigh:
			s.High++
		case types.SevMedium:
			s.Medium++
		case types.SevLow:
			s.Low++
		}
		s.Total++
	}
	return s
}

func severityOf(f types.Finding) types.Severity {
	return types.SeverityOrDefault(string(f.Severity))
}

// severitySection is the findings of one severity, in input order.
type severitySection struct {
	Severity types.Severity
	Findings []types.Finding
}

// bySeverity partitions findings in presentation order, omitting empty
// severities.
func bySeverity(findings []types.Finding) []severitySection {
	buckets := map[types.Severity][]types.Finding{}
	for _, f := range findings {
		s := severityOf(f)
		buckets[s] = append(buckets[s], f)
	}
	var out []severitySection
	for _, s := range types.PresentationOrder {
		if len(buckets[s]) > 0 {
			out = append(out, severitySection{Severity: s, Findings: buckets[s]})
		}
	}
	return out
}

func severityEmoji(s types.Severity) string {
	switch s {
	case types.SevCritical:
		return "🔴"
	case types.SevHigh:
		return "🟠"
	case types.SevMedium:
		return "🟡"
	}
	return "🔵"
}

// issueType turns a rule id into a display label: "sql_injection" becomes
// "SQL INJECTION".
func issueType(ruleID string) string {
	return strings.ToUpper(strings.ReplaceAll(ruleID, "_", " "))
}
