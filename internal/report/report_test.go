package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vibewolf/vibewolf/internal/types"
)

var fixedTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func sample() []types.Finding {
	return []types.Finding{
		{FilePath: "/proj/src/b.js", LineNumber: 4, RuleID: "insecure_http", Severity: types.SevMedium, Description: "Insecure HTTP requests detected", CodeSnippet: `fetch("http://x.io")`, Recommendation: "Use HTTPS for all external requests"},
		{FilePath: "/proj/src/a.js", LineNumber: 1, RuleID: "exposed_secrets", Severity: types.SevCritical, Description: "Hardcoded secrets", CodeSnippet: `const k = "sk_live_x"`},
		{FilePath: "/proj/src/b.js", LineNumber: 9, RuleID: "unsafe_eval", Severity: types.SevHigh, Description: "Unsafe code execution detected", CodeSnippet: "eval(x)"},
		{FilePath: "/proj/src/a.js", LineNumber: 7, RuleID: "timing_attacks", Severity: types.SevLow, Description: "Timing", CodeSnippet: "a === password"},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"plain": FormatPlain, "TEXT": FormatPlain, "md": FormatMarkdown, "markdown": FormatMarkdown,
		"html": FormatHTML, "json": FormatJSON, "sarif": FormatSARIF, "table": FormatTable,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("pdf")
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	_, err = RenderString(nil, Format("pdf"), Options{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestGroup_PreservesEveryFinding(t *testing.T) {
	fs := sample()
	g := Group(fs)
	total := 0
	for _, v := range g {
		total += len(v)
	}
	assert.Equal(t, len(fs), total)
	for _, f := range fs {
		assert.Contains(t, g[f.FilePath], f)
	}
	assert.Equal(t, 9, g["/proj/src/b.js"][1].LineNumber, "input order kept within a file")
}

func TestSortedGroups_LexicographicPaths(t *testing.T) {
	gs := SortedGroups(sample())
	require.Len(t, gs, 2)
	assert.Equal(t, "/proj/src/a.js", gs[0].Path)
	assert.Equal(t, "/proj/src/b.js", gs[1].Path)
	assert.Len(t, gs[0].Findings, 2)
	assert.Empty(t, SortedGroups(nil))
}

func TestSummarize(t *testing.T) {
	s := Summarize(sample())
	assert.Equal(t, Summary{Critical: 1, High: 1, Medium: 1, Low: 1, Total: 4}, s)
	assert.Equal(t, 1, s.Count(types.SevHigh))
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestPlain_SeverityOrderAndRelativePaths(t *testing.T) {
	out, err := RenderString(sample(), FormatPlain, Options{NoColor: true, Root: "/proj", GeneratedAt: fixedTime})
	require.NoError(t, err)
	crit := strings.Index(out, "CRITICAL VULNERABILITIES (1)")
	high := strings.Index(out, "HIGH VULNERABILITIES (1)")
	med := strings.Index(out, "MEDIUM VULNERABILITIES (1)")
	low := strings.Index(out, "LOW VULNERABILITIES (1)")
	require.True(t, crit >= 0 && high >= 0 && med >= 0 && low >= 0, out)
	assert.True(t, crit < high && high < med && med < low)
	assert.Contains(t, out, "Total Vulnerabilities Found: 4")
	assert.Contains(t, out, "1. src/a.js:1")
	assert.Contains(t, out, "Project: proj")
	assert.Contains(t, out, "Fix: Use HTTPS for all external requests")
	assert.NotContains(t, out, "\x1b[")
}

func TestAllClearBranch(t *testing.T) {
	for _, f := range []Format{FormatPlain, FormatMarkdown, FormatTable} {
		out, err := RenderString(nil, f, Options{NoColor: true, GeneratedAt: fixedTime})
		require.NoError(t, err)
		assert.Contains(t, strings.ToLower(out), "no security issues found", f)
		assert.NotContains(t, out, "CRITICAL", f)
	}
}

func TestMarkdown_Layout(t *testing.T) {
	out, err := RenderString(sample(), FormatMarkdown, Options{Root: "/proj", ProjectName: "demo", GeneratedAt: fixedTime})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# 🐺 VibeWolf Security Report\n"))
	assert.Contains(t, out, "> **Project:** demo")
	assert.Contains(t, out, "| 🔴 Critical | 1 | ⚠️ Immediate Action Required |")
	assert.Contains(t, out, "| **Total** | **4** | |")
	assert.Contains(t, out, "**📁 Location:** `src/b.js:9`")
	assert.Contains(t, out, "**🔍 Issue Type:** UNSAFE EVAL")
	assert.Contains(t, out, "```javascript\neval(x)\n```")
	assert.Less(t, strings.Index(out, "## 🔴 CRITICAL Issues"), strings.Index(out, "## 🔵 LOW Issues"))
	assert.Contains(t, out, "## 🎯 Action Plan")
}

func TestTable_Borders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample(), FormatTable, Options{NoColor: true, Root: "/proj"}))
	out := buf.String()
	assert.Contains(t, out, "SEVERITY")
	assert.Contains(t, out, "unsafe_eval")
	assert.Contains(t, out, "src/b.js:9")
	assert.Contains(t, out, "│")
	assert.Contains(t, out, "Findings: 4 (critical: 1, high: 1, medium: 1, low: 1)")
}

func TestJSON_Document(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sample(), Options{ProjectName: "demo", GeneratedAt: fixedTime, Version: "1.2.3"}))
	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "vibewolf", doc.Tool)
	assert.Equal(t, "1.2.3", doc.Version)
	assert.Equal(t, 4, doc.Summary.Total)
	assert.Equal(t, sample(), doc.Findings)
	assert.Contains(t, buf.String(), `"lineNumber": 4`)

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, nil, Options{}))
	assert.Contains(t, buf.String(), `"findings": []`)
}
