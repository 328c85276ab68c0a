package report

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/vibewolf/vibewolf/internal/types"
)

// MarkdownFileName is the report file written at the project root. The
// collector never scans it.
const MarkdownFileName = "!VIBEWOLF-SECURITY-REPORT.md"

func overviewStatus(s types.Severity, n int) string {
	if n == 0 {
		return "✅ Clear"
	}
	switch s {
	case types.SevCritical:
		return "⚠️ Immediate Action Required"
	case types.SevHigh:
		return "🔧 Fix Before Deployment"
	case types.SevMedium:
		return "📋 Review Recommended"
	}
	return "💡 Consider Improving"
}

func urgency(s types.Severity) string {
	switch s {
	case types.SevCritical:
		return "URGENT"
	case types.SevHigh:
		return "HIGH PRIORITY"
	case types.SevMedium:
		return "MODERATE"
	}
	return "LOW PRIORITY"
}

func titleCase(s types.Severity) string {
	v := string(s)
	return v[:1] + strings.ToLower(v[1:])
}

// fenceLang picks the code fence language for a snippet's file.
func fenceLang(p string) string {
	switch path.Ext(p) {
	case ".ts", ".tsx":
		return "typescript"
	case ".html", ".vue", ".svelte":
		return "html"
	}
	return "javascript"
}

func writeMarkdown(w io.Writer, findings []types.Finding, opts Options) error {
	var b strings.Builder
	sum := Summarize(findings)

	b.WriteString("# 🐺 VibeWolf Security Report\n\n")
	fmt.Fprintf(&b, "> **Project:** %s  \n", opts.project())
	fmt.Fprintf(&b, "> **Scan Date:** %s  \n", opts.timestamp().Format("2006-01-02 15:04:05"))
	if sum.Total == 0 {
		b.WriteString("> **Status:** ✅ All Clear!\n\n")
		b.WriteString("## 🎉 No Security Issues Found\n\n")
		b.WriteString("No rule matched at the configured severity. The code is clear to ship.\n\n")
		writeMarkdownFooter(&b, opts)
		_, err := io.WriteString(w, b.String())
		return err
	}
	fmt.Fprintf(&b, "> **Status:** 🛡️ %d Issues Found\n\n", sum.Total)

	b.WriteString("## 📊 Security Overview\n\n")
	b.WriteString("| Severity | Count | Status |\n")
	b.WriteString("|----------|-------|--------|\n")
	for _, s := range types.PresentationOrder {
		n := sum.Count(s)
		fmt.Fprintf(&b, "| %s %s | %d | %s |\n", severityEmoji(s), titleCase(s), n, overviewStatus(s, n))
	}
	fmt.Fprintf(&b, "| **Total** | **%d** | |\n\n", sum.Total)

	for _, sec := range bySeverity(findings) {
		fmt.Fprintf(&b, "## %s %s Issues (%d) - %s\n\n", severityEmoji(sec.Severity), sec.Severity, len(sec.Findings), urgency(sec.Severity))
		for i, f := range sec.Findings {
			loc := opts.display(f.FilePath)
			fmt.Fprintf(&b, "### %d. %s\n\n", i+1, path.Base(loc))
			fmt.Fprintf(&b, "**📁 Location:** `%s:%d`\n\n", loc, f.LineNumber)
			fmt.Fprintf(&b, "**🔍 Issue Type:** %s\n\n", issueType(f.RuleID))
			fmt.Fprintf(&b, "**📝 Description:** %s\n\n", f.Description)
			fmt.Fprintf(&b, "**💻 Code:**\n```%s\n%s\n```\n\n", fenceLang(f.FilePath), strings.ReplaceAll(f.CodeSnippet, "```", "` ` `"))
			if f.Recommendation != "" {
				fmt.Fprintf(&b, "**🔧 Fix:** %s\n\n", f.Recommendation)
			}
			if i < len(sec.Findings)-1 {
				b.WriteString("---\n\n")
			}
		}
	}

	b.WriteString("## 🎯 Action Plan\n\n")
	if sum.Critical > 0 {
		fmt.Fprintf(&b, "### 🚨 CRITICAL VULNERABILITIES DETECTED\n**%d critical security issue(s) found**\n\n", sum.Critical)
	}
	if sum.High > 0 {
		fmt.Fprintf(&b, "### ⚠️ HIGH RISK VULNERABILITIES\n**%d high-risk security issue(s) detected**\n\n", sum.High)
	}
	if sum.Medium+sum.Low > 0 {
		fmt.Fprintf(&b, "### 📋 ADDITIONAL VULNERABILITIES\n**%d medium/low security issue(s) detected**\n\n", sum.Medium+sum.Low)
	}
	writeMarkdownFooter(&b, opts)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeMarkdownFooter(b *strings.Builder, opts Options) {
	b.WriteString("---\n\n")
	fmt.Fprintf(b, "*Generated by VibeWolf %s* 🐺\n", opts.version())
}
