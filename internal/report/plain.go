package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vibewolf/vibewolf/internal/highlight"
	"github.com/vibewolf/vibewolf/internal/types"
)

var (
	sevCriticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	sevHighStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	sevMedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sevLowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	okStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

func severityLabel(s types.Severity, noColor bool) string {
	if noColor {
		return string(s)
	}
	switch s {
	case types.SevCritical:
		return sevCriticalStyle.Render(string(s))
	case types.SevHigh:
		return sevHighStyle.Render(string(s))
	case types.SevMedium:
		return sevMedStyle.Render(string(s))
	}
	return sevLowStyle.Render(string(s))
}

func styled(st lipgloss.Style, s string, noColor bool) string {
	if noColor {
		return s
	}
	return st.Render(s)
}

const banner = "🐺 =========================================="

func writePlain(w io.Writer, findings []types.Finding, opts Options) error {
	var b strings.Builder
	sum := Summarize(findings)

	fmt.Fprintln(&b, banner)
	fmt.Fprintln(&b, styled(titleStyle, "🐺 VIBEWOLF SECURITY SCANNER RESULTS", opts.NoColor))
	fmt.Fprintln(&b, banner)
	fmt.Fprintf(&b, "📅 Scan Date: %s\n", opts.timestamp().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "📁 Project: %s\n", opts.project())

	if sum.Total == 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, styled(okStyle, "No security issues found ✅", opts.NoColor))
		fmt.Fprintln(&b, "The scan completed without any findings at the configured severity.")
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, banner)
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "🔍 Total Vulnerabilities Found: %d\n\n", sum.Total)
	fmt.Fprintln(&b, "📊 SEVERITY BREAKDOWN:")
	for _, s := range types.PresentationOrder {
		fmt.Fprintf(&b, "%s %s: %d\n", severityEmoji(s), severityLabel(s, opts.NoColor), sum.Count(s))
	}
	fmt.Fprintln(&b)

	for _, sec := range bySeverity(findings) {
		fmt.Fprintf(&b, "%s %s VULNERABILITIES (%d):\n", severityEmoji(sec.Severity), severityLabel(sec.Severity, opts.NoColor), len(sec.Findings))
		fmt.Fprintln(&b, strings.Repeat("-", 50))
		for i, f := range sec.Findings {
			code := f.CodeSnippet
			if opts.Highlight && !opts.NoColor {
				code = highlight.Terminal(code, f.FilePath)
			}
			fmt.Fprintf(&b, "%d. %s:%d\n", i+1, opts.display(f.FilePath), f.LineNumber)
			fmt.Fprintf(&b, "   Type: %s\n", f.RuleID)
			fmt.Fprintf(&b, "   Issue: %s\n", f.Description)
			fmt.Fprintf(&b, "   Code: %s\n", code)
			if f.Recommendation != "" {
				fmt.Fprintf(&b, "   Fix: %s\n", f.Recommendation)
			}
			fmt.Fprintln(&b)
		}
	}
	fmt.Fprintln(&b, banner)
	_, err := io.WriteString(w, b.String())
	return err
}
