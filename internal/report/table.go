package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/vibewolf/vibewolf/internal/types"
)

// writeTable prints one bordered row per finding, sorted by path and line,
// followed by the severity summary.
func writeTable(w io.Writer, findings []types.Finding, opts Options) error {
	if len(findings) == 0 {
		_, err := fmt.Fprintln(w, styled(okStyle, "No security issues found ✅", opts.NoColor))
		return err
	}
	rows := append([]types.Finding(nil), findings...)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].FilePath == rows[j].FilePath {
			return rows[i].LineNumber < rows[j].LineNumber
		}
		return rows[i].FilePath < rows[j].FilePath
	})

	table := tablewriter.NewWriter(w)
	table.Header("SEVERITY", "RULE", "LOCATION", "CODE")
	for _, f := range rows {
		loc := fmt.Sprintf("%s:%d", opts.display(f.FilePath), f.LineNumber)
		if err := table.Append([]string{severityLabel(severityOf(f), opts.NoColor), f.RuleID, loc, truncate(f.CodeSnippet, 60)}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	sum := Summarize(findings)
	_, err := fmt.Fprintf(w, "\nFindings: %d (critical: %d, high: %d, medium: %d, low: %d)\n",
		sum.Total, sum.Critical, sum.High, sum.Medium, sum.Low)
	return err
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
