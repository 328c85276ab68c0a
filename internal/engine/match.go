package engine

import (
	"strings"

	"github.com/vibewolf/vibewolf/internal/rules"
	"github.com/vibewolf/vibewolf/internal/types"
)

// MatchLine evaluates one line against every rule in rs, in rs order. For
// each rule the first matching pattern produces exactly one finding and the
// rule's remaining patterns are skipped; other rules are still evaluated, so a
// line can yield findings from several rules. lineNumber is 1-based.
func MatchLine(line string, lineNumber int, filePath string, rs rules.RuleSet) []types.Finding {
	var out []types.Finding
	var snippet string
	for r := range rs.All() {
		if _, ok := r.Match(line); !ok {
			continue
		}
		if snippet == "" {
			snippet = strings.TrimSpace(line)
		}
		out = append(out, types.Finding{
			FilePath:       filePath,
			LineNumber:     lineNumber,
			RuleID:         r.ID,
			Severity:       r.Severity,
			Description:    r.Description,
			CodeSnippet:    snippet,
			Recommendation: r.Recommendation,
		})
	}
	return out
}

// ScanText splits content on line feeds and matches each line in order. A
// final line without a terminator is scanned too. ScanText does no I/O.
func ScanText(content, filePath string, rs rules.RuleSet) []types.Finding {
	if rs.Len() == 0 {
		return nil
	}
	var out []types.Finding
	for i, line := range strings.Split(content, "\n") {
		out = append(out, MatchLine(line, i+1, filePath, rs)...)
	}
	return out
}
