package rules

import "github.com/vibewolf/vibewolf/internal/types"

func injectionGroup() Group {
	return Group{Name: "injection", Rules: []Rule{
		{
			ID: "sql_injection",
			Patterns: []string{
				`SELECT.*?\+.*?["']`,
				`INSERT.*?\+.*?["']`,
				`UPDATE.*?\+.*?["']`,
				`DELETE.*?\+.*?["']`,
				`query\(.*?\+.*?["']`,
				`execute\(.*?\+.*?["']`,
				`WHERE.*?\+.*?["']`,
				`ORDER BY.*?\+.*?["']`,
			},
			Severity:       types.SevCritical,
			Description:    "Potential SQL injection vulnerability detected",
			Recommendation: "Use parameterized queries or prepared statements instead of string concatenation",
		},
		{
			// Only explicit eval, the Function constructor and string-bodied
			// timers are flagged. A bare "Function(" call is not.
			ID: "unsafe_eval",
			Patterns: []string{
				`\beval\s*\(`,
				`\bnew\s+Function\s*\(`,
				`setTimeout\s*\(\s*["'][^"']`,
				`setInterval\s*\(\s*["'][^"']`,
			},
			Severity:       types.SevHigh,
			Description:    "Unsafe code execution detected",
			Recommendation: "Avoid eval() and string-based code execution",
		},
	}}
}
