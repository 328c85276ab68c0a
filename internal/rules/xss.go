package rules

import "github.com/vibewolf/vibewolf/internal/types"

func xssGroup() Group {
	return Group{Name: "xss", Rules: []Rule{{
		ID: "xss_vulnerabilities",
		Patterns: []string{
			`innerHTML\s*=\s*.*?\+`,
			`outerHTML\s*=\s*.*?\+`,
			`insertAdjacentHTML\s*\([^)]*\+`,
			`document\.write\s*\([^)]*\+`,
			`\.html\([^)]*\+[^)]*\)`,
		},
		Severity:       types.SevHigh,
		Description:    "Potential XSS vulnerability through dynamic HTML injection",
		Recommendation: "Use textContent, createElement, or sanitize HTML input",
	}}}
}
