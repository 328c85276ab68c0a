package rules

import "github.com/vibewolf/vibewolf/internal/types"

func cryptoGroup() Group {
	return Group{Name: "crypto", Rules: []Rule{{
		ID: "weak_crypto",
		Patterns: []string{
			`md5\(`,
			`sha1\(`,
			`\.createHash\(.*md5`,
			`\.createHash\(.*sha1`,
			`crypto\.subtle\.digest\(.*SHA-1`,
		},
		Severity:       types.SevHigh,
		Description:    "Weak cryptographic algorithm detected",
		Recommendation: "Use SHA-256, SHA-3, or other modern cryptographic algorithms",
	}}}
}
