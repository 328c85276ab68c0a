package rules

import "github.com/vibewolf/vibewolf/internal/types"

// securityGroup covers platform misconfiguration: Firebase rules and keys,
// plain-HTTP transport, comparisons of secrets, browser storage and CORS.
func securityGroup() Group {
	return Group{Name: "security", Rules: []Rule{
		{
			ID: "firebase_security",
			Patterns: []string{
				`allow read, write: if true`,
				`allow.*if.*true`,
				`admin\.initializeApp\(\).*apiKey`,
				`firebase-admin.*apiKey`,
				`serviceAccountKey`,
				`apiKey:\s*["']AIza[0-9A-Za-z\-_]{35}["']`,
				`functions\.https\.onRequest\(`,
				`cors.*origin.*\*`,
			},
			Severity:       types.SevMedium,
			Description:    "Firebase configuration should use environment variables for better security practices",
			Recommendation: "Load Firebase config from environment variables and lock down security rules and Cloud Functions",
		},
		{
			ID: "firebase_critical",
			Patterns: []string{
				`serviceAccountKey.*private_key`,
				`admin\.initializeApp\(\{[^}]*serviceAccountKey`,
				`allow read, write: if true`,
				`allow.*if.*true.*firestore`,
				`functions\.https\.onRequest\([^)]*\)\s*=>\s*\{[^}]*res\.send`,
			},
			Severity:       types.SevCritical,
			Description:    "Critical Firebase security misconfiguration detected",
			Recommendation: "Never ship Admin SDK credentials to clients; require authentication in security rules and functions",
		},
		{
			ID: "insecure_http",
			Patterns: []string{
				`http://(?!localhost|127\.0\.0\.1|0\.0\.0\.0)`,
				`fetch\s*\(\s*.*http://`,
				`axios\.(get|post|put|delete)\s*\(.*http://`,
				`XMLHttpRequest.*?open\([^)]*http://`,
			},
			Severity:       types.SevMedium,
			Description:    "Insecure HTTP requests detected",
			Recommendation: "Use HTTPS for all external requests",
		},
		{
			ID: "timing_attacks",
			Patterns: []string{
				`===.*?password`,
				`==.*?token`,
				`===.*?secret`,
				`if\s*\([^)]*password\s*===`,
				`password\s*===\s*[^&|]+\s*[&|]`,
			},
			Severity:       types.SevMedium,
			Description:    "Potential timing attack vulnerability in string comparison",
			Recommendation: "Use constant-time comparison functions for sensitive data",
		},
		{
			ID: "insecure_storage",
			Patterns: []string{
				`localStorage\.setItem\([^)]*password`,
				`localStorage\.setItem\([^)]*token`,
				`localStorage\.setItem\([^)]*secret`,
				`sessionStorage\.setItem\([^)]*password`,
				`sessionStorage\.setItem\([^)]*token`,
				`document\.cookie\s*=.*password`,
				`document\.cookie\s*=.*token`,
			},
			Severity:       types.SevHigh,
			Description:    "Sensitive data stored insecurely in browser storage",
			Recommendation: "Use secure, httpOnly cookies or avoid storing sensitive data client-side",
		},
		{
			ID: "cors_issues",
			Patterns: []string{
				`Access-Control-Allow-Origin.*?\*`,
				`cors.*?origin.*?true`,
				`allowedOrigins.*?\*`,
				`Access-Control-Allow-Credentials.*?true.*?\*`,
			},
			Severity:       types.SevHigh,
			Description:    "Insecure CORS configuration detected",
			Recommendation: "Specify exact origins instead of wildcards, especially with credentials",
		},
	}}
}
