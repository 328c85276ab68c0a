package rules

import "github.com/vibewolf/vibewolf/internal/types"

func secretGroup() Group {
	return Group{Name: "secrets", Rules: []Rule{{
		ID: "exposed_secrets",
		Patterns: []string{
			// api keys and tokens
			`api_?key["']?\s*[:=]\s*["'][A-Za-z0-9_\-]{15,}["']`,
			`apikey["']?\s*[:=]\s*["'][A-Za-z0-9_\-]{15,}["']`,
			`api-key["']?\s*[:=]\s*["'][A-Za-z0-9_\-]{15,}["']`,
			`secret["']?\s*[:=]\s*["'][A-Za-z0-9_\-]{15,}["']`,
			`token["']?\s*[:=]\s*["'][A-Za-z0-9_\-]{15,}["']`,
			`access_token["']?\s*[:=]\s*["'][A-Za-z0-9_\-]{15,}["']`,
			`auth_token["']?\s*[:=]\s*["'][A-Za-z0-9_\-]{15,}["']`,
			`(?<![A-Za-z0-9_\-])["']?(?>[A-Za-z0-9_\-]{32,})["']?\s*//.*(?:key|secret|token|api)`,
			`(?:key|secret|token|api)["']?\s*[:=]\s*["'][A-Za-z0-9_\-]{15,}["']`,
			// provider key shapes
			`AIza[0-9A-Za-z\-_]{35}`,
			`\b[sr]k_(?:live|test)_[0-9A-Za-z]{24,}`,
			// passwords
			`password["']?\s*[:=]\s*["'][A-Za-z0-9]{8,}["']`,
			`passwd["']?\s*[:=]\s*["'][A-Za-z0-9]{8,}["']`,
			`pwd["']?\s*[:=]\s*["'][A-Za-z0-9]{8,}["']`,
			// database credentials
			`db_password["']?\s*[:=]\s*["'][A-Za-z0-9]{8,}["']`,
			`database_url["']?\s*[:=]\s*["'][A-Za-z0-9]{10,}["']`,
			`connection_string["']?\s*[:=]\s*["'][A-Za-z0-9]{10,}["']`,
			// framework env vars that are bundled into the client
			`REACT_APP_.*SECRET["']?\s*[:=]\s*["'][A-Za-z0-9]{10,}["']`,
			`VUE_APP_.*SECRET["']?\s*[:=]\s*["'][A-Za-z0-9]{10,}["']`,
			`NEXT_PUBLIC_.*SECRET["']?\s*[:=]\s*["'][A-Za-z0-9]{10,}["']`,
			`EXPO_.*SECRET["']?\s*[:=]\s*["'][A-Za-z0-9]{10,}["']`,
			// service keys
			`stripe.*key["']?\s*[:=]\s*["'][A-Za-z0-9]{20,}["']`,
			`paypal.*secret["']?\s*[:=]\s*["'][A-Za-z0-9]{20,}["']`,
			`aws.*key["']?\s*[:=]\s*["'][A-Za-z0-9]{20,}["']`,
			`google.*key["']?\s*[:=]\s*["'][A-Za-z0-9]{20,}["']`,
			`facebook.*secret["']?\s*[:=]\s*["'][A-Za-z0-9]{20,}["']`,
			`twitter.*secret["']?\s*[:=]\s*["'][A-Za-z0-9]{20,}["']`,
			// jwt / oauth
			`jwt.*secret["']?\s*[:=]\s*["'][A-Za-z0-9]{20,}["']`,
			`oauth.*secret["']?\s*[:=]\s*["'][A-Za-z0-9]{20,}["']`,
			`client_secret["']?\s*[:=]\s*["'][A-Za-z0-9]{20,}["']`,
			// mail
			`smtp.*password["']?\s*[:=]\s*["'][A-Za-z0-9]{8,}["']`,
			`email.*password["']?\s*[:=]\s*["'][A-Za-z0-9]{8,}["']`,
			`mail.*password["']?\s*[:=]\s*["'][A-Za-z0-9]{8,}["']`,
		},
		Severity:       types.SevCritical,
		Description:    "Hardcoded secrets, credentials, or sensitive data exposed in frontend code",
		Recommendation: "Move all secrets to server-side, use environment variables, or secure credential management",
	}}}
}
