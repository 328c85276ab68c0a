package engine

import (
	"path"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// directory names never descended into (exact, case-sensitive)
var defaultExcludeDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	".next":        true,
	"coverage":     true,
	"out":          true,
	"temp":         true,
	"images":       true,
}

// extensions of files that are scanned
var targetExtensions = map[string]bool{
	".js":     true,
	".jsx":    true,
	".ts":     true,
	".tsx":    true,
	".html":   true,
	".vue":    true,
	".svelte": true,
}

// exact filenames skipped: asset generators, scanner harness scripts and
// reports written by earlier runs
var defaultExcludeFileNames = map[string]bool{
	"create-icon.js":                 true,
	"create-logo.js":                 true,
	"create-png-logo.js":             true,
	"create-real-png.js":             true,
	"create-emoji-icon.js":           true,
	"test-scanner.js":                true,
	"test-extension.js":              true,
	"test-exclusions.js":             true,
	"!VIBEWOLF-SECURITY-REPORT.md":   true,
	"!VIBEWOLF-SECURITY-REPORT.html": true,
	"!CODEWOLF-SECURITY-REPORT.md":   true,
}

// root-relative path patterns skipped regardless of extension
var defaultExcludePatterns = []string{
	"**/rules/**",
	"**/test-*",
	"**/create-*",
	"**/*SECURITY-REPORT*",
	"**/*security-report*",
	"**/*.vsix",
	// lockfiles
	"**/package-lock.json",
	"**/yarn.lock",
	"**/pnpm-lock.yaml",
	"**/*.lock",
	// project and type config
	"**/package.json",
	"**/tsconfig*.json",
	"**/jsconfig.json",
	"**/*.d.ts",
}

func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name]
}

func isTargetFile(name string) bool {
	return targetExtensions[filepath.Ext(name)]
}

func isDefaultFileExcluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	if defaultExcludeFileNames[path.Base(rel)] {
		return true
	}
	for _, p := range defaultExcludePatterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// Eligible reports whether a root-relative file path passes the built-in
// file policy: target extension, not an excluded name or pattern, and no
// excluded directory among its parents.
func Eligible(rel string) bool {
	rel = filepath.ToSlash(filepath.Clean(rel))
	if !isTargetFile(rel) || isDefaultFileExcluded(rel) {
		return false
	}
	parts := strings.Split(rel, "/")
	for _, dir := range parts[:len(parts)-1] {
		if isDefaultDirExcluded(dir) {
			return false
		}
	}
	return true
}

// allowedByGlobs returns true if the given path is allowed by the include/exclude
// glob configuration. Include globs are comma-separated and, if provided, act as
// a positive filter. Exclude globs are subtracted last.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := filepath.ToSlash(relPath)
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, path.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
