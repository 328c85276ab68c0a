package types

import (
	"strconv"

	xxhash "github.com/cespare/xxhash/v2"
)

// Severity is an ordinal risk level for a rule and the findings it produces.
type Severity string

const (
	SevLow      Severity = "LOW"
	SevMedium   Severity = "MEDIUM"
	SevHigh     Severity = "HIGH"
	SevCritical Severity = "CRITICAL"
)

// DefaultMinSeverity is used when a scan config names no (or an unknown) floor.
const DefaultMinSeverity = SevMedium

// PresentationOrder is the fixed order every report lists severities in.
var PresentationOrder = []Severity{SevCritical, SevHigh, SevMedium, SevLow}

// Rank returns LOW=1 < MEDIUM=2 < HIGH=3 < CRITICAL=4, or 0 if unknown.
func (s Severity) Rank() int {
	switch s {
	case SevLow:
		return 1
	case SevMedium:
		return 2
	case SevHigh:
		return 3
	case SevCritical:
		return 4
	}
	return 0
}

// Valid reports whether s is one of the four known severities.
func (s Severity) Valid() bool { return s.Rank() > 0 }

// ParseSeverity accepts the exact upper-case severity names.
func ParseSeverity(s string) (Severity, bool) {
	sev := Severity(s)
	return sev, sev.Valid()
}

// SeverityOrDefault parses s, falling back to DefaultMinSeverity.
func SeverityOrDefault(s string) Severity {
	if sev, ok := ParseSeverity(s); ok {
		return sev
	}
	return DefaultMinSeverity
}

// Finding is one reported instance of a rule matching at a file and line.
// Findings are plain values; two findings with equal fields are not merged.
type Finding struct {
	FilePath       string   `json:"filePath"`
	LineNumber     int      `json:"lineNumber"`
	RuleID         string   `json:"ruleId"`
	Severity       Severity `json:"severity"`
	Description    string   `json:"description"`
	CodeSnippet    string   `json:"codeSnippet"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// Fingerprint is a stable hash of rule, path and snippet. It ignores the
// line number so that a baseline survives unrelated edits above a finding.
func (f Finding) Fingerprint() string {
	d := xxhash.New()
	_, _ = d.WriteString(f.RuleID)
	_, _ = d.WriteString("|")
	_, _ = d.WriteString(f.FilePath)
	_, _ = d.WriteString("|")
	_, _ = d.WriteString(f.CodeSnippet)
	return strconv.FormatUint(d.Sum64(), 16)
}

// ScanConfig selects the active rules for one scan. A nil *ScanConfig
// disables filtering entirely.
type ScanConfig struct {
	// EnabledRules maps rule id to enabled; ids not present are enabled.
	EnabledRules map[string]bool `json:"enabledRules,omitempty" yaml:"rules,omitempty"`
	// MinSeverity is the severity floor; empty or unknown means MEDIUM.
	MinSeverity Severity `json:"minSeverity,omitempty" yaml:"min_severity,omitempty"`
}

// Floor returns the effective minimum severity.
func (c *ScanConfig) Floor() Severity {
	if c == nil || !c.MinSeverity.Valid() {
		return DefaultMinSeverity
	}
	return c.MinSeverity
}

// RuleEnabled reports whether id is switched on; absent ids default to true.
func (c *ScanConfig) RuleEnabled(id string) bool {
	if c == nil || c.EnabledRules == nil {
		return true
	}
	on, ok := c.EnabledRules[id]
	return !ok || on
}
