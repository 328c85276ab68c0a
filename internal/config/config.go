package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vibewolf/vibewolf/internal/types"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no config file exists at the searched
// locations.
var ErrNotFound = errors.New("config not found")

// LocalNames are the repo-local config files, in lookup order.
var LocalNames = []string{".vibewolf.yml", ".vibewolf.yaml", "vibewolf.yml", "vibewolf.yaml"}

// FileConfig is the on-disk YAML configuration shape for vibewolf. Pointer
// fields distinguish "unset" from zero so files can be layered.
type FileConfig struct {
	MinSeverity *string         `yaml:"min_severity,omitempty"`
	Rules       map[string]bool `yaml:"rules,omitempty"`
	Include     *string         `yaml:"include,omitempty"`
	Exclude     *string         `yaml:"exclude,omitempty"`
	MaxBytes    *int64          `yaml:"max_bytes,omitempty"`
	Threads     *int            `yaml:"threads,omitempty"`
	NoColor     *bool           `yaml:"no_color,omitempty"`
	FailOn      *string         `yaml:"fail_on,omitempty"`
	Format      *string         `yaml:"format,omitempty"`
	Output      *string         `yaml:"output,omitempty"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .vibewolf.yml/.yaml and vibewolf.yml/.yaml.
func LoadLocal(repoRoot string) (FileConfig, error) {
	for _, name := range LocalNames {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return FileConfig{}, fmt.Errorf("local: %w", ErrNotFound)
}

// GlobalPath returns $XDG_CONFIG_HOME/vibewolf/config.yml, falling back to
// ~/.config. It is empty when neither can be determined.
func GlobalPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, "vibewolf", "config.yml")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	p := GlobalPath()
	if p == "" {
		return FileConfig{}, fmt.Errorf("global: no config dir: %w", ErrNotFound)
	}
	if _, err := os.Stat(p); err != nil {
		return FileConfig{}, fmt.Errorf("global: %w", ErrNotFound)
	}
	return LoadFile(p)
}

// MergeRules overlays local rule switches on global ones.
func MergeRules(local, global map[string]bool) map[string]bool {
	if len(local) == 0 && len(global) == 0 {
		return nil
	}
	out := make(map[string]bool, len(local)+len(global))
	for id, on := range global {
		out[id] = on
	}
	for id, on := range local {
		out[id] = on
	}
	return out
}

// ScanConfig converts the file's rule switches and severity floor. The
// severity is matched case-insensitively; an unknown string is kept as-is and
// treated as MEDIUM downstream.
func (fc FileConfig) ScanConfig() *types.ScanConfig {
	sc := &types.ScanConfig{EnabledRules: fc.Rules}
	if fc.MinSeverity != nil {
		sc.MinSeverity = normalizeSeverity(*fc.MinSeverity)
	}
	return sc
}

// normalizeSeverity trims and upper-cases a user-supplied severity name.
func normalizeSeverity(s string) types.Severity {
	return types.Severity(strings.ToUpper(strings.TrimSpace(s)))
}

// Template is the commented starter file written by `vibewolf config init`.
func Template(ruleIDs []string) string {
	var b strings.Builder
	b.WriteString("# vibewolf configuration\n")
	b.WriteString("# Severity floor: LOW, MEDIUM, HIGH or CRITICAL\n")
	b.WriteString("min_severity: MEDIUM\n")
	b.WriteString("# Exit non-zero when a finding is at or above this severity\n")
	b.WriteString("fail_on: HIGH\n")
	b.WriteString("# Comma-separated globs, relative to the scan root\n")
	b.WriteString("include: \"\"\n")
	b.WriteString("exclude: \"\"\n")
	b.WriteString("# Skip files larger than this many bytes (0 = no limit)\n")
	b.WriteString("max_bytes: 0\n")
	b.WriteString("threads: 0\n")
	b.WriteString("format: plain\n")
	b.WriteString("# Set a rule to false to disable it\n")
	b.WriteString("rules:\n")
	for _, id := range ruleIDs {
		fmt.Fprintf(&b, "  %s: true\n", id)
	}
	return b.String()
}
