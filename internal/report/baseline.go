package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/vibewolf/vibewolf/internal/types"
)

// BaselineFileName is the default baseline path at the project root.
const BaselineFileName = "vibewolf.baseline.json"

// Baseline is the set of accepted finding fingerprints.
type Baseline struct {
	Items map[string]bool `json:"items"`
}

// LoadBaseline reads a baseline file. A missing file is an empty baseline.
func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	buf, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return b, nil
		}
		return b, err
	}
	if err := json.Unmarshal(buf, &b); err != nil {
		return Baseline{Items: map[string]bool{}}, fmt.Errorf("parse baseline %s: %w", path, err)
	}
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	return b, nil
}

// fingerprint hashes f with its path made relative to root, so baselines
// and SARIF fingerprints do not depend on where the project is checked out.
func fingerprint(f types.Finding, root string) string {
	f.FilePath = Options{Root: root}.display(f.FilePath)
	return f.Fingerprint()
}

// SaveBaseline records every finding's fingerprint relative to root.
func SaveBaseline(path, root string, findings []types.Finding) error {
	b := Baseline{Items: map[string]bool{}}
	for _, f := range findings {
		b.Items[fingerprint(f, root)] = true
	}
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(buf, '\n'), 0o644)
}

// FilterNewFindings drops findings already recorded in base. root must be
// the one the baseline was saved with.
func FilterNewFindings(findings []types.Finding, base Baseline, root string) []types.Finding {
	if len(base.Items) == 0 {
		return findings
	}
	var out []types.Finding
	for _, f := range findings {
		if !base.Items[fingerprint(f, root)] {
			out = append(out, f)
		}
	}
	return out
}

// Fingerprints lists base's entries in sorted order.
func (b Baseline) Fingerprints() []string {
	out := make([]string, 0, len(b.Items))
	for k, ok := range b.Items {
		if ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// ShouldFail reports whether any finding is at or above failOn (any case).
// An empty or unknown threshold means MEDIUM.
func ShouldFail(findings []types.Finding, failOn string) bool {
	th := types.SeverityOrDefault(strings.ToUpper(strings.TrimSpace(failOn))).Rank()
	for _, f := range findings {
		if severityOf(f).Rank() >= th {
			return true
		}
	}
	return false
}
