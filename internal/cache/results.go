// Package cache persists the last scan so reports can be re-rendered
// without scanning again.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/vibewolf/vibewolf/internal/types"
)

// ErrNoResults means no scan has been saved for the root yet.
var ErrNoResults = errors.New("no saved scan results")

// ScanResults stores the findings and metadata from a scan
type ScanResults struct {
	Findings     []types.Finding `json:"findings"`
	Timestamp    time.Time       `json:"timestamp"`
	Root         string          `json:"root"`
	Count        int             `json:"count"`
	FilesScanned int             `json:"filesScanned"`
	MinSeverity  types.Severity  `json:"minSeverity,omitempty"`
}

// ResultsPath is where results for root are stored: inside .git when the
// root is a repository, otherwise a dotfile at the root.
func ResultsPath(root string) string {
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "vibewolf_last_scan.json")
	}
	return filepath.Join(root, ".vibewolf_last_scan.json")
}

// SaveResults saves scan results to cache, stamping the time and count.
func SaveResults(root string, res ScanResults) error {
	res.Root = root
	res.Count = len(res.Findings)
	if res.Timestamp.IsZero() {
		res.Timestamp = time.Now()
	}
	if res.Findings == nil {
		res.Findings = []types.Finding{}
	}
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(ResultsPath(root), b, 0o644)
}

// LoadResults loads the last scan results from cache
func LoadResults(root string) (ScanResults, error) {
	var results ScanResults
	p := ResultsPath(root)
	f, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return results, ErrNoResults
		}
		return results, err
	}
	if err := json.Unmarshal(f, &results); err != nil {
		return results, fmt.Errorf("parse %s: %w", p, err)
	}
	return results, nil
}
