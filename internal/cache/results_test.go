package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vibewolf/vibewolf/internal/types"
)

func TestSaveLoadResults(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadResults(dir); !errors.Is(err, ErrNoResults) {
		t.Fatalf("expected ErrNoResults before first save, got %v", err)
	}
	fs := []types.Finding{{FilePath: "a.js", LineNumber: 2, RuleID: "unsafe_eval", Severity: types.SevHigh, CodeSnippet: "eval(x)"}}
	if err := SaveResults(dir, ScanResults{Findings: fs, FilesScanned: 3}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".vibewolf_last_scan.json")); err != nil {
		t.Fatalf("results file not written: %v", err)
	}
	got, err := LoadResults(dir)
	if err != nil {
		t.Fatalf("load after save: %v", err)
	}
	if got.Count != 1 || got.FilesScanned != 3 || got.Root != dir || got.Timestamp.IsZero() {
		t.Fatalf("unexpected metadata: %+v", got)
	}
	if got.Findings[0] != fs[0] {
		t.Fatalf("unexpected finding: %+v", got.Findings[0])
	}
}

func TestResultsPath_PrefersGitDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, ".git", "vibewolf_last_scan.json")
	if got := ResultsPath(dir); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
