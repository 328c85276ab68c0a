// Package audit keeps an append-only history of CLI scans: one JSON record
// per line, newest last on disk and newest first when loaded.
package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/vibewolf/vibewolf/internal/report"
	"github.com/vibewolf/vibewolf/internal/types"
)

// topN caps how many findings a record keeps for a quick glance.
const topN = 10

// ScanRecord summarises one scan run. It never stores code snippets.
type ScanRecord struct {
	Timestamp      time.Time        `json:"timestamp"`
	ScanID         string           `json:"scan_id"`
	Root           string           `json:"root"`
	TotalFindings  int              `json:"total_findings"`
	NewFindings    int              `json:"new_findings"`
	BaselinedCount int              `json:"baselined_count"`
	Summary        report.Summary   `json:"summary"`
	FilesScanned   int              `json:"files_scanned"`
	FilesFailed    int              `json:"files_failed,omitempty"`
	Duration       string           `json:"duration"`
	BaselineFile   string           `json:"baseline_file,omitempty"`
	TopFindings    []FindingSummary `json:"top_findings,omitempty"`
}

type FindingSummary struct {
	Path     string         `json:"path"`
	RuleID   string         `json:"rule_id"`
	Severity types.Severity `json:"severity"`
	Line     int            `json:"line"`
}

type Log struct {
	path string
}

// New places the log inside .git when root is a repository so it never
// shows up as an untracked file.
func New(root string) *Log {
	p := filepath.Join(root, ".vibewolf_audit.jsonl")
	if st, err := os.Stat(filepath.Join(root, ".git")); err == nil && st.IsDir() {
		p = filepath.Join(root, ".git", "vibewolf_audit.jsonl")
	}
	return &Log{path: p}
}

func (l *Log) Path() string { return l.path }

// History returns all records, newest first. A missing log is empty.
// Lines that fail to decode are skipped.
func (l *Log) History() ([]ScanRecord, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	dec := json.NewDecoder(f)
	for dec.More() {
		var r ScanRecord
		if err := dec.Decode(&r); err != nil {
			break
		}
		records = append(records, r)
	}
	reverse(records)
	return records, nil
}

// Append writes one record, assigning a scan id when it has none.
func (l *Log) Append(r ScanRecord) error {
	if r.ScanID == "" {
		r.ScanID = fmt.Sprintf("scan_%d", r.Timestamp.UnixNano())
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(r); err != nil {
		return fmt.Errorf("write audit record: %w", err)
	}
	return nil
}

// Delete removes the record at index (as ordered by History).
func (l *Log) Delete(index int) error {
	records, err := l.History()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(records) {
		return fmt.Errorf("invalid index: %d", index)
	}
	records = append(records[:index], records[index+1:]...)
	reverse(records)

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("rewrite audit log: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("write audit record: %w", err)
		}
	}
	return nil
}

// NewRecord builds a record from the full and the post-baseline finding
// lists. Top findings are taken from the new ones in report order.
func NewRecord(root string, all, fresh []types.Finding, filesScanned, filesFailed int, took time.Duration, baselineFile string) ScanRecord {
	top := make([]FindingSummary, 0, topN)
	for _, g := range report.SortedGroups(fresh) {
		for _, f := range g.Findings {
			if len(top) == topN {
				break
			}
			top = append(top, FindingSummary{Path: f.FilePath, RuleID: f.RuleID, Severity: f.Severity, Line: f.LineNumber})
		}
	}
	return ScanRecord{
		Timestamp:      time.Now(),
		Root:           root,
		TotalFindings:  len(all),
		NewFindings:    len(fresh),
		BaselinedCount: len(all) - len(fresh),
		Summary:        report.Summarize(all),
		FilesScanned:   filesScanned,
		FilesFailed:    filesFailed,
		Duration:       took.Round(time.Millisecond).String(),
		BaselineFile:   baselineFile,
		TopFindings:    top,
	}
}

func reverse(rs []ScanRecord) {
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
}
