package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/vibewolf/vibewolf/internal/types"
)

// Document is the JSON report shape. It is also what the cache stores for
// the last scan, so `vibewolf report` can re-render it.
type Document struct {
	Tool        string          `json:"tool"`
	Version     string          `json:"version"`
	Project     string          `json:"project"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Summary     Summary         `json:"summary"`
	Findings    []types.Finding `json:"findings"`
}

// NewDocument assembles the JSON document for findings.
func NewDocument(findings []types.Finding, opts Options) Document {
	if findings == nil {
		findings = []types.Finding{}
	}
	return Document{
		Tool:        "vibewolf",
		Version:     opts.version(),
		Project:     opts.project(),
		GeneratedAt: opts.timestamp(),
		Summary:     Summarize(findings),
		Findings:    findings,
	}
}

// WriteJSON writes findings as an indented JSON Document.
func WriteJSON(w io.Writer, findings []types.Finding, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(findings, opts))
}
