package report

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/vibewolf/vibewolf/internal/types"
)

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string         `json:"id"`
	ShortDescription sarifMessage   `json:"shortDescription"`
	Help             *sarifMessage  `json:"help,omitempty"`
	Properties       map[string]any `json:"properties,omitempty"`
}

type sarifResult struct {
	RuleID              string            `json:"ruleId"`
	RuleIndex           int               `json:"ruleIndex"`
	Level               string            `json:"level"`
	Message             sarifMessage      `json:"message"`
	Locations           []sarifLoc        `json:"locations"`
	PartialFingerprints map[string]string `json:"partialFingerprints,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int           `json:"startLine"`
	Snippet   *sarifMessage `json:"snippet,omitempty"`
}

func sevToLevel(s types.Severity) string {
	switch s {
	case types.SevCritical, types.SevHigh:
		return "error"
	case types.SevMedium:
		return "warning"
	default:
		return "note"
	}
}

// WriteSARIF writes findings as SARIF 2.1.0. Each rule that produced a
// finding appears once under tool.driver.rules; results link to it by
// ruleIndex and carry the finding fingerprint.
func WriteSARIF(w io.Writer, findings []types.Finding, opts Options) error {
	index := map[string]int{}
	var ids []string
	first := map[string]types.Finding{}
	for _, f := range findings {
		if _, ok := first[f.RuleID]; !ok {
			first[f.RuleID] = f
			ids = append(ids, f.RuleID)
		}
	}
	sort.Strings(ids)

	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:           "vibewolf",
			Version:        opts.version(),
			InformationURI: "https://github.com/vibewolf/vibewolf",
			Rules:          []sarifRule{},
		}},
		Results: []sarifResult{},
	}
	for i, id := range ids {
		index[id] = i
		f := first[id]
		r := sarifRule{
			ID:               id,
			ShortDescription: sarifMessage{Text: f.Description},
			Properties:       map[string]any{"severity": string(severityOf(f))},
		}
		if f.Recommendation != "" {
			r.Help = &sarifMessage{Text: f.Recommendation}
		}
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, r)
	}
	for _, f := range findings {
		run.Results = append(run.Results, sarifResult{
			RuleID:    f.RuleID,
			RuleIndex: index[f.RuleID],
			Level:     sevToLevel(severityOf(f)),
			Message:   sarifMessage{Text: f.Description},
			Locations: []sarifLoc{{
				PhysicalLocation: sarifPhys{
					ArtifactLocation: sarifArt{URI: opts.display(f.FilePath)},
					Region:           sarifRegion{StartLine: f.LineNumber, Snippet: &sarifMessage{Text: f.CodeSnippet}},
				},
			}},
			PartialFingerprints: map[string]string{"vibewolf/v1": fingerprint(f, opts.Root)},
		})
	}
	doc := sarif{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
