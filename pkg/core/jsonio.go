package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMalformedFindings is returned by UnmarshalFindings when the document is
// valid JSON but not a findings array.
var ErrMalformedFindings = errors.New("malformed findings document")

// MarshalFindings writes findings as an indented JSON array. A nil slice is
// written as [] so consumers never see null.
func MarshalFindings(w io.Writer, findings []Finding) error {
	if findings == nil {
		findings = []Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

// UnmarshalFindings reads back a document written by MarshalFindings, for
// hosts that receive findings over a pipe. The document must be a single
// array; every element needs a rule id, a known severity and a 1-based line.
func UnmarshalFindings(r io.Reader) ([]Finding, error) {
	dec := json.NewDecoder(r)
	var out []Finding
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode findings: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("%w: expected an array", ErrMalformedFindings)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after array", ErrMalformedFindings)
	}
	for i, f := range out {
		switch {
		case f.RuleID == "":
			return nil, fmt.Errorf("%w: finding %d has no ruleId", ErrMalformedFindings, i)
		case !f.Severity.Valid():
			return nil, fmt.Errorf("%w: finding %d has severity %q", ErrMalformedFindings, i, f.Severity)
		case f.LineNumber < 1:
			return nil, fmt.Errorf("%w: finding %d has line %d", ErrMalformedFindings, i, f.LineNumber)
		}
	}
	return out, nil
}
