// Package core provides a small, stable facade over vibewolf's internal
// engine for editor hosts and other integrations. A Scanner owns one
// compiled rule catalog and is either active or disposed; every operation
// on a disposed Scanner fails with ErrDisposed.
//
// Example:
//
//	s, err := core.New()
//	if err != nil { /* malformed rule catalog */ }
//	defer s.Dispose()
//	findings, err := s.ScanText(src, "app.js", &core.ScanConfig{MinSeverity: core.SevHigh})
//	_ = core.MarshalFindings(os.Stdout, findings)
package core
