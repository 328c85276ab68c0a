package core_test

import (
	"fmt"

	"github.com/vibewolf/vibewolf/pkg/core"
)

// ExampleScanner_ScanText scans a snippet held in an editor buffer.
func ExampleScanner_ScanText() {
	s, err := core.New()
	if err != nil {
		panic(err)
	}
	defer s.Dispose()

	findings, err := s.ScanText(`el.innerHTML = "<b>" + name + "</b>";`, "view.js", nil)
	if err != nil {
		panic(err)
	}
	for _, f := range findings {
		fmt.Printf("%s:%d %s %s\n", f.FilePath, f.LineNumber, f.Severity, f.RuleID)
	}
	// Output: view.js:1 HIGH xss_vulnerabilities
}
