package vibewolf

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vibewolf/vibewolf/internal/rules"
)

var (
	docsBegin = []byte("<!-- BEGIN:RULES -->")
	docsEnd   = []byte("<!-- END:RULES -->")
)

// gendocs regenerates the rule catalog section in README.md between the
// BEGIN:RULES and END:RULES markers.
func init() {
	var path string
	cmd := &cobra.Command{
		Use:    "gendocs",
		Short:  "Regenerate the README rule catalog",
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			out, err := replaceRulesSection(b, rules.DefaultGroups())
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if err := os.WriteFile(path, out, 0o644); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Updated", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "file", "README.md", "markdown file holding the markers")
	rootCmd.AddCommand(cmd)
}

func replaceRulesSection(doc []byte, groups []rules.Group) ([]byte, error) {
	i := bytes.Index(doc, docsBegin)
	j := bytes.Index(doc, docsEnd)
	if i < 0 || j < 0 || j <= i {
		return nil, fmt.Errorf("rules markers not found")
	}
	var sec strings.Builder
	sec.WriteString("\n| Rule | Severity | Group | What it flags |\n|---|---|---|---|\n")
	for _, g := range groups {
		for _, r := range g.Rules {
			fmt.Fprintf(&sec, "| `%s` | %s | %s | %s |\n", r.ID, r.Severity, g.Name, strings.ReplaceAll(r.Description, "|", `\|`))
		}
	}

	var nb bytes.Buffer
	nb.Write(doc[:i])
	nb.Write(docsBegin)
	nb.WriteString(sec.String())
	nb.Write(docsEnd)
	nb.Write(doc[j+len(docsEnd):])
	return nb.Bytes(), nil
}
