package vibewolf

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/vibewolf/vibewolf/internal/engine"
	"github.com/vibewolf/vibewolf/internal/report"
	"github.com/vibewolf/vibewolf/internal/rules"
	"github.com/vibewolf/vibewolf/internal/types"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the built-in rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rs, err := rules.Load()
			if err != nil {
				return err
			}
			return writeRulesTable(cmd.OutOrStdout(), rs)
		},
	}

	test := &cobra.Command{
		Use:   "test <id>",
		Short: "Run one rule against text read from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := rules.Load()
			if err != nil {
				return err
			}
			one, err := onlyRule(rs, args[0])
			if err != nil {
				return err
			}
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			fs := engine.ScanText(string(data), "stdin", one)
			return report.Render(cmd.OutOrStdout(), fs, report.FormatTable, report.Options{NoColor: true})
		},
	}
	cmd.AddCommand(test)
	rootCmd.AddCommand(cmd)
}

func writeRulesTable(w io.Writer, rs rules.RuleSet) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "SEVERITY", "PATTERNS", "DESCRIPTION")
	for r := range rs.All() {
		if err := table.Append([]string{r.ID, string(r.Severity), fmt.Sprint(len(r.Patterns)), r.Description}); err != nil {
			return err
		}
	}
	return table.Render()
}

// onlyRule narrows rs to id regardless of its severity.
func onlyRule(rs rules.RuleSet, id string) (rules.RuleSet, error) {
	if _, ok := rs.Get(id); !ok {
		return rules.RuleSet{}, fmt.Errorf("unknown rule id: %s (available: %s)", id, strings.Join(rs.IDs(), ", "))
	}
	on := make(map[string]bool, rs.Len())
	for _, other := range rs.IDs() {
		on[other] = other == id
	}
	return rules.Filter(rs, &types.ScanConfig{EnabledRules: on, MinSeverity: types.SevLow}), nil
}
