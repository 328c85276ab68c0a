package vibewolf

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vibewolf/vibewolf/internal/engine"
	"github.com/vibewolf/vibewolf/internal/report"
	"github.com/vibewolf/vibewolf/internal/rules"
)

func init() {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage baselines",
	}

	var path string
	update := &cobra.Command{
		Use:   "update",
		Short: "Accept every current finding into the baseline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := rules.Load()
			if err != nil {
				return err
			}
			s, err := resolveScan([]string{path}, catalog)
			if err != nil {
				return err
			}
			res, err := engine.ScanTree(cmd.Context(), s.root, rules.Filter(catalog, s.scan), s.engine)
			if err != nil {
				return err
			}
			file := filepath.Join(s.root, report.BaselineFileName)
			if err := report.SaveBaseline(file, s.root, res.Findings); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Baseline updated: %d findings in %s\n", len(res.Findings), file)
			return nil
		},
	}
	update.Flags().StringVarP(&path, "path", "p", ".", "project root")

	rootCmd.AddCommand(cmd)
	cmd.AddCommand(update)
}
