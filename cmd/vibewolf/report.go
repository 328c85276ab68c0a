package vibewolf

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vibewolf/vibewolf/internal/cache"
	"github.com/vibewolf/vibewolf/internal/git"
	"github.com/vibewolf/vibewolf/internal/report"
)

func init() {
	var format, output string
	cmd := &cobra.Command{
		Use:   "report [path]",
		Short: "Re-render the last scan without scanning again",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			res, err := cache.LoadResults(abs)
			if errors.Is(err, cache.ErrNoResults) {
				return fmt.Errorf("no saved scan for %s; run 'vibewolf scan' first", abs)
			}
			if err != nil {
				return err
			}
			name := format
			if name == "" && output != "" {
				name = formatFromPath(output)
			}
			f, err := report.ParseFormat(name)
			if err != nil {
				return err
			}
			s := scanSettings{root: abs, format: f, output: output}
			opts := report.Options{
				ProjectName: git.RepoMetadata(abs).Repo,
				GeneratedAt: res.Timestamp,
				NoColor:     flagNoColor || output != "",
				Root:        abs,
				Version:     version,
			}
			return writeReport(cmd.OutOrStdout(), cmd.ErrOrStderr(), res.Findings, s, opts)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: plain|table|markdown|html|json|sarif")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to this file instead of stdout")
	rootCmd.AddCommand(cmd)
}
