package vibewolf

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vibewolf/vibewolf/internal/files"
	"github.com/vibewolf/vibewolf/internal/ignore"
)

func init() {
	var root string
	var defaults bool
	cmd := &cobra.Command{
		Use:   "ignore [pattern...]",
		Short: "Add file or glob patterns to " + ignore.FileName,
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns := args
			if defaults {
				patterns = append(files.DefaultIgnores(), patterns...)
			}
			if len(patterns) == 0 {
				return fmt.Errorf("give at least one pattern, or --defaults")
			}
			for _, p := range patterns {
				if err := files.AppendIgnore(root, p); err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", filepath.Join(root, ignore.FileName))
			return nil
		},
	}
	cmd.Flags().StringVarP(&root, "path", "p", ".", "project root holding the ignore file")
	cmd.Flags().BoolVar(&defaults, "defaults", false, "also add the common minified/vendor patterns")
	rootCmd.AddCommand(cmd)
}
