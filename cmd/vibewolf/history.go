package vibewolf

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/vibewolf/vibewolf/internal/audit"
)

func init() {
	var root string
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past scans of a project, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			abs, err := filepath.Abs(root)
			if err != nil {
				return err
			}
			records, err := audit.New(abs).History()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				_, _ = fmt.Fprintln(out, "No scans recorded yet.")
				return nil
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}
			table := tablewriter.NewWriter(out)
			table.Header("#", "WHEN", "FILES", "FINDINGS", "NEW", "CRITICAL", "HIGH", "DURATION")
			for i, r := range records {
				row := []string{
					strconv.Itoa(i),
					r.Timestamp.Local().Format(time.DateTime),
					strconv.Itoa(r.FilesScanned),
					strconv.Itoa(r.TotalFindings),
					strconv.Itoa(r.NewFindings),
					strconv.Itoa(r.Summary.Critical),
					strconv.Itoa(r.Summary.High),
					r.Duration,
				}
				if err := table.Append(row); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
	cmd.PersistentFlags().StringVarP(&root, "path", "p", ".", "project root")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most this many scans (0 = all)")

	rm := &cobra.Command{
		Use:   "rm <index>",
		Short: "Delete one scan record (index as shown by 'history')",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}
			abs, err := filepath.Abs(root)
			if err != nil {
				return err
			}
			if err := audit.New(abs).Delete(idx); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted scan record %d\n", idx)
			return nil
		},
	}
	cmd.AddCommand(rm)
	rootCmd.AddCommand(cmd)
}
