package vibewolf

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vibewolf/vibewolf/internal/update"
)

func init() {
	var check bool
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "vibewolf v%s\n", version)
			if !check {
				return nil
			}
			latest, newer, err := update.Check(cmd.Context(), version, flagNoUpdateCheck)
			if err != nil {
				return err
			}
			switch {
			case newer:
				_, _ = fmt.Fprintf(out, "new version available: v%s (run 'vibewolf update')\n", latest)
			case latest != "":
				_, _ = fmt.Fprintln(out, "up to date")
			default:
				_, _ = fmt.Fprintln(out, "latest version unknown")
			}
			return nil
		},
	}
	versionCmd.Flags().BoolVar(&check, "check", false, "also check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update vibewolf to the latest GitHub release",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := update.Apply(version)
			if err != nil {
				return err
			}
			if !update.Newer(v, version) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "already at the latest version (v%s)\n", version)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated to v%s\n", v)
			return nil
		},
	}
	rootCmd.AddCommand(updateCmd)
}
