package vibewolf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vibewolf/vibewolf/internal/config"
	"github.com/vibewolf/vibewolf/internal/rules"
	"gopkg.in/yaml.v3"
)

var (
	cfgOutput string
	cfgForce  bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .vibewolf.yml listing every rule",
		RunE:  runConfigInit,
	}
	initCmd.Flags().StringVar(&cfgOutput, "output", config.LocalNames[0], "output file path")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
	cfgCmd.AddCommand(initCmd)

	showCmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Print the effective file configuration (local over global)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigShow,
	}
	cfgCmd.AddCommand(showCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(cfgOutput); err == nil && !cfgForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgOutput)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	rs, err := rules.Load()
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, []byte(config.Template(rs.IDs())), 0o644); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	lcfg, gcfg, err := loadConfigs(abs)
	if err != nil {
		return err
	}
	eff := config.FileConfig{
		MinSeverity: firstSet(lcfg.MinSeverity, gcfg.MinSeverity),
		Rules:       config.MergeRules(lcfg.Rules, gcfg.Rules),
		Include:     firstSet(lcfg.Include, gcfg.Include),
		Exclude:     firstSet(lcfg.Exclude, gcfg.Exclude),
		MaxBytes:    firstSet(lcfg.MaxBytes, gcfg.MaxBytes),
		Threads:     firstSet(lcfg.Threads, gcfg.Threads),
		NoColor:     firstSet(lcfg.NoColor, gcfg.NoColor),
		FailOn:      firstSet(lcfg.FailOn, gcfg.FailOn),
		Format:      firstSet(lcfg.Format, gcfg.Format),
		Output:      firstSet(lcfg.Output, gcfg.Output),
	}
	b, err := yaml.Marshal(&eff)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}

func firstSet[T any](local, global *T) *T {
	if local != nil {
		return local
	}
	return global
}
