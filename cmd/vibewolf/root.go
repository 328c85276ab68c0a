package vibewolf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/vibewolf/vibewolf/internal/logging"
)

var (
	flagNoColor       bool
	flagDebug         bool
	flagNoUpdateCheck bool

	version = "0.1.0"

	log = logging.Nop()
)

// errFindings is returned by scan when findings reach the --fail-on level.
// Execute turns it into exit status 1 without printing it.
var errFindings = errors.New("findings at or above the fail-on threshold")

// rootCmd is the base Cobra command for the VibeWolf CLI.
var rootCmd = &cobra.Command{
	Use:           "vibewolf",
	Short:         "Pattern-based security scanner for JS/TS/HTML projects",
	Long:          "VibeWolf walks a project, runs its security rules line by line over JavaScript, TypeScript, Vue, Svelte and HTML sources, and reports what it finds.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		l, err := logging.New(flagDebug)
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		log = l
		return nil
	},
}

// Execute runs the VibeWolf CLI. It should be called by the main package.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = log.Sync()
	if err != nil && !errors.Is(err, errFindings) {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errFindings):
		return 1
	default:
		return 2
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "verbose diagnostic logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
}
