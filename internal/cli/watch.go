package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ksyq12/confgen/internal/generator"
	"github.com/ksyq12/confgen/internal/logger"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate configs when templates or certificates change",
	Long: `Generate once, then regenerate whenever a file in the templates directory
changes (and, with ENABLE_SSL=true, when certificates appear under the
certificate root). Runs until interrupted.

Examples:
  confgen watch
  confgen watch --debounce 2s`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", generator.DefaultDebounce, "Wait this long after the last change before regenerating")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen := generator.New(cfg)
	report, err := gen.Generate(ctx)
	if err != nil {
		return err
	}
	if err := printReport(report); err != nil {
		return err
	}

	return gen.Watch(ctx, watchDebounce, func(r *generator.Report, err error) {
		if err != nil {
			logger.Error("Regeneration failed: %v", err)
			return
		}
		_ = printReport(r)
	})
}
