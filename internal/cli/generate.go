package cli

import (
	"github.com/ksyq12/confgen/internal/generator"
	"github.com/spf13/cobra"
)

var dryRun bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate configs (same as running confgen without arguments)",
	Long: `Clear stale configs from the output directory and render one config per
domain, plus the wildcard routing pair when enabled.

Examples:
  confgen generate
  confgen generate --dry-run
  confgen generate --json`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would change without writing files")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gen := generator.New(cfg, generator.WithDryRun(dryRun))
	report, err := gen.Generate(commandContext(cmd))
	if err != nil {
		return err
	}
	return printReport(report)
}
