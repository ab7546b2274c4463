package cli

import (
	"os"

	"github.com/ksyq12/confgen/internal/logger"
	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	verbose    bool
	quiet      bool
	configPath string
	logLevel   string
	version    = "dev"
)

// rootCmd generates configs when run without a subcommand
var rootCmd = &cobra.Command{
	Use:   "confgen",
	Short: "Generate nginx reverse-proxy configs from the environment",
	Long: `confgen writes one nginx config per domain listed in DOMAINS, plus an
optional wildcard *.localhost routing pair, into the output directory.

Run without arguments at container start:

  DOMAINS='{"example.com":8080}' confgen
  DOMAINS=example.com,api.example.com:9000 ENABLE_SSL=true confgen`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	RunE:          runGenerate,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging()
	},
}

// initLogging sets the global log level from the command line flags
func initLogging() error {
	logger.Init(verbose, quiet)
	if logLevel == "" {
		return nil
	}
	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	return nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log warnings and errors")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides --verbose and --quiet)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML settings file (default $CONFGEN_CONFIG)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would change without writing files")
}
