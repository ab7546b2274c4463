package cli

import (
	"fmt"

	"github.com/ksyq12/confgen/internal/output"
	"github.com/ksyq12/confgen/internal/template"
	"github.com/spf13/cobra"
)

var forceTemplates bool

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage config templates",
}

var templatesInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Install the built-in templates into the templates directory",
	Long: `Write http.conf.template, https.conf.template and
wildcard.localhost.conf.template into the templates directory. Existing
files are kept unless --force is given.

Examples:
  confgen templates init
  TEMPLATES_DIR=./templates confgen templates init --force`,
	Args: cobra.NoArgs,
	RunE: runTemplatesInit,
}

func init() {
	templatesInitCmd.Flags().BoolVar(&forceTemplates, "force", false, "Overwrite existing templates")
	templatesCmd.AddCommand(templatesInitCmd)
	rootCmd.AddCommand(templatesCmd)
}

func runTemplatesInit(cmd *cobra.Command, args []string) error {
	cfg, err := deps.ConfigLoader.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	result, err := template.WriteDefaults(cfg.TemplatesDir, forceTemplates)
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(result)
	}
	for _, path := range result.Written {
		output.Success("Wrote %s", path)
	}
	for _, path := range result.Skipped {
		output.Info("Kept existing %s (use --force to overwrite)", path)
	}
	return nil
}
