package cli

import (
	"context"
	"fmt"

	"github.com/ksyq12/confgen/internal/config"
	"github.com/ksyq12/confgen/internal/generator"
	"github.com/ksyq12/confgen/internal/logger"
	"github.com/ksyq12/confgen/internal/output"
	"github.com/spf13/cobra"
)

// loadConfig loads and validates the run configuration
func loadConfig() (*config.Config, error) {
	cfg, err := deps.ConfigLoader.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Source != "" {
		logger.Debug("Loaded settings from %s", cfg.Source)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// commandContext returns the command's context, or Background when the
// command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// printReport prints a generation report as JSON or a short summary
func printReport(report *generator.Report) error {
	if jsonOutput {
		return output.JSON(report)
	}

	prefix := ""
	if report.DryRun {
		prefix = "[dry-run] "
	}

	for _, name := range report.Removed {
		output.Info("%sRemoved %s", prefix, name)
	}
	for _, name := range report.Wildcard.Removed {
		output.Info("%sRemoved wildcard file %s", prefix, name)
	}
	for _, path := range report.Written {
		output.Success("%sWrote %s", prefix, path)
	}
	if report.Wildcard.Enabled {
		if report.Wildcard.MapWritten {
			output.Success("%sWrote wildcard map %s", prefix, generator.MapFileName)
		}
		if report.Wildcard.ConfigWritten {
			output.Success("%sWrote wildcard config %s", prefix, generator.WildcardFileName)
		}
		if report.Wildcard.Warning != "" {
			output.Warn("Wildcard config skipped: %s", report.Wildcard.Warning)
		}
	}
	for _, s := range report.Skipped {
		output.Warn("Skipped %s: %s", s.Domain, s.Reason)
	}
	for _, name := range report.RemoveFailed {
		output.Warn("Could not remove %s", name)
	}

	summary := output.Success
	if !report.OK() {
		summary = output.Warn
	}
	summary("%s%d written, %d skipped, %d removed", prefix,
		len(report.Written), len(report.Skipped), len(report.Removed)+len(report.Wildcard.Removed))
	return nil
}
