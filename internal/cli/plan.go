package cli

import (
	"sort"
	"strconv"

	"github.com/samber/lo"

	"github.com/ksyq12/confgen/internal/generator"
	"github.com/ksyq12/confgen/internal/output"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show parsed domains and template choices",
	Long: `Parse DOMAINS and WILDCARD_LOCALHOST_PORTS and show which template each
domain would use. Nothing is written.

Examples:
  confgen plan
  confgen plan --json`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gen := generator.New(cfg)
	plan := gen.Plan()

	if jsonOutput {
		return output.JSON(plan)
	}

	output.Print("Domains (%s):", plan.Domains.Format)
	if len(plan.Items) == 0 {
		output.Print("  none")
	} else {
		rows := make([][]string, 0, len(plan.Items))
		for _, item := range plan.Items {
			expires := ""
			if item.CertFound {
				if t, err := gen.Certs().Expiry(item.Original); err == nil {
					expires = t.Format("2006-01-02")
				}
			}
			tmpl := item.Template
			if !item.TemplateFound {
				tmpl += " (missing)"
			}
			rows = append(rows, []string{
				item.Domain,
				strconv.Itoa(item.Port),
				tmpl,
				output.YesNo(item.CertFound),
				expires,
				item.Output,
			})
		}
		output.Table([]string{"DOMAIN", "PORT", "TEMPLATE", "CERT", "EXPIRES", "OUTPUT"}, rows)
	}
	for _, s := range plan.Domains.Skipped {
		output.Warn("Ignored %q: %s", s.Token, s.Reason)
	}
	if cfg.EnableSSL {
		printUnusedCerts(gen, plan)
	}

	output.Print("")
	if !plan.WildcardEnabled {
		output.Print("Wildcard routing: disabled")
		return nil
	}

	output.Print("Wildcard routing: enabled (default port %d)", plan.Wildcard.DefaultPort)
	labels := plan.Wildcard.Labels()
	sort.Strings(labels)
	rows := make([][]string, 0, len(labels))
	for _, label := range labels {
		rows = append(rows, []string{label + ".localhost", strconv.Itoa(plan.Wildcard.Lookup(label))})
	}
	if len(rows) > 0 {
		output.Table([]string{"HOST", "PORT"}, rows)
	}
	for _, s := range plan.Wildcard.Skipped {
		output.Warn("Ignored %q: %s", s.Token, s.Reason)
	}
	return nil
}

// printUnusedCerts lists certificates under the certificate root that no
// domain refers to.
func printUnusedCerts(gen *generator.Generator, plan *generator.Plan) {
	certs, err := gen.Certs().List()
	if err != nil {
		output.Warn("%v", err)
		return
	}
	used := lo.Map(plan.Items, func(item generator.PlanItem, _ int) string { return item.Original })
	unused, _ := lo.Difference(certs, used)
	for _, domain := range unused {
		output.Info("Certificate for %s is not used by any domain", domain)
	}
}
