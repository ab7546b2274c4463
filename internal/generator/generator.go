package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/ksyq12/confgen/internal/config"
	"github.com/ksyq12/confgen/internal/confdir"
	gerrors "github.com/ksyq12/confgen/internal/errors"
	"github.com/ksyq12/confgen/internal/logger"
	"github.com/ksyq12/confgen/internal/parser"
	"github.com/ksyq12/confgen/internal/ssl"
	"github.com/ksyq12/confgen/internal/template"
)

// Wildcard output files. ClearStale never removes them; they are managed
// by the wildcard step.
const (
	MapFileName      = "00-wildcard_map.conf"
	WildcardFileName = "wildcard.localhost.conf"
)

// Variables used by the generated map block. The wildcard template must
// capture the subdomain into MapSourceVar and proxy to MapTargetVar.
const (
	MapSourceVar = "$wildcard_subdomain"
	MapTargetVar = "$wildcard_port"
)

// ProtectedNames returns the file names ClearStale must keep.
func ProtectedNames() []string {
	return []string{WildcardFileName, MapFileName}
}

func isProtected(name string) bool {
	return name == WildcardFileName || name == MapFileName
}

// Generator renders configs for one Config.
type Generator struct {
	cfg       *config.Config
	dir       *confdir.Dir
	templates *template.Loader
	certs     *ssl.Store
	parser    *parser.Parser
	log       *logger.Logger
	dryRun    bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithDryRun makes Generate compute the report without changing files.
func WithDryRun(dryRun bool) Option {
	return func(g *Generator) { g.dryRun = dryRun }
}

// WithLogger replaces the global logger.
func WithLogger(l *logger.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// New creates a Generator for cfg.
func New(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:       cfg,
		templates: template.NewLoader(cfg.TemplatesDir),
		certs:     ssl.NewStore(cfg.CertRoot),
		log:       logger.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.dir = confdir.New(cfg.OutputDir, g.log)
	g.parser = parser.New(g.log)
	return g
}

// Certs returns the certificate store used for template selection.
func (g *Generator) Certs() *ssl.Store {
	return g.certs
}

// Generate runs the whole batch. The only returned error is a failure to
// list the output directory (or ctx being cancelled between domains); all
// other problems are recorded in the report.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	g.log.Infof("Starting Nginx configuration generation...")

	plan := g.Plan()
	report := newReport(g.dir.Path(), g.dryRun)
	report.DomainsParsed = len(plan.Items)

	if err := g.clearStale(report); err != nil {
		g.log.Log(logger.LevelError, "Cannot determine output directory state", logger.Fields{
			"path":  g.dir.Path(),
			"error": err,
		})
		return report, err
	}

	g.renderWildcard(plan, report)

	for _, item := range plan.Items {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		g.generateDomain(item, report)
	}

	g.log.Log(logger.LevelInfo, "Nginx configuration generation completed", logger.Fields{
		"written": len(report.Written),
		"skipped": len(report.Skipped),
		"removed": len(report.Removed),
	})
	return report, nil
}

func (g *Generator) clearStale(report *Report) error {
	if g.dryRun {
		names, err := g.dir.List()
		if err != nil {
			return err
		}
		for _, name := range names {
			if !isProtected(name) {
				report.Removed = append(report.Removed, name)
			}
		}
		return nil
	}

	result, err := g.dir.ClearStale(ProtectedNames()...)
	if err != nil {
		return err
	}
	report.Removed = append(report.Removed, result.Removed...)
	for name := range result.Failed {
		report.RemoveFailed = append(report.RemoveFailed, name)
	}
	return nil
}

// renderWildcard writes or removes the wildcard file pair.
func (g *Generator) renderWildcard(plan *Plan, report *Report) {
	report.Wildcard.Enabled = plan.WildcardEnabled

	if !plan.WildcardEnabled {
		for _, name := range ProtectedNames() {
			if !g.dir.Exists(name) {
				continue
			}
			if g.dryRun {
				report.Wildcard.Removed = append(report.Wildcard.Removed, name)
				continue
			}
			removed, err := g.dir.Remove(name)
			if err != nil {
				g.log.Errorf("%v", err)
				continue
			}
			if removed {
				g.log.Infof("Removed wildcard config %s", g.dir.File(name))
				report.Wildcard.Removed = append(report.Wildcard.Removed, name)
			}
		}
		return
	}

	mapPath := g.dir.File(MapFileName)
	if g.dryRun {
		report.Wildcard.MapWritten = true
	} else if _, err := g.dir.Write(MapFileName, RenderMap(plan.Wildcard)); err != nil {
		g.log.Errorf("%v", err)
	} else {
		g.log.Infof("Wildcard routing map generated at %s", mapPath)
		report.Wildcard.MapWritten = true
	}

	content, err := g.templates.Load(template.Wildcard)
	if err != nil {
		g.log.Log(logger.LevelWarn, "Wildcard template unavailable, skipping wildcard config", logger.Fields{
			"path":  g.templates.Path(template.Wildcard),
			"error": err,
		})
		report.Wildcard.Warning = err.Error()
		return
	}
	if found := template.Placeholders(content); len(found) > 0 {
		g.log.Log(logger.LevelWarn, "Wildcard template is written verbatim, placeholders are not replaced", logger.Fields{
			"path":         g.templates.Path(template.Wildcard),
			"placeholders": strings.Join(found, ","),
		})
	}
	if g.dryRun {
		report.Wildcard.ConfigWritten = true
		return
	}
	path, err := g.dir.Write(WildcardFileName, content)
	if err != nil {
		g.log.Errorf("%v", err)
		report.Wildcard.Warning = err.Error()
		return
	}
	g.log.Infof("Wildcard config generated at %s", path)
	report.Wildcard.ConfigWritten = true
}

// generateDomain renders one domain and records the outcome.
func (g *Generator) generateDomain(item PlanItem, report *Report) {
	g.log.Infof("Generating config for domain: %s -> port: %d", item.Domain, item.Port)

	if item.Reserved {
		g.log.Log(logger.LevelWarn, "Domain maps to a reserved file name, skipping", logger.Fields{
			"domain": item.Domain,
			"path":   item.Output,
		})
		report.skip(item.Domain, "reserved file name")
		return
	}

	path, err := g.renderDomain(item)
	if err != nil {
		g.log.Log(logger.LevelError, "Failed to generate config", logger.Fields{
			"domain": item.Domain,
			"error":  err,
		})
		report.skip(item.Domain, err.Error())
		return
	}

	g.log.Infof("Configuration for %s generated at %s", item.Domain, path)
	report.Written = append(report.Written, path)
}

// renderDomain loads the selected template, substitutes placeholders and
// writes <domain>.conf.
func (g *Generator) renderDomain(item PlanItem) (string, error) {
	content, err := g.templates.Load(item.Template)
	if err != nil {
		return "", gerrors.WrapDomain(gerrors.ErrCodeTemplate, item.Domain, err)
	}

	rendered := template.Render(content, template.Data{
		Domain:   item.Domain,
		Port:     item.Port,
		ServerIP: g.cfg.ServerIP,
	})

	if g.dryRun {
		return item.Output, nil
	}
	return g.dir.Write(confdir.ConfName(item.Domain), rendered)
}

// RenderMap renders the nginx map block for a wildcard table: a default
// line followed by one line per label in sorted order.
func RenderMap(table *parser.WildcardTable) string {
	if table == nil {
		table = parser.ParseWildcardPorts("", false)
	}

	var b strings.Builder
	b.WriteString("# Generated by confgen. Do not edit.\n")
	fmt.Fprintf(&b, "map %s %s {\n", MapSourceVar, MapTargetVar)
	fmt.Fprintf(&b, "    default %d;\n", table.DefaultPort)
	for _, label := range table.Labels() {
		fmt.Fprintf(&b, "    %s %d;\n", label, table.Routes[label])
	}
	b.WriteString("}\n")
	return b.String()
}
