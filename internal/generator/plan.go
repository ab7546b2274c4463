package generator

import (
	"github.com/ksyq12/confgen/internal/confdir"
	"github.com/ksyq12/confgen/internal/logger"
	"github.com/ksyq12/confgen/internal/parser"
	"github.com/ksyq12/confgen/internal/template"
)

// PlanItem is the rendering decision for one domain.
type PlanItem struct {
	Domain        string `json:"domain"`
	Original      string `json:"original"`
	Port          int    `json:"port"`
	Template      string `json:"template"`
	TemplateFound bool   `json:"template_found"`
	CertFound     bool   `json:"cert_found"`
	Fallback      bool   `json:"fallback"` // SSL enabled but no usable certificate
	Output        string `json:"output"`
	Reserved      bool   `json:"reserved,omitempty"`
}

// Plan is everything a run will do, computed without touching the output
// directory.
type Plan struct {
	Domains         *parser.DomainSet     `json:"domains"`
	WildcardEnabled bool                  `json:"wildcard_enabled"`
	Wildcard        *parser.WildcardTable `json:"wildcard"`
	Items           []PlanItem            `json:"items"`
}

// Plan parses the configured inputs and selects a template per domain.
func (g *Generator) Plan() *Plan {
	p := &Plan{
		Domains:         g.parser.Domains(g.cfg.Domains.Raw, g.cfg.Domains.Present),
		WildcardEnabled: g.cfg.WildcardEnabled,
		Items:           []PlanItem{},
	}
	if p.WildcardEnabled {
		p.Wildcard = g.parser.WildcardPorts(g.cfg.WildcardPorts.Raw, g.cfg.WildcardPorts.Present)
	}

	for _, e := range p.Domains.Entries {
		name := confdir.ConfName(e.Domain)
		item := PlanItem{
			Domain:   e.Domain,
			Original: e.Original,
			Port:     e.Port,
			Output:   g.dir.File(name),
			Reserved: isProtected(name),
		}
		item.Template, item.CertFound = g.selectTemplate(e)
		item.TemplateFound = g.templates.Exists(item.Template)
		item.Fallback = g.cfg.EnableSSL && !item.CertFound
		p.Items = append(p.Items, item)
	}
	return p
}

// selectTemplate picks the template for one domain. The certificate is
// looked up by the domain as written in DOMAINS. The rendered HTTPS config
// names the certificate directory by the sanitized domain, so when the two
// spellings differ both directories must hold a certificate.
func (g *Generator) selectTemplate(e parser.Entry) (string, bool) {
	if !g.cfg.EnableSSL {
		return template.HTTP, false
	}
	if !g.certs.HasCert(e.Original) {
		g.log.Log(logger.LevelWarn, "SSL certificate not found, using HTTP config", logger.Fields{
			"domain": e.Original,
			"path":   g.certs.Paths(e.Original).CertPath,
		})
		return template.HTTP, false
	}
	if e.Original != e.Domain && !g.certs.HasCert(e.Domain) {
		g.log.Log(logger.LevelWarn, "SSL certificate not found under the sanitized domain, using HTTP config", logger.Fields{
			"domain": e.Original,
			"path":   g.certs.Paths(e.Domain).CertPath,
		})
		return template.HTTP, false
	}
	return template.HTTPS, true
}
