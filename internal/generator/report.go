package generator

// SkippedDomain is a domain for which no file was written.
type SkippedDomain struct {
	Domain string `json:"domain"`
	Reason string `json:"reason"`
}

// WildcardStatus describes what happened to the wildcard file pair.
type WildcardStatus struct {
	Enabled       bool     `json:"enabled"`
	MapWritten    bool     `json:"map_written"`
	ConfigWritten bool     `json:"config_written"`
	Removed       []string `json:"removed,omitempty"`
	Warning       string   `json:"warning,omitempty"`
}

// Report summarizes one run.
type Report struct {
	DryRun        bool            `json:"dry_run"`
	OutputDir     string          `json:"output_dir"`
	Removed       []string        `json:"removed"`
	RemoveFailed  []string        `json:"remove_failed,omitempty"`
	Written       []string        `json:"written"`
	Skipped       []SkippedDomain `json:"skipped"`
	Wildcard      WildcardStatus  `json:"wildcard"`
	DomainsParsed int             `json:"domains_parsed"`
}

func newReport(outputDir string, dryRun bool) *Report {
	return &Report{
		DryRun:    dryRun,
		OutputDir: outputDir,
		Removed:   []string{},
		Written:   []string{},
		Skipped:   []SkippedDomain{},
	}
}

// OK reports whether every parsed domain was written.
func (r *Report) OK() bool {
	return len(r.Skipped) == 0 && len(r.RemoveFailed) == 0
}

func (r *Report) skip(domain, reason string) {
	r.Skipped = append(r.Skipped, SkippedDomain{Domain: domain, Reason: reason})
}
