// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config holds the resolved run configuration (spec.md §6's CLI
// surface plus the ambient HTTP/dispatch knobs): adapter API keys, the
// --dont-query/--only-query and --dont-complete/--only-complete filters,
// --remove-fields, --force-overwrite, and the HTTP/dispatch timing knobs,
// together with YAML marshaling for `bib config dump` (grounded on the
// teacher's internal/search/queryfile.go WriteQueryFile/ReadQueryFile
// pattern).
package config

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// HTTPConfig holds the shared HTTP settings every adapter request uses.
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// DispatchConfig holds the dispatcher's concurrency and rate-limit knobs
// (spec.md §4.6's N_global, N_host, D_host, and the optional per-entry
// wall-clock budget).
type DispatchConfig struct {
	GlobalConcurrency int           `yaml:"global_concurrency"`
	HostConcurrency   int           `yaml:"host_concurrency"`
	HostInterval      time.Duration `yaml:"host_interval"`
	EntryBudget       time.Duration `yaml:"entry_budget,omitempty"`
}

// AdapterKeys holds the per-adapter contact/credential values loaded from
// secrets or config (semantic-scholar-api-key, unpaywall-email,
// crossref-mailto, openalex-email — see internal/secrets).
type AdapterKeys struct {
	SemanticScholarAPIKey string `yaml:"semantic_scholar_api_key,omitempty"`
	UnpaywallEmail        string `yaml:"unpaywall_email,omitempty"`
	CrossrefMailto        string `yaml:"crossref_mailto,omitempty"`
	OpenAlexEmail         string `yaml:"openalex_email,omitempty"`
}

// Policy holds the field/adapter filtering and merge-override flags
// bound directly to the CLI surface (spec.md §6).
type Policy struct {
	DontQuery    []string `yaml:"dont_query,omitempty"`
	OnlyQuery    []string `yaml:"only_query,omitempty"`
	DontComplete []string `yaml:"dont_complete,omitempty"`
	OnlyComplete []string `yaml:"only_complete,omitempty"`
	RemoveFields []string `yaml:"remove_fields,omitempty"`
	Force        bool     `yaml:"force_overwrite"`
}

// Config is the fully resolved run configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Dispatch DispatchConfig `yaml:"dispatch"`
	Adapters AdapterKeys    `yaml:"adapters"`
	Policy   Policy         `yaml:"policy"`
}

const (
	defaultTimeout           = 20 * time.Second
	defaultGlobalConcurrency = 8
	defaultHostConcurrency   = 1
	defaultHostInterval      = 100 * time.Millisecond
)

// Default returns the baseline Config, which the CLI then adjusts from its
// flags and secrets (env vars and config files are not applied), with
// version embedded in the User-Agent per spec.md
// §6's mandatory "bibtex-autocomplete/<version> (<contact-url>)" header.
func Default(version, contactURL string) Config {
	return Config{
		HTTP: HTTPConfig{
			Timeout:   defaultTimeout,
			UserAgent: fmt.Sprintf("bibtex-autocomplete/%s (%s)", version, contactURL),
		},
		Dispatch: DispatchConfig{
			GlobalConcurrency: defaultGlobalConcurrency,
			HostConcurrency:   defaultHostConcurrency,
			HostInterval:      defaultHostInterval,
		},
	}
}

func contains(set []string, name string) bool {
	for _, s := range set {
		if s == name {
			return true
		}
	}
	return false
}

// EnabledAdapters filters all (every adapter name the binary knows about)
// down to the ones this run should query: only_query wins outright when
// non-empty, otherwise dont_query excludes names from the full set.
func (p Policy) EnabledAdapters(all []string) []string {
	if len(p.OnlyQuery) > 0 {
		return filterKept(all, p.OnlyQuery)
	}
	return filterDropped(all, p.DontQuery)
}

// CompletableFields filters all (every recognized field name) down to the
// ones the merger is allowed to fill or overwrite, with the same
// only/dont precedence as EnabledAdapters.
func (p Policy) CompletableFields(all []string) []string {
	if len(p.OnlyComplete) > 0 {
		return filterKept(all, p.OnlyComplete)
	}
	return filterDropped(all, p.DontComplete)
}

func filterKept(all, kept []string) []string {
	out := make([]string, 0, len(kept))
	for _, name := range all {
		if contains(kept, name) {
			out = append(out, name)
		}
	}
	return out
}

func filterDropped(all, dropped []string) []string {
	out := make([]string, 0, len(all))
	for _, name := range all {
		if !contains(dropped, name) {
			out = append(out, name)
		}
	}
	return out
}

// DontCompleteFields derives the effective dont_complete set for the
// merger: every name in allFields that CompletableFields excludes. When
// OnlyComplete is non-empty it alone decides, and DontComplete is not
// consulted.
func (p Policy) DontCompleteFields(allFields []string) []string {
	allowed := make(map[string]bool)
	for _, f := range p.CompletableFields(allFields) {
		allowed[f] = true
	}
	out := make([]string, 0, len(allFields))
	for _, f := range allFields {
		if !allowed[f] {
			out = append(out, f)
		}
	}
	return out
}

// Dump renders cfg as YAML for the `bib config dump` command.
func Dump(cfg Config) ([]byte, error) {
	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return out, nil
}

// Load reads a YAML config file at path, for `bib config dump`'s
// round-trip and for tests.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Write saves cfg as YAML to path.
func Write(path string, cfg Config) error {
	data, err := Dump(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
