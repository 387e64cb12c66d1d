// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bib CLI (spec.md §6's CLI
// surface): completes missing BibTeX fields by querying bibliographic
// web APIs and merging the results back into the original entries.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// defaultContactURL is the contact URL embedded in the mandatory
// User-Agent header (spec.md §6).
const defaultContactURL = "https://github.com/mesh-intelligence/bibtex-autocomplete"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when it is non-empty; otherwise it returns
// the loaded secret value for key, or "" if there is none.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the bib CLI. Run directly on a list of
// .bib files, it completes missing fields; its "config" subcommand
// inspects the resolved run configuration.
var rootCmd = &cobra.Command{
	Use:   "bib <file.bib>...",
	Short: "Complete missing BibTeX fields from bibliographic web APIs",
	Long: `bib queries Crossref, DBLP, arXiv, Unpaywall, Researchr, OpenAlex, Semantic
Scholar, and INSPIRE-HEP for entries in one or more .bib files, and fills in
fields the entries are missing (DOI, journal, pages, ...) without ever
overwriting a field the file already has, unless --force-overwrite is set.

Use "bib config dump" to print the run configuration: built-in defaults plus
loaded secrets. The --config file is loaded by viper at startup, but neither
it nor BIBCOMPLETE_* environment variables change the run configuration.`,
	Args: cobra.ArbitraryArgs,
	RunE: runComplete,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bibcomplete.yaml or ~/.config/bibcomplete/bibcomplete.yaml)")
	registerCompleteFlags(rootCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bibcomplete")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bibcomplete"))
		}
	}

	viper.SetEnvPrefix("BIBCOMPLETE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if ce, ok := err.(*cliError); ok {
			os.Exit(ce.code)
		}
		os.Exit(1)
	}
}

// cliError carries spec.md §6's exit-code taxonomy through cobra's plain
// error return, since cobra itself only distinguishes success from
// failure.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func exitError(code int, err error) error {
	return &cliError{code: code, err: err}
}
