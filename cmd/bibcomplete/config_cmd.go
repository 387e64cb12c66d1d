// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the resolved run configuration",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the run configuration (defaults plus secrets) as YAML",
	RunE:  runConfigDump,
}

func init() {
	configCmd.AddCommand(configDumpCmd)
}

func runConfigDump(cmd *cobra.Command, args []string) error {
	cfg := config.Default(version, defaultContactURL)
	cfg.Adapters = config.AdapterKeys{
		SemanticScholarAPIKey: secretDefault("semantic-scholar-api-key", ""),
		UnpaywallEmail:        secretDefault("unpaywall-email", ""),
		CrossrefMailto:        secretDefault("crossref-mailto", ""),
		OpenAlexEmail:         secretDefault("openalex-email", ""),
	}

	out, err := config.Dump(cfg)
	if err != nil {
		return exitError(2, err)
	}
	_, err = os.Stdout.Write(out)
	if err != nil {
		return exitError(2, fmt.Errorf("writing config dump: %w", err))
	}
	return nil
}
