// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/adapters"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/bibtexio"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/config"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/dispatch"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/lookup"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/merge"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/telemetry"
)

// registerCompleteFlags binds spec.md §6's completion flags onto cmd.
func registerCompleteFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("inplace", "i", false, "write results back to each input file instead of stdout")
	cmd.Flags().StringP("output", "o", "", "output path (only valid with a single input file)")
	cmd.Flags().StringSlice("dont-query", nil, "adapter(s) to skip querying (repeatable, comma-separated)")
	cmd.Flags().StringSlice("only-query", nil, "only query these adapter(s) (repeatable, comma-separated)")
	cmd.Flags().StringSlice("dont-complete", nil, "field(s) to never fill or overwrite (repeatable, comma-separated)")
	cmd.Flags().StringSlice("only-complete", nil, "only fill or overwrite these field(s) (repeatable, comma-separated)")
	cmd.Flags().StringSlice("remove-fields", nil, "field(s) to strip from every entry after merging (repeatable)")
	cmd.Flags().BoolP("force-overwrite", "f", false, "allow candidates to overwrite fields the entry already has")
	cmd.Flags().Float64("timeout", 20, "per-entry lookup budget, in seconds")
	cmd.Flags().CountP("verbose", "v", "increase diagnostic verbosity (repeatable)")
	cmd.Flags().BoolP("quiet", "q", false, "suppress per-entry summaries; print only the final aggregate")
	cmd.Flags().Bool("no-color", false, "disable ANSI color in summary output")
	cmd.Flags().String("dump-data", "", "write a JSON dump of every lookup decision to this path")
	cmd.Flags().String("contact-email", "", "contact email sent to polite-pool APIs (Crossref, Unpaywall, OpenAlex)")
}

func runComplete(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	flags := cmd.Flags()
	inplace, _ := flags.GetBool("inplace")
	output, _ := flags.GetString("output")
	dontQuery, _ := flags.GetStringSlice("dont-query")
	onlyQuery, _ := flags.GetStringSlice("only-query")
	dontComplete, _ := flags.GetStringSlice("dont-complete")
	onlyComplete, _ := flags.GetStringSlice("only-complete")
	removeFields, _ := flags.GetStringSlice("remove-fields")
	force, _ := flags.GetBool("force-overwrite")
	timeoutSecs, _ := flags.GetFloat64("timeout")
	verbosity, _ := flags.GetCount("verbose")
	quiet, _ := flags.GetBool("quiet")
	dumpPath, _ := flags.GetString("dump-data")
	contactEmail, _ := flags.GetString("contact-email")

	if output != "" && len(args) > 1 {
		return exitError(2, fmt.Errorf("--output only valid with a single input file"))
	}
	if output != "" && inplace {
		return exitError(2, fmt.Errorf("--output and --inplace are mutually exclusive"))
	}

	cfg := config.Default(version, defaultContactURL)
	cfg.Dispatch.EntryBudget = time.Duration(timeoutSecs * float64(time.Second))
	cfg.Policy = config.Policy{
		DontQuery:    dontQuery,
		OnlyQuery:    onlyQuery,
		DontComplete: dontComplete,
		OnlyComplete: onlyComplete,
		RemoveFields: removeFields,
		Force:        force,
	}
	cfg.Adapters = config.AdapterKeys{
		SemanticScholarAPIKey: secretDefault("semantic-scholar-api-key", ""),
		UnpaywallEmail:        secretDefault("unpaywall-email", contactEmail),
		CrossrefMailto:        secretDefault("crossref-mailto", contactEmail),
		OpenAlexEmail:         secretDefault("openalex-email", contactEmail),
	}

	client := &http.Client{Timeout: cfg.HTTP.Timeout}
	runner := lookup.NewRunner(client)
	runner.UserAgent = cfg.HTTP.UserAgent

	enabledNames := cfg.Policy.EnabledAdapters(adapters.Names())
	enabled := make(map[string]bool, len(enabledNames))
	for _, n := range enabledNames {
		enabled[n] = true
	}
	var activeAdapters []lookup.Adapter
	for _, a := range adapters.All(cfg.Adapters) {
		if enabled[a.Name()] {
			activeAdapters = append(activeAdapters, a)
		}
	}

	targetFields := cfg.Policy.CompletableFields(entry.RecognizedFields())
	mergePolicy := merge.Policy{
		RemoveFields: cfg.Policy.RemoveFields,
		DontComplete: cfg.Policy.DontCompleteFields(entry.RecognizedFields()),
		Force:        cfg.Policy.Force,
	}

	disp := &dispatch.Dispatcher{
		Cfg: dispatch.Config{
			GlobalConcurrency: cfg.Dispatch.GlobalConcurrency,
			HostConcurrency:   cfg.Dispatch.HostConcurrency,
			HostInterval:      cfg.Dispatch.HostInterval,
			EntryBudget:       cfg.Dispatch.EntryBudget,
		},
		Adapters:     activeAdapters,
		Priority:     lookup.Priority(adapters.Names()),
		Runner:       runner,
		TargetFields: targetFields,
	}

	var parseFailed bool
	var dump telemetry.Dump

	for _, path := range args {
		fileDump, err := processFile(disp, mergePolicy, path, inplace, output, quiet, verbosity)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			parseFailed = true
			continue
		}
		mergeDumpInto(&dump, fileDump)
	}

	if dumpPath != "" {
		data, err := telemetry.Marshal(dump)
		if err != nil {
			return exitError(2, err)
		}
		if err := os.WriteFile(dumpPath, data, 0o644); err != nil {
			return exitError(2, fmt.Errorf("writing --dump-data: %w", err))
		}
	}

	fmt.Fprintf(os.Stderr, "entries: %d  completed: %d  matches: %d  failures: %d\n",
		dump.Summary.EntriesTotal, dump.Summary.EntriesCompleted,
		dump.Summary.MatchesTotal, dump.Summary.FailuresTotal)

	if parseFailed {
		return exitError(1, fmt.Errorf("one or more input files failed to parse"))
	}
	if dump.Summary.AttemptsTotal > 0 && dump.Summary.FailuresTotal == dump.Summary.AttemptsTotal {
		return exitError(3, fmt.Errorf("all lookups failed due to network errors"))
	}
	return nil
}

// mergeDumpInto folds src's per-file counts and entries into dst.
func mergeDumpInto(dst *telemetry.Dump, src telemetry.Dump) {
	dst.Entries = append(dst.Entries, src.Entries...)
	dst.Summary.EntriesTotal += src.Summary.EntriesTotal
	dst.Summary.EntriesCompleted += src.Summary.EntriesCompleted
	dst.Summary.AttemptsTotal += src.Summary.AttemptsTotal
	dst.Summary.MatchesTotal += src.Summary.MatchesTotal
	dst.Summary.FailuresTotal += src.Summary.FailuresTotal
}

// processFile parses path, runs the dispatcher and merger over its
// entries, writes the result to its destination, and returns a telemetry
// dump covering just this file.
func processFile(disp *dispatch.Dispatcher, policy merge.Policy, path string, inplace bool, output string, quiet bool, verbosity int) (telemetry.Dump, error) {
	f, err := os.Open(path)
	if err != nil {
		return telemetry.Dump{}, fmt.Errorf("opening input file: %w", err)
	}
	doc, err := bibtexio.Parse(f)
	f.Close()
	if err != nil {
		return telemetry.Dump{}, fmt.Errorf("parsing BibTeX: %w", err)
	}

	rawEntries := doc.Entries()
	engineEntries := make([]*entry.Entry, len(rawEntries))
	for i, be := range rawEntries {
		engineEntries[i] = bibtexio.ToEntry(be, entry.Source{File: path, Position: i + 1})
	}

	results := disp.Run(context.Background(), engineEntries)

	filledByKey := make(map[string][]string, len(results))
	for i, r := range results {
		merged := merge.Merge(engineEntries[i], r.Candidates, policy)
		filled := filledFields(engineEntries[i], merged)
		filledByKey[merged.ID] = filled
		bibtexio.ApplyMerged(rawEntries[i], merged)

		if !quiet {
			printSummary(merged.ID, filled, r.Attempts, verbosity)
		}
	}

	dest := path
	switch {
	case inplace:
		dest = path
	case output != "":
		dest = output
	default:
		if err := bibtexio.Write(os.Stdout, doc); err != nil {
			return telemetry.Dump{}, fmt.Errorf("writing output: %w", err)
		}
		return telemetry.Build(results, filledByKey), nil
	}

	out, err := os.Create(dest)
	if err != nil {
		return telemetry.Dump{}, fmt.Errorf("opening output path: %w", err)
	}
	defer out.Close()
	if err := bibtexio.Write(out, doc); err != nil {
		return telemetry.Dump{}, fmt.Errorf("writing output: %w", err)
	}
	return telemetry.Build(results, filledByKey), nil
}

// printSummary emits spec.md §6's per-entry one-line summary to stderr:
// `[key] filled: {fields}; queried: {adapter:outcome}*`. At default
// verbosity only one outcome per adapter is shown (its terminal attempt);
// -v shows every query shape attempted.
func printSummary(key string, filled []string, attempts []lookup.Attempt, verbosity int) {
	if verbosity > 0 {
		queried := make([]string, len(attempts))
		for i, a := range attempts {
			queried[i] = a.Adapter + ":" + a.Outcome.Kind.String()
		}
		fmt.Fprintf(os.Stderr, "[%s] filled: {%s}; queried: %s\n", key, strings.Join(filled, ", "), strings.Join(queried, " "))
		return
	}

	var order []string
	last := make(map[string]string)
	for _, a := range attempts {
		if _, ok := last[a.Adapter]; !ok {
			order = append(order, a.Adapter)
		}
		last[a.Adapter] = a.Outcome.Kind.String()
	}
	queried := make([]string, len(order))
	for i, adapter := range order {
		queried[i] = adapter + ":" + last[adapter]
	}
	fmt.Fprintf(os.Stderr, "[%s] filled: {%s}; queried: %s\n", key, strings.Join(filled, ", "), strings.Join(queried, " "))
}

func filledFields(original, merged *entry.Entry) []string {
	var filled []string
	for _, name := range merged.FieldNames() {
		if !original.Present(name) && merged.Present(name) {
			filled = append(filled, name)
		}
	}
	return filled
}
