package main

import (
	"encoding/json"
	"fmt"

	"github.com/agenthands/lineage/internal/core"
	"github.com/agenthands/lineage/internal/llm"
	"github.com/spf13/cobra"
)

var (
	treePath     string
	matchesPath  string
	asJSON       bool
	withClusters bool
	withNotes    bool
	dateStrategy string
	delimiter    string

	analyzeCmd = &cobra.Command{
		Use:   "analyze",
		Short: "Find DNA matches that share ancestors in the tree",
		RunE:  runAnalyze,
	}
)

func init() {
	analyzeCmd.Flags().StringVar(&treePath, "tree", "", "GEDCOM file")
	analyzeCmd.Flags().StringVar(&matchesPath, "matches", "", "DNA match CSV export")
	analyzeCmd.Flags().BoolVar(&asJSON, "json", false, "print the full analysis as JSON")
	analyzeCmd.Flags().BoolVar(&withClusters, "clusters", false, "group matches into clusters")
	analyzeCmd.Flags().BoolVar(&withNotes, "notes", false, "ask the configured LLM for research notes")
	analyzeCmd.Flags().StringVar(&dateStrategy, "date-strategy", "", "sequential or event (overrides config)")
	analyzeCmd.Flags().StringVar(&delimiter, "delimiter", "", "match table delimiter (overrides config)")
	_ = analyzeCmd.MarkFlagRequired("tree")
	_ = analyzeCmd.MarkFlagRequired("matches")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if dateStrategy != "" {
		cfg.Parser.DateStrategy = dateStrategy
	}
	if delimiter != "" {
		cfg.Matches.Delimiter = delimiter
	}

	var client llm.LLMClient
	if withNotes {
		c, err := llm.NewClient(ctx, cfg.LLM)
		if err != nil {
			return err
		}
		client = c
	}

	l, err := core.NewLineage(nil, nil, client, cfg)
	if err != nil {
		return err
	}

	tree, dnaMatches, err := l.LoadFiles(ctx, treePath, matchesPath)
	if err != nil {
		return err
	}

	analysis, err := l.AnalyzeTree(ctx, tree, dnaMatches, core.AnalyzeOptions{
		Clusters: withClusters,
		Notes:    withNotes,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}
	if tree.Dropped > 0 {
		fmt.Fprintf(out, "Skipped %d family references to unknown individuals\n", tree.Dropped)
	}
	renderAnalysis(out, analysis)
	return nil
}
