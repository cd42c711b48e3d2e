package main

import (
	"fmt"
	"os"

	"github.com/agenthands/lineage/internal/core/ancestry"
	"github.com/agenthands/lineage/internal/gedcom"
	"github.com/spf13/cobra"
)

var ancestorsCmd = &cobra.Command{
	Use:   "ancestors <person-id>",
	Short: "List a person and every ancestor in the tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runAncestors,
}

func init() {
	ancestorsCmd.Flags().StringVar(&treePath, "tree", "", "GEDCOM file")
	_ = ancestorsCmd.MarkFlagRequired("tree")
}

func runAncestors(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(treePath)
	if err != nil {
		return fmt.Errorf("failed to read family tree: %w", err)
	}

	dates, err := gedcom.StrategyByName(cfg.Parser.DateStrategy)
	if err != nil {
		return err
	}
	tree, err := gedcom.NewParser(gedcom.Options{MaxRecords: cfg.Parser.MaxRecords, Dates: dates}).Parse(string(data))
	if err != nil {
		return err
	}

	personID := args[0]
	if _, ok := tree.Get(personID); !ok {
		return fmt.Errorf("no individual %s in %s", personID, treePath)
	}

	renderAncestors(cmd.OutOrStdout(), ancestry.GetAncestors(personID, tree), ancestry.Depths(personID, tree))
	return nil
}
