package core

import (
	"context"
	"fmt"
	"os"

	"github.com/agenthands/lineage/internal/core/model"
	"golang.org/x/sync/errgroup"
)

// LoadFiles reads and parses a GEDCOM file and a match table concurrently.
func (l *Lineage) LoadFiles(ctx context.Context, treePath, matchesPath string) (*model.FamilyTree, []model.DnaMatch, error) {
	var (
		tree       *model.FamilyTree
		dnaMatches []model.DnaMatch
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := os.ReadFile(treePath)
		if err != nil {
			return fmt.Errorf("failed to read family tree: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		tree, err = l.parseTree(string(data))
		return err
	})
	g.Go(func() error {
		data, err := os.ReadFile(matchesPath)
		if err != nil {
			return fmt.Errorf("failed to read DNA matches: %w", err)
		}
		dnaMatches = l.parseMatches(string(data))
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return tree, dnaMatches, nil
}
