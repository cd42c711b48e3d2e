// Package correlate finds DNA matches that share ancestors in a family tree.
package correlate

import (
	"github.com/agenthands/lineage/internal/core/ancestry"
	"github.com/agenthands/lineage/internal/core/model"
	"github.com/agenthands/lineage/internal/core/resolve"
)

// resolved pairs a DNA match with the individual its name resolved to.
type resolved struct {
	match  model.DnaMatch
	row    int
	person *model.Individual
}

// Analyze resolves every match against tree, then compares each unordered
// pair of resolved matches. Pairs with at least one common ancestor become
// connections. A nil tree or an empty match list yields an empty result.
//
// The pairwise pass is quadratic in the number of resolved matches, which
// is fine for match lists of a few hundred rows.
func Analyze(tree *model.FamilyTree, matches []model.DnaMatch) *model.CorrelationResult {
	result := model.NewCorrelationResult()
	if tree == nil || len(matches) == 0 {
		return result
	}

	var found []resolved
	for row, m := range matches {
		name := m.DisplayName()
		if p, ok := resolve.FindPerson(name, tree); ok {
			found = append(found, resolved{match: m, row: row, person: p})
		} else {
			result.UnmatchedNames = append(result.UnmatchedNames, name)
		}
	}

	seen := make(map[string]bool)
	for i := 0; i < len(found); i++ {
		for j := i + 1; j < len(found); j++ {
			a, b := found[i], found[j]
			common := ancestry.CommonAncestors(a.person.ID, b.person.ID, tree)
			if len(common) == 0 {
				continue
			}
			result.Connections = append(result.Connections, model.Connection{
				Match1:          a.match,
				Match2:          b.match,
				Match1Index:     a.row,
				Match2Index:     b.row,
				Person1ID:       a.person.ID,
				Person2ID:       b.person.ID,
				CommonAncestors: common,
			})
			for _, anc := range common {
				if !seen[anc.ID] {
					seen[anc.ID] = true
					result.CommonAncestors = append(result.CommonAncestors, anc)
				}
			}
		}
	}
	return result
}
