// Package ancestry walks the parent edges of a family tree.
//
// Traversals use an explicit stack and a visited set shared by the whole
// walk, so they terminate on cyclic pedigrees and cannot exhaust the
// goroutine stack on deep ones. An ancestor reachable along two lines is
// reported once, under the line that reached it first.
package ancestry

import (
	"slices"

	"github.com/agenthands/lineage/internal/core/model"
)

// GetAncestors returns personID and all of its ancestors in depth-first
// pre-order: a person, then the full line of its first parent, then the
// second. Parent IDs missing from the tree are skipped. An unknown start
// or a nil tree yields an empty slice.
func GetAncestors(personID string, tree *model.FamilyTree) []*model.Individual {
	out := []*model.Individual{}
	if _, ok := tree.Get(personID); !ok {
		return out
	}

	visited := make(map[string]bool)
	stack := []string{personID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true

		p, ok := tree.Get(id)
		if !ok {
			continue
		}
		out = append(out, p)

		// Push in reverse so the first parent is popped first.
		for i := len(p.Parents) - 1; i >= 0; i-- {
			if !visited[p.Parents[i]] {
				stack = append(stack, p.Parents[i])
			}
		}
	}
	return out
}

// CommonAncestors returns the ancestors of idA that are also ancestors of
// idB, in the order GetAncestors(idA) produced them. Both walks use their
// own visited set. Every person counts as its own ancestor, so if one is
// an ancestor of the other it appears in the result.
func CommonAncestors(idA, idB string, tree *model.FamilyTree) []*model.Individual {
	out := []*model.Individual{}

	inB := make(map[string]bool)
	for _, p := range GetAncestors(idB, tree) {
		inB[p.ID] = true
	}
	if len(inB) == 0 {
		return out
	}

	seen := make(map[string]bool)
	for _, p := range GetAncestors(idA, tree) {
		if inB[p.ID] && !seen[p.ID] {
			seen[p.ID] = true
			out = append(out, p)
		}
	}
	return out
}

// Depths maps personID and each of its ancestors to the fewest generations
// separating them (0 for the person). Unlike GetAncestors it explores every
// line, breadth-first, so converging lines report their shortest distance.
func Depths(personID string, tree *model.FamilyTree) map[string]int {
	depths := make(map[string]int)
	if _, ok := tree.Get(personID); !ok {
		return depths
	}

	depths[personID] = 0
	queue := []string{personID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		p, ok := tree.Get(id)
		if !ok {
			continue
		}
		for _, parent := range p.Parents {
			if _, seen := depths[parent]; seen {
				continue
			}
			if _, ok := tree.Get(parent); !ok {
				continue
			}
			depths[parent] = depths[id] + 1
			queue = append(queue, parent)
		}
	}
	return depths
}

// IDs returns the identifiers of people, sorted, for listings that must not
// depend on traversal order.
func IDs(people []*model.Individual) []string {
	ids := make([]string, 0, len(people))
	for _, p := range people {
		ids = append(ids, p.ID)
	}
	slices.Sort(ids)
	return ids
}
