// Package resolve matches free-text names against the individuals of a tree.
package resolve

import (
	"regexp"
	"strings"

	"github.com/agenthands/lineage/internal/core/model"
)

var nonWord = regexp.MustCompile(`[^\w\s]`)

// Normalize lowercases s and removes every character that is neither a
// word character nor whitespace, so "Mary O'Brien" becomes "mary obrien".
func Normalize(s string) string {
	return nonWord.ReplaceAllString(strings.ToLower(s), "")
}

// FindPerson returns the first individual, in tree order, whose normalized
// name contains the normalized query or is contained by it. Only an empty
// query is rejected outright. An individual without a name normalizes to the
// empty string, which every query contains, so it matches anything it is
// reached before.
func FindPerson(query string, tree *model.FamilyTree) (*model.Individual, bool) {
	if query == "" {
		return nil, false
	}
	q := Normalize(query)
	for _, p := range tree.People() {
		if matches(q, p) {
			return p, true
		}
	}
	return nil, false
}

// Candidates returns every individual FindPerson would accept, in tree
// order. FindPerson's answer is always the first element.
func Candidates(query string, tree *model.FamilyTree) []*model.Individual {
	if query == "" {
		return nil
	}
	q := Normalize(query)
	var out []*model.Individual
	for _, p := range tree.People() {
		if matches(q, p) {
			out = append(out, p)
		}
	}
	return out
}

func matches(query string, p *model.Individual) bool {
	name := Normalize(p.Name)
	return strings.Contains(name, query) || strings.Contains(query, name)
}
