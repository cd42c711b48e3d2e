package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/agenthands/lineage/internal/core"
	"github.com/agenthands/lineage/internal/core/model"
)

func renderAnalysis(w io.Writer, a *core.Analysis) {
	r := a.Report
	fmt.Fprintf(w, "Loaded %d individuals from the family tree\n", r.IndividualCount)
	for _, p := range r.IndividualPreview {
		fmt.Fprintf(w, "  - %s\n", describePerson(p))
	}
	fmt.Fprintf(w, "Loaded %d DNA matches\n", r.MatchCount)
	for _, m := range r.PreviewMatches {
		fmt.Fprintf(w, "  - %s\n", displayName(m))
	}
	if r.RemainingMatches > 0 {
		fmt.Fprintf(w, "  ... and %d more\n", r.RemainingMatches)
	}

	fmt.Fprintf(w, "\nFound %d connections between matches\n", r.ConnectionCount)
	for _, c := range a.Result.Connections {
		fmt.Fprintf(w, "  %s <-> %s\n", displayName(c.Match1), displayName(c.Match2))
		for _, anc := range c.CommonAncestors {
			fmt.Fprintf(w, "      %s\n", describePerson(anc))
		}
	}

	if len(a.Clusters) > 0 {
		fmt.Fprintf(w, "\nClusters\n")
		for i, cl := range a.Clusters {
			fmt.Fprintf(w, "  %d. %s\n", i+1, strings.Join(cl.Members, ", "))
		}
	}

	if len(a.Notes) > 0 {
		fmt.Fprintf(w, "\nResearch notes\n")
		for _, n := range a.Notes {
			fmt.Fprintf(w, "  %s <-> %s: %s\n", n.Match1, n.Match2, n.Note)
		}
	}
	for _, s := range a.ClusterSummaries {
		fmt.Fprintf(w, "  [%s] %s\n", strings.Join(s.Members, ", "), s.Summary)
	}

	fmt.Fprintf(w, "\n%d DNA matches not found in the tree\n", r.UnmatchedCount)
	for _, name := range a.Result.UnmatchedNames {
		if name == "" {
			name = "(no name)"
		}
		fmt.Fprintf(w, "  - %s\n", name)
	}
}

func renderAncestors(w io.Writer, people []*model.Individual, depths map[string]int) {
	for _, p := range people {
		fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depths[p.ID]), describePerson(p))
	}
}

func describePerson(p *model.Individual) string {
	name := p.Name
	if name == "" {
		name = "(unnamed)"
	}
	s := fmt.Sprintf("%s %s", p.ID, name)
	if p.BirthDate != "" || p.DeathDate != "" {
		s += fmt.Sprintf(" (%s - %s)", p.BirthDate, p.DeathDate)
	}
	return s
}

func displayName(m model.DnaMatch) string {
	if name := m.DisplayName(); name != "" {
		return name
	}
	return "(no name)"
}
