// Package community groups DNA matches into clusters that descend from the
// same branch of a tree. Matches are nodes; every connection between two
// matches is an edge weighted by the number of ancestors they share.
package community

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agenthands/lineage/internal/core/ancestry"
	"github.com/agenthands/lineage/internal/core/model"
)

type Edge struct {
	Source string
	Target string
	Weight int
}

type CommunityDetector interface {
	Detect(nodes []string, edges []Edge) ([][]string, error)
}

// NewDetector returns the detector configured by name: "components" or
// "lpa" (label propagation, the default).
func NewDetector(name string, maxIterations int) (CommunityDetector, error) {
	switch strings.ToLower(name) {
	case "", "lpa":
		d := NewLabelPropagationDetector()
		if maxIterations > 0 {
			d.MaxIterations = maxIterations
		}
		return d, nil
	case "components":
		return NewComponentDetector(), nil
	default:
		return nil, fmt.Errorf("unknown clustering algorithm: %s", name)
	}
}

// ComponentDetector reports connected components. Every match linked by any
// chain of shared ancestry lands in the same cluster.
type ComponentDetector struct{}

func NewComponentDetector() *ComponentDetector {
	return &ComponentDetector{}
}

func (d *ComponentDetector) Detect(nodes []string, edges []Edge) ([][]string, error) {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n] = true
	}

	adj := make(map[string][]string)
	for _, e := range edges {
		// Only edges between listed nodes count.
		if !known[e.Source] || !known[e.Target] {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}

	visited := make(map[string]bool)
	var communities [][]string
	for _, n := range nodes {
		if visited[n] {
			continue
		}
		component := d.walk(n, adj, visited)
		// A single match is not a cluster.
		if len(component) >= 2 {
			communities = append(communities, component)
		}
	}
	return communities, nil
}

func (d *ComponentDetector) walk(start string, adj map[string][]string, visited map[string]bool) []string {
	var component []string
	stack := []string{start}
	visited[start] = true
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		component = append(component, u)
		for _, v := range adj[u] {
			if !visited[v] {
				visited[v] = true
				stack = append(stack, v)
			}
		}
	}
	return component
}

// node identifies one match row inside the cluster graph. Two rows never
// share a node, even when they carry the same name or resolve to the same
// individual.
func node(index int, personID string, m model.DnaMatch) string {
	return fmt.Sprintf("%d|%s|%s", index, personID, m.DisplayName())
}

// memberName is how a match is listed among cluster members.
func memberName(m model.DnaMatch, personID string) string {
	if name := m.DisplayName(); name != "" {
		return name
	}
	return personID
}

// Clusters runs detector over the connections of result and returns the
// clusters largest first, each with the ancestors shared inside it.
func Clusters(result *model.CorrelationResult, detector CommunityDetector) ([]model.Cluster, error) {
	if result == nil || len(result.Connections) == 0 {
		return []model.Cluster{}, nil
	}

	var nodes []string
	labels := make(map[string]string)
	addNode := func(k, l string) {
		if _, ok := labels[k]; !ok {
			labels[k] = l
			nodes = append(nodes, k)
		}
	}

	edges := make([]Edge, 0, len(result.Connections))
	shared := make(map[[2]string][]*model.Individual)
	for _, c := range result.Connections {
		a := node(c.Match1Index, c.Person1ID, c.Match1)
		b := node(c.Match2Index, c.Person2ID, c.Match2)
		addNode(a, memberName(c.Match1, c.Person1ID))
		addNode(b, memberName(c.Match2, c.Person2ID))
		edges = append(edges, Edge{Source: a, Target: b, Weight: len(c.CommonAncestors)})
		shared[[2]string{a, b}] = c.CommonAncestors
	}

	groups, err := detector.Detect(nodes, edges)
	if err != nil {
		return nil, fmt.Errorf("cluster detection failed: %w", err)
	}

	clusters := make([]model.Cluster, 0, len(groups))
	for _, group := range groups {
		in := make(map[string]bool, len(group))
		members := make([]string, 0, len(group))
		for _, k := range group {
			in[k] = true
			members = append(members, labels[k])
		}
		slices.Sort(members)

		var common []*model.Individual
		ancSeen := make(map[string]bool)
		for pair, people := range shared {
			if !in[pair[0]] || !in[pair[1]] {
				continue
			}
			for _, anc := range people {
				if !ancSeen[anc.ID] {
					ancSeen[anc.ID] = true
					common = append(common, anc)
				}
			}
		}
		clusters = append(clusters, model.Cluster{Members: members, Ancestors: ancestry.IDs(common)})
	}

	slices.SortFunc(clusters, func(x, y model.Cluster) int {
		if len(x.Members) != len(y.Members) {
			return len(y.Members) - len(x.Members)
		}
		return strings.Compare(x.Members[0], y.Members[0])
	})
	return clusters, nil
}
