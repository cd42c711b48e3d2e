package community

import (
	"sort"
)

// LabelPropagationDetector implements community detection using Label Propagation Algorithm (LPA).
// Edge weights are the shared ancestor counts, so matches sharing a whole
// grandparent couple pull harder than matches sharing one distant ancestor.
type LabelPropagationDetector struct {
	MaxIterations int
}

func NewLabelPropagationDetector() *LabelPropagationDetector {
	return &LabelPropagationDetector{
		MaxIterations: 20,
	}
}

func (d *LabelPropagationDetector) Detect(nodes []string, edges []Edge) ([][]string, error) {
	if len(nodes) == 0 {
		return nil, nil
	}

	adj := make(map[string]map[string]int) // node -> neighbor -> weight
	for _, n := range nodes {
		adj[n] = make(map[string]int)
	}

	for _, e := range edges {
		if _, ok := adj[e.Source]; !ok {
			continue
		}
		if _, ok := adj[e.Target]; !ok {
			continue
		}
		w := e.Weight
		if w <= 0 {
			w = 1
		}
		adj[e.Source][e.Target] += w
		adj[e.Target][e.Source] += w
	}

	// Each node starts with its own label.
	labels := make(map[string]string, len(nodes))
	for _, n := range nodes {
		labels[n] = n
	}

	for iter := 0; iter < d.MaxIterations; iter++ {
		changeCount := 0

		for _, u := range nodes {
			neighbors := adj[u]
			if len(neighbors) == 0 {
				continue
			}

			labelCounts := make(map[string]int)
			maxCount := 0
			for v, weight := range neighbors {
				label := labels[v]
				labelCounts[label] += weight
				if labelCounts[label] > maxCount {
					maxCount = labelCounts[label]
				}
			}

			var candidates []string
			for label, count := range labelCounts {
				if count == maxCount {
					candidates = append(candidates, label)
				}
			}

			// Ties go to the lexicographically largest label so runs are
			// reproducible.
			sort.Strings(candidates)
			bestLabel := candidates[len(candidates)-1]

			if labels[u] != bestLabel {
				labels[u] = bestLabel
				changeCount++
			}
		}

		if changeCount == 0 {
			break
		}
	}

	clusters := make(map[string][]string)
	var order []string
	for _, n := range nodes {
		label := labels[n]
		if _, ok := clusters[label]; !ok {
			order = append(order, label)
		}
		clusters[label] = append(clusters[label], n)
	}

	var communities [][]string
	for _, label := range order {
		if len(clusters[label]) >= 2 {
			communities = append(communities, clusters[label])
		}
	}
	return communities, nil
}
