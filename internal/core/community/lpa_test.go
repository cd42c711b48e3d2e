package community

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLPA_DisconnectedComponents(t *testing.T) {
	// Graph: [1-2-3-1] ... [4-5-6-4], completely disconnected.
	nodes := []string{"1", "2", "3", "4", "5", "6"}
	edges := []Edge{
		{Source: "1", Target: "2"}, {Source: "2", Target: "3"}, {Source: "3", Target: "1"},
		{Source: "4", Target: "5"}, {Source: "5", Target: "6"}, {Source: "6", Target: "4"},
	}

	communities, err := NewLabelPropagationDetector().Detect(nodes, edges)
	assert.NoError(t, err)

	require.Len(t, communities, 2)
	for _, c := range communities {
		assert.Len(t, c, 3)
	}
}

func TestLPA_BridgeNode(t *testing.T) {
	// Two triangles joined by the single edge 3-4. Nodes 3 and 4 each have
	// two neighbours inside their triangle and one across, so they stay put.
	nodes := []string{"1", "2", "3", "4", "5", "6"}
	edges := []Edge{
		{Source: "1", Target: "2"}, {Source: "2", Target: "3"}, {Source: "3", Target: "1"},
		{Source: "3", Target: "4"},
		{Source: "4", Target: "5"}, {Source: "5", Target: "6"}, {Source: "6", Target: "4"},
	}

	communities, err := NewLabelPropagationDetector().Detect(nodes, edges)
	assert.NoError(t, err)

	require.Len(t, communities, 2)
	assert.ElementsMatch(t, []string{"1", "2", "3"}, communities[0])
	assert.ElementsMatch(t, []string{"4", "5", "6"}, communities[1])
}

func TestLPA_LargeClique(t *testing.T) {
	nodes := []string{"1", "2", "3", "4", "5"}
	var edges []Edge
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			edges = append(edges, Edge{Source: nodes[i], Target: nodes[j], Weight: 1})
		}
	}

	communities, err := NewLabelPropagationDetector().Detect(nodes, edges)
	assert.NoError(t, err)

	require.Len(t, communities, 1)
	assert.Len(t, communities[0], 5)
}

func TestLPA_Empty(t *testing.T) {
	communities, err := NewLabelPropagationDetector().Detect(nil, nil)
	assert.NoError(t, err)
	assert.Empty(t, communities)
}
