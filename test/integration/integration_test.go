//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/lineage/internal/config"
	"github.com/agenthands/lineage/internal/core"
	"github.com/agenthands/lineage/internal/driver"
	"github.com/agenthands/lineage/internal/llm"
	"github.com/agenthands/lineage/internal/store"
)

const familyGEDCOM = `0 @G1@ INDI
1 NAME John /Smith/
1 BIRT
2 DATE 1850
0 @G2@ INDI
1 NAME Mary /Jones/
0 @P1@ INDI
1 NAME Robert /Smith/
0 @P2@ INDI
1 NAME Alice /Smith/
0 @F1@ FAM
1 HUSB @G1@
1 WIFE @G2@
1 CHIL @P1@
1 CHIL @P2@
0 TRLR
`

const matchTable = "Name,Shared cM\nRobert Smith,1700\nAlice Smith,1650\n"

func newLineage(t *testing.T, graph driver.GraphDriver, client llm.LLMClient) (*core.Lineage, string) {
	t.Helper()
	ctx := context.Background()

	st, err := store.Open(store.InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	l, err := core.NewLineage(st, graph, client, config.Default())
	require.NoError(t, err)

	id := "it-" + uuid.New().String()
	l.UUIDGenerator = func() string { return id }

	_, err = l.CreateSession(ctx)
	require.NoError(t, err)
	_, err = l.SetTree(ctx, id, familyGEDCOM)
	require.NoError(t, err)
	_, err = l.SetMatches(ctx, id, matchTable)
	require.NoError(t, err)
	return l, id
}

func TestGraphExport(t *testing.T) {
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}
	ctx := context.Background()

	d, err := driver.NewMemgraphDriver(ctx, uri, os.Getenv("MEMGRAPH_USER"), os.Getenv("MEMGRAPH_PASSWORD"))
	require.NoError(t, err)
	defer d.Close(ctx)
	require.NoError(t, d.BuildIndices(ctx))

	l, id := newLineage(t, d, nil)
	defer l.DeleteSession(ctx, id)

	n, err := l.ExportTree(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	people, err := l.GraphAncestors(ctx, id, "P1")
	require.NoError(t, err)
	var ids []string
	for _, p := range people {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"P1", "G1", "G2"}, ids)

	// Exporting twice replaces the earlier copy.
	_, err = l.ExportTree(ctx, id)
	require.NoError(t, err)
	people, err = l.GraphAncestors(ctx, id, "P1")
	require.NoError(t, err)
	assert.Len(t, people, 3)
}

func TestResearchNotes(t *testing.T) {
	_ = godotenv.Load("../../.env")

	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		t.Skip("Skipping integration test: LLM_PROVIDER not set")
	}
	ctx := context.Background()

	client, err := llm.NewClient(ctx, config.LLMConfig{
		Provider: provider,
		Model:    os.Getenv("LLM_MODEL"),
		APIKey:   os.Getenv("LLM_API_KEY"),
		BaseURL:  os.Getenv("LLM_BASE_URL"),
	})
	require.NoError(t, err)

	l, id := newLineage(t, nil, client)

	analysis, err := l.Analyze(ctx, id, core.AnalyzeOptions{Notes: true, Clusters: true})
	require.NoError(t, err)
	require.Len(t, analysis.Notes, 1)
	assert.NotEmpty(t, analysis.Notes[0].Note)
	t.Logf("note: %s", analysis.Notes[0].Note)
}
