package summary

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/agenthands/lineage/internal/config"
	"github.com/agenthands/lineage/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func match(name string) model.DnaMatch {
	return model.DnaMatch{Fields: map[string]string{"name": name}, NormalizedName: name}
}

func connection(a, b string, ancestors ...string) model.Connection {
	c := model.Connection{Match1: match(a), Match2: match(b)}
	for i, name := range ancestors {
		p := model.NewIndividual(fmt.Sprintf("@A%d@", i))
		p.Name = name
		c.CommonAncestors = append(c.CommonAncestors, p)
	}
	return c
}

func TestNoteForConnection(t *testing.T) {
	ctx := context.Background()
	conn := connection("Ann Lee", "Bea Lee", "John Smith", "Mary Jones")
	conn.CommonAncestors[0].BirthDate = "1900"

	t.Run("json reply", func(t *testing.T) {
		mockLLM := &MockLLMClient{Response: "```json\n{\"note\": \"Check the 1911 census.\"}\n```"}
		s := NewSummarizer(mockLLM, config.PromptsConfig{})

		note, err := s.NoteForConnection(ctx, conn)
		require.NoError(t, err)
		assert.Equal(t, "Check the 1911 census.", note)

		require.Len(t, mockLLM.Prompts, 1)
		assert.Contains(t, mockLLM.Prompts[0], "Ann Lee and Bea Lee")
		assert.Contains(t, mockLLM.Prompts[0], "- John Smith (1900 - )")
		assert.Contains(t, mockLLM.Prompts[0], "- Mary Jones\n")
	})

	t.Run("plain text reply", func(t *testing.T) {
		mockLLM := &MockLLMClient{Response: "  Look for a marriage record.  "}
		s := NewSummarizer(mockLLM, config.PromptsConfig{ConnectionNote: "%s|%s|%s"})

		note, err := s.NoteForConnection(ctx, conn)
		require.NoError(t, err)
		assert.Equal(t, "Look for a marriage record.", note)
		assert.Equal(t, "Ann Lee|Bea Lee|- John Smith (1900 - )\n- Mary Jones\n", mockLLM.Prompts[0])
	})

	t.Run("llm error", func(t *testing.T) {
		s := NewSummarizer(&MockLLMClient{Err: errors.New("timeout")}, config.PromptsConfig{})
		_, err := s.NoteForConnection(ctx, conn)
		assert.ErrorContains(t, err, "timeout")
	})
}

func TestNotesForResult(t *testing.T) {
	ctx := context.Background()
	result := model.NewCorrelationResult()
	result.Connections = []model.Connection{
		connection("A", "B", "G1"),
		connection("A", "C", "G1"),
		connection("B", "C", "G2"),
	}

	t.Run("all connections", func(t *testing.T) {
		mockLLM := &MockLLMClient{Responses: []string{`{"note":"one"}`, `{"note":"two"}`, `{"note":"three"}`}}
		s := NewSummarizer(mockLLM, config.PromptsConfig{})

		notes, err := s.NotesForResult(ctx, result, 0)
		require.NoError(t, err)
		assert.Equal(t, []model.ConnectionNote{
			{Match1: "A", Match2: "B", Note: "one"},
			{Match1: "A", Match2: "C", Note: "two"},
			{Match1: "B", Match2: "C", Note: "three"},
		}, notes)
	})

	t.Run("limit uses ranking", func(t *testing.T) {
		mockLLM := &MockLLMClient{Response: `{"note":"n"}`}
		s := NewSummarizer(mockLLM, config.PromptsConfig{})
		s.Ranker = &MockRanker{Order: []int{2, 0, 1}}

		notes, err := s.NotesForResult(ctx, result, 2)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, "B", notes[0].Match1)
		assert.Equal(t, "C", notes[0].Match2)
		assert.Equal(t, "A", notes[1].Match1)
		assert.Equal(t, "B", notes[1].Match2)
	})

	t.Run("every note fails", func(t *testing.T) {
		s := NewSummarizer(&MockLLMClient{Err: errors.New("down")}, config.PromptsConfig{})
		notes, err := s.NotesForResult(ctx, result, 0)
		assert.Error(t, err)
		assert.Empty(t, notes)
	})

	t.Run("nothing to annotate", func(t *testing.T) {
		s := NewSummarizer(&MockLLMClient{}, config.PromptsConfig{})
		notes, err := s.NotesForResult(ctx, model.NewCorrelationResult(), 0)
		require.NoError(t, err)
		assert.Empty(t, notes)
	})
}

func TestSummarizeCluster(t *testing.T) {
	ctx := context.Background()
	tree := model.NewFamilyTree()
	g1 := model.NewIndividual("@G1@")
	g1.Name = "John Smith"
	tree.Individuals[g1.ID] = g1
	tree.Order = append(tree.Order, g1.ID)

	t.Run("small cluster", func(t *testing.T) {
		mockLLM := &MockLLMClient{Response: `{"summary":"The Smith line."}`}
		s := NewSummarizer(mockLLM, config.PromptsConfig{})

		got, err := s.SummarizeCluster(ctx, model.Cluster{
			Members:   []string{"Ann", "Bea"},
			Ancestors: []string{"@G1@", "@G9@"},
		}, tree)
		require.NoError(t, err)
		assert.Equal(t, "The Smith line.", got)
		require.Len(t, mockLLM.Prompts, 1)
		assert.Contains(t, mockLLM.Prompts[0], "- match: Ann\n- match: Bea\n- shared ancestors: John Smith, @G9@")
	})

	t.Run("large cluster is reduced in chunks", func(t *testing.T) {
		mockLLM := &MockLLMClient{Response: `{"summary":"partial"}`}
		s := NewSummarizer(mockLLM, config.PromptsConfig{})

		members := make([]string, 45)
		for i := range members {
			members[i] = fmt.Sprintf("M%02d", i)
		}
		got, err := s.SummarizeCluster(ctx, model.Cluster{Members: members}, tree)
		require.NoError(t, err)
		assert.Equal(t, "partial", got)
		// 45 lines: three chunks plus one reduce over the partials.
		assert.Len(t, mockLLM.Prompts, 4)
		assert.Contains(t, mockLLM.Prompts[3], "- part 3: partial")
	})
}
