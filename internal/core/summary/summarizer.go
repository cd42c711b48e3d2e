package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/lineage/internal/config"
	"github.com/agenthands/lineage/internal/core/common"
	"github.com/agenthands/lineage/internal/core/model"
	"github.com/agenthands/lineage/internal/llm"
	"github.com/rs/zerolog/log"
)

// DefaultConnectionNotePrompt receives the two match names and the list of
// shared ancestors.
const DefaultConnectionNotePrompt = `You are assisting a genetic genealogist.
Two DNA matches, %s and %s, both descend from these ancestors in the family tree:
%s
Write one or two sentences suggesting what records to research to confirm the relationship.
Respond as JSON: {"note": "..."}`

// DefaultClusterPrompt receives one line per member or partial summary.
const DefaultClusterPrompt = `You are assisting a genetic genealogist.
The following DNA matches form one cluster in the family tree:
%s
Summarize in one or two sentences which ancestral line the cluster most likely points to.
Respond as JSON: {"summary": "..."}`

const (
	clusterChunkSize = 20
	rankingGoal      = "connections most likely to confirm an unknown relationship"
)

type noteReply struct {
	Note string `json:"note"`
}

type summaryReply struct {
	Summary string `json:"summary"`
}

type Summarizer struct {
	LLM     llm.LLMClient
	Ranker  llm.RankerClient
	Prompts config.PromptsConfig
}

func NewSummarizer(llmClient llm.LLMClient, prompts config.PromptsConfig) *Summarizer {
	return &Summarizer{
		LLM:     llmClient,
		Ranker:  llm.NewSimpleLLMRanker(llmClient),
		Prompts: prompts,
	}
}

func (s *Summarizer) connectionPrompt() string {
	if s.Prompts.ConnectionNote != "" {
		return s.Prompts.ConnectionNote
	}
	return DefaultConnectionNotePrompt
}

func (s *Summarizer) clusterPrompt() string {
	if s.Prompts.ClusterSummary != "" {
		return s.Prompts.ClusterSummary
	}
	return DefaultClusterPrompt
}

// NoteForConnection asks the LLM for a research note about conn. A reply
// that is not the expected JSON is returned verbatim.
func (s *Summarizer) NoteForConnection(ctx context.Context, conn model.Connection) (string, error) {
	var ancestors strings.Builder
	for _, a := range conn.CommonAncestors {
		fmt.Fprintf(&ancestors, "- %s", a.Name)
		if a.BirthDate != "" || a.DeathDate != "" {
			fmt.Fprintf(&ancestors, " (%s - %s)", a.BirthDate, a.DeathDate)
		}
		ancestors.WriteString("\n")
	}

	prompt := fmt.Sprintf(s.connectionPrompt(), conn.Match1.DisplayName(), conn.Match2.DisplayName(), ancestors.String())

	response, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate connection note: %w", err)
	}

	reply, err := common.ParseJSON[noteReply](response)
	if err == nil && reply.Note != "" {
		return reply.Note, nil
	}
	return strings.TrimSpace(response), nil
}

// NotesForResult writes notes for up to limit connections (all when limit
// is zero). When the result holds more connections than the limit, the
// ranker picks which ones get a note. Connections whose note fails are
// skipped.
func (s *Summarizer) NotesForResult(ctx context.Context, result *model.CorrelationResult, limit int) ([]model.ConnectionNote, error) {
	if result == nil || len(result.Connections) == 0 {
		return []model.ConnectionNote{}, nil
	}

	order := make([]int, len(result.Connections))
	for i := range order {
		order[i] = i
	}
	if limit > 0 && len(order) > limit {
		if s.Ranker != nil {
			docs := make([]string, len(result.Connections))
			for i, c := range result.Connections {
				docs[i] = describe(c)
			}
			ranked, err := s.Ranker.Rank(ctx, rankingGoal, docs)
			if err == nil && len(ranked) == len(order) {
				order = ranked
			}
		}
		order = order[:limit]
	}

	notes := make([]model.ConnectionNote, 0, len(order))
	var lastErr error
	for _, i := range order {
		if err := ctx.Err(); err != nil {
			return notes, err
		}
		conn := result.Connections[i]
		note, err := s.NoteForConnection(ctx, conn)
		if err != nil {
			log.Warn().Err(err).Str("component", "summary").
				Str("match1", conn.Match1.DisplayName()).
				Str("match2", conn.Match2.DisplayName()).
				Msg("skipping connection note")
			lastErr = err
			continue
		}
		notes = append(notes, model.ConnectionNote{
			Match1: conn.Match1.DisplayName(),
			Match2: conn.Match2.DisplayName(),
			Note:   note,
		})
	}

	if len(notes) == 0 && lastErr != nil {
		return notes, lastErr
	}
	return notes, nil
}

// SummarizeCluster summarizes one cluster. Large clusters are summarized in
// chunks and the partial summaries are reduced recursively.
func (s *Summarizer) SummarizeCluster(ctx context.Context, cluster model.Cluster, tree *model.FamilyTree) (string, error) {
	lines := make([]string, 0, len(cluster.Members)+1)
	for _, m := range cluster.Members {
		lines = append(lines, "- match: "+m)
	}
	if len(cluster.Ancestors) > 0 {
		names := make([]string, 0, len(cluster.Ancestors))
		for _, id := range cluster.Ancestors {
			if p, ok := tree.Get(id); ok && p.Name != "" {
				names = append(names, p.Name)
			} else {
				names = append(names, id)
			}
		}
		lines = append(lines, "- shared ancestors: "+strings.Join(names, ", "))
	}
	return s.reduce(ctx, lines)
}

func (s *Summarizer) reduce(ctx context.Context, lines []string) (string, error) {
	if len(lines) <= clusterChunkSize {
		prompt := fmt.Sprintf(s.clusterPrompt(), strings.Join(lines, "\n"))
		response, err := s.LLM.Generate(ctx, prompt)
		if err != nil {
			return "", fmt.Errorf("failed to generate cluster summary: %w", err)
		}
		reply, err := common.ParseJSON[summaryReply](response)
		if err == nil && reply.Summary != "" {
			return reply.Summary, nil
		}
		return strings.TrimSpace(response), nil
	}

	var partials []string
	for i := 0; i < len(lines); i += clusterChunkSize {
		end := min(i+clusterChunkSize, len(lines))
		partial, err := s.reduce(ctx, lines[i:end])
		if err != nil {
			return "", err
		}
		partials = append(partials, fmt.Sprintf("- part %d: %s", len(partials)+1, partial))
	}
	return s.reduce(ctx, partials)
}

func describe(c model.Connection) string {
	names := make([]string, len(c.CommonAncestors))
	for i, a := range c.CommonAncestors {
		names[i] = a.Name
	}
	return fmt.Sprintf("%s and %s share %d ancestors: %s",
		c.Match1.DisplayName(), c.Match2.DisplayName(), len(c.CommonAncestors), strings.Join(names, ", "))
}
