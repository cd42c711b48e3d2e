package llm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxRankedDocLen is counted in runes.
const maxRankedDocLen = 200

var indexPattern = regexp.MustCompile(`\d+`)

// SimpleLLMRanker asks an LLM to order documents. Any failure falls back to
// the input order, and the result is always a permutation of the inputs.
type SimpleLLMRanker struct {
	LLM LLMClient
}

func NewSimpleLLMRanker(client LLMClient) *SimpleLLMRanker {
	return &SimpleLLMRanker{LLM: client}
}

func (r *SimpleLLMRanker) Rank(ctx context.Context, query string, docs []string) ([]int, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	if len(docs) == 1 {
		return []int{0}, nil
	}

	var docList strings.Builder
	for i, d := range docs {
		fmt.Fprintf(&docList, "[%d] %s\n", i, truncate(d, maxRankedDocLen))
	}

	prompt := fmt.Sprintf(`You are helping a genealogist decide which leads to research first.
Goal: %s

Leads:
%s
Rank the leads above from most to least promising.
Output ONLY the indices of the leads in order, separated by commas.
Example: 0, 2, 1
Do not output any other text.`, query, docList.String())

	resp, err := r.LLM.Generate(ctx, prompt)
	if err != nil {
		return identity(len(docs)), nil
	}

	return parseIndices(resp, len(docs)), nil
}

// truncate cuts s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// parseIndices keeps the first occurrence of each in-range index and appends
// any index the model left out in ascending order.
func parseIndices(s string, n int) []int {
	seen := make([]bool, n)
	indices := make([]int, 0, n)
	for _, m := range indexPattern.FindAllString(s, -1) {
		i, err := strconv.Atoi(m)
		if err != nil || i < 0 || i >= n || seen[i] {
			continue
		}
		seen[i] = true
		indices = append(indices, i)
	}
	for i := 0; i < n; i++ {
		if !seen[i] {
			indices = append(indices, i)
		}
	}
	return indices
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
