package correlate

import "github.com/agenthands/lineage/internal/core/model"

const (
	DefaultPreviewLimit = 10
	// IndividualPreviewLimit bounds the tree excerpt shown when an analysis
	// found no common ancestors.
	IndividualPreviewLimit = 5
)

// Report is the overview a rendering layer shows next to a CorrelationResult.
type Report struct {
	IndividualCount int `json:"individualCount"`
	// IndividualPreview lists the first individuals of the tree, and is only
	// filled while there are no common ancestors to show instead.
	IndividualPreview []*model.Individual `json:"individualPreview,omitempty"`
	MatchCount        int                 `json:"matchCount"`
	PreviewMatches    []model.DnaMatch    `json:"previewMatches"`
	RemainingMatches  int                 `json:"remainingMatches"`
	ConnectionCount   int                 `json:"connectionCount"`
	AncestorCount     int                 `json:"ancestorCount"`
	UnmatchedCount    int                 `json:"unmatchedCount"`
}

// Summarize builds a Report. limit bounds PreviewMatches; values <= 0 use
// DefaultPreviewLimit. result may be nil when no analysis has run yet.
func Summarize(tree *model.FamilyTree, matches []model.DnaMatch, result *model.CorrelationResult, limit int) Report {
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}
	preview := matches
	if len(preview) > limit {
		preview = preview[:limit]
	}

	r := Report{
		IndividualCount:  tree.Len(),
		MatchCount:       len(matches),
		PreviewMatches:   append([]model.DnaMatch{}, preview...),
		RemainingMatches: len(matches) - len(preview),
	}
	if result != nil {
		r.ConnectionCount = len(result.Connections)
		r.AncestorCount = len(result.CommonAncestors)
		r.UnmatchedCount = len(result.UnmatchedNames)
	}
	if r.AncestorCount == 0 {
		people := tree.People()
		if len(people) > IndividualPreviewLimit {
			people = people[:IndividualPreviewLimit]
		}
		r.IndividualPreview = people
	}
	return r
}
