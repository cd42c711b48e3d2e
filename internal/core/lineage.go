package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agenthands/lineage/internal/config"
	"github.com/agenthands/lineage/internal/core/ancestry"
	"github.com/agenthands/lineage/internal/core/community"
	"github.com/agenthands/lineage/internal/core/correlate"
	"github.com/agenthands/lineage/internal/core/model"
	"github.com/agenthands/lineage/internal/core/resolve"
	"github.com/agenthands/lineage/internal/core/summary"
	"github.com/agenthands/lineage/internal/driver"
	"github.com/agenthands/lineage/internal/gedcom"
	"github.com/agenthands/lineage/internal/llm"
	"github.com/agenthands/lineage/internal/logging"
	"github.com/agenthands/lineage/internal/matches"
	"github.com/agenthands/lineage/internal/metrics"
	"github.com/agenthands/lineage/internal/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Lineage ties the pure analysis packages to session storage, the optional
// graph database and the optional LLM. Driver and Summarizer may be nil.
type Lineage struct {
	Store      *store.SessionStore
	Driver     driver.GraphDriver
	Summarizer *summary.Summarizer

	Parser       *gedcom.Parser
	Loader       *matches.Loader
	Detector     community.CommunityDetector
	PreviewLimit int
	// NoteLimit caps research notes per analysis. 0 annotates every connection.
	NoteLimit int

	UUIDGenerator func() string
	logger        zerolog.Logger
}

type AnalyzeOptions struct {
	Clusters bool
	Notes    bool
}

// Analysis is everything one analysis run produces.
type Analysis struct {
	Report           correlate.Report         `json:"report"`
	Result           *model.CorrelationResult `json:"result"`
	Clusters         []model.Cluster          `json:"clusters,omitempty"`
	ClusterSummaries []model.ClusterSummary   `json:"clusterSummaries,omitempty"`
	Notes            []model.ConnectionNote   `json:"notes,omitempty"`
}

// TreeStats describes an accepted GEDCOM upload.
type TreeStats struct {
	Individuals int `json:"individuals"`
	Families    int `json:"families"`
	Dropped     int `json:"dropped"`
}

const defaultNoteLimit = 25

// NewLineage builds a Lineage from cfg. drv and llmClient may be nil.
func NewLineage(st *store.SessionStore, drv driver.GraphDriver, llmClient llm.LLMClient, cfg *config.Config) (*Lineage, error) {
	dates, err := gedcom.StrategyByName(cfg.Parser.DateStrategy)
	if err != nil {
		return nil, err
	}
	detector, err := community.NewDetector(cfg.Clustering.Algorithm, cfg.Clustering.MaxIterations)
	if err != nil {
		return nil, err
	}

	l := &Lineage{
		Store:  st,
		Driver: drv,
		Parser: gedcom.NewParser(gedcom.Options{MaxRecords: cfg.Parser.MaxRecords, Dates: dates}),
		Loader: matches.NewLoader(matches.Options{
			Delimiter:   cfg.Matches.Delimiter,
			NameAliases: cfg.Matches.NameAliases,
		}),
		Detector:      detector,
		PreviewLimit:  cfg.Matches.PreviewLimit,
		NoteLimit:     defaultNoteLimit,
		UUIDGenerator: func() string { return uuid.New().String() },
		logger:        logging.GetLogger("lineage"),
	}
	if llmClient != nil {
		l.Summarizer = summary.NewSummarizer(llmClient, cfg.Prompts)
	}
	return l, nil
}

func (l *Lineage) CreateSession(ctx context.Context) (*store.Session, error) {
	sess, err := l.Store.Create(l.UUIDGenerator())
	if err != nil {
		return nil, err
	}
	l.logger.Info().Str("session", sess.ID).Msg("session created")
	return sess, nil
}

func (l *Lineage) Session(ctx context.Context, id string) (*store.Session, error) {
	return l.Store.Get(id)
}

// Sessions returns every stored session in ID order.
func (l *Lineage) Sessions(ctx context.Context) ([]*store.Session, error) {
	ids, err := l.Store.List()
	if err != nil {
		return nil, err
	}
	out := make([]*store.Session, 0, len(ids))
	for _, id := range ids {
		sess, err := l.Store.Get(id)
		if errors.Is(err, store.ErrSessionNotFound) {
			// Deleted after the listing.
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, nil
}

// SetTree parses content and, when it parses, stores it as the session's
// tree source.
func (l *Lineage) SetTree(ctx context.Context, id, content string) (*TreeStats, error) {
	tree, err := l.parseTree(content)
	if err != nil {
		return nil, err
	}
	if _, err := l.Store.Update(id, func(s *store.Session) { s.TreeSource = content }); err != nil {
		return nil, err
	}

	stats := &TreeStats{Individuals: tree.Len(), Families: len(tree.Unions), Dropped: tree.Dropped}
	l.logger.Info().Str("session", id).
		Int("individuals", stats.Individuals).
		Int("families", stats.Families).
		Int("dropped", stats.Dropped).
		Msg("tree stored")
	return stats, nil
}

// SetMatches stores content as the session's match table and returns the
// number of rows read from it.
func (l *Lineage) SetMatches(ctx context.Context, id, content string) (int, error) {
	dnaMatches := l.parseMatches(content)
	if _, err := l.Store.Update(id, func(s *store.Session) { s.MatchSource = content }); err != nil {
		return 0, err
	}
	l.logger.Info().Str("session", id).Int("matches", len(dnaMatches)).Msg("matches stored")
	return len(dnaMatches), nil
}

func (l *Lineage) DeleteSession(ctx context.Context, id string) error {
	if err := l.Store.Delete(id); err != nil {
		return err
	}
	if l.Driver != nil {
		if _, err := l.Driver.ExecuteQuery(ctx, driver.DeleteTreeQuery, map[string]interface{}{"tree_id": id}); err != nil {
			l.logger.Warn().Err(err).Str("session", id).Msg("failed to delete exported tree")
		}
	}
	l.logger.Info().Str("session", id).Msg("session deleted")
	return nil
}

// Analyze recomputes the correlation for a stored session.
func (l *Lineage) Analyze(ctx context.Context, id string, opts AnalyzeOptions) (*Analysis, error) {
	tree, dnaMatches, err := l.load(id, true)
	if err != nil {
		return nil, err
	}
	return l.AnalyzeTree(ctx, tree, dnaMatches, opts)
}

// AnalyzeTree runs the correlation and the requested extras on already
// parsed inputs.
func (l *Lineage) AnalyzeTree(ctx context.Context, tree *model.FamilyTree, dnaMatches []model.DnaMatch, opts AnalyzeOptions) (*Analysis, error) {
	if opts.Notes && l.Summarizer == nil {
		return nil, ErrNoLLM
	}

	start := time.Now()
	result := correlate.Analyze(tree, dnaMatches)
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	metrics.ConnectionsFound.Add(float64(len(result.Connections)))
	metrics.UnmatchedNames.Add(float64(len(result.UnmatchedNames)))

	analysis := &Analysis{
		Report: correlate.Summarize(tree, dnaMatches, result, l.PreviewLimit),
		Result: result,
	}

	if opts.Clusters {
		clusters, err := community.Clusters(result, l.Detector)
		if err != nil {
			metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeError).Inc()
			return nil, fmt.Errorf("failed to cluster matches: %w", err)
		}
		analysis.Clusters = clusters
	}

	if opts.Notes {
		notes, err := l.Summarizer.NotesForResult(ctx, result, l.NoteLimit)
		if err != nil {
			metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeError).Inc()
			return nil, fmt.Errorf("failed to write research notes: %w", err)
		}
		analysis.Notes = notes

		for _, c := range analysis.Clusters {
			text, err := l.Summarizer.SummarizeCluster(ctx, c, tree)
			if err != nil {
				l.logger.Warn().Err(err).Strs("members", c.Members).Msg("skipping cluster summary")
				continue
			}
			analysis.ClusterSummaries = append(analysis.ClusterSummaries, model.ClusterSummary{Members: c.Members, Summary: text})
		}
	}

	metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	l.logger.Debug().
		Int("connections", len(result.Connections)).
		Int("ancestors", len(result.CommonAncestors)).
		Int("unmatched", len(result.UnmatchedNames)).
		Dur("took", time.Since(start)).
		Msg("analysis complete")
	return analysis, nil
}

// Ancestors returns personID and its ancestors from the session's tree in
// traversal order.
func (l *Lineage) Ancestors(ctx context.Context, id, personID string) ([]*model.Individual, error) {
	tree, _, err := l.load(id, false)
	if err != nil {
		return nil, err
	}
	if _, ok := tree.Get(personID); !ok {
		return nil, ErrPersonNotFound
	}
	return ancestry.GetAncestors(personID, tree), nil
}

// FindIndividuals returns, in tree order, every individual that name would
// resolve to if it appeared in the match table. The first element is the one
// an analysis would pick.
func (l *Lineage) FindIndividuals(ctx context.Context, id, name string) ([]*model.Individual, error) {
	tree, _, err := l.load(id, false)
	if err != nil {
		return nil, err
	}
	people := resolve.Candidates(name, tree)
	if people == nil {
		people = []*model.Individual{}
	}
	return people, nil
}

func (l *Lineage) load(id string, needMatches bool) (*model.FamilyTree, []model.DnaMatch, error) {
	sess, err := l.Store.Get(id)
	if err != nil {
		return nil, nil, err
	}
	if sess.TreeSource == "" {
		return nil, nil, ErrNoTree
	}
	if needMatches && sess.MatchSource == "" {
		return nil, nil, ErrNoMatches
	}

	tree, err := l.parseTree(sess.TreeSource)
	if err != nil {
		return nil, nil, err
	}
	return tree, l.parseMatches(sess.MatchSource), nil
}

func (l *Lineage) parseTree(content string) (*model.FamilyTree, error) {
	start := time.Now()
	tree, err := l.Parser.Parse(content)
	metrics.ParseDuration.WithLabelValues("gedcom").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	metrics.IndividualsParsed.Add(float64(tree.Len()))
	metrics.DanglingReferences.Add(float64(tree.Dropped))
	if tree.Dropped > 0 {
		l.logger.Debug().Int("dropped", tree.Dropped).Msg("family references without an individual were skipped")
	}
	return tree, nil
}

func (l *Lineage) parseMatches(content string) []model.DnaMatch {
	start := time.Now()
	dnaMatches := l.Loader.Parse(content)
	metrics.ParseDuration.WithLabelValues("matches").Observe(time.Since(start).Seconds())
	return dnaMatches
}
