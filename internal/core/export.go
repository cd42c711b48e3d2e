package core

import (
	"context"
	"fmt"

	"github.com/agenthands/lineage/internal/core/model"
	"github.com/agenthands/lineage/internal/driver"
	"github.com/agenthands/lineage/internal/metrics"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ExportTree writes the session's tree to the graph database as :Person
// nodes with PARENT_OF and SPOUSE_OF edges, all tagged with the session ID.
// A previous export of the same session is replaced.
func (l *Lineage) ExportTree(ctx context.Context, id string) (int, error) {
	if l.Driver == nil {
		return 0, ErrNoGraph
	}
	tree, _, err := l.load(id, false)
	if err != nil {
		return 0, err
	}

	if err := l.exportTree(ctx, id, tree); err != nil {
		metrics.GraphExports.WithLabelValues(metrics.OutcomeError).Inc()
		return 0, err
	}
	metrics.GraphExports.WithLabelValues(metrics.OutcomeSuccess).Inc()
	l.logger.Info().Str("session", id).Int("individuals", tree.Len()).Msg("tree exported")
	return tree.Len(), nil
}

func (l *Lineage) exportTree(ctx context.Context, id string, tree *model.FamilyTree) error {
	people, parentEdges, spouseEdges := graphRows(tree)

	steps := []struct {
		name   string
		query  string
		params map[string]interface{}
	}{
		{"clear previous export", driver.DeleteTreeQuery, map[string]interface{}{"tree_id": id}},
		{"save people", driver.SavePersonsQuery, map[string]interface{}{"tree_id": id, "people": people}},
		{"save parent edges", driver.SaveParentEdgesQuery, map[string]interface{}{"tree_id": id, "edges": parentEdges}},
		{"save spouse edges", driver.SaveSpouseEdgesQuery, map[string]interface{}{"tree_id": id, "edges": spouseEdges}},
	}
	for _, step := range steps {
		if _, err := l.Driver.ExecuteQuery(ctx, step.query, step.params); err != nil {
			return fmt.Errorf("failed to %s: %w", step.name, err)
		}
	}
	return nil
}

// graphRows flattens tree into query parameters. Spouse pairs are emitted
// once, from the individual seen first.
func graphRows(tree *model.FamilyTree) (people, parentEdges, spouseEdges []interface{}) {
	people = []interface{}{}
	parentEdges = []interface{}{}
	spouseEdges = []interface{}{}

	emitted := make(map[[2]string]bool)
	for _, p := range tree.People() {
		people = append(people, map[string]interface{}{
			"id":         p.ID,
			"name":       p.Name,
			"birth_date": p.BirthDate,
			"death_date": p.DeathDate,
			"sex":        p.Sex,
		})
		for _, parent := range p.Parents {
			parentEdges = append(parentEdges, map[string]interface{}{"parent": parent, "child": p.ID})
		}
		for _, spouse := range p.Spouses {
			pair := [2]string{spouse, p.ID}
			if emitted[pair] {
				continue
			}
			emitted[[2]string{p.ID, spouse}] = true
			spouseEdges = append(spouseEdges, map[string]interface{}{"a": p.ID, "b": spouse})
		}
	}
	return people, parentEdges, spouseEdges
}

// GraphAncestors asks the graph database for personID's ancestors in an
// exported tree. Order is whatever the database returns.
func (l *Lineage) GraphAncestors(ctx context.Context, id, personID string) ([]*model.Individual, error) {
	if l.Driver == nil {
		return nil, ErrNoGraph
	}
	if _, err := l.Store.Get(id); err != nil {
		return nil, err
	}

	res, err := l.Driver.ExecuteQuery(ctx, driver.GetAncestorsQuery, map[string]interface{}{
		"tree_id": id,
		"id":      personID,
	})
	if err != nil {
		return nil, err
	}
	if len(res.Records) == 0 {
		return nil, ErrPersonNotFound
	}

	people := make([]*model.Individual, 0, len(res.Records))
	for _, rec := range res.Records {
		p := model.NewIndividual(recordString(rec, "id"))
		p.Name = recordString(rec, "name")
		p.BirthDate = recordString(rec, "birth_date")
		p.DeathDate = recordString(rec, "death_date")
		p.Sex = recordString(rec, "sex")
		people = append(people, p)
	}
	return people, nil
}

func recordString(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
