package driver

// IndexQueries are run once by BuildIndices.
var IndexQueries = []string{
	"CREATE INDEX ON :Person(id);",
	"CREATE INDEX ON :Person(tree_id);",
}

const (
	// SavePersonsQuery expects $people as a list of maps with id, name,
	// birth_date, death_date and sex keys.
	SavePersonsQuery = `
		UNWIND $people AS p
		MERGE (n:Person {id: p.id, tree_id: $tree_id})
		SET n.name = p.name,
			n.birth_date = p.birth_date,
			n.death_date = p.death_date,
			n.sex = p.sex
		RETURN count(n) AS saved
	`

	// SaveParentEdgesQuery expects $edges as a list of {parent, child} maps.
	SaveParentEdgesQuery = `
		UNWIND $edges AS e
		MATCH (parent:Person {id: e.parent, tree_id: $tree_id})
		MATCH (child:Person {id: e.child, tree_id: $tree_id})
		MERGE (parent)-[:PARENT_OF]->(child)
		RETURN count(*) AS saved
	`

	// SaveSpouseEdgesQuery expects $edges as a list of {a, b} maps, each
	// pair listed once.
	SaveSpouseEdgesQuery = `
		UNWIND $edges AS e
		MATCH (a:Person {id: e.a, tree_id: $tree_id})
		MATCH (b:Person {id: e.b, tree_id: $tree_id})
		MERGE (a)-[:SPOUSE_OF]->(b)
		RETURN count(*) AS saved
	`

	// GetAncestorsQuery returns the start person and every ancestor once.
	GetAncestorsQuery = `
		MATCH (start:Person {id: $id, tree_id: $tree_id})
		MATCH (ancestor:Person {tree_id: $tree_id})-[:PARENT_OF*0..]->(start)
		RETURN DISTINCT ancestor.id AS id, ancestor.name AS name,
			ancestor.birth_date AS birth_date, ancestor.death_date AS death_date,
			ancestor.sex AS sex
	`

	DeleteTreeQuery = `
		MATCH (n:Person {tree_id: $tree_id})
		DETACH DELETE n
	`
)
