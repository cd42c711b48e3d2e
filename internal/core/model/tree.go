package model

// FamilyTree maps individual IDs to Individuals. Order holds the IDs in the
// order their records were first seen and is the iteration order for every
// consumer that has to pick "the first" individual.
type FamilyTree struct {
	Individuals map[string]*Individual `json:"individuals"`
	Unions      map[string]*Union      `json:"families"`
	Order       []string               `json:"order"`

	// Dropped counts union references that did not resolve to an individual.
	Dropped int `json:"dropped"`
}

func NewFamilyTree() *FamilyTree {
	return &FamilyTree{
		Individuals: make(map[string]*Individual),
		Unions:      make(map[string]*Union),
		Order:       []string{},
	}
}

// Get returns the individual with the given ID. It is safe on a nil tree.
func (t *FamilyTree) Get(id string) (*Individual, bool) {
	if t == nil || t.Individuals == nil {
		return nil, false
	}
	p, ok := t.Individuals[id]
	return p, ok
}

func (t *FamilyTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Individuals)
}

// People returns the individuals in insertion order.
func (t *FamilyTree) People() []*Individual {
	if t == nil {
		return nil
	}
	people := make([]*Individual, 0, len(t.Order))
	for _, id := range t.Order {
		if p, ok := t.Individuals[id]; ok {
			people = append(people, p)
		}
	}
	return people
}
