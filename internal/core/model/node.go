package model

import "slices"

// Individual is one person in a family tree. Parents, Children and Spouses
// are ordered sets of individual IDs: insertion order, no duplicates.
type Individual struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	BirthDate string   `json:"birthDate,omitempty"`
	DeathDate string   `json:"deathDate,omitempty"`
	Sex       string   `json:"sex,omitempty"`
	Parents   []string `json:"parents"`
	Children  []string `json:"children"`
	Spouses   []string `json:"spouses"`
}

func NewIndividual(id string) *Individual {
	return &Individual{
		ID:       id,
		Parents:  []string{},
		Children: []string{},
		Spouses:  []string{},
	}
}

// AddParent reports whether id was newly added.
func (i *Individual) AddParent(id string) bool {
	return addUnique(&i.Parents, id)
}

func (i *Individual) AddChild(id string) bool {
	return addUnique(&i.Children, id)
}

func (i *Individual) AddSpouse(id string) bool {
	return addUnique(&i.Spouses, id)
}

func addUnique(set *[]string, id string) bool {
	if id == "" || slices.Contains(*set, id) {
		return false
	}
	*set = append(*set, id)
	return true
}

// Union is a family record (marriage or parentage grouping). It only exists
// to project edges onto Individuals while a tree is being built.
type Union struct {
	ID       string   `json:"id"`
	Husband  string   `json:"husband,omitempty"`
	Wife     string   `json:"wife,omitempty"`
	Children []string `json:"children"`
}

func NewUnion(id string) *Union {
	return &Union{ID: id, Children: []string{}}
}
