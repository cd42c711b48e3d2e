package gedcom

import (
	"fmt"
	"strings"

	"github.com/agenthands/lineage/internal/core/model"
)

// Record type keywords and level-1 tags understood by the builder.
const (
	recordIndividual = "INDI"
	recordFamily     = "FAM"

	tagName    = "NAME"
	tagSex     = "SEX"
	tagHusband = "HUSB"
	tagWife    = "WIFE"
	tagChild   = "CHIL"
	tagDate    = "DATE"
)

// Options tunes a Parser. The zero value parses without a record ceiling
// using SequentialDates.
type Options struct {
	// MaxRecords caps the number of INDI and FAM records. 0 disables the cap.
	MaxRecords int
	Dates      DateStrategy
}

type Parser struct {
	opts Options
}

func NewParser(opts Options) *Parser {
	if opts.Dates == nil {
		opts.Dates = SequentialDates{}
	}
	return &Parser{opts: opts}
}

// ParseFamilyRecords parses record text with default options. It never
// fails; malformed content degrades to a partial tree.
func ParseFamilyRecords(text string) *model.FamilyTree {
	tree, _ := NewParser(Options{}).Parse(text)
	return tree
}

// Parse tokenizes text and builds a family tree. The only error is
// ErrTooManyRecords when a ceiling is configured.
func (p *Parser) Parse(text string) (*model.FamilyTree, error) {
	return p.Build(Tokenize(text))
}

// Build folds tokenized lines into a family tree, then projects every union
// onto its members as parent, child and spouse edges.
func (p *Parser) Build(lines []Line) (*model.FamilyTree, error) {
	b := &builder{
		tree:  model.NewFamilyTree(),
		dates: p.opts.Dates,
		limit: p.opts.MaxRecords,
	}
	for _, line := range lines {
		if err := b.consume(line); err != nil {
			return nil, err
		}
	}
	b.commit()
	b.resolve()
	return b.tree, nil
}

// builder is the accumulator threaded through the line sequence. At most one
// record is pending at a time; it reaches the tree only when the next
// level-0 line (or the end of input) commits it.
type builder struct {
	tree  *model.FamilyTree
	dates DateStrategy
	limit int

	records    int
	unionOrder []string

	indi  *model.Individual
	union *model.Union
	event string
}

func (b *builder) consume(line Line) error {
	if line.Level == 0 {
		b.commit()
		return b.open(line)
	}
	if b.indi == nil && b.union == nil {
		return nil
	}

	tag := strings.ToUpper(line.Tag)
	switch line.Level {
	case 1:
		b.event = tag
		b.field(tag, line.Value)
	case 2:
		if tag == tagDate && b.indi != nil {
			b.dates.Assign(b.indi, b.event, line.Value)
		}
	}
	return nil
}

// open starts a pending record for "0 @ID@ INDI" and "0 @ID@ FAM". Any other
// level-0 line leaves the cursor empty.
func (b *builder) open(line Line) error {
	if !isPointer(line.Tag) {
		return nil
	}
	id := unwrapPointer(line.Tag)
	kind := strings.ToUpper(firstWord(line.Value))
	if kind != recordIndividual && kind != recordFamily {
		return nil
	}

	b.records++
	if b.limit > 0 && b.records > b.limit {
		return fmt.Errorf("%w: more than %d records (line %d)", ErrTooManyRecords, b.limit, line.Number)
	}

	if kind == recordIndividual {
		b.indi = model.NewIndividual(id)
	} else {
		b.union = model.NewUnion(id)
	}
	return nil
}

func (b *builder) field(tag, value string) {
	if b.indi != nil {
		switch tag {
		case tagName:
			b.indi.Name = strings.TrimSpace(strings.ReplaceAll(value, "/", ""))
		case tagSex:
			b.indi.Sex = value
		}
		return
	}

	switch tag {
	case tagHusband:
		b.union.Husband = unwrapPointer(value)
	case tagWife:
		b.union.Wife = unwrapPointer(value)
	case tagChild:
		if child := unwrapPointer(value); child != "" {
			b.union.Children = append(b.union.Children, child)
		}
	}
}

// commit moves the pending record into the tree. A repeated ID replaces the
// earlier record but keeps its original position in the order.
func (b *builder) commit() {
	if b.indi != nil {
		if _, seen := b.tree.Individuals[b.indi.ID]; !seen {
			b.tree.Order = append(b.tree.Order, b.indi.ID)
		}
		b.tree.Individuals[b.indi.ID] = b.indi
	}
	if b.union != nil {
		if _, seen := b.tree.Unions[b.union.ID]; !seen {
			b.unionOrder = append(b.unionOrder, b.union.ID)
		}
		b.tree.Unions[b.union.ID] = b.union
	}
	b.indi, b.union, b.event = nil, nil, ""
}

func (b *builder) resolve() {
	for _, id := range b.unionOrder {
		b.project(b.tree.Unions[id])
	}
}

func (b *builder) project(u *model.Union) {
	var children []*model.Individual
	for _, id := range u.Children {
		if c, ok := b.tree.Get(id); ok {
			children = append(children, c)
		} else {
			b.tree.Dropped++
		}
	}

	var parents []*model.Individual
	for _, id := range []string{u.Husband, u.Wife} {
		if id == "" {
			continue
		}
		p, ok := b.tree.Get(id)
		if !ok {
			b.tree.Dropped++
			continue
		}
		parents = append(parents, p)
		for _, c := range children {
			p.AddChild(c.ID)
			c.AddParent(p.ID)
		}
	}

	if len(parents) == 2 && parents[0].ID != parents[1].ID {
		parents[0].AddSpouse(parents[1].ID)
		parents[1].AddSpouse(parents[0].ID)
	}
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}
