package gedcom

import (
	"fmt"
	"strings"

	"github.com/agenthands/lineage/internal/core/model"
)

// Event tags that can precede a level-2 DATE line.
const (
	EventBirth = "BIRT"
	EventDeath = "DEAT"
)

// DateStrategy decides which vital date a DATE line fills. event is the
// most recent level-1 tag seen on the record ("" when none).
type DateStrategy interface {
	Assign(p *model.Individual, event, date string)
}

// SequentialDates fills the first unset of birth then death, in encounter
// order, regardless of the event. A record with only a death date ends up
// with that date stored as its birth date.
type SequentialDates struct{}

func (SequentialDates) Assign(p *model.Individual, _ string, date string) {
	switch {
	case p.BirthDate == "":
		p.BirthDate = date
	case p.DeathDate == "":
		p.DeathDate = date
	}
}

// EventDates assigns a date by the event that introduced it. Dates under
// any other event (marriage, burial, residence) are ignored, and the first
// date per event wins.
type EventDates struct{}

func (EventDates) Assign(p *model.Individual, event, date string) {
	switch event {
	case EventBirth:
		if p.BirthDate == "" {
			p.BirthDate = date
		}
	case EventDeath:
		if p.DeathDate == "" {
			p.DeathDate = date
		}
	}
}

// StrategyByName maps a configuration value to a DateStrategy.
func StrategyByName(name string) (DateStrategy, error) {
	switch strings.ToLower(name) {
	case "", "sequential":
		return SequentialDates{}, nil
	case "event":
		return EventDates{}, nil
	default:
		return nil, fmt.Errorf("unknown date strategy: %s", name)
	}
}
