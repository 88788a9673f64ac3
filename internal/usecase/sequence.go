package usecase

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/domain"
)

// Sequencer renumbers the agenda items of one category so that mandatee
// seniority decides the order. Items carried over from an already approved
// agenda version keep their position; only the tail after the approval
// boundary is renumbered, and only items whose position actually changes are
// written back.
type Sequencer struct {
	agendas AgendaRepository
}

func NewSequencer(agendas AgendaRepository) *Sequencer {
	return &Sequencer{agendas: agendas}
}

// Resequence reorders the items of the given category on the agenda. The
// repository only returns items past the approval boundary, so everything it
// hands back is movable.
func (s *Sequencer) Resequence(ctx context.Context, agendaURI, itemType string) error {
	ctx, span := tracer.Start(ctx, "Usecase.Sequencer.Resequence")
	defer span.End()

	siblings, err := s.agendas.Siblings(ctx, agendaURI, itemType)
	if err != nil {
		err = errors.Wrap(err, "Usecase.Sequencer.Resequence: reading siblings failed")
		span.RecordError(err)
		return err
	}
	changes := PlanPositions(siblings)
	if len(changes) == 0 {
		return nil
	}
	if err := s.agendas.ApplyPositions(ctx, changes); err != nil {
		err = errors.Wrap(err, "Usecase.Sequencer.Resequence: applying positions failed")
		span.RecordError(err)
		return err
	}
	return nil
}

// PlanPositions sorts the siblings by mandatee seniority and returns the
// renumberings needed to make positions contiguous from the current minimum.
// Items that already sit at their target position are left out, keeping the
// write set minimal.
func PlanPositions(siblings []domain.Sibling) []domain.PositionChange {
	if len(siblings) == 0 {
		return nil
	}

	sorted := make([]domain.Sibling, len(siblings))
	copy(sorted, siblings)
	sortSiblings(sorted)

	floor := siblings[0].Position
	for _, sibling := range siblings[1:] {
		if sibling.Position < floor {
			floor = sibling.Position
		}
	}

	var changes []domain.PositionChange
	for i, sibling := range sorted {
		target := floor + i
		if sibling.Position != target {
			changes = append(changes, domain.PositionChange{
				URI:         sibling.URI,
				OldPosition: sibling.Position,
				NewPosition: target,
			})
		}
	}
	return changes
}

// sortSiblings orders by priority vector, then by current position. The tie
// break on position keeps manual reorders within a seniority group stable
// across resequencing runs.
func sortSiblings(siblings []domain.Sibling) {
	sort.SliceStable(siblings, func(i, j int) bool {
		cmp := comparePriorities(siblings[i].Priorities, siblings[j].Priorities)
		if cmp != 0 {
			return cmp < 0
		}
		return siblings[i].Position < siblings[j].Position
	})
}

// comparePriorities compares two mandatee priority vectors element-wise after
// sorting each ascending. A vector that is a strict prefix of the other sorts
// first; an empty vector (no competent mandatee) sorts last.
func comparePriorities(a, b []int) int {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	if len(a) == 0 {
		return 1
	}
	if len(b) == 0 {
		return -1
	}

	as := sortedCopy(a)
	bs := sortedCopy(b)
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] != bs[i] {
			if as[i] < bs[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	default:
		return 0
	}
}

func sortedCopy(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	sort.Ints(out)
	return out
}
