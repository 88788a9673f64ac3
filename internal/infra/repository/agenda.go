package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/domain"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/sparql"
)

type AgendaRepository struct {
	store Store
}

func NewAgendaRepository(store Store) *AgendaRepository {
	return &AgendaRepository{store: store}
}

// AgendaByID resolves an agenda id to its URI.
func (r *AgendaRepository) AgendaByID(ctx context.Context, agendaID string) (string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT ?agenda
WHERE {
  VALUES ?agendaId {
    %s
  }

  ?agenda <%s> ?agendaId .
}`, sparql.EscapeString(agendaID), domain.PredUUID)

	resp, err := r.store.Select(ctx, query)
	if err != nil {
		return "", errors.Wrap(err, "repository.AgendaRepository.AgendaByID: select failed")
	}
	if len(resp.Results.Bindings) == 0 {
		return "", domain.NotFoundError{Resource: "agenda " + agendaID}
	}
	return resp.Results.Bindings[0]["agenda"].Value, nil
}

// IsApprovedAgenda reports whether the agenda version has been approved.
func (r *AgendaRepository) IsApprovedAgenda(ctx context.Context, agendaID string) (bool, error) {
	query := fmt.Sprintf(`ASK
WHERE {
  VALUES ?agendaId {
    %s
  }

  ?agenda <%s> ?agendaId ;
    <%s> %s .
}`,
		sparql.EscapeString(agendaID),
		domain.PredUUID,
		domain.PredAgendaStatus,
		sparql.EscapeURI(domain.ConceptAgendaApproved),
	)

	approved, err := r.store.Ask(ctx, query)
	if err != nil {
		return false, errors.Wrap(err, "repository.AgendaRepository.IsApprovedAgenda: ask failed")
	}
	return approved, nil
}

// Siblings returns the movable agenda items of one category. Items carried
// over from an approved agenda version (they revise an older item) form a
// fixed prefix: only items positioned after the highest carried-over
// position are returned.
func (r *AgendaRepository) Siblings(ctx context.Context, agendaURI, itemType string) ([]domain.Sibling, error) {
	floor, err := r.lastApprovedPosition(ctx, agendaURI, itemType)
	if err != nil {
		return nil, err
	}

	positionFilter := ""
	if floor > 0 {
		positionFilter = fmt.Sprintf("FILTER ( ?agendaitemPosition > %d )", floor)
	}

	query := fmt.Sprintf(`SELECT DISTINCT ?agendaitem ?agendaitemCreated ?agendaitemPosition ?mandateePriority
WHERE {
  %s <%s> ?agendaitem .
  ?agendaitem <%s> ?agendaitemPosition ;
              <%s> ?agendaitemCreated ;
              <%s> %s .
  FILTER NOT EXISTS {
    ?agendaitem <%s> ?olderAgendaitem .
  }
  ?agendaActivity <%s> ?agendaitem ;
    <%s> ?subcase .
  OPTIONAL {
    ?subcase <%s> ?mandatee .
    ?mandatee <%s> ?mandateePriority .
  }
  %s
}`,
		sparql.EscapeURI(agendaURI),
		domain.PredHasPart,
		domain.PredPosition,
		domain.PredCreated,
		domain.PredItemType, sparql.EscapeURI(itemType),
		domain.PredWasRevisionOf,
		domain.PredGeneratesItem,
		domain.PredTakesPlaceDuring,
		domain.PredSubcaseMandatee,
		domain.PredMandateePriority,
		positionFilter,
	)

	resp, err := r.store.Select(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "repository.AgendaRepository.Siblings: select failed")
	}

	resources := sparql.Reduce(resp, "agendaitem")
	siblings := make([]domain.Sibling, 0, len(resources))
	for _, resource := range resources {
		siblings = append(siblings, domain.Sibling{
			URI:        resource.URI,
			Position:   intValue(resource.Field("agendaitemPosition").One()),
			Priorities: intValues(resource.Field("mandateePriority").All()),
		})
	}
	return siblings, nil
}

func (r *AgendaRepository) lastApprovedPosition(ctx context.Context, agendaURI, itemType string) (int, error) {
	query := fmt.Sprintf(`SELECT ?agendaitemPosition
WHERE {
  %s <%s> ?agendaitem .
  ?agendaitem <%s> ?agendaitemPosition ;
              <%s> ?olderAgendaitem ;
              <%s> %s .
} ORDER BY DESC(?agendaitemPosition) LIMIT 1`,
		sparql.EscapeURI(agendaURI),
		domain.PredHasPart,
		domain.PredPosition,
		domain.PredWasRevisionOf,
		domain.PredItemType, sparql.EscapeURI(itemType),
	)

	resp, err := r.store.Select(ctx, query)
	if err != nil {
		return 0, errors.Wrap(err, "repository.AgendaRepository.lastApprovedPosition: select failed")
	}
	if len(resp.Results.Bindings) == 0 {
		return 0, nil
	}
	return intValue(resp.Results.Bindings[0]["agendaitemPosition"].Typed()), nil
}

// ApplyPositions writes the renumberings in one update. Each row carries the
// position the planner read, so an item moved by a concurrent writer simply
// does not match and keeps its value.
func (r *AgendaRepository) ApplyPositions(ctx context.Context, changes []domain.PositionChange) error {
	if len(changes) == 0 {
		return nil
	}

	rows := make([][]sparql.Node, 0, len(changes))
	for _, change := range changes {
		rows = append(rows, []sparql.Node{
			sparql.IRI(change.URI),
			sparql.Int(change.OldPosition),
			sparql.Int(change.NewPosition),
		})
	}

	update := sparql.NewUpdate().
		Delete(sparql.Pattern(sparql.Var("agendaitem"), sparql.IRI(domain.PredPosition), sparql.Var("oldPosition"))).
		Insert(sparql.Pattern(sparql.Var("agendaitem"), sparql.IRI(domain.PredPosition), sparql.Var("newPosition"))).
		WhereValues([]string{"agendaitem", "oldPosition", "newPosition"}, rows)

	if err := r.store.Update(ctx, update.String()); err != nil {
		return errors.Wrap(err, "repository.AgendaRepository.ApplyPositions: update failed")
	}
	return nil
}

func intValue(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err == nil {
			return n
		}
	}
	return 0
}

func intValues(values []any) []int {
	var out []int
	for _, v := range values {
		switch t := v.(type) {
		case int:
			out = append(out, t)
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
				out = append(out, n)
			}
		}
	}
	return out
}
