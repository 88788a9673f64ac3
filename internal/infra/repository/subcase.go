package repository

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/domain"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/sparql"
)

type SubcaseRepository struct {
	store Store
}

func NewSubcaseRepository(store Store) *SubcaseRepository {
	return &SubcaseRepository{store: store}
}

// IsSubcaseOnAgenda reports whether the subcase sits on a live agenda. A
// postponed decision on a meeting whose internal publication already started
// does not count; such a subcase may be resubmitted.
func (r *SubcaseRepository) IsSubcaseOnAgenda(ctx context.Context, subcaseURI string) (bool, error) {
	query := fmt.Sprintf(`ASK
WHERE {
  VALUES ?subcase {
    %s
  }
  VALUES ?postponed {
    %s
  }

  ?agendaActivity <%s> ?subcase ;
                  <%s> ?agendaitem .
  ?agenda <%s> ?agendaitem .
  ?agenda <%s> ?meeting .
  ?treatment <%s> ?agendaitem ;
             <%s> ?decisionActivity .
  FILTER NOT EXISTS {
    ?decisionActivity <%s> ?postponed .
    ?publicationActivity <%s> ?meeting ;
                         <%s> ?startTime .
  }
}`,
		sparql.EscapeURI(subcaseURI),
		sparql.EscapeURI(domain.ConceptDecisionPostponed),
		domain.PredTakesPlaceDuring,
		domain.PredGeneratesItem,
		domain.PredHasPart,
		domain.PredAgendaFor,
		domain.PredSubject,
		domain.PredHasDecision,
		domain.PredDecisionResult,
		domain.PredInternalDecisionPublication,
		domain.PredStartedAtTime,
	)

	onAgenda, err := r.store.Ask(ctx, query)
	if err != nil {
		return false, errors.Wrap(err, "repository.SubcaseRepository.IsSubcaseOnAgenda: ask failed")
	}
	return onAgenda, nil
}
