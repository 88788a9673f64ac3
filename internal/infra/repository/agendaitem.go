package repository

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/domain"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/sparql"
)

type AgendaItemRepository struct {
	store Store
}

func NewAgendaItemRepository(store Store) *AgendaItemRepository {
	return &AgendaItemRepository{store: store}
}

// PreliminaryDecision returns the postponed or retracted result code on the
// item's decision activity, or nil when neither is set. The result concepts
// themselves live in the public graph.
func (r *AgendaItemRepository) PreliminaryDecision(ctx context.Context, agendaitemID string) (*domain.DecisionResult, error) {
	query := fmt.Sprintf(`SELECT (?decisionResultCode AS ?uri) ?id
WHERE {
  VALUES ?decisionResultCode {
    %[1]s
    %[2]s
  }
  GRAPH <%[4]s> {
    ?agendaitem a <%[5]s> ;
                <%[6]s> %[3]s .
    ?agendaitemTreatment a <%[7]s> ;
                         <%[8]s> ?agendaitem ;
                         <%[9]s> ?decisionActivity .
    ?decisionActivity <%[10]s> ?decisionResultCode .
  }
  GRAPH <%[11]s> {
    ?decisionResultCode <%[6]s> ?id .
  }
} LIMIT 1`,
		sparql.EscapeURI(domain.ConceptDecisionPostponed),
		sparql.EscapeURI(domain.ConceptDecisionRetracted),
		sparql.EscapeString(agendaitemID),
		domain.GraphKanselarij,
		domain.TypeAgendaItem,
		domain.PredUUID,
		domain.TypeTreatment,
		domain.PredSubject,
		domain.PredHasDecision,
		domain.PredDecisionResult,
		domain.GraphPublic,
	)

	resp, err := r.store.Select(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "repository.AgendaItemRepository.PreliminaryDecision: select failed")
	}
	if len(resp.Results.Bindings) == 0 {
		return nil, nil
	}
	binding := resp.Results.Bindings[0]
	return &domain.DecisionResult{
		URI: binding["uri"].Value,
		ID:  binding["id"].Value,
	}, nil
}
