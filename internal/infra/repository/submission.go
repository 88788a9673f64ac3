package repository

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/domain"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/sparql"
)

// SubmissionRepository works on the submission portal's records, which live
// in their own named graph outside the authorization proxy's reach.
type SubmissionRepository struct {
	store Store
}

func NewSubmissionRepository(store Store) *SubmissionRepository {
	return &SubmissionRepository{store: store}
}

// RelinkPreliminary repoints the portal submission's preliminary news item
// and decision report at whatever the new agenda item now carries. Both
// edges are optional; a submission without them is left untouched.
func (r *SubmissionRepository) RelinkPreliminary(ctx context.Context, agendaitemURI, submissionID string) error {
	update := fmt.Sprintf(`DELETE {
  GRAPH <%[3]s> {
    ?submission <%[5]s> ?anyNewsItem .
    ?submission <%[6]s> ?anyDecisionReport .
  }
}
INSERT {
  GRAPH <%[3]s> {
    ?submission <%[5]s> ?newsItem .
    ?submission <%[6]s> ?decisionReport .
  }
}
WHERE {
  GRAPH <%[3]s> {
    ?submission a <%[7]s> ;
                <%[8]s> %[2]s ;
                <%[9]s> ?subcase .
    OPTIONAL { ?submission <%[5]s> ?anyNewsItem . }
    OPTIONAL { ?submission <%[6]s> ?anyDecisionReport . }
  }
  GRAPH <%[4]s> {
    ?agendaActivity <%[10]s> ?subcase ;
                    <%[11]s> %[1]s .
    ?treatment <%[12]s> %[1]s .
    OPTIONAL {
      ?treatment <%[13]s> ?decisionActivity .
      ?decisionReport <%[14]s> ?decisionActivity .
    }
    OPTIONAL {
      ?newsItem <%[15]s> ?treatment .
    }
  }
}`,
		sparql.EscapeURI(agendaitemURI),
		sparql.EscapeString(submissionID),
		domain.GraphSubmission,
		domain.GraphKanselarij,
		domain.PredPortalPreliminaryNews,
		domain.PredPortalPreliminaryReport,
		domain.TypePortalSubmission,
		domain.PredUUID,
		domain.PredPortalSubmittedFor,
		domain.PredTakesPlaceDuring,
		domain.PredGeneratesItem,
		domain.PredSubject,
		domain.PredHasDecision,
		domain.PredReportDescribesDecision,
		domain.PredWasDerivedFrom,
	)

	if err := r.store.Update(ctx, update); err != nil {
		return errors.Wrap(err, "repository.SubmissionRepository.RelinkPreliminary: update failed")
	}
	return nil
}
