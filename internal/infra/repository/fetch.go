package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/domain"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/sparql"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/usecase"
)

// FetchRepository loads everything a submit operation needs in one CONSTRUCT
// round trip: the meeting and its current agenda, the subcase, its submission
// history with piece sets, the sign flows on those pieces, and the positions
// of agenda items in the subcase's category.
type FetchRepository struct {
	store Store
}

func NewFetchRepository(store Store) *FetchRepository {
	return &FetchRepository{store: store}
}

func (r *FetchRepository) RelatedResources(ctx context.Context, meetingID, subcaseURI string) (*usecase.RelatedResources, error) {
	triples, err := r.store.Construct(ctx, relatedResourcesQuery(meetingID, subcaseURI))
	if err != nil {
		return nil, errors.Wrap(err, "repository.FetchRepository.RelatedResources: construct failed")
	}

	resources := sparql.TriplesToResources(triples, map[string]string{
		domain.PredRDFType:            "a",
		domain.PredGenerated:          "pieces",
		"^" + domain.PredWasInformedBy: "agendaActivity",
		domain.PredSubmissionDuring:   "subcase",
		domain.PredSubcaseLinkedPiece: "linkedPieces",
		domain.PredSubcaseMandatee:    "mandatees",
		domain.PredSubcaseItemType:    "agendaitemType",
		domain.PredTitle:              "title",
		domain.PredAlternative:        "shortTitle",
		domain.PredUUID:               "id",
		domain.PredPlannedStart:       "plannedStart",
		domain.PredMeetingSecretary:   "secretary",
		domain.PredAgendaFor:          "meeting",
		domain.PredSignHasDecision:    "decisionActivity",
		domain.PredPosition:           "number",
	})
	if len(resources) == 0 {
		return nil, domain.NotFoundError{
			Resource: "the necessary data to put the provided subcase on this meeting",
		}
	}

	meetings := sparql.FilterByType(resources, domain.TypeMeeting)
	agendas := sparql.FilterByType(resources, domain.TypeAgenda)
	subcases := sparql.FilterByType(resources, domain.TypeSubcase)
	if len(meetings) == 0 || len(agendas) == 0 || len(subcases) == 0 {
		return nil, domain.NotFoundError{
			Resource: "the necessary data to put the provided subcase on this meeting",
		}
	}

	meeting := meetings[0]
	agenda := agendas[0]
	subcase := subcases[0]

	related := &usecase.RelatedResources{
		Meeting: domain.Meeting{
			URI:          meeting.URI,
			ID:           meeting.Field("id").String(),
			PlannedStart: timeValue(meeting.Field("plannedStart").String()),
			Secretary:    meeting.Field("secretary").String(),
		},
		Agenda: domain.Agenda{
			URI:     agenda.URI,
			Meeting: agenda.Field("meeting").String(),
		},
		Subcase: domain.Subcase{
			URI:          subcase.URI,
			Title:        subcase.Field("title").String(),
			ShortTitle:   subcase.Field("shortTitle").String(),
			ItemType:     subcase.Field("agendaitemType").String(),
			Mandatees:    subcase.Field("mandatees").Strings(),
			LinkedPieces: subcase.Field("linkedPieces").Strings(),
		},
	}

	for _, resource := range sparql.FilterByType(resources, domain.TypeSubmissionActivity) {
		related.Submissions = append(related.Submissions, domain.SubmissionActivity{
			URI:            resource.URI,
			Subcase:        resource.Field("subcase").String(),
			Pieces:         resource.Field("pieces").Strings(),
			AgendaActivity: resource.Field("agendaActivity").String(),
		})
	}
	for _, resource := range sparql.FilterByType(resources, domain.TypeAgendaItem) {
		related.Items = append(related.Items, domain.AgendaItem{
			URI:      resource.URI,
			Position: intValue(resource.Field("number").One()),
		})
	}
	for _, resource := range sparql.FilterByType(resources, domain.TypeSignFlow) {
		related.SignFlows = append(related.SignFlows, domain.SignFlow{
			URI:              resource.URI,
			DecisionActivity: resource.Field("decisionActivity").String(),
		})
	}
	return related, nil
}

func relatedResourcesQuery(meetingID, subcaseURI string) string {
	return fmt.Sprintf(`CONSTRUCT {
  ?meeting a ?meetingType ;
    <%[3]s> ?meetingId ;
    <%[4]s> ?plannedStart ;
    <%[5]s> ?secretary .
  ?agenda a ?agendaType ;
    <%[6]s> ?meeting .

  ?subcase a ?subcaseType ;
    <%[7]s> ?shortTitle ;
    <%[8]s> ?agendaItemType ;
    <%[9]s> ?title ;
    <%[10]s> ?mandatee ;
    <%[11]s> ?linkedPiece .

  ?submissionActivity <%[12]s> ?subcase ;
    <%[13]s> ?piece ;
    a ?submissionActivityType .

  ?agendaActivity <%[14]s> ?submissionActivity .

  ?signFlow a ?signFlowType ;
    <%[15]s> ?decisionActivity .
  ?agendaitem a ?_agendaitemType ;
    <%[16]s> ?agendaitemNumber .
}
WHERE {
  VALUES (?meetingId ?subcase)
  {
    (%[1]s %[2]s)
  }
  ?meeting a ?meetingType ;
           <%[3]s> ?meetingId ;
           <%[4]s> ?plannedStart ;
           ^<%[6]s> ?agenda ;
           <%[5]s> ?secretary .
  FILTER NOT EXISTS { ?newerAgenda <%[17]s> ?agenda }
  ?agenda a ?agendaType .

  ?subcase a ?subcaseType ;
           <%[7]s> ?shortTitle ;
           <%[8]s> ?agendaItemType .
  OPTIONAL { ?subcase <%[9]s> ?title }
  OPTIONAL { ?subcase <%[10]s> ?mandatee }
  OPTIONAL { ?subcase <%[11]s> ?linkedPiece }
  OPTIONAL {
    ?submissionActivity <%[12]s> ?subcase ;
                        a ?submissionActivityType .
    ?submissionActivity <%[13]s> ?piece .
    OPTIONAL { ?agendaActivity <%[14]s> ?submissionActivity }
    OPTIONAL {
      ?signMarkingActivity <%[18]s> ?piece ;
        <%[19]s> ?signSubcase .
      ?signFlow a ?signFlowType ;
        <%[20]s> ?signSubcase ;
        <%[15]s> ?decisionActivity .
    }
  }
  OPTIONAL {
    ?agenda <%[21]s> ?agendaitem .
    ?agendaitem a ?_agendaitemType ;
      <%[22]s> ?agendaItemType ;
      <%[16]s> ?agendaitemNumber .
  }
}`,
		sparql.EscapeString(meetingID),
		sparql.EscapeURI(subcaseURI),
		domain.PredUUID,
		domain.PredPlannedStart,
		domain.PredMeetingSecretary,
		domain.PredAgendaFor,
		domain.PredAlternative,
		domain.PredSubcaseItemType,
		domain.PredTitle,
		domain.PredSubcaseMandatee,
		domain.PredSubcaseLinkedPiece,
		domain.PredSubmissionDuring,
		domain.PredGenerated,
		domain.PredWasInformedBy,
		domain.PredSignHasDecision,
		domain.PredPosition,
		domain.PredWasRevisionOf,
		domain.PredMarkedPiece,
		domain.PredMarkingDuring,
		domain.PredSignThroughFlow,
		domain.PredHasPart,
		domain.PredItemType,
	)
}

func timeValue(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}
