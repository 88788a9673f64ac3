package usecase

import (
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/domain"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/sparql"
)

// recordStatements renders the full record set as statement patterns. For a
// write the agenda item position is a literal and piece edges are inlined;
// for a read-back check the position is left as a variable (a concurrent
// resequencing may have moved it) and piece edges are checked separately in
// batches.
func recordStatements(rs *RecordSet, forWrite bool) []sparql.Statement {
	position := sparql.Var("anyNumber")
	if forWrite {
		position = sparql.Int(rs.AgendaItem.Position)
	}

	statements := agendaActivityStatements(rs.AgendaActivity)
	statements = append(statements, decisionActivityStatements(rs.DecisionActivity)...)
	statements = append(statements, treatmentStatements(rs.Treatment)...)
	statements = append(statements, agendaItemStatements(rs.AgendaItem, forWrite, position)...)
	if rs.NewSubmission != nil {
		statements = append(statements, submissionStatements(*rs.NewSubmission, forWrite)...)
	}
	if rs.NewsItem != nil {
		statements = append(statements, newsItemStatements(*rs.NewsItem)...)
	}
	return statements
}

func agendaActivityStatements(activity domain.AgendaActivity) []sparql.Statement {
	subject := sparql.IRI(activity.URI)
	statements := []sparql.Statement{
		sparql.Pattern(subject, sparql.IRI(domain.PredRDFType), sparql.IRI(domain.TypeActivity)),
		sparql.Pattern(subject, sparql.IRI(domain.PredRDFType), sparql.IRI(domain.TypeAgendaActivity)),
		sparql.Pattern(subject, sparql.IRI(domain.PredUUID), sparql.Str(activity.ID)),
		sparql.Pattern(subject, sparql.IRI(domain.PredStartDate), sparql.DateTime(activity.StartDate)),
		sparql.Pattern(subject, sparql.IRI(domain.PredTakesPlaceDuring), sparql.IRI(activity.Subcase)),
	}
	for _, submission := range activity.Submissions {
		statements = append(statements, sparql.Pattern(
			subject, sparql.IRI(domain.PredWasInformedBy), sparql.IRI(submission.URI)))
	}
	return statements
}

func decisionActivityStatements(activity domain.DecisionActivity) []sparql.Statement {
	subject := sparql.IRI(activity.URI)
	statements := []sparql.Statement{
		sparql.Pattern(subject, sparql.IRI(domain.PredRDFType), sparql.IRI(domain.TypeActivity)),
		sparql.Pattern(subject, sparql.IRI(domain.PredRDFType), sparql.IRI(domain.TypeDecisionActivity)),
		sparql.Pattern(subject, sparql.IRI(domain.PredUUID), sparql.Str(activity.ID)),
	}
	if activity.Secretary != "" {
		statements = append(statements, sparql.Pattern(
			subject, sparql.IRI(domain.PredWasAssociatedWith), sparql.IRI(activity.Secretary)))
	}
	if activity.ResultCode != "" {
		statements = append(statements, sparql.Pattern(
			subject, sparql.IRI(domain.PredDecisionResult), sparql.IRI(activity.ResultCode)))
	}
	statements = append(statements,
		sparql.Pattern(subject, sparql.IRI(domain.PredActivityStartDate), sparql.DateTime(activity.StartDate)),
		sparql.Pattern(subject, sparql.IRI(domain.PredDecisionDuring), sparql.IRI(activity.Subcase)),
	)
	return statements
}

func treatmentStatements(treatment domain.Treatment) []sparql.Statement {
	subject := sparql.IRI(treatment.URI)
	return []sparql.Statement{
		sparql.Pattern(subject, sparql.IRI(domain.PredRDFType), sparql.IRI(domain.TypeTreatment)),
		sparql.Pattern(subject, sparql.IRI(domain.PredUUID), sparql.Str(treatment.ID)),
		sparql.Pattern(subject, sparql.IRI(domain.PredCreated), sparql.DateTime(treatment.Created)),
		sparql.Pattern(subject, sparql.IRI(domain.PredModified), sparql.DateTime(treatment.Modified)),
		sparql.Pattern(subject, sparql.IRI(domain.PredHasDecision), sparql.IRI(treatment.DecisionActivity)),
	}
}

func agendaItemStatements(item domain.AgendaItem, includePieces bool, position sparql.Node) []sparql.Statement {
	subject := sparql.IRI(item.URI)
	statements := []sparql.Statement{
		sparql.Pattern(subject, sparql.IRI(domain.PredRDFType), sparql.IRI(domain.TypeAgendaItem)),
		sparql.Pattern(subject, sparql.IRI(domain.PredUUID), sparql.Str(item.ID)),
		sparql.Pattern(subject, sparql.IRI(domain.PredCreated), sparql.DateTime(item.Created)),
		sparql.Pattern(subject, sparql.IRI(domain.PredPosition), position),
		sparql.Pattern(subject, sparql.IRI(domain.PredShortTitle), sparql.Str(item.ShortTitle)),
	}
	if item.Title != "" {
		statements = append(statements, sparql.Pattern(
			subject, sparql.IRI(domain.PredTitle), sparql.Str(item.Title)))
	}
	statements = append(statements, sparql.Pattern(
		subject, sparql.IRI(domain.PredFormallyOK), sparql.IRI(item.FormallyOK)))
	for _, mandatee := range item.Mandatees {
		statements = append(statements, sparql.Pattern(
			subject, sparql.IRI(domain.PredItemMandatee), sparql.IRI(mandatee)))
	}
	if includePieces {
		for _, piece := range item.Pieces {
			statements = append(statements, sparql.Pattern(
				subject, sparql.IRI(domain.PredScheduledPiece), sparql.IRI(piece)))
		}
		for _, piece := range item.LinkedPieces {
			statements = append(statements, sparql.Pattern(
				subject, sparql.IRI(domain.PredItemLinkedPiece), sparql.IRI(piece)))
		}
	}
	statements = append(statements,
		sparql.Pattern(subject, sparql.IRI(domain.PredIsApprovalItem), sparql.Bool(item.IsApproval)),
		sparql.Pattern(subject, sparql.IRI(domain.PredItemType), sparql.IRI(item.Type)),
		sparql.Pattern(sparql.IRI(item.Treatment), sparql.IRI(domain.PredSubject), subject),
		sparql.Pattern(sparql.IRI(item.AgendaActivity), sparql.IRI(domain.PredGeneratesItem), subject),
		sparql.Pattern(sparql.IRI(item.Agenda), sparql.IRI(domain.PredHasPart), subject),
	)
	return statements
}

func submissionStatements(submission domain.SubmissionActivity, includePieces bool) []sparql.Statement {
	subject := sparql.IRI(submission.URI)
	statements := []sparql.Statement{
		sparql.Pattern(subject, sparql.IRI(domain.PredRDFType), sparql.IRI(domain.TypeActivity)),
		sparql.Pattern(subject, sparql.IRI(domain.PredRDFType), sparql.IRI(domain.TypeSubmissionActivity)),
		sparql.Pattern(subject, sparql.IRI(domain.PredUUID), sparql.Str(submission.ID)),
		sparql.Pattern(subject, sparql.IRI(domain.PredActivityStartDate), sparql.DateTime(submission.StartDate)),
	}
	if includePieces {
		for _, piece := range submission.Pieces {
			statements = append(statements, sparql.Pattern(
				subject, sparql.IRI(domain.PredGenerated), sparql.IRI(piece)))
		}
	}
	statements = append(statements, sparql.Pattern(
		subject, sparql.IRI(domain.PredSubmissionDuring), sparql.IRI(submission.Subcase)))
	return statements
}

func newsItemStatements(newsItem domain.NewsItem) []sparql.Statement {
	subject := sparql.IRI(newsItem.URI)
	statements := []sparql.Statement{
		sparql.Pattern(subject, sparql.IRI(domain.PredRDFType), sparql.IRI(domain.TypeNewsItem)),
		sparql.Pattern(subject, sparql.IRI(domain.PredUUID), sparql.Str(newsItem.ID)),
		sparql.Pattern(subject, sparql.IRI(domain.PredWasDerivedFrom), sparql.IRI(newsItem.Treatment)),
		sparql.Pattern(subject, sparql.IRI(domain.PredTitle), sparql.Str(newsItem.Title)),
	}
	if newsItem.HTMLContent != "" {
		statements = append(statements, sparql.Pattern(
			subject, sparql.IRI(domain.PredHTMLContent), sparql.Str(newsItem.HTMLContent)))
	}
	statements = append(statements,
		sparql.Pattern(subject, sparql.IRI(domain.PredFinished), sparql.Bool(newsItem.Finished)),
		sparql.Pattern(subject, sparql.IRI(domain.PredInNewsletter), sparql.Bool(newsItem.InNewsletter)),
	)
	return statements
}
