package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/domain"
)

// SubmitRequest puts one subcase on the current agenda of a meeting.
// SubmissionID is optional; when set, the preliminary news item and decision
// created at submission time get relinked to the new agenda item.
type SubmitRequest struct {
	MeetingID    string
	SubcaseURI   string
	SubmissionID string
}

// SubmitResult identifies the created agenda item.
type SubmitResult struct {
	AgendaItemID  string
	AgendaItemURI string
}

// Submitter runs the whole submit operation: guards, lock acquisition,
// record synthesis, the persistence saga and the resequencing afterwards.
type Submitter struct {
	meetings    MeetingRepository
	subcases    SubcaseRepository
	fetcher     ResourceFetcher
	submissions SubmissionRepository
	saga        *Saga
	sequencer   *Sequencer
	locks       LockTable

	// postWriteDelay gives the store's change propagation a head start
	// before the response releases the caller to re-read.
	postWriteDelay time.Duration

	clock func() time.Time
	newID func() string
	log   *slog.Logger
}

func NewSubmitter(
	meetings MeetingRepository,
	subcases SubcaseRepository,
	fetcher ResourceFetcher,
	submissions SubmissionRepository,
	saga *Saga,
	sequencer *Sequencer,
	locks LockTable,
	postWriteDelay time.Duration,
	log *slog.Logger,
) *Submitter {
	if log == nil {
		log = slog.Default()
	}
	return &Submitter{
		meetings:       meetings,
		subcases:       subcases,
		fetcher:        fetcher,
		submissions:    submissions,
		saga:           saga,
		sequencer:      sequencer,
		locks:          locks,
		postWriteDelay: postWriteDelay,
		clock:          time.Now,
		newID:          uuid.NewString,
		log:            log,
	}
}

// Submit places the subcase on the meeting's current agenda.
func (s *Submitter) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	ctx, span := tracer.Start(ctx, "Usecase.Submitter.Submit")
	defer span.End()

	closed, err := s.meetings.IsMeetingClosed(ctx, req.MeetingID)
	if err != nil {
		err = errors.Wrap(err, "Usecase.Submitter.Submit: meeting check failed")
		span.RecordError(err)
		return nil, err
	}
	if closed {
		return nil, domain.PreconditionError{
			Reason: "this meeting is already closed, the provided subcase cannot be submitted to it",
		}
	}

	onAgenda, err := s.subcases.IsSubcaseOnAgenda(ctx, req.SubcaseURI)
	if err != nil {
		err = errors.Wrap(err, "Usecase.Submitter.Submit: subcase check failed")
		span.RecordError(err)
		return nil, err
	}
	if onAgenda {
		return nil, domain.PreconditionError{
			Reason: "the subcase is already submitted on an agenda and is not postponed, cannot resubmit it",
		}
	}

	subcaseKey := "subcase:" + req.SubcaseURI
	if err := s.acquire(ctx, subcaseKey); err != nil {
		span.RecordError(err)
		return nil, err
	}
	defer s.release(ctx, subcaseKey)

	related, err := s.fetcher.RelatedResources(ctx, req.MeetingID, req.SubcaseURI)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	agendaKey := "agenda:" + related.Agenda.URI
	if err := s.acquire(ctx, agendaKey); err != nil {
		span.RecordError(err)
		return nil, err
	}
	defer s.release(ctx, agendaKey)

	now := s.clock()
	synthesis := SynthesizeSubmissions(req.SubcaseURI, related.Submissions, now, s.newID)
	rs := s.assembleRecords(req, related, synthesis, now)

	if err := s.saga.Run(ctx, rs); err != nil {
		span.RecordError(err)
		return nil, err
	}

	// Announcement positions are driven by submission order, not mandatee
	// seniority; they are never resequenced.
	if rs.AgendaItem.Type != domain.ConceptItemTypeAnnouncement {
		if err := s.sequencer.Resequence(ctx, related.Agenda.URI, rs.AgendaItem.Type); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	if req.SubmissionID != "" {
		if err := s.submissions.RelinkPreliminary(ctx, rs.AgendaItem.URI, req.SubmissionID); err != nil {
			err = errors.Wrap(err, "Usecase.Submitter.Submit: relinking preliminary records failed")
			span.RecordError(err)
			return nil, err
		}
	}

	s.waitForPropagation(ctx)

	s.log.Info("subcase submitted",
		slog.String("meeting", req.MeetingID),
		slog.String("subcase", req.SubcaseURI),
		slog.String("agendaitem", rs.AgendaItem.ID))
	return &SubmitResult{
		AgendaItemID:  rs.AgendaItem.ID,
		AgendaItemURI: rs.AgendaItem.URI,
	}, nil
}

func (s *Submitter) assembleRecords(req SubmitRequest, related *RelatedResources, synthesis Synthesis, now time.Time) *RecordSet {
	announcement := related.Subcase.ItemType == domain.ConceptItemTypeAnnouncement

	agendaActivityID := s.newID()
	agendaActivity := domain.AgendaActivity{
		URI:         domain.BaseAgendaActivity + agendaActivityID,
		ID:          agendaActivityID,
		StartDate:   now,
		Subcase:     req.SubcaseURI,
		Submissions: synthesis.Linked(),
	}

	decisionActivityID := s.newID()
	decisionActivity := domain.DecisionActivity{
		URI:       domain.BaseDecisionActivity + decisionActivityID,
		ID:        decisionActivityID,
		StartDate: related.Meeting.PlannedStart,
		Subcase:   req.SubcaseURI,
		Secretary: related.Meeting.Secretary,
	}
	if announcement {
		decisionActivity.ResultCode = domain.ConceptDecisionAcknowledged
	}

	treatmentID := s.newID()
	treatment := domain.Treatment{
		URI:              domain.BaseTreatment + treatmentID,
		ID:               treatmentID,
		Created:          now,
		Modified:         now,
		DecisionActivity: decisionActivity.URI,
	}

	position := 1
	for _, item := range related.Items {
		if item.Position >= position {
			position = item.Position + 1
		}
	}

	agendaItemID := s.newID()
	agendaItem := domain.AgendaItem{
		URI:            domain.BaseAgendaItem + agendaItemID,
		ID:             agendaItemID,
		Created:        now,
		Agenda:         related.Agenda.URI,
		Position:       position,
		Title:          related.Subcase.Title,
		ShortTitle:     related.Subcase.ShortTitle,
		FormallyOK:     domain.ConceptFormallyNotYetOK,
		Type:           related.Subcase.ItemType,
		Mandatees:      related.Subcase.Mandatees,
		Pieces:         synthesis.AllPieces,
		LinkedPieces:   related.Subcase.LinkedPieces,
		AgendaActivity: agendaActivity.URI,
		Treatment:      treatment.URI,
	}

	var newsItem *domain.NewsItem
	if announcement {
		title := agendaItem.ShortTitle
		if title == "" {
			title = agendaItem.Title
		}
		newsItemID := s.newID()
		newsItem = &domain.NewsItem{
			URI:          domain.BaseNewsItem + newsItemID,
			ID:           newsItemID,
			Treatment:    treatment.URI,
			Title:        title,
			HTMLContent:  agendaItem.Title,
			Finished:     true,
			InNewsletter: true,
		}
	}

	return &RecordSet{
		Agenda:           related.Agenda,
		SignFlows:        related.SignFlows,
		NewSubmission:    synthesis.New,
		NewsItem:         newsItem,
		AgendaActivity:   agendaActivity,
		DecisionActivity: decisionActivity,
		Treatment:        treatment,
		AgendaItem:       agendaItem,
	}
}

func (s *Submitter) acquire(ctx context.Context, key string) error {
	ok, err := s.locks.TryAcquire(ctx, key)
	if err != nil {
		return errors.Wrapf(err, "Usecase.Submitter.acquire: lock %s failed", key)
	}
	if !ok {
		return domain.ConflictError{Key: key}
	}
	return nil
}

func (s *Submitter) release(ctx context.Context, key string) {
	if err := s.locks.Release(ctx, key); err != nil {
		s.log.Error("releasing lock failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

func (s *Submitter) waitForPropagation(ctx context.Context) {
	if s.postWriteDelay <= 0 {
		return
	}
	timer := time.NewTimer(s.postWriteDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
