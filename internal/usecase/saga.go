package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/domain"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/sparql"
)

var tracer = otel.Tracer("usecase")

// SagaState tracks one persist attempt through its lifecycle.
type SagaState int

const (
	StatePrepared SagaState = iota
	StateWritten
	StateVerified
	StateVerifyFailed
	StateCompensated
)

func (s SagaState) String() string {
	switch s {
	case StatePrepared:
		return "PREPARED"
	case StateWritten:
		return "WRITTEN"
	case StateVerified:
		return "VERIFIED"
	case StateVerifyFailed:
		return "VERIFY_FAILED"
	case StateCompensated:
		return "COMPENSATED"
	default:
		return "UNKNOWN"
	}
}

// RecordSet is the full set of records one submit operation persists. All
// ids are pre-minted and all fields computed before the saga starts; Agenda
// and SignFlows are pre-existing records whose edges get rewritten.
type RecordSet struct {
	Agenda           domain.Agenda
	SignFlows        []domain.SignFlow
	NewSubmission    *domain.SubmissionActivity
	NewsItem         *domain.NewsItem
	AgendaActivity   domain.AgendaActivity
	DecisionActivity domain.DecisionActivity
	Treatment        domain.Treatment
	AgendaItem       domain.AgendaItem
}

// Saga writes a record set to the store, reads it back to verify, and
// deletes every newly created record when verification fails. The store has
// no multi-statement transactions; this is the closest approximation of
// all-or-nothing the protocol allows.
type Saga struct {
	store       GraphStore
	batchSize   int
	singleQuery bool
	clock       func() time.Time
	log         *slog.Logger
}

func NewSaga(store GraphStore, batchSize int, singleQuery bool, log *slog.Logger) *Saga {
	if batchSize <= 0 {
		batchSize = 25
	}
	if log == nil {
		log = slog.Default()
	}
	return &Saga{
		store:       store,
		batchSize:   batchSize,
		singleQuery: singleQuery,
		clock:       time.Now,
		log:         log,
	}
}

// Run drives the state machine PREPARED → WRITTEN → VERIFIED, compensating
// on any verification failure. After a successful compensation the returned
// error is a retryable domain.VerificationError; a failed compensation
// returns domain.CompensationError and must not be retried.
func (s *Saga) Run(ctx context.Context, rs *RecordSet) error {
	ctx, span := tracer.Start(ctx, "Usecase.Saga.Run")
	defer span.End()

	state := StatePrepared
	wrote, err := s.persist(ctx, rs)
	if err != nil && !wrote {
		// Nothing landed in the store; plain abort, no compensation.
		err = errors.Wrap(err, "Usecase.Saga.Run: persist failed before any write")
		span.RecordError(err)
		return err
	}
	state = StateWritten

	var verified bool
	if err == nil {
		verified, err = s.verify(ctx, rs)
	}
	if err == nil && verified {
		state = StateVerified
		s.log.Info("record set persisted and verified",
			slog.String("agendaitem", rs.AgendaItem.URI),
			slog.String("state", state.String()))
		return nil
	}

	state = StateVerifyFailed
	if err != nil {
		span.RecordError(err)
	}
	s.log.Warn("record verification failed, compensating",
		slog.String("agendaitem", rs.AgendaItem.URI),
		slog.String("state", state.String()))

	if cerr := s.compensate(ctx, rs); cerr != nil {
		span.RecordError(cerr)
		s.log.Error("compensation failed, store may hold orphaned records",
			slog.String("agendaitem", rs.AgendaItem.URI),
			slog.String("error", cerr.Error()))
		return cerr
	}
	state = StateCompensated
	s.log.Info("compensation complete",
		slog.String("agendaitem", rs.AgendaItem.URI),
		slog.String("state", state.String()))
	return domain.VerificationError{Cause: err}
}

// persist writes the record set, either as one combined conditioned update
// or as a series of independent writes. The boolean reports whether any
// statement may have reached the store.
func (s *Saga) persist(ctx context.Context, rs *RecordSet) (bool, error) {
	if s.singleQuery {
		update := s.bulkUpdate(rs)
		if err := s.store.Update(ctx, update.String()); err != nil {
			return false, errors.Wrap(err, "Usecase.Saga.persist: bulk write failed")
		}
		return true, nil
	}

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"agenda activity", func(ctx context.Context) error {
			return s.insert(ctx, agendaActivityStatements(rs.AgendaActivity))
		}},
		{"decision activity", func(ctx context.Context) error {
			return s.insert(ctx, decisionActivityStatements(rs.DecisionActivity))
		}},
		{"treatment", func(ctx context.Context) error {
			return s.insert(ctx, treatmentStatements(rs.Treatment))
		}},
		{"agendaitem", func(ctx context.Context) error {
			if err := s.insert(ctx, agendaItemStatements(rs.AgendaItem, false, sparql.Int(rs.AgendaItem.Position))); err != nil {
				return err
			}
			if err := s.persistPieces(ctx, rs.AgendaItem.URI, rs.AgendaItem.Pieces, domain.PredScheduledPiece); err != nil {
				return err
			}
			return s.persistPieces(ctx, rs.AgendaItem.URI, rs.AgendaItem.LinkedPieces, domain.PredItemLinkedPiece)
		}},
		{"submission activity", func(ctx context.Context) error {
			if rs.NewSubmission == nil {
				return nil
			}
			if err := s.insert(ctx, submissionStatements(*rs.NewSubmission, false)); err != nil {
				return err
			}
			return s.persistPieces(ctx, rs.NewSubmission.URI, rs.NewSubmission.Pieces, domain.PredGenerated)
		}},
		{"news item", func(ctx context.Context) error {
			if rs.NewsItem == nil {
				return nil
			}
			return s.insert(ctx, newsItemStatements(*rs.NewsItem))
		}},
		{"sign flows and agenda timestamp", func(ctx context.Context) error {
			return s.store.Update(ctx, s.retargetUpdate(rs).String())
		}},
	}

	wrote := false
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			return wrote, errors.Wrapf(err, "Usecase.Saga.persist: writing %s failed", step.name)
		}
		wrote = true
	}
	return wrote, nil
}

func (s *Saga) insert(ctx context.Context, statements []sparql.Statement) error {
	update := sparql.NewUpdate().Insert(statements...)
	return s.store.Update(ctx, update.String())
}

// bulkUpdate combines every insert with the conditioned sign-flow retarget
// and agenda timestamp bump in one call. The WHERE clause pins the agenda's
// current modified value, so the write fails if it moved since the read.
func (s *Saga) bulkUpdate(rs *RecordSet) *sparql.Update {
	update := sparql.NewUpdate()
	update.Insert(recordStatements(rs, true)...)
	s.conditionOnCurrentEdges(update, rs)
	return update
}

// retargetUpdate is the sequential-mode tail write: only the sign-flow
// decision edges and the agenda's modified timestamp.
func (s *Saga) retargetUpdate(rs *RecordSet) *sparql.Update {
	update := sparql.NewUpdate()
	s.conditionOnCurrentEdges(update, rs)
	return update
}

func (s *Saga) conditionOnCurrentEdges(update *sparql.Update, rs *RecordSet) {
	agenda := sparql.IRI(rs.Agenda.URI)
	modified := sparql.IRI(domain.PredModified)
	oldModified := sparql.Var("oldModified")

	update.Delete(sparql.Pattern(agenda, modified, oldModified))
	for _, flow := range rs.SignFlows {
		update.Delete(sparql.Pattern(
			sparql.IRI(flow.URI),
			sparql.IRI(domain.PredSignHasDecision),
			sparql.IRI(flow.DecisionActivity)))
	}

	update.Insert(sparql.Pattern(agenda, modified, sparql.DateTime(s.clock())))
	for _, flow := range rs.SignFlows {
		update.Insert(sparql.Pattern(
			sparql.IRI(flow.URI),
			sparql.IRI(domain.PredSignHasDecision),
			sparql.IRI(rs.DecisionActivity.URI)))
	}

	update.Where(sparql.Pattern(agenda, modified, oldModified))
}

func (s *Saga) persistPieces(ctx context.Context, resourceURI string, pieces []string, predicate string) error {
	for _, batch := range batchStrings(pieces, s.batchSize) {
		statements := make([]sparql.Statement, 0, len(batch))
		for _, piece := range batch {
			statements = append(statements, sparql.Pattern(
				sparql.IRI(resourceURI), sparql.IRI(predicate), sparql.IRI(piece)))
		}
		if err := s.insert(ctx, statements); err != nil {
			return err
		}
	}
	return nil
}

// verify re-asks the store for every written statement. Piece edges are
// checked in batches to bound query size for dossiers with hundreds of
// pieces.
func (s *Saga) verify(ctx context.Context, rs *RecordSet) (bool, error) {
	ok, err := s.store.Ask(ctx, sparql.Ask(recordStatements(rs, false)...))
	if err != nil {
		return false, errors.Wrap(err, "Usecase.Saga.verify: record check failed")
	}
	if !ok {
		return false, nil
	}

	pieceChecks := []struct {
		uri       string
		pieces    []string
		predicate string
	}{
		{rs.AgendaItem.URI, rs.AgendaItem.Pieces, domain.PredScheduledPiece},
		{rs.AgendaItem.URI, rs.AgendaItem.LinkedPieces, domain.PredItemLinkedPiece},
	}
	if rs.NewSubmission != nil {
		pieceChecks = append(pieceChecks, struct {
			uri       string
			pieces    []string
			predicate string
		}{rs.NewSubmission.URI, rs.NewSubmission.Pieces, domain.PredGenerated})
	}

	for _, check := range pieceChecks {
		ok, err := s.verifyPieces(ctx, check.uri, check.pieces, check.predicate)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (s *Saga) verifyPieces(ctx context.Context, resourceURI string, pieces []string, predicate string) (bool, error) {
	for _, batch := range batchStrings(pieces, s.batchSize) {
		statements := make([]sparql.Statement, 0, len(batch))
		for _, piece := range batch {
			statements = append(statements, sparql.Pattern(
				sparql.IRI(resourceURI), sparql.IRI(predicate), sparql.IRI(piece)))
		}
		ok, err := s.store.Ask(ctx, sparql.Ask(statements...))
		if err != nil {
			return false, errors.Wrap(err, "Usecase.Saga.verifyPieces: batch check failed")
		}
		if !ok {
			// One missing batch fails the whole verification.
			return false, nil
		}
	}
	return true, nil
}

// compensate removes every record created in this attempt, as subject and as
// object of any triple. Pre-existing records lose only their edges toward
// the new ones.
func (s *Saga) compensate(ctx context.Context, rs *RecordSet) error {
	records := []struct {
		name string
		uri  string
	}{
		{"agenda activity", rs.AgendaActivity.URI},
		{"decision activity", rs.DecisionActivity.URI},
		{"treatment", rs.Treatment.URI},
		{"agendaitem", rs.AgendaItem.URI},
	}
	if rs.NewSubmission != nil {
		records = append(records, struct {
			name string
			uri  string
		}{"submission activity", rs.NewSubmission.URI})
	}
	if rs.NewsItem != nil {
		records = append(records, struct {
			name string
			uri  string
		}{"news item", rs.NewsItem.URI})
	}

	for _, record := range records {
		asSubject := sparql.DeleteWhere(sparql.Pattern(
			sparql.IRI(record.uri), sparql.Var("p"), sparql.Var("o")))
		if err := s.store.Update(ctx, asSubject); err != nil {
			return domain.CompensationError{Record: record.name, Cause: err}
		}
		asObject := sparql.DeleteWhere(sparql.Pattern(
			sparql.Var("s"), sparql.Var("p"), sparql.IRI(record.uri)))
		if err := s.store.Update(ctx, asObject); err != nil {
			return domain.CompensationError{Record: record.name, Cause: err}
		}
	}
	return nil
}

func batchStrings(items []string, size int) [][]string {
	if len(items) == 0 {
		return nil
	}
	var batches [][]string
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return batches
}
