package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/domain"
)

type fakeStore struct {
	updates    []string
	asks       []string
	askResults []bool
	failUpdate func(update string) error
}

func (f *fakeStore) Ask(_ context.Context, query string) (bool, error) {
	f.asks = append(f.asks, query)
	if len(f.askResults) > 0 {
		result := f.askResults[0]
		f.askResults = f.askResults[1:]
		return result, nil
	}
	return true, nil
}

func (f *fakeStore) Update(_ context.Context, update string) error {
	if f.failUpdate != nil {
		if err := f.failUpdate(update); err != nil {
			return err
		}
	}
	f.updates = append(f.updates, update)
	return nil
}

func testRecordSet() *RecordSet {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	return &RecordSet{
		Agenda: domain.Agenda{URI: "http://example.org/agenda/1"},
		SignFlows: []domain.SignFlow{
			{URI: "http://example.org/signflow/1", DecisionActivity: "http://example.org/decision/old"},
		},
		NewSubmission: &domain.SubmissionActivity{
			URI: "http://example.org/submission/new", ID: "sub-new", StartDate: now,
			Subcase: "http://example.org/subcase/1",
			Pieces:  []string{"http://example.org/piece/1", "http://example.org/piece/2", "http://example.org/piece/3"},
		},
		NewsItem: &domain.NewsItem{
			URI: "http://example.org/newsitem/1", ID: "news-1",
			Treatment: "http://example.org/treatment/1", Title: "announcement",
		},
		AgendaActivity: domain.AgendaActivity{
			URI: "http://example.org/activity/1", ID: "act-1", StartDate: now,
			Subcase: "http://example.org/subcase/1",
			Submissions: []domain.SubmissionActivity{
				{URI: "http://example.org/submission/new"},
			},
		},
		DecisionActivity: domain.DecisionActivity{
			URI: "http://example.org/decision/1", ID: "dec-1", StartDate: now,
			Subcase: "http://example.org/subcase/1", Secretary: "http://example.org/person/1",
		},
		Treatment: domain.Treatment{
			URI: "http://example.org/treatment/1", ID: "treat-1", Created: now, Modified: now,
			DecisionActivity: "http://example.org/decision/1",
		},
		AgendaItem: domain.AgendaItem{
			URI: "http://example.org/item/1", ID: "item-1", Created: now,
			Agenda: "http://example.org/agenda/1", Position: 5,
			ShortTitle: "short", FormallyOK: domain.ConceptFormallyNotYetOK,
			Type:           "http://example.org/type/nota",
			Pieces:         []string{"http://example.org/piece/1", "http://example.org/piece/2", "http://example.org/piece/3"},
			AgendaActivity: "http://example.org/activity/1",
			Treatment:      "http://example.org/treatment/1",
		},
	}
}

func TestSagaBulkSuccess(t *testing.T) {
	store := &fakeStore{}
	saga := NewSaga(store, 25, true, nil)

	if err := saga.Run(context.Background(), testRecordSet()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(store.updates) != 1 {
		t.Fatalf("bulk mode must issue exactly one update, got %d", len(store.updates))
	}
	update := store.updates[0]
	for _, want := range []string{"DELETE {", "INSERT {", "WHERE {", "?oldModified"} {
		if !strings.Contains(update, want) {
			t.Fatalf("bulk update missing %q", want)
		}
	}
	// Main record check plus one batch each for item pieces and submission pieces.
	if len(store.asks) != 3 {
		t.Fatalf("expected 3 verification queries, got %d", len(store.asks))
	}
}

func TestSagaSequentialBatchesPieces(t *testing.T) {
	store := &fakeStore{}
	saga := NewSaga(store, 2, false, nil)

	if err := saga.Run(context.Background(), testRecordSet()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// agenda activity, decision activity, treatment, agendaitem,
	// 2 batches of item pieces, submission, 2 batches of submission pieces,
	// news item, sign flow retarget.
	if len(store.updates) != 11 {
		t.Fatalf("expected 11 updates, got %d", len(store.updates))
	}
	last := store.updates[len(store.updates)-1]
	if !strings.Contains(last, "?oldModified") {
		t.Fatalf("final update must be the conditioned retarget, got %s", last)
	}
	// 3 pieces per edge at batch size 2 means 2 ASK batches each.
	if len(store.asks) != 5 {
		t.Fatalf("expected 5 verification queries, got %d", len(store.asks))
	}
}

func TestSagaVerifyFailureCompensates(t *testing.T) {
	store := &fakeStore{askResults: []bool{false}}
	saga := NewSaga(store, 25, true, nil)

	err := saga.Run(context.Background(), testRecordSet())
	if !errors.Is(err, domain.VerificationError{}) {
		t.Fatalf("expected a verification error, got %v", err)
	}

	// 1 persist update, then 2 compensating deletes per new record.
	deletes := store.updates[1:]
	if len(deletes) != 12 {
		t.Fatalf("expected 12 compensating deletes for 6 records, got %d", len(deletes))
	}
	for i := 0; i < len(deletes); i += 2 {
		if !strings.Contains(deletes[i], "?p ?o") {
			t.Fatalf("delete %d must remove the record as subject: %s", i, deletes[i])
		}
		if !strings.Contains(deletes[i+1], "?s ?p") {
			t.Fatalf("delete %d must remove the record as object: %s", i+1, deletes[i+1])
		}
	}
}

func TestSagaCompensationFailureIsFatal(t *testing.T) {
	boom := errors.New("store gone")
	store := &fakeStore{
		askResults: []bool{false},
		failUpdate: func(update string) error {
			if strings.HasPrefix(update, "DELETE WHERE") {
				return boom
			}
			return nil
		},
	}
	saga := NewSaga(store, 25, true, nil)

	err := saga.Run(context.Background(), testRecordSet())
	if !errors.Is(err, domain.CompensationError{}) {
		t.Fatalf("expected a compensation error, got %v", err)
	}
	if errors.Is(err, domain.VerificationError{}) {
		t.Fatalf("a failed compensation must not look retryable")
	}
}

func TestSagaAbortsWithoutWriteOnBulkFailure(t *testing.T) {
	boom := errors.New("connection refused")
	store := &fakeStore{
		failUpdate: func(string) error { return boom },
	}
	saga := NewSaga(store, 25, true, nil)

	err := saga.Run(context.Background(), testRecordSet())
	if err == nil || !errors.Is(err, boom) {
		t.Fatalf("expected the write error, got %v", err)
	}
	if len(store.updates) != 0 {
		t.Fatalf("no update may be recorded, got %d", len(store.updates))
	}
	if len(store.asks) != 0 {
		t.Fatalf("a failed write must not be verified")
	}
}

func TestSagaVerifiesPositionAsVariable(t *testing.T) {
	store := &fakeStore{}
	saga := NewSaga(store, 25, true, nil)

	if err := saga.Run(context.Background(), testRecordSet()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	main := store.asks[0]
	if !strings.Contains(main, "?anyNumber") {
		t.Fatalf("record check must not pin the position: %s", main)
	}
	if strings.Contains(main, `"5"^^`) {
		t.Fatalf("literal position leaked into the record check: %s", main)
	}
}
