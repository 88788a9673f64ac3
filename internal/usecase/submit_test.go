package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/domain"
)

type fakeMeetings struct{ closed bool }

func (f *fakeMeetings) IsMeetingClosed(context.Context, string) (bool, error) {
	return f.closed, nil
}

type fakeSubcases struct{ onAgenda bool }

func (f *fakeSubcases) IsSubcaseOnAgenda(context.Context, string) (bool, error) {
	return f.onAgenda, nil
}

type fakeFetcher struct {
	related *RelatedResources
	err     error
}

func (f *fakeFetcher) RelatedResources(context.Context, string, string) (*RelatedResources, error) {
	return f.related, f.err
}

type fakeSubmissions struct {
	relinkedItem string
	relinkedID   string
}

func (f *fakeSubmissions) RelinkPreliminary(_ context.Context, agendaitemURI, submissionID string) error {
	f.relinkedItem = agendaitemURI
	f.relinkedID = submissionID
	return nil
}

type fakeAgendas struct {
	agendaURI string
	approved  bool
	siblings  []domain.Sibling
	applied   []domain.PositionChange
	queried   []string
}

func (f *fakeAgendas) AgendaByID(context.Context, string) (string, error) {
	return f.agendaURI, nil
}

func (f *fakeAgendas) IsApprovedAgenda(context.Context, string) (bool, error) {
	return f.approved, nil
}

func (f *fakeAgendas) Siblings(_ context.Context, _ string, itemType string) ([]domain.Sibling, error) {
	f.queried = append(f.queried, itemType)
	return f.siblings, nil
}

func (f *fakeAgendas) ApplyPositions(_ context.Context, changes []domain.PositionChange) error {
	f.applied = append(f.applied, changes...)
	return nil
}

type fakeLocks struct {
	busy     map[string]bool
	acquired []string
	released []string
}

func (f *fakeLocks) TryAcquire(_ context.Context, key string) (bool, error) {
	if f.busy[key] {
		return false, nil
	}
	f.acquired = append(f.acquired, key)
	return true, nil
}

func (f *fakeLocks) Release(_ context.Context, key string) error {
	f.released = append(f.released, key)
	return nil
}

func testRelated(itemType string) *RelatedResources {
	return &RelatedResources{
		Meeting: domain.Meeting{
			URI:          "http://example.org/meeting/1",
			ID:           "meeting-1",
			PlannedStart: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
			Secretary:    "http://example.org/person/1",
		},
		Agenda: domain.Agenda{URI: "http://example.org/agenda/1", Meeting: "http://example.org/meeting/1"},
		Subcase: domain.Subcase{
			URI:        "http://example.org/subcase/1",
			Title:      "full title",
			ShortTitle: "short title",
			ItemType:   itemType,
			Mandatees:  []string{"http://example.org/mandatee/1"},
		},
		Submissions: []domain.SubmissionActivity{
			{URI: "http://example.org/submission/1", Pieces: []string{"http://example.org/piece/1"}},
		},
		Items: []domain.AgendaItem{
			{URI: "http://example.org/item/existing", Position: 3},
		},
	}
}

func newTestSubmitter(fetcher *fakeFetcher, agendas *fakeAgendas, locks *fakeLocks, store *fakeStore, submissions *fakeSubmissions) *Submitter {
	s := NewSubmitter(
		&fakeMeetings{},
		&fakeSubcases{},
		fetcher,
		submissions,
		NewSaga(store, 25, true, nil),
		NewSequencer(agendas),
		locks,
		0,
		nil,
	)
	ids := sequentialIDs()
	s.newID = ids
	s.clock = func() time.Time { return time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestSubmitHappyPath(t *testing.T) {
	fetcher := &fakeFetcher{related: testRelated("http://example.org/type/nota")}
	agendas := &fakeAgendas{}
	locks := &fakeLocks{}
	store := &fakeStore{}
	submissions := &fakeSubmissions{}

	submitter := newTestSubmitter(fetcher, agendas, locks, store, submissions)
	result, err := submitter.Submit(context.Background(), SubmitRequest{
		MeetingID:  "meeting-1",
		SubcaseURI: "http://example.org/subcase/1",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.AgendaItemID == "" || !strings.HasPrefix(result.AgendaItemURI, domain.BaseAgendaItem) {
		t.Fatalf("unexpected result: %+v", result)
	}

	if len(store.updates) != 1 {
		t.Fatalf("expected one persisted update, got %d", len(store.updates))
	}
	update := store.updates[0]
	// Next free position after the existing item at 3.
	if !strings.Contains(update, `"4"^^`) {
		t.Fatalf("expected position 4 in update: %s", update)
	}
	if strings.Contains(update, "Nieuwsbericht") {
		t.Fatalf("a nota submission must not create a news item")
	}

	if len(agendas.queried) != 1 || agendas.queried[0] != "http://example.org/type/nota" {
		t.Fatalf("resequencing not triggered for the item category: %v", agendas.queried)
	}

	if len(locks.acquired) != 2 || len(locks.released) != 2 {
		t.Fatalf("both locks must be acquired and released, got %v / %v", locks.acquired, locks.released)
	}
	if submissions.relinkedID != "" {
		t.Fatalf("no relink without a submission id")
	}
}

func TestSubmitClosedMeeting(t *testing.T) {
	submitter := newTestSubmitter(&fakeFetcher{}, &fakeAgendas{}, &fakeLocks{}, &fakeStore{}, &fakeSubmissions{})
	submitter.meetings = &fakeMeetings{closed: true}

	_, err := submitter.Submit(context.Background(), SubmitRequest{MeetingID: "m", SubcaseURI: "s"})
	if !errors.Is(err, domain.PreconditionError{}) {
		t.Fatalf("expected a precondition error, got %v", err)
	}
}

func TestSubmitSubcaseAlreadyOnAgenda(t *testing.T) {
	submitter := newTestSubmitter(&fakeFetcher{}, &fakeAgendas{}, &fakeLocks{}, &fakeStore{}, &fakeSubmissions{})
	submitter.subcases = &fakeSubcases{onAgenda: true}

	_, err := submitter.Submit(context.Background(), SubmitRequest{MeetingID: "m", SubcaseURI: "s"})
	if !errors.Is(err, domain.PreconditionError{}) {
		t.Fatalf("expected a precondition error, got %v", err)
	}
}

func TestSubmitBusySubcase(t *testing.T) {
	locks := &fakeLocks{busy: map[string]bool{"subcase:http://example.org/subcase/1": true}}
	submitter := newTestSubmitter(&fakeFetcher{related: testRelated("t")}, &fakeAgendas{}, locks, &fakeStore{}, &fakeSubmissions{})

	_, err := submitter.Submit(context.Background(), SubmitRequest{
		MeetingID:  "meeting-1",
		SubcaseURI: "http://example.org/subcase/1",
	})
	if !errors.Is(err, domain.ConflictError{}) {
		t.Fatalf("expected a conflict error, got %v", err)
	}
}

func TestSubmitAnnouncement(t *testing.T) {
	fetcher := &fakeFetcher{related: testRelated(domain.ConceptItemTypeAnnouncement)}
	agendas := &fakeAgendas{}
	store := &fakeStore{}

	submitter := newTestSubmitter(fetcher, agendas, &fakeLocks{}, store, &fakeSubmissions{})
	if _, err := submitter.Submit(context.Background(), SubmitRequest{
		MeetingID:  "meeting-1",
		SubcaseURI: "http://example.org/subcase/1",
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	update := store.updates[0]
	if !strings.Contains(update, domain.TypeNewsItem) {
		t.Fatalf("announcement must create a news item")
	}
	if !strings.Contains(update, domain.ConceptDecisionAcknowledged) {
		t.Fatalf("announcement decision must be pre-acknowledged")
	}
	if !strings.Contains(update, `"""short title"""`) {
		t.Fatalf("news item must take the short title: %s", update)
	}
	if len(agendas.queried) != 0 {
		t.Fatalf("announcements must not be resequenced")
	}
}

func TestSubmitRelinksPreliminaryRecords(t *testing.T) {
	submissions := &fakeSubmissions{}
	submitter := newTestSubmitter(&fakeFetcher{related: testRelated("t")}, &fakeAgendas{}, &fakeLocks{}, &fakeStore{}, submissions)

	result, err := submitter.Submit(context.Background(), SubmitRequest{
		MeetingID:    "meeting-1",
		SubcaseURI:   "http://example.org/subcase/1",
		SubmissionID: "portal-42",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submissions.relinkedID != "portal-42" || submissions.relinkedItem != result.AgendaItemURI {
		t.Fatalf("relink not called correctly: %+v", submissions)
	}
}
