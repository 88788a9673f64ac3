package usecase

import (
	"fmt"
	"testing"
	"time"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/domain"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestSynthesizeWithoutUnlinkedSubmissions(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	submissions := []domain.SubmissionActivity{
		{URI: "sub-1", Pieces: []string{"p1", "p2"}, AgendaActivity: "act-1"},
		{URI: "sub-2", Pieces: []string{"p2", "p3"}, AgendaActivity: "act-2"},
	}

	got := SynthesizeSubmissions("subcase-1", submissions, now, sequentialIDs())

	if got.New == nil {
		t.Fatalf("expected a new submission when all existing ones are linked")
	}
	if len(got.Reused) != 0 {
		t.Fatalf("linked submissions must not be reused")
	}
	if len(got.New.Pieces) != 3 {
		t.Fatalf("new submission must carry the full union, got %v", got.New.Pieces)
	}
	if got.New.Subcase != "subcase-1" || !got.New.StartDate.Equal(now) {
		t.Fatalf("new submission fields wrong: %+v", got.New)
	}
}

func TestSynthesizeWithCoveringUnlinkedSubmission(t *testing.T) {
	submissions := []domain.SubmissionActivity{
		{URI: "sub-1", Pieces: []string{"p1", "p2"}},
	}

	got := SynthesizeSubmissions("subcase-1", submissions, time.Now(), sequentialIDs())

	if got.New != nil {
		t.Fatalf("no new submission needed when the unlinked one covers everything")
	}
	if len(got.Reused) != 1 || got.Reused[0].URI != "sub-1" {
		t.Fatalf("expected sub-1 to be reused, got %+v", got.Reused)
	}
}

func TestSynthesizeMintsDifferenceOnly(t *testing.T) {
	submissions := []domain.SubmissionActivity{
		{URI: "sub-1", Pieces: []string{"p1", "p2"}, AgendaActivity: "act-1"},
		{URI: "sub-2", Pieces: []string{"p3"}},
		{URI: "sub-3", Pieces: []string{"p4"}, AgendaActivity: "act-2"},
	}

	got := SynthesizeSubmissions("subcase-1", submissions, time.Now(), sequentialIDs())

	if got.New == nil {
		t.Fatalf("expected a new submission for the missing pieces")
	}
	if len(got.New.Pieces) != 3 || got.New.Pieces[0] != "p1" || got.New.Pieces[1] != "p2" || got.New.Pieces[2] != "p4" {
		t.Fatalf("difference wrong, got %v", got.New.Pieces)
	}
	if len(got.Reused) != 1 || got.Reused[0].URI != "sub-2" {
		t.Fatalf("expected sub-2 to be reused, got %+v", got.Reused)
	}
	if len(got.AllPieces) != 4 {
		t.Fatalf("all pieces must be the full union, got %v", got.AllPieces)
	}

	linked := got.Linked()
	if len(linked) != 2 || linked[0].URI != "sub-2" || linked[1].URI != got.New.URI {
		t.Fatalf("linked set wrong: %+v", linked)
	}
}

func TestSynthesizeEmptyHistoryStillMints(t *testing.T) {
	got := SynthesizeSubmissions("subcase-1", nil, time.Now(), sequentialIDs())

	if got.New == nil {
		t.Fatalf("a submission activity is minted even without pieces")
	}
	if len(got.New.Pieces) != 0 {
		t.Fatalf("expected empty piece set, got %v", got.New.Pieces)
	}
}
