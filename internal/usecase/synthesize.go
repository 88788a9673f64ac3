package usecase

import (
	"time"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/domain"
)

// Synthesis is the outcome of deciding which submission activities will back
// the new agenda activity. Reused submissions stay untouched in the store;
// New, when set, still has to be persisted.
type Synthesis struct {
	New       *domain.SubmissionActivity
	Reused    []domain.SubmissionActivity
	AllPieces []string
}

// Linked returns every submission the agenda activity must reference.
func (s Synthesis) Linked() []domain.SubmissionActivity {
	linked := make([]domain.SubmissionActivity, 0, len(s.Reused)+1)
	linked = append(linked, s.Reused...)
	if s.New != nil {
		linked = append(linked, *s.New)
	}
	return linked
}

// SynthesizeSubmissions decides whether the unlinked submissions of a subcase
// cover the full piece set, and mints a new submission activity for whatever
// is left over. With no unlinked submission at all, the new activity carries
// the entire union (possibly empty, for a purely procedural dossier).
func SynthesizeSubmissions(
	subcaseURI string,
	submissions []domain.SubmissionActivity,
	now time.Time,
	newID func() string,
) Synthesis {
	allPieces := unionPieces(submissions)

	var unlinked []domain.SubmissionActivity
	for _, sub := range submissions {
		if sub.Unlinked() {
			unlinked = append(unlinked, sub)
		}
	}

	mint := func(pieces []string) *domain.SubmissionActivity {
		id := newID()
		return &domain.SubmissionActivity{
			URI:       domain.BaseSubmissionActivity + id,
			ID:        id,
			StartDate: now,
			Subcase:   subcaseURI,
			Pieces:    pieces,
		}
	}

	if len(unlinked) == 0 {
		return Synthesis{
			New:       mint(allPieces),
			AllPieces: allPieces,
		}
	}

	pending := unionPieces(unlinked)
	difference := subtractPieces(allPieces, pending)
	if len(difference) == 0 {
		return Synthesis{
			Reused:    unlinked,
			AllPieces: allPieces,
		}
	}
	return Synthesis{
		New:       mint(difference),
		Reused:    unlinked,
		AllPieces: allPieces,
	}
}

func unionPieces(submissions []domain.SubmissionActivity) []string {
	seen := map[string]struct{}{}
	var union []string
	for _, sub := range submissions {
		for _, piece := range sub.Pieces {
			if _, ok := seen[piece]; ok {
				continue
			}
			seen[piece] = struct{}{}
			union = append(union, piece)
		}
	}
	return union
}

func subtractPieces(all, remove []string) []string {
	removed := map[string]struct{}{}
	for _, piece := range remove {
		removed[piece] = struct{}{}
	}
	var out []string
	for _, piece := range all {
		if _, ok := removed[piece]; !ok {
			out = append(out, piece)
		}
	}
	return out
}
