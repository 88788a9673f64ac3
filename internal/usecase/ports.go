package usecase

import (
	"context"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/domain"
)

// GraphStore is the mutating surface of the shared graph store. One Update
// call is atomic; distinct calls are not transactional with each other, which
// is why the saga verifies and compensates.
type GraphStore interface {
	Ask(ctx context.Context, query string) (bool, error)
	Update(ctx context.Context, update string) error
}

// RelatedResources is everything the submit operation needs to know about
// the meeting, its current agenda, the subcase and its history.
type RelatedResources struct {
	Meeting     domain.Meeting
	Agenda      domain.Agenda
	Subcase     domain.Subcase
	Submissions []domain.SubmissionActivity
	Items       []domain.AgendaItem
	SignFlows   []domain.SignFlow
}

// ResourceFetcher loads the related-resources subgraph in one query and
// reduces it to typed records.
type ResourceFetcher interface {
	RelatedResources(ctx context.Context, meetingID, subcaseURI string) (*RelatedResources, error)
}

// MeetingRepository answers guard questions about meetings.
type MeetingRepository interface {
	IsMeetingClosed(ctx context.Context, meetingID string) (bool, error)
}

// SubcaseRepository answers guard questions about subcases.
type SubcaseRepository interface {
	IsSubcaseOnAgenda(ctx context.Context, subcaseURI string) (bool, error)
}

// AgendaRepository reads and renumbers agenda items.
type AgendaRepository interface {
	AgendaByID(ctx context.Context, agendaID string) (string, error)
	IsApprovedAgenda(ctx context.Context, agendaID string) (bool, error)
	Siblings(ctx context.Context, agendaURI, itemType string) ([]domain.Sibling, error)
	ApplyPositions(ctx context.Context, changes []domain.PositionChange) error
}

// AgendaItemRepository reads back individual agenda items.
type AgendaItemRepository interface {
	// PreliminaryDecision returns the postponed/retracted result code on the
	// item's decision, or nil when the decision is still open.
	PreliminaryDecision(ctx context.Context, agendaitemID string) (*domain.DecisionResult, error)
}

// SubmissionRepository relinks the preliminary news item and decision that a
// submission carried before it was put on the agenda.
type SubmissionRepository interface {
	RelinkPreliminary(ctx context.Context, agendaitemURI, submissionID string) error
}

// LockTable registers in-flight logical keys. TryAcquire rejects a busy key
// instead of queuing; Release must be called on every path.
type LockTable interface {
	TryAcquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
