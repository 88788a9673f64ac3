package domain

import "time"

// Meeting is a scheduled session of the governing body. Read-only here; a
// meeting is closed once it links a final agenda.
type Meeting struct {
	URI          string
	ID           string
	PlannedStart time.Time
	Secretary    string
}

// Agenda is the current (non-superseded) agenda version of a meeting.
type Agenda struct {
	URI     string
	Meeting string
}

// Subcase is the dossier step being put on the agenda. Owned by other
// services; this service only reads it.
type Subcase struct {
	URI          string
	Title        string
	ShortTitle   string
	ItemType     string
	Mandatees    []string
	LinkedPieces []string
}

// SubmissionActivity is one batch of pieces submitted for a subcase.
// AgendaActivity is the back-reference set once an agendering picked the
// submission up; empty means the submission is still unlinked.
type SubmissionActivity struct {
	URI            string
	ID             string
	StartDate      time.Time
	Subcase        string
	Pieces         []string
	AgendaActivity string
}

// Unlinked reports whether no agenda activity references this submission yet.
func (s SubmissionActivity) Unlinked() bool {
	return s.AgendaActivity == ""
}

// AgendaActivity records the act of putting a subcase on an agenda.
type AgendaActivity struct {
	URI         string
	ID          string
	StartDate   time.Time
	Subcase     string
	Submissions []SubmissionActivity
}

// DecisionActivity is the pending decision for the subcase at this meeting.
// ResultCode is pre-set only for announcement items.
type DecisionActivity struct {
	URI        string
	ID         string
	StartDate  time.Time
	Subcase    string
	Secretary  string
	ResultCode string
}

// Treatment binds a decision activity to an agenda item.
type Treatment struct {
	URI              string
	ID               string
	Created          time.Time
	Modified         time.Time
	DecisionActivity string
}

// AgendaItem is one numbered line on an agenda.
type AgendaItem struct {
	URI            string
	ID             string
	Created        time.Time
	Agenda         string
	Position       int
	Title          string
	ShortTitle     string
	FormallyOK     string
	Type           string
	Mandatees      []string
	Pieces         []string
	LinkedPieces   []string
	AgendaActivity string
	Treatment      string
	IsApproval     bool
}

// NewsItem is the public announcement derived from an announcement item's
// treatment.
type NewsItem struct {
	URI          string
	ID           string
	Treatment    string
	Title        string
	HTMLContent  string
	Finished     bool
	InNewsletter bool
}

// SignFlow is a pre-existing co-signature process whose decision edge must
// track the newest decision activity.
type SignFlow struct {
	URI              string
	DecisionActivity string
}

// DecisionResult is the resolved result code of a (preliminary) decision.
type DecisionResult struct {
	URI string
	ID  string
}

// Sibling is an agenda item of the same category on the same agenda, as read
// back for resequencing. Priorities holds the mandatee priority ranks of the
// subcase the item stands for; empty means no competent mandatee.
type Sibling struct {
	URI        string
	Position   int
	Priorities []int
}

// PositionChange is one renumbering of a sibling, written by value so a stale
// read cannot clobber a concurrent edit.
type PositionChange struct {
	URI         string
	OldPosition int
	NewPosition int
}
