package repository

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/domain"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/sparql"
)

type MeetingRepository struct {
	store Store
}

func NewMeetingRepository(store Store) *MeetingRepository {
	return &MeetingRepository{store: store}
}

// IsMeetingClosed reports whether the meeting already carries a final agenda.
// Closing a meeting sets besluitvorming:behandelt; its existence is the
// closed marker.
func (r *MeetingRepository) IsMeetingClosed(ctx context.Context, meetingID string) (bool, error) {
	query := fmt.Sprintf(`ASK
WHERE {
  VALUES ?meetingId {
    %s
  }

  ?meeting <%s> ?meetingId ;
    <%s> ?agenda .
}`, sparql.EscapeString(meetingID), domain.PredUUID, domain.PredHandles)

	closed, err := r.store.Ask(ctx, query)
	if err != nil {
		return false, errors.Wrap(err, "repository.MeetingRepository.IsMeetingClosed: ask failed")
	}
	return closed, nil
}
