package repository

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/domain"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/sparql"
)

type SessionRepository struct {
	store Store
}

func NewSessionRepository(store Store) *SessionRepository {
	return &SessionRepository{store: store}
}

// IsLoggedIn reports whether the session URI is bound to an account.
func (r *SessionRepository) IsLoggedIn(ctx context.Context, sessionURI string) (bool, error) {
	query := fmt.Sprintf(`ASK {
  %s <%s> ?account .
}`, sparql.EscapeURI(sessionURI), domain.PredSessionAccount)

	loggedIn, err := r.store.Ask(ctx, query)
	if err != nil {
		return false, errors.Wrap(err, "repository.SessionRepository.IsLoggedIn: ask failed")
	}
	return loggedIn, nil
}
