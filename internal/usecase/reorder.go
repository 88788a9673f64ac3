package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/domain"
)

// ReorderRequest resequences one item category on a draft agenda.
type ReorderRequest struct {
	AgendaID string
	ItemType string
}

// Reorderer exposes resequencing as a standalone operation, for agendas whose
// order drifted because of manual edits or postponed items.
type Reorderer struct {
	agendas   AgendaRepository
	sequencer *Sequencer
	locks     LockTable

	postWriteDelay time.Duration
	log            *slog.Logger
}

func NewReorderer(agendas AgendaRepository, sequencer *Sequencer, locks LockTable, postWriteDelay time.Duration, log *slog.Logger) *Reorderer {
	if log == nil {
		log = slog.Default()
	}
	return &Reorderer{
		agendas:        agendas,
		sequencer:      sequencer,
		locks:          locks,
		postWriteDelay: postWriteDelay,
		log:            log,
	}
}

// Reorder resequences the items of the given category. Approved agendas are
// immutable, and announcements keep their submission order.
func (r *Reorderer) Reorder(ctx context.Context, req ReorderRequest) error {
	ctx, span := tracer.Start(ctx, "Usecase.Reorderer.Reorder")
	defer span.End()

	if req.ItemType == domain.ConceptItemTypeAnnouncement {
		return domain.PreconditionError{
			Reason: "announcements keep their submission order and cannot be resequenced",
		}
	}

	approved, err := r.agendas.IsApprovedAgenda(ctx, req.AgendaID)
	if err != nil {
		err = errors.Wrap(err, "Usecase.Reorderer.Reorder: agenda status check failed")
		span.RecordError(err)
		return err
	}
	if approved {
		return domain.PreconditionError{
			Reason: "this agenda is already approved, its items cannot be resequenced",
		}
	}

	agendaURI, err := r.agendas.AgendaByID(ctx, req.AgendaID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	key := "agenda:" + agendaURI
	ok, err := r.locks.TryAcquire(ctx, key)
	if err != nil {
		err = errors.Wrapf(err, "Usecase.Reorderer.Reorder: lock %s failed", key)
		span.RecordError(err)
		return err
	}
	if !ok {
		return domain.ConflictError{Key: key}
	}
	defer func() {
		if err := r.locks.Release(ctx, key); err != nil {
			r.log.Error("releasing lock failed",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
	}()

	if err := r.sequencer.Resequence(ctx, agendaURI, req.ItemType); err != nil {
		span.RecordError(err)
		return err
	}

	if r.postWriteDelay > 0 {
		timer := time.NewTimer(r.postWriteDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
		}
	}

	r.log.Info("agenda resequenced",
		slog.String("agenda", req.AgendaID),
		slog.String("type", req.ItemType))
	return nil
}
