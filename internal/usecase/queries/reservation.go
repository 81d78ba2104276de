package queries

import (
	"context"
	"time"

	"warehouse-booking/internal/domain/reservation"
	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation.go -package=queriesmock

var (
	ErrReservationNotFound = errs.NotFound(errs.New("reservation not found"))
	ErrInvalidCursor       = errs.Validation(errs.New("invalid cursor"))
	ErrInvalidStatusFilter = errs.Validation(errs.New("invalid status filter"))
)

type ReservationFilters struct {
	Status *string
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByUserFirstPage(ctx context.Context, userID uuid.UUID, status *string, limit int32) ([]*ReservationListItem, error)
	FindByUserKeyset(ctx context.Context, userID uuid.UUID, status *string, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*ReservationListItem, error)
}

type ReservationQueries interface {
	// GetByID only returns reservations owned by actorID; any other
	// reservation is reported as not found.
	GetByID(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*ReservationView, error)
	// GetByIDSystem skips the owner check; for read-after-write and admin paths.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filters ReservationFilters, cursor *Cursor, limit int) ([]*ReservationListItem, *Cursor, error)
}

type reservationQueriesImpl struct {
	repo ReservationReadStore
}

func NewReservationQueries(repo ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*ReservationView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.UserID != actorID {
		return nil, ErrReservationNotFound
	}
	return view, nil
}

func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, filters ReservationFilters, cursor *Cursor, limit int) ([]*ReservationListItem, *Cursor, error) {
	if filters.Status != nil {
		if _, err := reservation.NewStatus(*filters.Status); err != nil {
			return nil, nil, ErrInvalidStatusFilter
		}
	}

	limit = ValidateLimit(limit)
	var rows []*ReservationListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindByUserFirstPage(ctx, userID, filters.Status, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindByUserKeyset(ctx, userID, filters.Status, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
