package readstore

import (
	"context"
	"time"

	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/pkg/pgconv"
	"warehouse-booking/internal/usecase/queries"
	"warehouse-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/readstore/reservation.go -package=readstoremock

type ReservationReadQueries interface {
	GetReservationByID(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (sqlstore.Reservation, error)
	GetReservationByIDForUpdate(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (sqlstore.Reservation, error)
	ExistsOverlappingReservation(ctx context.Context, db sqlstore.DBTX, arg sqlstore.ExistsOverlappingReservationParams) (bool, error)
	ListDueActiveReservations(ctx context.Context, db sqlstore.DBTX, arg sqlstore.ListDueActiveReservationsParams) ([]sqlstore.Reservation, error)
	GetReservationViewByID(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (sqlstore.ReservationViewRow, error)
	ListReservationViewsByUserFirstPage(ctx context.Context, db sqlstore.DBTX, arg sqlstore.ListReservationViewsByUserFirstPageParams) ([]sqlstore.ReservationViewRow, error)
	ListReservationViewsByUserKeyset(ctx context.Context, db sqlstore.DBTX, arg sqlstore.ListReservationViewsByUserKeysetParams) ([]sqlstore.ReservationViewRow, error)
}

type ReservationReadStore struct {
	queries ReservationReadQueries
	db      sqlstore.DBTX
}

func NewReservationReadStore(queries ReservationReadQueries, db sqlstore.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationViewByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return rowToReservationView(row)
}

func (r *ReservationReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, status *string, limit int32) ([]*queries.ReservationListItem, error) {
	params := sqlstore.ListReservationViewsByUserFirstPageParams{
		UserID: userID,
		Status: pgconv.StringPtrToPgtype(status),
		Limit:  limit,
	}

	rows, err := r.queries.ListReservationViewsByUserFirstPage(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations first page", err)
	}

	return rowsToReservationListItems(rows)
}

func (r *ReservationReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, status *string, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	params := sqlstore.ListReservationViewsByUserKeysetParams{
		UserID:    userID,
		Status:    pgconv.StringPtrToPgtype(status),
		CreatedAt: pgconv.TimeToPgtype(lastCreatedAt),
		ID:        lastID,
		Limit:     limit,
	}

	rows, err := r.queries.ListReservationViewsByUserKeyset(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations keyset", err)
	}

	return rowsToReservationListItems(rows)
}

func (r *ReservationReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return rowToReservationSnapshot(row)
}

// FindSnapshotByIDForUpdate must run inside a transaction; the row stays
// locked until it ends.
func (r *ReservationReadStore) FindSnapshotByIDForUpdate(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	row, err := r.queries.GetReservationByIDForUpdate(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}
	return rowToReservationSnapshot(row)
}

// HasOverlap scans the unit's non-cancelled reservations for one that
// intersects [start, end).
func (r *ReservationReadStore) HasOverlap(ctx context.Context, unitID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	params := sqlstore.ExistsOverlappingReservationParams{
		UnitID:    unitID,
		StartAt:   pgconv.TimeToPgtype(start),
		EndAt:     pgconv.TimeToPgtype(end),
		ExcludeID: pgconv.UUIDPtrToPgtype(excludeID),
	}

	exists, err := r.queries.ExistsOverlappingReservation(ctx, r.db, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check overlapping reservations", err)
	}
	return exists, nil
}

func (r *ReservationReadStore) FindDueActive(ctx context.Context, now time.Time, limit int32) ([]*shared.ReservationSnapshot, error) {
	params := sqlstore.ListDueActiveReservationsParams{
		Now:   pgconv.TimeToPgtype(now),
		Limit: limit,
	}

	rows, err := r.queries.ListDueActiveReservations(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list due reservations", err)
	}

	result := make([]*shared.ReservationSnapshot, 0, len(rows))
	for _, row := range rows {
		snapshot, err := rowToReservationSnapshot(row)
		if err != nil {
			return nil, err
		}
		result = append(result, snapshot)
	}
	return result, nil
}

func rowToReservationSnapshot(row sqlstore.Reservation) (*shared.ReservationSnapshot, error) {
	total, err := pgconv.DecimalFromNumeric(row.TotalPrice)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid reservation total", err)
	}
	return &shared.ReservationSnapshot{
		ID:         row.ID,
		UserID:     row.UserID,
		UnitID:     row.UnitID,
		StartAt:    pgconv.TimeFromPgtype(row.StartAt),
		EndAt:      pgconv.TimeFromPgtype(row.EndAt),
		Status:     row.Status,
		TotalPrice: total,
		Note:       pgconv.StringPtrFromPgtype(row.Note),
		CreatedAt:  pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:  pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}

func rowToReservationView(row sqlstore.ReservationViewRow) (*queries.ReservationView, error) {
	total, err := pgconv.DecimalFromNumeric(row.TotalPrice)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid reservation total", err)
	}
	paid, err := pgconv.DecimalFromNumeric(row.PaidAmount)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid paid amount", err)
	}

	return &queries.ReservationView{
		ID:            row.ID,
		UserID:        row.UserID,
		UserEmail:     row.UserEmail,
		UserName:      row.UserName,
		UnitID:        row.UnitID,
		UnitNumber:    row.UnitNumber,
		WarehouseID:   row.WarehouseID,
		WarehouseName: row.WarehouseName,
		StartAt:       pgconv.TimeFromPgtype(row.StartAt),
		EndAt:         pgconv.TimeFromPgtype(row.EndAt),
		Status:        row.Status,
		TotalPrice:    total,
		PaidAmount:    paid,
		Note:          pgconv.StringPtrFromPgtype(row.Note),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}

func rowsToReservationListItems(rows []sqlstore.ReservationViewRow) ([]*queries.ReservationListItem, error) {
	result := make([]*queries.ReservationListItem, 0, len(rows))
	for _, row := range rows {
		view, err := rowToReservationView(row)
		if err != nil {
			return nil, err
		}
		result = append(result, &queries.ReservationListItem{
			ID:            view.ID,
			UnitID:        view.UnitID,
			UnitNumber:    view.UnitNumber,
			WarehouseName: view.WarehouseName,
			StartAt:       view.StartAt,
			EndAt:         view.EndAt,
			Status:        view.Status,
			TotalPrice:    view.TotalPrice,
			PaidAmount:    view.PaidAmount,
			CreatedAt:     view.CreatedAt,
		})
	}
	return result, nil
}
