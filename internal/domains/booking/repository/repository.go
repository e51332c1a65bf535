package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"resto/infras/otel"
	"resto/infras/postgres"
	"resto/internal/domains/booking/model"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/logger"
	gRepo "resto/shared/repository"

	"github.com/lib/pq"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	ActiveTableIDs(ctx context.Context, bookingDate, bookingTime string) ([]string, error)
	ActiveTableIDsForDate(ctx context.Context, bookingDate string) ([]string, error)
	ActiveTableIDsByTime(ctx context.Context, bookingDate string) (map[string][]string, error)
	InsertAllChecked(ctx context.Context, bookings []model.Booking) (taken []string, err error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const activeTableIDsQuery = `
	SELECT table_id FROM bookings
	WHERE booking_date = $1 AND booking_time = $2
	AND status IN ('pending', 'confirmed')`

const activeTableIDsForDateQuery = `
	SELECT DISTINCT table_id FROM bookings
	WHERE booking_date = $1
	AND status IN ('pending', 'confirmed')`

// ActiveTableIDs returns the table IDs holding an active booking for the slot.
func (repo *repositoryImpl) ActiveTableIDs(ctx context.Context, bookingDate, bookingTime string) ([]string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ActiveTableIDs")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, activeTableIDsQuery)

	tableIDs := []string{}

	err := repo.db.Read.SelectContext(ctx, &tableIDs, activeTableIDsQuery, bookingDate, bookingTime)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get active table ids: %w", err)
	}

	return tableIDs, nil
}

// ActiveTableIDsForDate returns table IDs with an active booking at any time
// on the given date.
func (repo *repositoryImpl) ActiveTableIDsForDate(ctx context.Context, bookingDate string) ([]string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ActiveTableIDsForDate")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, activeTableIDsForDateQuery)

	tableIDs := []string{}

	err := repo.db.Read.SelectContext(ctx, &tableIDs, activeTableIDsForDateQuery, bookingDate)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get active table ids for date: %w", err)
	}

	return tableIDs, nil
}

const activeTableIDsByTimeQuery = `
	SELECT booking_time, table_id FROM bookings
	WHERE booking_date = $1
	AND status IN ('pending', 'confirmed')`

// ActiveTableIDsByTime returns the active table IDs per booking time for the
// given date, so a whole day can be checked with one query.
func (repo *repositoryImpl) ActiveTableIDsByTime(ctx context.Context, bookingDate string) (map[string][]string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ActiveTableIDsByTime")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, activeTableIDsByTimeQuery)

	rows := []struct {
		BookingTime string `db:"booking_time"`
		TableID     string `db:"table_id"`
	}{}

	err := repo.db.Read.SelectContext(ctx, &rows, activeTableIDsByTimeQuery, bookingDate)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get active table ids by time: %w", err)
	}

	byTime := make(map[string][]string)
	for _, row := range rows {
		byTime[row.BookingTime] = append(byTime[row.BookingTime], row.TableID)
	}

	return byTime, nil
}

const conflictingTableIDsQuery = `
	SELECT table_id FROM bookings
	WHERE booking_date = $1 AND booking_time = $2
	AND status IN ('pending', 'confirmed')
	AND table_id = ANY($3)`

// InsertAllChecked inserts every booking inside one transaction, re-checking
// the active-slot predicate first. If any requested table is already taken,
// nothing is inserted and the taken table IDs are returned. The partial unique
// index on (table_id, booking_date, booking_time) closes the remaining race;
// a lost race surfaces as a pq unique violation from the commit path.
func (repo *repositoryImpl) InsertAllChecked(ctx context.Context, bookings []model.Booking) (taken []string, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.InsertAllChecked")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(bookings) == 0 {
		return nil, nil
	}

	tableIDs := make([]string, len(bookings))
	for i, b := range bookings {
		tableIDs[i] = b.TableID
	}

	bookingDate := bookings[0].BookingDate.Format(constant.BookingDateFormat)
	bookingTime := bookings[0].BookingTime

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.ErrorWithStack(rbErr)
			}
		}
	}()

	taken = []string{}

	err = tx.SelectContext(ctx, &taken, conflictingTableIDsQuery, bookingDate, bookingTime, pq.Array(tableIDs))
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to check booking conflicts: %w", err)
	}

	if len(taken) > 0 {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.ErrorWithStack(rbErr)
		}

		return taken, nil
	}

	if err = repo.InsertBulkTx(ctx, tx, bookings); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to commit bookings: %w", err)
	}

	return nil, nil
}
