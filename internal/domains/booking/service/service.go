package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"resto/config"
	"resto/infras/otel"
	"resto/internal/domains/booking/model"
	"resto/internal/domains/booking/model/dto"
	"resto/internal/domains/booking/repository"
	tableModel "resto/internal/domains/table/model"
	tableRepo "resto/internal/domains/table/repository"
	"resto/internal/events"
	"resto/shared"
	"resto/shared/cache"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

// validTransitions lists the allowed booking status changes. Cancelled is
// terminal; bookings are never deleted.
var validTransitions = map[string][]string{
	constant.BookingStatusPending:   {constant.BookingStatusConfirmed, constant.BookingStatusCancelled},
	constant.BookingStatusConfirmed: {constant.BookingStatusCancelled},
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Booking
	tableRepo tableRepo.Table
	publisher events.Publisher
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Booking, tables tableRepo.Table, publisher events.Publisher, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:      repo,
		tableRepo: tables,
		publisher: publisher,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	tableIDs := req.ResolveTableIDs()
	if len(tableIDs) == 0 {
		return res, failure.BadRequestFromString("at least one table is required")
	}

	if req.GuestsCount > s.cfg.Booking.MaxPartySize {
		return res, failure.BadRequestFromString(fmt.Sprintf("parties larger than %d guests cannot be booked online", s.cfg.Booking.MaxPartySize))
	}

	tables, err := s.requestedTables(ctx, tableIDs)
	if err != nil {
		return res, err
	}

	models, err := req.ToModels(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking date or time")

		return res, failure.BadRequestFromString("booking_date must be YYYY-MM-DD and booking_time must be HH:MM")
	}

	taken, err := s.repo.InsertAllChecked(ctx, models)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return res, failure.TablesUnavailable(tableNumbers(tables, tableIDs))
		}

		log.Error().Err(err).Msg("failed to create bookings")

		return res, fmt.Errorf("failed to create bookings: %w", err)
	}

	if len(taken) > 0 {
		return res, failure.TablesUnavailable(tableNumbers(tables, taken))
	}

	res.BookingIDs = make([]string, len(models))
	for i, b := range models {
		res.BookingIDs[i] = b.ID
	}

	s.publisher.BookingCreated(ctx, events.BookingEvent{
		BookingIDs:      res.BookingIDs,
		UserID:          user,
		TableIDs:        tableIDs,
		BookingDate:     req.BookingDate,
		BookingTime:     req.BookingTime,
		GuestsCount:     req.GuestsCount,
		SpecialRequests: req.SpecialRequests,
	})

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return res, nil
}

// requestedTables loads and validates every table named in the request.
func (s *serviceImpl) requestedTables(ctx context.Context, tableIDs []string) ([]tableModel.Table, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    tableModel.FieldID,
				Operator: gDto.FilterOperatorIn,
				Value:    tableIDs,
				Table:    tableModel.TableName,
			},
		},
	}

	tables, err := s.tableRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get requested tables")

		return nil, fmt.Errorf("failed to get requested tables: %w", err)
	}

	if len(tables) != len(tableIDs) {
		return nil, failure.NotFound("one or more requested tables not found")
	}

	for _, t := range tables {
		if !t.Active {
			return nil, failure.BadRequestFromString(fmt.Sprintf("table %d is not available for booking", t.TableNumber))
		}
	}

	return tables, nil
}

func tableNumbers(tables []tableModel.Table, tableIDs []string) []string {
	byID := make(map[string]tableModel.Table, len(tables))
	for _, t := range tables {
		byID[t.ID] = t
	}

	numbers := make([]string, 0, len(tableIDs))

	for _, id := range tableIDs {
		if t, ok := byID[id]; ok {
			numbers = append(numbers, strconv.Itoa(t.TableNumber))
		}
	}

	return numbers
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found")
	}

	if booking.Status == req.Status {
		return nil
	}

	if !transitionAllowed(booking.Status, req.Status) {
		return failure.BadRequestFromString(fmt.Sprintf("booking status cannot change from %s to %s", booking.Status, req.Status))
	}

	updatedFields := shared.TransformFields(req, user)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if req.Status == constant.BookingStatusCancelled {
		s.publisher.BookingCancelled(ctx, events.BookingEvent{
			BookingIDs:  []string{booking.ID},
			UserID:      booking.UserID,
			TableIDs:    []string{booking.TableID},
			BookingDate: booking.BookingDate.Format(constant.BookingDateFormat),
			BookingTime: booking.BookingTime,
			GuestsCount: booking.GuestsCount,
		})
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return nil
}

// Cancel soft-cancels a booking. The row stays in place so the slot history
// survives; only active statuses block a slot.
func (s *serviceImpl) Cancel(ctx context.Context, id string) error {
	return s.UpdateStatus(ctx, dto.UpdateBookingRequest{Status: constant.BookingStatusCancelled}, id)
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}

	return false
}
