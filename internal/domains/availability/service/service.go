package service

import (
	"context"
	"fmt"

	"resto/config"
	"resto/infras/otel"
	"resto/internal/domains/availability/engine"
	"resto/internal/domains/availability/model/dto"
	bookingRepo "resto/internal/domains/booking/repository"
	tableModel "resto/internal/domains/table/model"
	tableRepo "resto/internal/domains/table/repository"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"
	"resto/shared/timezone"

	"github.com/rs/zerolog/log"
)

// serviceSlots is the fixed dine-in grid, half-hour steps from opening to the
// last seating.
var serviceSlots = []string{
	"11:00", "11:30", "12:00", "12:30", "13:00", "13:30", "14:00", "14:30",
	"15:00", "15:30", "16:00", "16:30", "17:00", "17:30", "18:00", "18:30",
	"19:00", "19:30", "20:00", "20:30", "21:00", "21:30", "22:00",
}

type Availability interface {
	Suggestions(ctx context.Context, date, bookingTime string, guests int) (dto.SuggestionsResponse, error)
	AvailableTables(ctx context.Context, date, bookingTime string) (dto.AvailableTablesResponse, error)
	Slots(ctx context.Context, date string, guests int) (dto.SlotsResponse, error)
	Dates(ctx context.Context, guests, days int) (dto.DatesResponse, error)
}

type serviceImpl struct {
	tableRepo   tableRepo.Table
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	otel        otel.Otel
}

func New(tables tableRepo.Table, bookings bookingRepo.Booking, cfg *config.Config, otel otel.Otel) Availability {
	return &serviceImpl{
		tableRepo:   tables,
		bookingRepo: bookings,
		cfg:         cfg,
		otel:        otel,
	}
}

// Suggestions runs the combination suggester for the party size against the
// tables free at the requested slot. Without a date and time the full catalog
// is used.
func (s *serviceImpl) Suggestions(ctx context.Context, date, bookingTime string, guests int) (res dto.SuggestionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Suggestions")
	defer scope.End()
	defer scope.TraceIfError(err)

	if guests < 1 || guests > s.cfg.Booking.MaxPartySize {
		return res, failure.BadRequestFromString(fmt.Sprintf("guests must be between 1 and %d", s.cfg.Booking.MaxPartySize))
	}

	tables, err := s.activeTables(ctx)
	if err != nil {
		return res, err
	}

	booked := map[string]bool{}

	if date != constant.Empty && bookingTime != constant.Empty {
		booked, err = s.bookedSet(ctx, date, bookingTime)
		if err != nil {
			return res, err
		}
	}

	available := engine.AvailableTables(tables, booked)
	combos := engine.SuggestCombinations(guests, available, s.cfg.Booking.MaxComboTables, s.cfg.Booking.MaxFallbackCombos)

	res.FromCombinations(guests, combos, available)

	return res, nil
}

// AvailableTables lists the tables free at the given slot.
func (s *serviceImpl) AvailableTables(ctx context.Context, date, bookingTime string) (res dto.AvailableTablesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AvailableTables")
	defer scope.End()
	defer scope.TraceIfError(err)

	if date == constant.Empty || bookingTime == constant.Empty {
		return res, failure.BadRequestFromString("date and time are required")
	}

	if _, err = timezone.Parse(constant.BookingDateFormat, date); err != nil {
		return res, failure.BadRequestFromString("date must be YYYY-MM-DD")
	}

	tables, err := s.activeTables(ctx)
	if err != nil {
		return res, err
	}

	booked, err := s.bookedSet(ctx, date, bookingTime)
	if err != nil {
		return res, err
	}

	res.FromModels(date, bookingTime, engine.AvailableTables(tables, booked))

	return res, nil
}

// Slots reports per-slot availability across the service grid for tables
// seating exactly the party size.
func (s *serviceImpl) Slots(ctx context.Context, date string, guests int) (res dto.SlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Slots")
	defer scope.End()
	defer scope.TraceIfError(err)

	if date == constant.Empty {
		return res, failure.BadRequestFromString("date is required")
	}

	if _, err = timezone.Parse(constant.BookingDateFormat, date); err != nil {
		return res, failure.BadRequestFromString("date must be YYYY-MM-DD")
	}

	tables, err := s.activeTables(ctx)
	if err != nil {
		return res, err
	}

	fitting := tablesWithCapacity(tables, guests)

	byTime, err := s.bookingRepo.ActiveTableIDsByTime(ctx, date)
	if err != nil {
		log.Error().Err(err).Msg("failed to get active table ids by time")

		return res, fmt.Errorf("failed to get active table ids by time: %w", err)
	}

	res.Date = date
	res.GuestCount = guests
	res.Slots = make([]dto.SlotResponse, len(serviceSlots))

	for i, slot := range serviceSlots {
		booked := make(map[string]bool, len(byTime[slot]))
		for _, id := range byTime[slot] {
			booked[id] = true
		}

		count := 0

		for _, t := range fitting {
			if !booked[t.ID] {
				count++
			}
		}

		res.Slots[i] = dto.SlotResponse{
			Time:            slot,
			Available:       count > 0,
			TablesAvailable: count,
		}
	}

	return res, nil
}

// Dates summarizes availability for the next N days, counting tables seating
// exactly the party size that are free at any time on each day.
func (s *serviceImpl) Dates(ctx context.Context, guests, days int) (res dto.DatesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Dates")
	defer scope.End()
	defer scope.TraceIfError(err)

	tables, err := s.activeTables(ctx)
	if err != nil {
		return res, err
	}

	fitting := tablesWithCapacity(tables, guests)
	today := timezone.Now()

	res.GuestCount = guests
	res.Dates = make([]dto.DateResponse, 0, days)

	for i := 0; i < days; i++ {
		day := today.AddDate(0, 0, i)
		dateStr := day.Format(constant.BookingDateFormat)

		bookedIDs, err := s.bookingRepo.ActiveTableIDsForDate(ctx, dateStr)
		if err != nil {
			log.Error().Err(err).Msg("failed to get active table ids for date")

			return res, fmt.Errorf("failed to get active table ids for date: %w", err)
		}

		booked := make(map[string]bool, len(bookedIDs))
		for _, id := range bookedIDs {
			booked[id] = true
		}

		count := 0

		for _, t := range fitting {
			if !booked[t.ID] {
				count++
			}
		}

		res.Dates = append(res.Dates, dto.DateResponse{
			Date:            dateStr,
			DayName:         day.Weekday().String()[:3],
			Available:       count > 0,
			TablesAvailable: count,
		})
	}

	return res, nil
}

// activeTables loads the bookable catalog ordered by table number.
func (s *serviceImpl) activeTables(ctx context.Context) ([]tableModel.Table, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    tableModel.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    tableModel.TableName,
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:  tableModel.FieldTableNumber,
		SortDir: gDto.SortDirAsc,
	}

	tables, err := s.tableRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tables")

		return nil, fmt.Errorf("failed to get tables: %w", err)
	}

	return tables, nil
}

func (s *serviceImpl) bookedSet(ctx context.Context, date, bookingTime string) (map[string]bool, error) {
	ids, err := s.bookingRepo.ActiveTableIDs(ctx, date, bookingTime)
	if err != nil {
		log.Error().Err(err).Msg("failed to get active table ids")

		return nil, fmt.Errorf("failed to get active table ids: %w", err)
	}

	booked := make(map[string]bool, len(ids))
	for _, id := range ids {
		booked[id] = true
	}

	return booked, nil
}

func tablesWithCapacity(tables []tableModel.Table, capacity int) []tableModel.Table {
	fitting := make([]tableModel.Table, 0, len(tables))

	for _, t := range tables {
		if t.Capacity == capacity {
			fitting = append(fitting, t)
		}
	}

	return fitting
}
