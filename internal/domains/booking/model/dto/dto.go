package dto

import (
	"time"

	"resto/internal/domains/booking/model"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	gModel "resto/shared/model"
	"resto/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	TableID         string   `json:"table_id"         validate:"omitempty,uuid"`
	TableIDs        []string `json:"table_ids"        validate:"omitempty,dive,uuid"`
	BookingDate     string   `json:"booking_date"     validate:"required"`
	BookingTime     string   `json:"booking_time"     validate:"required"`
	GuestsCount     int      `json:"guests_count"     validate:"required,min=1"`
	SpecialRequests *string  `json:"special_requests" validate:"omitempty,max=500"`
}

// ResolveTableIDs collapses the single-table and multi-table request shapes
// into one list. At least one table must be named.
func (c *CreateBookingRequest) ResolveTableIDs() []string {
	if len(c.TableIDs) > 0 {
		return c.TableIDs
	}

	if c.TableID != "" {
		return []string{c.TableID}
	}

	return nil
}

func (c *CreateBookingRequest) ToModels(user string) ([]model.Booking, error) {
	bookingDate, err := time.Parse(constant.BookingDateFormat, c.BookingDate)
	if err != nil {
		return nil, err
	}

	if _, err := time.Parse(constant.BookingTimeFormat, c.BookingTime); err != nil {
		return nil, err
	}

	tableIDs := c.ResolveTableIDs()
	bookings := make([]model.Booking, len(tableIDs))

	for i, tableID := range tableIDs {
		bookings[i] = model.Booking{
			ID:              uuid.NewString(),
			UserID:          user,
			TableID:         tableID,
			BookingDate:     bookingDate,
			BookingTime:     c.BookingTime,
			GuestsCount:     c.GuestsCount,
			SpecialRequests: c.SpecialRequests,
			Status:          constant.BookingStatusPending,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}
	}

	return bookings, nil
}

type UpdateBookingRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type CreateBookingResponse struct {
	BookingIDs []string `json:"booking_ids"`
}

type BookingResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	TableID         string  `json:"table_id"`
	BookingDate     string  `json:"booking_date"`
	BookingTime     string  `json:"booking_time"`
	GuestsCount     int     `json:"guests_count"`
	SpecialRequests *string `json:"special_requests,omitempty"`
	Status          string  `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.TableID = model.TableID
	r.BookingDate = model.BookingDate.Format(constant.BookingDateFormat)
	r.BookingTime = model.BookingTime
	r.GuestsCount = model.GuestsCount
	r.SpecialRequests = model.SpecialRequests
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
