package model

import (
	"resto/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldUserID          = "user_id"
	FieldTableID         = "table_id"
	FieldBookingDate     = "booking_date"
	FieldBookingTime     = "booking_time"
	FieldGuestsCount     = "guests_count"
	FieldSpecialRequests = "special_requests"
	FieldStatus          = "status"
	FieldCreatedBy       = "created_by"
)

type Booking struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	TableID         string    `db:"table_id"`
	BookingDate     time.Time `db:"booking_date"`
	BookingTime     string    `db:"booking_time"`
	GuestsCount     int       `db:"guests_count"`
	SpecialRequests *string   `db:"special_requests"`
	Status          string    `db:"status"`
	model.Metadata
}
