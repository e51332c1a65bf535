package dto_test

import (
	"testing"
	"time"

	"resto/internal/domains/booking/model"
	"resto/internal/domains/booking/model/dto"
	"resto/shared/constant"
	gModel "resto/shared/model"
	"resto/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingRequest_ResolveTableIDs(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.CreateBookingRequest
		expected []string
	}{
		{
			name:     "single table id",
			req:      dto.CreateBookingRequest{TableID: "t-1"},
			expected: []string{"t-1"},
		},
		{
			name:     "multiple table ids",
			req:      dto.CreateBookingRequest{TableIDs: []string{"t-1", "t-2"}},
			expected: []string{"t-1", "t-2"},
		},
		{
			name:     "table ids win over single id",
			req:      dto.CreateBookingRequest{TableID: "t-3", TableIDs: []string{"t-1", "t-2"}},
			expected: []string{"t-1", "t-2"},
		},
		{
			name:     "no tables named",
			req:      dto.CreateBookingRequest{},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.req.ResolveTableIDs())
		})
	}
}

func TestCreateBookingRequest_ToModels(t *testing.T) {
	special := "window seat please"
	req := dto.CreateBookingRequest{
		TableIDs:        []string{"t-1", "t-2"},
		BookingDate:     "2026-09-15",
		BookingTime:     "19:00",
		GuestsCount:     6,
		SpecialRequests: &special,
	}

	userID := "test-user-id"
	bookings, err := req.ToModels(userID)
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	for i, booking := range bookings {
		assert.NotEmpty(t, booking.ID, "expected ID to be generated")
		assert.Equal(t, req.TableIDs[i], booking.TableID)
		assert.Equal(t, userID, booking.UserID)
		assert.Equal(t, "2026-09-15", booking.BookingDate.Format(constant.BookingDateFormat))
		assert.Equal(t, "19:00", booking.BookingTime)
		assert.Equal(t, 6, booking.GuestsCount)
		assert.Equal(t, &special, booking.SpecialRequests)
		assert.Equal(t, constant.BookingStatusPending, booking.Status)
		assert.Equal(t, userID, booking.CreatedBy)
		assert.False(t, booking.CreatedAt.IsZero(), "expected CreatedAt to be set")
	}

	assert.NotEqual(t, bookings[0].ID, bookings[1].ID, "expected one booking row per table")
}

func TestCreateBookingRequest_ToModelsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateBookingRequest
	}{
		{
			name: "malformed date",
			req:  dto.CreateBookingRequest{TableID: "t-1", BookingDate: "15-09-2026", BookingTime: "19:00", GuestsCount: 2},
		},
		{
			name: "malformed time",
			req:  dto.CreateBookingRequest{TableID: "t-1", BookingDate: "2026-09-15", BookingTime: "7pm", GuestsCount: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.ToModels("test-user-id")
			assert.Error(t, err)
		})
	}
}

func TestBookingResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	bookingModel := model.Booking{
		ID:          "test-id",
		UserID:      "test-user",
		TableID:     "t-1",
		BookingDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		BookingTime: "19:00",
		GuestsCount: 4,
		Status:      constant.BookingStatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}

	var response dto.BookingResponse
	response.FromModel(bookingModel)

	assert.Equal(t, bookingModel.ID, response.ID)
	assert.Equal(t, "2026-09-15", response.BookingDate)
	assert.Equal(t, "19:00", response.BookingTime)
	assert.Equal(t, 4, response.GuestsCount)
	assert.Equal(t, constant.BookingStatusConfirmed, response.Status)
	assert.Equal(t, bookingModel.CreatedBy, response.CreatedBy)
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	models := []model.Booking{
		{ID: "test-id-1", TableID: "t-1", BookingDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)},
		{ID: "test-id-2", TableID: "t-2", BookingDate: time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)},
	}

	var response dto.GetBookingsResponse
	response.FromModels(models, 15, 10)

	assert.Equal(t, 15, response.TotalData)
	assert.Equal(t, 2, response.TotalPage)
	require.Len(t, response.Bookings, 2)
	assert.Equal(t, "test-id-1", response.Bookings[0].ID)
	assert.Equal(t, "test-id-2", response.Bookings[1].ID)
}
