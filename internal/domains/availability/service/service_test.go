package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resto/config"
	"resto/infras/otel/mocks"
	"resto/internal/domains/availability/service"
	bookingMocks "resto/internal/domains/booking/mocks"
	tableMocks "resto/internal/domains/table/mocks"
	tableModel "resto/internal/domains/table/model"
	"resto/shared/failure"
)

func newAvailabilityService(t *testing.T) (service.Availability, *tableMocks.MockTable, *bookingMocks.MockBooking) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockTables := tableMocks.NewMockTable(ctrl)
	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Booking.MaxPartySize = 16
	cfg.Booking.MaxComboTables = 4
	cfg.Booking.MaxFallbackCombos = 50

	svc := service.New(mockTables, mockBookings, cfg, mockOtel)

	return svc, mockTables, mockBookings
}

func catalog() []tableModel.Table {
	return []tableModel.Table{
		{ID: "t1", TableNumber: 1, Capacity: 2, Active: true},
		{ID: "t2", TableNumber: 2, Capacity: 2, Active: true},
		{ID: "t3", TableNumber: 3, Capacity: 4, Active: true},
		{ID: "t4", TableNumber: 4, Capacity: 6, Active: true},
	}
}

func TestAvailabilityService_Suggestions(t *testing.T) {
	t.Run("guests out of range", func(t *testing.T) {
		svc, _, _ := newAvailabilityService(t)

		_, err := svc.Suggestions(context.Background(), "", "", 0)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

		_, err = svc.Suggestions(context.Background(), "", "", 17)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("without slot uses full catalog", func(t *testing.T) {
		svc, mockTables, _ := newAvailabilityService(t)

		mockTables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(catalog(), nil)

		res, err := svc.Suggestions(context.Background(), "", "", 4)

		require.NoError(t, err)
		assert.Equal(t, 4, res.Guests)
		assert.Len(t, res.AvailableTables, 4)
		require.NotEmpty(t, res.Combinations)
		assert.Equal(t, 4, res.Combinations[0].TotalCapacity)
	})

	t.Run("booked tables excluded for slot", func(t *testing.T) {
		svc, mockTables, mockBookings := newAvailabilityService(t)

		mockTables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(catalog(), nil)
		mockBookings.EXPECT().
			ActiveTableIDs(gomock.Any(), "2026-09-15", "19:00").
			Return([]string{"t3"}, nil)

		res, err := svc.Suggestions(context.Background(), "2026-09-15", "19:00", 4)

		require.NoError(t, err)
		assert.Len(t, res.AvailableTables, 3)

		for _, combo := range res.Combinations {
			for _, table := range combo.Tables {
				assert.NotEqual(t, "t3", table.ID)
			}
		}
	})

	t.Run("no availability yields empty combinations", func(t *testing.T) {
		svc, mockTables, mockBookings := newAvailabilityService(t)

		mockTables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(catalog(), nil)
		mockBookings.EXPECT().
			ActiveTableIDs(gomock.Any(), "2026-09-15", "19:00").
			Return([]string{"t1", "t2", "t3", "t4"}, nil)

		res, err := svc.Suggestions(context.Background(), "2026-09-15", "19:00", 4)

		require.NoError(t, err)
		assert.Empty(t, res.Combinations)
		assert.Empty(t, res.AvailableTables)
	})
}

func TestAvailabilityService_AvailableTables(t *testing.T) {
	t.Run("date and time required", func(t *testing.T) {
		svc, _, _ := newAvailabilityService(t)

		_, err := svc.AvailableTables(context.Background(), "2026-09-15", "")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("malformed date", func(t *testing.T) {
		svc, _, _ := newAvailabilityService(t)

		_, err := svc.AvailableTables(context.Background(), "15/09/2026", "19:00")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("booked tables removed", func(t *testing.T) {
		svc, mockTables, mockBookings := newAvailabilityService(t)

		mockTables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(catalog(), nil)
		mockBookings.EXPECT().
			ActiveTableIDs(gomock.Any(), "2026-09-15", "19:00").
			Return([]string{"t1"}, nil)

		res, err := svc.AvailableTables(context.Background(), "2026-09-15", "19:00")

		require.NoError(t, err)
		assert.Equal(t, "2026-09-15", res.Date)
		assert.Equal(t, "19:00", res.Time)
		assert.Len(t, res.Tables, 3)
	})
}

func TestAvailabilityService_Slots(t *testing.T) {
	t.Run("date required", func(t *testing.T) {
		svc, _, _ := newAvailabilityService(t)

		_, err := svc.Slots(context.Background(), "", 2)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("exact capacity per slot", func(t *testing.T) {
		svc, mockTables, mockBookings := newAvailabilityService(t)

		mockTables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(catalog(), nil)
		mockBookings.EXPECT().
			ActiveTableIDsByTime(gomock.Any(), "2026-09-15").
			Return(map[string][]string{
				"19:00": {"t1", "t2"},
				"20:00": {"t1"},
			}, nil)

		res, err := svc.Slots(context.Background(), "2026-09-15", 2)

		require.NoError(t, err)
		assert.Equal(t, "2026-09-15", res.Date)
		assert.Equal(t, 2, res.GuestCount)
		require.Len(t, res.Slots, 23)

		bySlot := map[string]int{}
		for _, slot := range res.Slots {
			bySlot[slot.Time] = slot.TablesAvailable
		}

		// Two 2-seaters exist; only they count for a party of two.
		assert.Equal(t, 0, bySlot["19:00"])
		assert.Equal(t, 1, bySlot["20:00"])
		assert.Equal(t, 2, bySlot["11:00"])

		for _, slot := range res.Slots {
			assert.Equal(t, slot.TablesAvailable > 0, slot.Available)
		}
	})

	t.Run("larger tables do not count for small parties", func(t *testing.T) {
		svc, mockTables, mockBookings := newAvailabilityService(t)

		mockTables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]tableModel.Table{
				{ID: "t4", TableNumber: 4, Capacity: 6, Active: true},
			}, nil)
		mockBookings.EXPECT().
			ActiveTableIDsByTime(gomock.Any(), "2026-09-15").
			Return(map[string][]string{}, nil)

		res, err := svc.Slots(context.Background(), "2026-09-15", 2)

		require.NoError(t, err)

		for _, slot := range res.Slots {
			assert.False(t, slot.Available)
			assert.Zero(t, slot.TablesAvailable)
		}
	})
}

func TestAvailabilityService_Dates(t *testing.T) {
	svc, mockTables, mockBookings := newAvailabilityService(t)

	mockTables.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(catalog(), nil)
	mockBookings.EXPECT().
		ActiveTableIDsForDate(gomock.Any(), gomock.Any()).
		Return([]string{}, nil).
		Times(3)

	res, err := svc.Dates(context.Background(), 2, 3)

	require.NoError(t, err)
	assert.Equal(t, 2, res.GuestCount)
	require.Len(t, res.Dates, 3)

	for _, date := range res.Dates {
		assert.Len(t, date.DayName, 3)
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, date.Date)
		assert.True(t, date.Available)
		assert.Equal(t, 2, date.TablesAvailable)
	}
}
