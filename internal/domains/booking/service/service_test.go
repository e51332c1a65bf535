package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resto/config"
	"resto/infras/otel/mocks"
	bookingMocks "resto/internal/domains/booking/mocks"
	"resto/internal/domains/booking/model"
	"resto/internal/domains/booking/model/dto"
	"resto/internal/domains/booking/service"
	tableMocks "resto/internal/domains/table/mocks"
	tableModel "resto/internal/domains/table/model"
	"resto/internal/events"
	eventMocks "resto/internal/events/mocks"
	cacheMocks "resto/shared/cache/mocks"
	"resto/shared/constant"
	"resto/shared/failure"
)

const (
	testTableID  = "5f9c2d6a-64e1-4b6e-9c21-30c4a2b1e111"
	testTableID2 = "5f9c2d6a-64e1-4b6e-9c21-30c4a2b1e222"
)

func newBookingService(t *testing.T) (service.Booking, *bookingMocks.MockBooking, *tableMocks.MockTable, *eventMocks.MockPublisher, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockTables := tableMocks.NewMockTable(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.MaxPartySize = 16
	cfg.Booking.MaxComboTables = 4
	cfg.Booking.MaxFallbackCombos = 50

	svc := service.New(mockRepo, mockTables, mockPublisher, cfg, mockCache, mockOtel)

	return svc, mockRepo, mockTables, mockPublisher, mockCache
}

func activeTable(id string, number, capacity int) tableModel.Table {
	return tableModel.Table{
		ID:          id,
		TableNumber: number,
		Capacity:    capacity,
		Active:      true,
	}
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
}

func TestBookingService_Create(t *testing.T) {
	validReq := dto.CreateBookingRequest{
		TableID:     testTableID,
		BookingDate: "2026-09-15",
		BookingTime: "19:00",
		GuestsCount: 4,
	}

	t.Run("successful creation", func(t *testing.T) {
		svc, mockRepo, mockTables, mockPublisher, mockCache := newBookingService(t)

		mockTables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]tableModel.Table{activeTable(testTableID, 1, 4)}, nil)
		mockRepo.EXPECT().
			InsertAllChecked(gomock.Any(), gomock.Any()).
			Return(nil, nil)
		mockPublisher.EXPECT().
			BookingCreated(gomock.Any(), gomock.Any())
		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Create(userContext(), validReq)

		require.NoError(t, err)
		assert.Len(t, res.BookingIDs, 1)
	})

	t.Run("multi table creation", func(t *testing.T) {
		svc, mockRepo, mockTables, mockPublisher, mockCache := newBookingService(t)

		req := validReq
		req.TableID = ""
		req.TableIDs = []string{testTableID, testTableID2}
		req.GuestsCount = 8

		mockTables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]tableModel.Table{
				activeTable(testTableID, 1, 4),
				activeTable(testTableID2, 2, 4),
			}, nil)
		mockRepo.EXPECT().
			InsertAllChecked(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, models []model.Booking) ([]string, error) {
				require.Len(t, models, 2)
				assert.Equal(t, constant.BookingStatusPending, models[0].Status)

				return nil, nil
			})
		mockPublisher.EXPECT().
			BookingCreated(gomock.Any(), gomock.Any())
		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Create(userContext(), req)

		require.NoError(t, err)
		assert.Len(t, res.BookingIDs, 2)
	})

	t.Run("no table named", func(t *testing.T) {
		svc, _, _, _, _ := newBookingService(t)

		req := validReq
		req.TableID = ""

		_, err := svc.Create(userContext(), req)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("party too large", func(t *testing.T) {
		svc, _, _, _, _ := newBookingService(t)

		req := validReq
		req.GuestsCount = 17

		_, err := svc.Create(userContext(), req)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown table", func(t *testing.T) {
		svc, _, mockTables, _, _ := newBookingService(t)

		mockTables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]tableModel.Table{}, nil)

		_, err := svc.Create(userContext(), validReq)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("inactive table", func(t *testing.T) {
		svc, _, mockTables, _, _ := newBookingService(t)

		inactive := activeTable(testTableID, 1, 4)
		inactive.Active = false

		mockTables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]tableModel.Table{inactive}, nil)

		_, err := svc.Create(userContext(), validReq)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("malformed date", func(t *testing.T) {
		svc, _, mockTables, _, _ := newBookingService(t)

		req := validReq
		req.BookingDate = "15-09-2026"

		mockTables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]tableModel.Table{activeTable(testTableID, 1, 4)}, nil)

		_, err := svc.Create(userContext(), req)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unique violation maps to conflict", func(t *testing.T) {
		svc, mockRepo, mockTables, _, _ := newBookingService(t)

		mockTables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]tableModel.Table{activeTable(testTableID, 1, 4)}, nil)
		mockRepo.EXPECT().
			InsertAllChecked(gomock.Any(), gomock.Any()).
			Return(nil, &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)})

		_, err := svc.Create(userContext(), validReq)

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Contains(t, err.Error(), "already booked")
	})

	t.Run("taken tables map to conflict", func(t *testing.T) {
		svc, mockRepo, mockTables, _, _ := newBookingService(t)

		mockTables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]tableModel.Table{activeTable(testTableID, 7, 4)}, nil)
		mockRepo.EXPECT().
			InsertAllChecked(gomock.Any(), gomock.Any()).
			Return([]string{testTableID}, nil)

		_, err := svc.Create(userContext(), validReq)

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Contains(t, err.Error(), "7")
	})

	t.Run("repository error", func(t *testing.T) {
		svc, mockRepo, mockTables, _, _ := newBookingService(t)

		mockTables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]tableModel.Table{activeTable(testTableID, 1, 4)}, nil)
		mockRepo.EXPECT().
			InsertAllChecked(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		_, err := svc.Create(userContext(), validReq)

		assert.Error(t, err)
	})
}

func TestBookingService_UpdateStatus(t *testing.T) {
	storedBooking := model.Booking{
		ID:          "booking-id",
		UserID:      "test-user-id",
		TableID:     testTableID,
		BookingDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		BookingTime: "19:00",
		GuestsCount: 4,
		Status:      constant.BookingStatusPending,
	}

	t.Run("pending to confirmed", func(t *testing.T) {
		svc, mockRepo, _, _, mockCache := newBookingService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(storedBooking, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.UpdateStatus(userContext(), dto.UpdateBookingRequest{Status: constant.BookingStatusConfirmed}, storedBooking.ID)

		assert.NoError(t, err)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newBookingService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(storedBooking, nil)

		err := svc.UpdateStatus(userContext(), dto.UpdateBookingRequest{Status: constant.BookingStatusPending}, storedBooking.ID)

		assert.NoError(t, err)
	})

	t.Run("confirmed cannot go back to pending", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newBookingService(t)

		confirmed := storedBooking
		confirmed.Status = constant.BookingStatusConfirmed

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(confirmed, nil)

		err := svc.UpdateStatus(userContext(), dto.UpdateBookingRequest{Status: constant.BookingStatusPending}, storedBooking.ID)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newBookingService(t)

		cancelled := storedBooking
		cancelled.Status = constant.BookingStatusCancelled

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(cancelled, nil)

		err := svc.UpdateStatus(userContext(), dto.UpdateBookingRequest{Status: constant.BookingStatusConfirmed}, storedBooking.ID)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newBookingService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		err := svc.UpdateStatus(userContext(), dto.UpdateBookingRequest{Status: constant.BookingStatusConfirmed}, "missing-id")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	svc, mockRepo, _, mockPublisher, mockCache := newBookingService(t)

	stored := model.Booking{
		ID:          "booking-id",
		UserID:      "test-user-id",
		TableID:     testTableID,
		BookingDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		BookingTime: "19:00",
		GuestsCount: 4,
		Status:      constant.BookingStatusConfirmed,
	}

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(stored, nil)
	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
	mockPublisher.EXPECT().
		BookingCancelled(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, event events.BookingEvent) {
			assert.Equal(t, []string{"booking-id"}, event.BookingIDs)
			assert.Equal(t, "2026-09-15", event.BookingDate)
		})
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	err := svc.Cancel(userContext(), stored.ID)

	assert.NoError(t, err)
}
