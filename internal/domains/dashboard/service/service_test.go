package service_test

import (
	"context"
	"errors"
	"testing"

	"resto/infras/otel/mocks"
	bookingMocks "resto/internal/domains/booking/mocks"
	bookingModel "resto/internal/domains/booking/model"
	"resto/internal/domains/dashboard/service"
	orderMocks "resto/internal/domains/order/mocks"
	userMocks "resto/internal/domains/user/mocks"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/timezone"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newDashboardService(t *testing.T) (service.Dashboard, *bookingMocks.MockBooking, *orderMocks.MockOrder, *userMocks.MockUser) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockOrders := orderMocks.NewMockOrder(ctrl)
	mockUsers := userMocks.NewMockUser(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockBookings, mockOrders, mockUsers, mockOtel)

	return svc, mockBookings, mockOrders, mockUsers
}

func TestDashboardService_Stats(t *testing.T) {
	t.Run("aggregates all counters", func(t *testing.T) {
		svc, mockBookings, mockOrders, mockUsers := newDashboardService(t)

		today := timezone.Now().Format(constant.BookingDateFormat)

		mockBookings.EXPECT().Count(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				require.Len(t, filter.Filters, 2)

				dateFilter, ok := filter.Filters[0].(gDto.Filter)
				require.True(t, ok)
				assert.Equal(t, bookingModel.FieldBookingDate, dateFilter.Field)
				assert.Equal(t, today, dateFilter.Value)

				return 4, nil
			},
		)
		mockOrders.EXPECT().PaidRevenue(gomock.Any()).Return(decimal.NewFromInt(12500), nil)
		mockOrders.EXPECT().Count(gomock.Any(), gomock.Any()).Return(7, nil)
		mockUsers.EXPECT().Count(gomock.Any(), gomock.Any()).Return(42, nil)

		res, err := svc.Stats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 4, res.TodayBookings)
		assert.True(t, decimal.NewFromInt(12500).Equal(res.TotalRevenue))
		assert.Equal(t, 7, res.PendingOrders)
		assert.Equal(t, 42, res.TotalCustomers)
	})

	t.Run("booking count error", func(t *testing.T) {
		svc, mockBookings, _, _ := newDashboardService(t)

		mockBookings.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("db error"))

		_, err := svc.Stats(context.Background())
		require.Error(t, err)
	})

	t.Run("revenue error", func(t *testing.T) {
		svc, mockBookings, mockOrders, _ := newDashboardService(t)

		mockBookings.EXPECT().Count(gomock.Any(), gomock.Any()).Return(4, nil)
		mockOrders.EXPECT().PaidRevenue(gomock.Any()).Return(decimal.Zero, errors.New("db error"))

		_, err := svc.Stats(context.Background())
		require.Error(t, err)
	})
}
