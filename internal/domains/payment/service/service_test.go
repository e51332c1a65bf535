package service_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resto/config"
	"resto/infras/otel/mocks"
	bookingMocks "resto/internal/domains/booking/mocks"
	bookingModel "resto/internal/domains/booking/model"
	orderMocks "resto/internal/domains/order/mocks"
	orderModel "resto/internal/domains/order/model"
	paymentMocks "resto/internal/domains/payment/mocks"
	"resto/internal/domains/payment/model"
	"resto/internal/domains/payment/model/dto"
	"resto/internal/domains/payment/service"
	"resto/internal/events"
	eventMocks "resto/internal/events/mocks"
	cacheMocks "resto/shared/cache/mocks"
	"resto/shared/constant"
	"resto/shared/failure"
)

const (
	testOrderID   = "2d6c3e74-9b60-4c79-8e43-1c4b5d6e7f80"
	testBookingID = "3e7d4f85-0c71-4d80-9f54-2d5c6e7f8091"
)

func newPaymentService(t *testing.T) (service.Payment, *paymentMocks.MockPayment, *orderMocks.MockOrder, *bookingMocks.MockBooking, *eventMocks.MockPublisher) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := paymentMocks.NewMockPayment(ctrl)
	mockOrders := orderMocks.NewMockOrder(ctrl)
	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockOrders, mockBookings, mockPublisher, cfg, mockCache, mockOtel)

	return svc, mockRepo, mockOrders, mockBookings, mockPublisher
}

func paymentContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
}

func TestPaymentService_Checkout(t *testing.T) {
	orderID := testOrderID
	bookingID := testBookingID

	t.Run("card payment succeeds immediately", func(t *testing.T) {
		svc, mockRepo, mockOrders, _, mockPublisher := newPaymentService(t)

		mockOrders.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(orderModel.Order{ID: orderID}, nil)
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, payment model.Payment) error {
				assert.Equal(t, constant.PaymentStatusSucceeded, payment.Status)
				assert.True(t, strings.HasPrefix(payment.TxRef, "tx_"))

				return nil
			})
		mockOrders.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		mockPublisher.EXPECT().
			PaymentCaptured(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, event events.PaymentEvent) {
				assert.Equal(t, constant.PaymentStatusSucceeded, event.Status)
				assert.Equal(t, orderID, event.OrderID)
			})

		res, err := svc.Checkout(paymentContext(), dto.CheckoutRequest{
			OrderID: &orderID,
			Amount:  decimal.NewFromInt(600),
			Method:  "card",
		})

		require.NoError(t, err)
		assert.Equal(t, constant.PaymentStatusSucceeded, res.Status)
		assert.Contains(t, res.Message, "successfully")
	})

	t.Run("cash payment stays pending", func(t *testing.T) {
		svc, mockRepo, mockOrders, _, mockPublisher := newPaymentService(t)

		mockOrders.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(orderModel.Order{ID: orderID}, nil)
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)
		mockOrders.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		mockPublisher.EXPECT().
			PaymentCaptured(gomock.Any(), gomock.Any())

		res, err := svc.Checkout(paymentContext(), dto.CheckoutRequest{
			OrderID: &orderID,
			Amount:  decimal.NewFromInt(600),
			Method:  constant.PaymentMethodCash,
		})

		require.NoError(t, err)
		assert.Equal(t, constant.PaymentStatusPending, res.Status)
		assert.Contains(t, res.Message, "pending")
	})

	t.Run("successful payment confirms the pending booking", func(t *testing.T) {
		svc, mockRepo, mockOrders, mockBookings, mockPublisher := newPaymentService(t)

		order := orderModel.Order{ID: orderID, BookingID: &bookingID}

		mockOrders.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(order, nil)
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)
		mockOrders.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		mockBookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(bookingModel.Booking{ID: bookingID, Status: constant.BookingStatusPending}, nil)
		mockBookings.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		mockPublisher.EXPECT().
			PaymentCaptured(gomock.Any(), gomock.Any())

		res, err := svc.Checkout(paymentContext(), dto.CheckoutRequest{
			OrderID: &orderID,
			Amount:  decimal.NewFromInt(600),
			Method:  "card",
		})

		require.NoError(t, err)
		assert.Equal(t, constant.PaymentStatusSucceeded, res.Status)
	})

	t.Run("cash payment does not confirm the booking", func(t *testing.T) {
		svc, mockRepo, _, _, mockPublisher := newPaymentService(t)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)
		mockPublisher.EXPECT().
			PaymentCaptured(gomock.Any(), gomock.Any())

		res, err := svc.Checkout(paymentContext(), dto.CheckoutRequest{
			BookingID: &bookingID,
			Amount:    decimal.NewFromInt(100),
			Method:    constant.PaymentMethodCash,
		})

		require.NoError(t, err)
		assert.Equal(t, constant.PaymentStatusPending, res.Status)
	})

	t.Run("already confirmed booking is left alone", func(t *testing.T) {
		svc, mockRepo, _, mockBookings, mockPublisher := newPaymentService(t)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)
		mockBookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(bookingModel.Booking{ID: bookingID, Status: constant.BookingStatusConfirmed}, nil)
		mockPublisher.EXPECT().
			PaymentCaptured(gomock.Any(), gomock.Any())

		res, err := svc.Checkout(paymentContext(), dto.CheckoutRequest{
			BookingID: &bookingID,
			Amount:    decimal.NewFromInt(100),
			Method:    "card",
		})

		require.NoError(t, err)
		assert.Equal(t, constant.PaymentStatusSucceeded, res.Status)
	})

	t.Run("non positive amount", func(t *testing.T) {
		svc, _, _, _, _ := newPaymentService(t)

		_, err := svc.Checkout(paymentContext(), dto.CheckoutRequest{
			Amount: decimal.Zero,
			Method: "card",
		})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown order", func(t *testing.T) {
		svc, _, mockOrders, _, _ := newPaymentService(t)

		mockOrders.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(orderModel.Order{}, nil)

		_, err := svc.Checkout(paymentContext(), dto.CheckoutRequest{
			OrderID: &orderID,
			Amount:  decimal.NewFromInt(600),
			Method:  "card",
		})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
