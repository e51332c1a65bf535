package service

import (
	"context"
	"fmt"
	"strings"

	"resto/config"
	"resto/infras/otel"
	bookingModel "resto/internal/domains/booking/model"
	bookingRepo "resto/internal/domains/booking/repository"
	orderModel "resto/internal/domains/order/model"
	orderRepo "resto/internal/domains/order/repository"
	"resto/internal/domains/payment/model/dto"
	"resto/internal/domains/payment/repository"
	"resto/internal/events"
	"resto/shared"
	"resto/shared/cache"
	"resto/shared/constant"
	"resto/shared/failure"
	"resto/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Caches owned by the order and booking read paths go stale once a payment
// lands, so checkout invalidates them by prefix.
const (
	cacheGetOrder    = "order:get"
	cacheGetAllOrder = "order:gets"
	cacheGetBooking  = "booking:get"
	cacheGetsBooking = "booking:gets"
)

type Payment interface {
	Checkout(ctx context.Context, req dto.CheckoutRequest) (dto.CheckoutResponse, error)
}

type serviceImpl struct {
	repo        repository.Payment
	orderRepo   orderRepo.Order
	bookingRepo bookingRepo.Booking
	publisher   events.Publisher
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Payment, orders orderRepo.Order, bookings bookingRepo.Booking, publisher events.Publisher, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Payment {
	return &serviceImpl{
		repo:        repo,
		orderRepo:   orders,
		bookingRepo: bookings,
		publisher:   publisher,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Checkout records a payment through the simulated processor. Cash stays
// pending until settled at the venue; every other method settles immediately.
func (s *serviceImpl) Checkout(ctx context.Context, req dto.CheckoutRequest) (res dto.CheckoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Checkout")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if !req.Amount.IsPositive() {
		return res, failure.BadRequestFromString("amount must be greater than zero")
	}

	bookingID := req.BookingID

	if req.OrderID != nil {
		order, err := s.orderRepo.Get(ctx, shared.FilterByID(*req.OrderID, orderModel.FieldID, orderModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get order")

			return res, fmt.Errorf("failed to get order: %w", err)
		}

		if order.ID == constant.Empty {
			return res, failure.BadRequestFromString("order not found")
		}

		if bookingID == nil {
			bookingID = order.BookingID
		}
	}

	status := constant.PaymentStatusSucceeded
	if req.Method == constant.PaymentMethodCash {
		status = constant.PaymentStatusPending
	}

	txRef := newTxRef()

	if err = s.repo.Insert(ctx, req.ToModel(user, status, txRef)); err != nil {
		log.Error().Err(err).Msg("failed to record payment")

		return res, fmt.Errorf("failed to record payment: %w", err)
	}

	if req.OrderID != nil {
		if err = s.settleOrder(ctx, *req.OrderID, req.Method, txRef, status, user); err != nil {
			return res, err
		}
	}

	if status == constant.PaymentStatusSucceeded && bookingID != nil {
		if err = s.confirmBooking(ctx, *bookingID, user); err != nil {
			return res, err
		}
	}

	s.publisher.PaymentCaptured(ctx, events.PaymentEvent{
		TxRef:     txRef,
		UserID:    user,
		OrderID:   stringValue(req.OrderID),
		BookingID: stringValue(bookingID),
		Method:    req.Method,
		Amount:    req.Amount.String(),
		Status:    status,
	})

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetOrder)
		shared.InvalidateCaches(c, s.cache, cacheGetAllOrder)
		shared.InvalidateCaches(c, s.cache, cacheGetBooking)
		shared.InvalidateCaches(c, s.cache, cacheGetsBooking)
	}()

	res.TxRef = txRef
	res.Status = status

	if status == constant.PaymentStatusSucceeded {
		res.Message = "Payment processed successfully"
	} else {
		res.Message = "Payment recorded as pending; please complete on delivery"
	}

	return res, nil
}

func (s *serviceImpl) settleOrder(ctx context.Context, orderID, method, txRef, status, user string) error {
	paymentStatus := constant.PaymentStatusPaid
	if status != constant.PaymentStatusSucceeded {
		paymentStatus = constant.PaymentStatusPending
	}

	orderUpdate := struct {
		PaymentStatus string `db:"payment_status"`
		PaymentMethod string `db:"payment_method"`
		PaymentRef    string `db:"payment_ref"`
	}{
		PaymentStatus: paymentStatus,
		PaymentMethod: method,
		PaymentRef:    txRef,
	}

	updatedFields := shared.TransformFields(orderUpdate, user)

	if err := s.orderRepo.Update(ctx, updatedFields, shared.FilterByID(orderID, orderModel.FieldID, orderModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update order payment status")

		return fmt.Errorf("failed to update order payment status: %w", err)
	}

	return nil
}

func (s *serviceImpl) confirmBooking(ctx context.Context, bookingID, user string) error {
	filter := shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName)

	booking, err := s.bookingRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty || booking.Status != constant.BookingStatusPending {
		return nil
	}

	statusUpdate := struct {
		Status string `db:"status"`
	}{Status: constant.BookingStatusConfirmed}

	if err := s.bookingRepo.Update(ctx, shared.TransformFields(statusUpdate, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to confirm booking")

		return fmt.Errorf("failed to confirm booking: %w", err)
	}

	return nil
}

func newTxRef() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]

	return fmt.Sprintf("tx_%d_%s", timezone.Now().UnixMilli(), suffix)
}

func stringValue(s *string) string {
	if s == nil {
		return constant.Empty
	}

	return *s
}
