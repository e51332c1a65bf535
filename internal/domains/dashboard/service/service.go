package service

import (
	"context"
	"fmt"

	"resto/infras/otel"
	bookingModel "resto/internal/domains/booking/model"
	bookingRepo "resto/internal/domains/booking/repository"
	"resto/internal/domains/dashboard/model/dto"
	orderModel "resto/internal/domains/order/model"
	orderRepo "resto/internal/domains/order/repository"
	userModel "resto/internal/domains/user/model"
	userRepo "resto/internal/domains/user/repository"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Dashboard interface {
	Stats(ctx context.Context) (dto.StatsResponse, error)
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	orderRepo   orderRepo.Order
	userRepo    userRepo.User
	otel        otel.Otel
}

func New(bookings bookingRepo.Booking, orders orderRepo.Order, users userRepo.User, otel otel.Otel) Dashboard {
	return &serviceImpl{
		bookingRepo: bookings,
		orderRepo:   orders,
		userRepo:    users,
		otel:        otel,
	}
}

// Stats aggregates the admin dashboard counters: today's confirmed bookings,
// settled revenue, orders still in the kitchen pipeline, and the customer base.
func (s *serviceImpl) Stats(ctx context.Context) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	today := timezone.Now().Format(constant.BookingDateFormat)

	bookingFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldBookingDate,
				Operator: gDto.FilterOperatorEq,
				Value:    today,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    constant.BookingStatusConfirmed,
				Table:    bookingModel.TableName,
			},
		},
	}

	res.TodayBookings, err = s.bookingRepo.Count(ctx, bookingFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count today's bookings")

		return res, fmt.Errorf("failed to count today's bookings: %w", err)
	}

	res.TotalRevenue, err = s.orderRepo.PaidRevenue(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get paid revenue")

		return res, fmt.Errorf("failed to get paid revenue: %w", err)
	}

	orderFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    orderModel.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    []string{constant.OrderStatusPending, constant.OrderStatusConfirmed, constant.OrderStatusPreparing},
				Table:    orderModel.TableName,
			},
		},
	}

	res.PendingOrders, err = s.orderRepo.Count(ctx, orderFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count open orders")

		return res, fmt.Errorf("failed to count open orders: %w", err)
	}

	userFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldRole,
				Operator: gDto.FilterOperatorEq,
				Value:    constant.RoleCustomer,
				Table:    userModel.TableName,
			},
		},
	}

	res.TotalCustomers, err = s.userRepo.Count(ctx, userFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count customers")

		return res, fmt.Errorf("failed to count customers: %w", err)
	}

	return res, nil
}
