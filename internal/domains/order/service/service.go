package service

import (
	"context"
	"fmt"

	"resto/config"
	"resto/infras/otel"
	bookingModel "resto/internal/domains/booking/model"
	bookingRepo "resto/internal/domains/booking/repository"
	menuModel "resto/internal/domains/menu/model"
	menuRepo "resto/internal/domains/menu/repository"
	"resto/internal/domains/order/model"
	"resto/internal/domains/order/model/dto"
	"resto/internal/domains/order/repository"
	"resto/shared"
	"resto/shared/cache"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheGetOrder    = "order:get"
	cacheGetAllOrder = "order:gets"
	cacheCountOrder  = "order:count"
)

type Order interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (dto.CreateOrderResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOrdersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.OrderResponse, error)
	GetByBooking(ctx context.Context, bookingID string) (dto.GetOrdersResponse, error)
	Update(ctx context.Context, req dto.UpdateOrderRequest, id string) error
}

type serviceImpl struct {
	repo        repository.Order
	menuItems   menuRepo.Item
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Order, menuItems menuRepo.Item, bookings bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Order {
	return &serviceImpl{
		repo:        repo,
		menuItems:   menuItems,
		bookingRepo: bookings,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateOrderRequest) (res dto.CreateOrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if req.BookingID != nil {
		booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(*req.BookingID, bookingModel.FieldID, bookingModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get booking")

			return res, fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return res, failure.BadRequestFromString("booking not found")
		}

		if booking.Status == constant.BookingStatusCancelled {
			return res, failure.BadRequestFromString("cannot order against a cancelled booking")
		}
	}

	prices, err := s.menuPrices(ctx, req.Items)
	if err != nil {
		return res, err
	}

	foodTotal := decimal.Zero
	for _, item := range req.Items {
		foodTotal = foodTotal.Add(prices[item.MenuItemID].Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	// The cover charge applies to booked tables only and is waived once the
	// food order is large enough.
	bookingFee := decimal.Zero
	if req.BookingID != nil && foodTotal.LessThan(decimal.NewFromFloat(s.cfg.Booking.FeeWaiverMinimum)) {
		bookingFee = decimal.NewFromFloat(s.cfg.Booking.BookingFee)
	}

	order, items := req.ToModels(user, prices, bookingFee)

	if err = s.repo.InsertWithItems(ctx, order, items); err != nil {
		log.Error().Err(err).Msg("failed to create order")

		return res, fmt.Errorf("failed to create order: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllOrder)
		shared.InvalidateCaches(c, s.cache, cacheCountOrder)
	}()

	res.OrderID = order.ID
	res.FoodTotal = order.FoodTotal
	res.BookingFee = order.BookingFee
	res.TotalAmount = order.TotalAmount

	return res, nil
}

// menuPrices resolves and validates the ordered menu items, returning the
// current price per item ID.
func (s *serviceImpl) menuPrices(ctx context.Context, items []dto.OrderItemRequest) (map[string]decimal.Decimal, error) {
	ids := make([]string, 0, len(items))
	seen := map[string]bool{}

	for _, item := range items {
		if !seen[item.MenuItemID] {
			seen[item.MenuItemID] = true
			ids = append(ids, item.MenuItemID)
		}
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    menuModel.FieldItemID,
				Operator: gDto.FilterOperatorIn,
				Value:    ids,
				Table:    menuModel.ItemTableName,
			},
		},
	}

	menuItems, err := s.menuItems.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu items")

		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}

	if len(menuItems) != len(ids) {
		return nil, failure.BadRequestFromString("one or more menu items not found")
	}

	prices := make(map[string]decimal.Decimal, len(menuItems))

	for _, item := range menuItems {
		if !item.IsAvailable {
			return nil, failure.BadRequestFromString(fmt.Sprintf("menu item %s is not available", item.Name))
		}

		prices[item.ID] = item.Price
	}

	return prices, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllOrder, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for orders")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count orders")

		return res, fmt.Errorf("failed to count orders: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get orders")

		return res, fmt.Errorf("failed to get orders: %w", err)
	}

	itemsByOrder, err := s.itemsFor(ctx, models)
	if err != nil {
		return res, err
	}

	res.FromModels(models, itemsByOrder, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save orders to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountOrder, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count orders")

		return res, fmt.Errorf("failed to count orders: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save order count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetOrder, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for order")

		return res, nil
	}

	order, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get order")

		return res, fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == constant.Empty {
		return res, failure.NotFound("order not found") // nolint:wrapcheck
	}

	itemsByOrder, err := s.itemsFor(ctx, []model.Order{order})
	if err != nil {
		return res, err
	}

	res.FromModel(order, itemsByOrder[order.ID])

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save order to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByBooking(ctx context.Context, bookingID string) (res dto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingID,
				Table:    model.TableName,
			},
		},
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get orders by booking")

		return res, fmt.Errorf("failed to get orders by booking: %w", err)
	}

	itemsByOrder, err := s.itemsFor(ctx, models)
	if err != nil {
		return res, err
	}

	res.FromModels(models, itemsByOrder, len(models), 0)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateOrderRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Status == constant.Empty && req.PaymentStatus == constant.Empty {
		return failure.BadRequestFromString("nothing to update")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if order exists")

		return fmt.Errorf("failed to check if order exists: %w", err)
	}

	if !exist {
		return failure.NotFound("order not found")
	}

	updatedFields := shared.TransformFields(req, user)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update order")

		return fmt.Errorf("failed to update order: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetOrder, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete order cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllOrder)
		shared.InvalidateCaches(c, s.cache, cacheCountOrder)
	}()

	return nil
}

func (s *serviceImpl) itemsFor(ctx context.Context, orders []model.Order) (map[string][]model.OrderItemDetail, error) {
	orderIDs := make([]string, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}

	itemsByOrder, err := s.repo.ItemsByOrderIDs(ctx, orderIDs)
	if err != nil {
		log.Error().Err(err).Msg("failed to get order items")

		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	return itemsByOrder, nil
}
