package order

import (
	"net/http"

	"resto/infras/otel"
	"resto/internal/domains/order/model"
	"resto/internal/domains/order/model/dto"
	"resto/internal/domains/order/service"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"
	"resto/shared/validator"
	"resto/transport/http/middleware"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Order
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Order, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.With(handler.auth.Auth).Post("/", handler.CreateOrder)
		r.With(handler.auth.Auth, handler.auth.RequireRoles(constant.RoleAdmin)).Get("/", handler.GetOrders)
		r.With(handler.auth.Auth).Get("/myorders", handler.GetMyOrders)
		r.With(handler.auth.Auth).Get("/booking/{id}", handler.GetOrdersByBooking)
		r.With(handler.auth.Auth).Get("/{id}", handler.GetOrder)
		r.With(handler.auth.Auth, handler.auth.RequireRoles(constant.RoleAdmin)).Patch("/{id}", handler.UpdateOrder)
	})
}

// CreateOrder places a food order.
// @Summary Create order
// @Description Place a food order, optionally attached to a booking.
// @Tags Order
// @Accept json
// @Produce json
// @Param request body dto.CreateOrderRequest true "Create Order Request"
// @Success 201 {object} dto.CreateOrderResponse "Order created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/orders [post]
// @Security BearerAuth
func (handler *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOrder")
	defer scope.End()

	req := dto.CreateOrderRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create order")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Order created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetOrders lists all orders.
// @Summary Get orders
// @Description Retrieve all orders with optional filters.
// @Tags Order
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param status query string false "Filter by status"
// @Param payment_status query string false "Filter by payment status"
// @Success 200 {object} dto.GetOrdersResponse "Orders retrieved successfully"
// @Failure 500 {object} response.Error
// @Router /v1/orders [get]
// @Security BearerAuth
func (handler *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrders")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := orderFilter(r)

	res, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get orders")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Orders retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetMyOrders lists the authenticated user's orders.
// @Summary Get my orders
// @Description Retrieve orders created by the authenticated user.
// @Tags Order
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.GetOrdersResponse "Orders retrieved successfully"
// @Failure 401 {object} response.Error
// @Router /v1/orders/myorders [get]
// @Security BearerAuth
func (handler *Handler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyOrders")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == constant.Empty {
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := orderFilter(r)
	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldUserID,
		Operator: gDto.FilterOperatorEq,
		Value:    userID,
	})

	res, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my orders")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Orders retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetOrdersByBooking lists orders attached to a booking.
// @Summary Get orders by booking
// @Description Retrieve all orders placed against a booking.
// @Tags Order
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.GetOrdersResponse "Orders retrieved successfully"
// @Failure 500 {object} response.Error
// @Router /v1/orders/booking/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetOrdersByBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrdersByBooking")
	defer scope.End()

	bookingID := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.GetByBooking(ctx, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get orders by booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Orders retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetOrder retrieves a single order with its items.
// @Summary Get order
// @Description Retrieve an order and its line items by ID.
// @Tags Order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse "Order retrieved successfully"
// @Failure 404 {object} response.Error
// @Router /v1/orders/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrder")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get order")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Order retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateOrder updates an order's status or payment status.
// @Summary Update order
// @Description Update the status or payment status of an order.
// @Tags Order
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body dto.UpdateOrderRequest true "Update Order Request"
// @Success 200 {object} response.Message "Order updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/orders/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOrder")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateOrderRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update order")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Order updated successfully")

	response.WithMessage(w, http.StatusOK, "Order updated successfully")
}

func orderFilter(r *http.Request) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if status := r.URL.Query().Get(model.FieldStatus); status != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
		})
	}

	if paymentStatus := r.URL.Query().Get(model.FieldPaymentStatus); paymentStatus != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldPaymentStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    paymentStatus,
		})
	}

	return filter
}
