package payment

import (
	"net/http"

	"resto/infras/otel"
	"resto/internal/domains/payment/model/dto"
	"resto/internal/domains/payment/service"
	"resto/shared/constant"
	"resto/shared/validator"
	"resto/transport/http/middleware"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Payment, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.With(handler.auth.Auth).Post("/checkout", handler.Checkout)
	})
}

// Checkout captures a payment for an order or booking.
// @Summary Checkout
// @Description Capture a payment for an order or booking. Cash payments stay pending until settled in person.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.CheckoutRequest true "Checkout Request"
// @Success 200 {object} dto.CheckoutResponse "Payment processed successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/checkout [post]
// @Security BearerAuth
func (handler *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Checkout")
	defer scope.End()

	req := dto.CheckoutRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Checkout(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to process checkout")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Checkout processed successfully")

	response.WithJSON(w, http.StatusOK, res)
}
