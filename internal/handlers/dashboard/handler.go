package dashboard

import (
	"net/http"

	"resto/infras/otel"
	"resto/internal/domains/dashboard/service"
	"resto/shared/constant"
	"resto/transport/http/middleware"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Dashboard
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Dashboard, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/dashboard", func(r chi.Router) {
		r.With(handler.auth.Auth, handler.auth.RequireRoles(constant.RoleAdmin)).Get("/stats", handler.GetStats)
	})
}

// GetStats returns operational counters for the admin dashboard.
// @Summary Get dashboard stats
// @Description Retrieve today's confirmed bookings, paid revenue, open orders and customer count.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.StatsResponse "Stats retrieved successfully"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/stats [get]
// @Security BearerAuth
func (handler *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStats")
	defer scope.End()

	res, err := handler.service.Stats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard stats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Stats retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}
