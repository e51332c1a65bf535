package availability

import (
	"net/http"

	"resto/infras/otel"
	"resto/internal/domains/availability/service"
	"resto/shared"
	"resto/shared/constant"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	defaultGuests = 2
	defaultDays   = 30
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/availability", func(r chi.Router) {
		r.Get("/slots", handler.GetSlots)
		r.Get("/dates", handler.GetDates)
	})
}

// GetSlots lists time slot availability for a date.
// @Summary Get availability slots
// @Description Retrieve per-slot table availability for a date and party size.
// @Tags Availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param guests query int false "Party size (default 2)"
// @Success 200 {object} dto.SlotsResponse "Slots retrieved successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/slots [get]
func (handler *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlots")
	defer scope.End()

	date := r.URL.Query().Get(constant.RequestParamDate)

	guests, err := shared.ConvertStringToInt(r.URL.Query().Get(constant.RequestParamGuests))
	if err != nil || guests < 1 {
		guests = defaultGuests
	}

	res, err := handler.service.Slots(ctx, date, guests)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability slots")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Slots retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetDates lists date availability for the coming days.
// @Summary Get availability dates
// @Description Retrieve per-date table availability for the next N days.
// @Tags Availability
// @Produce json
// @Param guests query int false "Party size (default 2)"
// @Param days query int false "Number of days ahead (default 30)"
// @Success 200 {object} dto.DatesResponse "Dates retrieved successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/dates [get]
func (handler *Handler) GetDates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDates")
	defer scope.End()

	guests, err := shared.ConvertStringToInt(r.URL.Query().Get(constant.RequestParamGuests))
	if err != nil || guests < 1 {
		guests = defaultGuests
	}

	days, err := shared.ConvertStringToInt(r.URL.Query().Get(constant.RequestParamDays))
	if err != nil || days < 1 {
		days = defaultDays
	}

	res, err := handler.service.Dates(ctx, guests, days)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability dates")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dates retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}
