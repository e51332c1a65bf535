package table

import (
	"net/http"

	"resto/infras/otel"
	availabilityService "resto/internal/domains/availability/service"
	"resto/internal/domains/table/model"
	"resto/internal/domains/table/model/dto"
	"resto/internal/domains/table/service"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/validator"
	"resto/transport/http/middleware"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service      service.Table
	availability availabilityService.Availability
	auth         middleware.Auth
	otel         otel.Otel
}

func New(service service.Table, availability availabilityService.Availability, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:      service,
		availability: availability,
		auth:         auth,
		otel:         otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/tables", func(r chi.Router) {
		r.Get("/", handler.GetTables)
		r.Get("/available", handler.GetAvailableTables)
		r.Get("/suggestions", handler.GetSuggestions)
		r.Get("/{id}", handler.GetTable)
		r.With(handler.auth.Auth, handler.auth.RequireRoles(constant.RoleAdmin)).Post("/", handler.CreateTable)
		r.With(handler.auth.Auth, handler.auth.RequireRoles(constant.RoleAdmin)).Patch("/{id}", handler.UpdateTable)
		r.With(handler.auth.Auth, handler.auth.RequireRoles(constant.RoleAdmin)).Delete("/{id}", handler.DeleteTable)
	})
}

// GetTables lists restaurant tables.
// @Summary Get tables
// @Description Retrieve restaurant tables with optional filters.
// @Tags Table
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param location query string false "Filter by location"
// @Param active query bool false "Filter by active state"
// @Success 200 {object} dto.GetTablesResponse "Tables retrieved successfully"
// @Failure 500 {object} response.Error
// @Router /v1/tables [get]
func (handler *Handler) GetTables(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTables")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if location := r.URL.Query().Get(model.FieldLocation); location != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldLocation,
			Operator: gDto.FilterOperatorEq,
			Value:    location,
		})
	}

	if active := r.URL.Query().Get(model.FieldActive); active != constant.Empty {
		if activeValue := shared.ConvertStringToBool(active); activeValue != nil {
			filter.Filters = append(filter.Filters, gDto.Filter{
				Field:    model.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    *activeValue,
			})
		}
	}

	res, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tables")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tables retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetAvailableTables lists tables free at a given date and time.
// @Summary Get available tables
// @Description Retrieve tables that have no active booking at the given date and time.
// @Tags Table
// @Produce json
// @Param date query string true "Booking date (YYYY-MM-DD)"
// @Param time query string true "Booking time (HH:MM)"
// @Success 200 {object} availabilityDto.AvailableTablesResponse "Available tables retrieved successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/available [get]
func (handler *Handler) GetAvailableTables(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableTables")
	defer scope.End()

	date := r.URL.Query().Get(constant.RequestParamDate)
	bookingTime := r.URL.Query().Get(constant.RequestParamTime)

	res, err := handler.availability.AvailableTables(ctx, date, bookingTime)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get available tables")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Available tables retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetSuggestions suggests table combinations for a party size.
// @Summary Get table suggestions
// @Description Suggest single tables or table combinations that can seat the party.
// @Tags Table
// @Produce json
// @Param guests query int true "Party size"
// @Param date query string false "Booking date (YYYY-MM-DD)"
// @Param time query string false "Booking time (HH:MM)"
// @Success 200 {object} availabilityDto.SuggestionsResponse "Suggestions retrieved successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/suggestions [get]
func (handler *Handler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSuggestions")
	defer scope.End()

	guests, err := shared.ConvertStringToInt(r.URL.Query().Get(constant.RequestParamGuests))
	if err != nil {
		guests = 0
	}

	date := r.URL.Query().Get(constant.RequestParamDate)
	bookingTime := r.URL.Query().Get(constant.RequestParamTime)

	res, err := handler.availability.Suggestions(ctx, date, bookingTime, guests)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get table suggestions")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Suggestions retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetTable retrieves a single table.
// @Summary Get table
// @Description Retrieve a restaurant table by ID.
// @Tags Table
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} dto.TableResponse "Table retrieved successfully"
// @Failure 404 {object} response.Error
// @Router /v1/tables/{id} [get]
func (handler *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTable")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get table")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Table retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// CreateTable creates a restaurant table.
// @Summary Create table
// @Description Create a new restaurant table.
// @Tags Table
// @Accept json
// @Produce json
// @Param request body dto.CreateTableRequest true "Create Table Request"
// @Success 201 {object} response.Message "Table created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/tables [post]
// @Security BearerAuth
func (handler *Handler) CreateTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTable")
	defer scope.End()

	req := dto.CreateTableRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create table")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Table created successfully")

	response.WithMessage(w, http.StatusCreated, "Table created successfully")
}

// UpdateTable updates a restaurant table.
// @Summary Update table
// @Description Update an existing restaurant table.
// @Tags Table
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Param request body dto.UpdateTableRequest true "Update Table Request"
// @Success 200 {object} response.Message "Table updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/tables/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTable")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTableRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update table")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Table updated successfully")

	response.WithMessage(w, http.StatusOK, "Table updated successfully")
}

// DeleteTable deletes a restaurant table.
// @Summary Delete table
// @Description Delete a restaurant table by ID.
// @Tags Table
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} response.Message "Table deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/tables/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTable")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete table")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Table deleted successfully")

	response.WithMessage(w, http.StatusOK, "Table deleted successfully")
}
