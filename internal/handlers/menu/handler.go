package menu

import (
	"net/http"

	"resto/infras/otel"
	"resto/internal/domains/menu/model"
	"resto/internal/domains/menu/model/dto"
	"resto/internal/domains/menu/service"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/validator"
	"resto/transport/http/middleware"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service service.Menu
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Menu, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/menu", func(routerGroup chi.Router) {
		routerGroup.Get("/categories", handler.GetCategories)
		routerGroup.With(handler.auth.Auth, handler.auth.RequireRoles(constant.RoleAdmin)).Post("/categories", handler.CreateCategory)
		routerGroup.With(handler.auth.Auth, handler.auth.RequireRoles(constant.RoleAdmin)).Patch("/categories/{id}", handler.UpdateCategory)
		routerGroup.With(handler.auth.Auth, handler.auth.RequireRoles(constant.RoleAdmin)).Delete("/categories/{id}", handler.DeleteCategory)
		routerGroup.Get("/items", handler.GetItems)
		routerGroup.Get("/items/{id}", handler.GetItem)
		routerGroup.With(handler.auth.Auth, handler.auth.RequireRoles(constant.RoleAdmin)).Post("/items", handler.CreateItem)
		routerGroup.With(handler.auth.Auth, handler.auth.RequireRoles(constant.RoleAdmin)).Patch("/items/{id}", handler.UpdateItem)
		routerGroup.With(handler.auth.Auth, handler.auth.RequireRoles(constant.RoleAdmin)).Delete("/items/{id}", handler.DeleteItem)
	})
}

// GetCategories lists menu categories.
// @Summary Get menu categories
// @Description Retrieve all menu categories ordered by display order.
// @Tags Menu
// @Produce json
// @Success 200 {object} dto.GetCategoriesResponse "Categories retrieved successfully"
// @Failure 500 {object} response.Error
// @Router /v1/menu/categories [get]
func (handler *Handler) GetCategories(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategories")
	defer scope.End()

	res, err := handler.service.Categories(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get menu categories")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Categories retrieved successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateCategory creates a menu category.
// @Summary Create menu category
// @Description Create a new menu category.
// @Tags Menu
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Create Category Request"
// @Success 201 {object} response.Message "Category created successfully"
// @Failure 400 {object} response.Error
// @Router /v1/menu/categories [post]
// @Security BearerAuth
func (handler *Handler) CreateCategory(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCategory")
	defer scope.End()

	req := dto.CreateCategoryRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.CreateCategory(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create menu category")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Category created successfully")

	response.WithMessage(writer, http.StatusCreated, "Category created successfully")
}

// UpdateCategory updates a menu category.
// @Summary Update menu category
// @Description Update an existing menu category.
// @Tags Menu
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body dto.UpdateCategoryRequest true "Update Category Request"
// @Success 200 {object} response.Message "Category updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/menu/categories/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCategory(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCategory")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateCategoryRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.UpdateCategory(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update menu category")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Category updated successfully")

	response.WithMessage(writer, http.StatusOK, "Category updated successfully")
}

// DeleteCategory deletes a menu category.
// @Summary Delete menu category
// @Description Delete a menu category that has no items.
// @Tags Menu
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} response.Message "Category deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/menu/categories/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCategory(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCategory")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.DeleteCategory(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete menu category")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Category deleted successfully")

	response.WithMessage(writer, http.StatusOK, "Category deleted successfully")
}

// GetItems lists menu items.
// @Summary Get menu items
// @Description Retrieve menu items with optional filtering and pagination.
// @Tags Menu
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param category_id query string false "Filter by category"
// @Param is_available query bool false "Filter by availability"
// @Success 200 {object} dto.GetItemsResponse "Items retrieved successfully"
// @Failure 500 {object} response.Error
// @Router /v1/menu/items [get]
func (handler *Handler) GetItems(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItems")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if categoryID := request.URL.Query().Get(model.FieldItemCategoryID); categoryID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldItemCategoryID,
			Operator: gDto.FilterOperatorEq,
			Value:    categoryID,
		})
	}

	if available := request.URL.Query().Get(model.FieldIsAvailable); available != constant.Empty {
		if availableValue := shared.ConvertStringToBool(available); availableValue != nil {
			filter.Filters = append(filter.Filters, gDto.Filter{
				Field:    model.FieldIsAvailable,
				Operator: gDto.FilterOperatorEq,
				Value:    *availableValue,
			})
		}
	}

	res, err := handler.service.Items(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get menu items")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Items retrieved successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// GetItem retrieves a single menu item.
// @Summary Get menu item
// @Description Retrieve a menu item by ID.
// @Tags Menu
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} dto.ItemResponse "Item retrieved successfully"
// @Failure 404 {object} response.Error
// @Router /v1/menu/items/{id} [get]
func (handler *Handler) GetItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItem")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Item(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get menu item")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Item retrieved successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateItem creates a menu item.
// @Summary Create menu item
// @Description Create a new menu item with an optional image.
// @Tags Menu
// @Accept multipart/form-data
// @Produce json
// @Param category_id formData string true "Category ID"
// @Param name formData string true "Item name"
// @Param description formData string false "Item description"
// @Param price formData number true "Item price"
// @Param is_available formData boolean false "Item availability"
// @Param image formData file false "Item image"
// @Success 201 {object} response.Message "Item created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu/items [post]
// @Security BearerAuth
func (handler *Handler) CreateItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateItem")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.CreateItemRequest{
		CategoryID: request.FormValue("category_id"),
		Name:       request.FormValue("name"),
	}

	if description := request.FormValue("description"); description != constant.Empty {
		req.Description = &description
	}

	if priceStr := request.FormValue("price"); priceStr != constant.Empty {
		if price, err := decimal.NewFromString(priceStr); err == nil {
			req.Price = price
		}
	}

	if availableStr := request.FormValue("is_available"); availableStr != constant.Empty {
		req.IsAvailable = shared.ConvertStringToBool(availableStr)
	}

	file, fileHeader, err := request.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.CreateItem(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create menu item")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Item created successfully")

	response.WithMessage(writer, http.StatusCreated, "Item created successfully")
}

// UpdateItem updates a menu item.
// @Summary Update menu item
// @Description Update an existing menu item, optionally replacing its image.
// @Tags Menu
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Item ID"
// @Param category_id formData string false "Category ID"
// @Param name formData string false "Item name"
// @Param description formData string false "Item description"
// @Param price formData number false "Item price"
// @Param is_available formData boolean false "Item availability"
// @Param image formData file false "Item image"
// @Success 200 {object} response.Message "Item updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/menu/items/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateItem")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateItemRequest{
		CategoryID: request.FormValue("category_id"),
		Name:       request.FormValue("name"),
	}

	if description := request.FormValue("description"); description != constant.Empty {
		req.Description = &description
	}

	if priceStr := request.FormValue("price"); priceStr != constant.Empty {
		if price, err := decimal.NewFromString(priceStr); err == nil {
			req.Price = &price
		}
	}

	if availableStr := request.FormValue("is_available"); availableStr != constant.Empty {
		req.IsAvailable = shared.ConvertStringToBool(availableStr)
	}

	file, fileHeader, err := request.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.UpdateItem(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update menu item")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Item updated successfully")

	response.WithMessage(writer, http.StatusOK, "Item updated successfully")
}

// DeleteItem deletes a menu item.
// @Summary Delete menu item
// @Description Delete a menu item and its stored image.
// @Tags Menu
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.Message "Item deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/menu/items/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteItem")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.DeleteItem(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete menu item")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Item deleted successfully")

	response.WithMessage(writer, http.StatusOK, "Item deleted successfully")
}
