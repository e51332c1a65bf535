package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"resto/config"
	"resto/infras/otel"
	"resto/infras/s3"
	"resto/internal/domains/menu/model"
	"resto/internal/domains/menu/model/dto"
	"resto/internal/domains/menu/repository"
	"resto/shared"
	"resto/shared/cache"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetCategories = "menu:categories"
	cacheGetItem       = "menu:item:get"
	cacheGetAllItems   = "menu:item:gets"
	cacheCountItems    = "menu:item:count"
)

type Menu interface {
	Categories(ctx context.Context) (dto.GetCategoriesResponse, error)
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) error
	UpdateCategory(ctx context.Context, req dto.UpdateCategoryRequest, id string) error
	DeleteCategory(ctx context.Context, id string) error
	Items(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetItemsResponse, error)
	CountItems(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Item(ctx context.Context, id string) (dto.ItemResponse, error)
	CreateItem(ctx context.Context, req dto.CreateItemRequest) error
	UpdateItem(ctx context.Context, req dto.UpdateItemRequest, id string) error
	DeleteItem(ctx context.Context, id string) error
}

type serviceImpl struct {
	categories repository.Category
	items      repository.Item
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	s3         s3.S3
}

func New(categories repository.Category, items repository.Item, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Menu {
	return &serviceImpl{
		categories: categories,
		items:      items,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		s3:         s3,
	}
}

func (s *serviceImpl) Categories(ctx context.Context) (res dto.GetCategoriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Categories")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetCategories, constant.Empty)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for menu categories")

		return res, nil
	}

	models, err := s.categories.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu categories")

		return res, fmt.Errorf("failed to get menu categories: %w", err)
	}

	sort.SliceStable(models, func(i, j int) bool {
		if models[i].DisplayOrder != models[j].DisplayOrder {
			return models[i].DisplayOrder < models[j].DisplayOrder
		}

		return models[i].Name < models[j].Name
	})

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save menu categories to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateCategory")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.categories.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create menu category")

		return fmt.Errorf("failed to create menu category: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetCategories)
	}()

	return nil
}

func (s *serviceImpl) UpdateCategory(ctx context.Context, req dto.UpdateCategoryRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateCategory")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldCategoryID, model.CategoryTableName)

	exist, err := s.categories.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if menu category exists")

		return fmt.Errorf("failed to check if menu category exists: %w", err)
	}

	if !exist {
		return failure.NotFound("menu category not found")
	}

	updatedFields := shared.TransformFields(req, user)

	if err = s.categories.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update menu category")

		return fmt.Errorf("failed to update menu category: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetCategories)
	}()

	return nil
}

func (s *serviceImpl) DeleteCategory(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteCategory")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldCategoryID, model.CategoryTableName)

	exist, err := s.categories.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if menu category exists")

		return fmt.Errorf("failed to check if menu category exists: %w", err)
	}

	if !exist {
		return failure.NotFound("menu category not found")
	}

	itemFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldItemCategoryID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.ItemTableName,
			},
		},
	}

	hasItems, err := s.items.Exist(ctx, itemFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check menu category items")

		return fmt.Errorf("failed to check menu category items: %w", err)
	}

	if hasItems {
		return failure.BadRequestFromString("menu category still has items")
	}

	if err = s.categories.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete menu category")

		return fmt.Errorf("failed to delete menu category: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetCategories)
	}()

	return nil
}

func (s *serviceImpl) Items(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetItemsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Items")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllItems, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for menu items")

		return res, nil
	}

	total, err := s.CountItems(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count menu items")

		return res, fmt.Errorf("failed to count menu items: %w", err)
	}

	models, err := s.items.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu items")

		return res, fmt.Errorf("failed to get menu items: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save menu items to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) CountItems(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountItems")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountItems, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.items.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count menu items")

		return res, fmt.Errorf("failed to count menu items: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save menu item count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Item(ctx context.Context, id string) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Item")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetItem, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for menu item")

		return res, nil
	}

	item, err := s.items.Get(ctx, shared.FilterByID(id, model.FieldItemID, model.ItemTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu item")

		return res, fmt.Errorf("failed to get menu item: %w", err)
	}

	if item.ID == constant.Empty {
		return res, failure.NotFound("menu item not found") // nolint:wrapcheck
	}

	res.FromModel(item)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save menu item to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) CreateItem(ctx context.Context, req dto.CreateItemRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	categoryFilter := shared.FilterByID(req.CategoryID, model.FieldCategoryID, model.CategoryTableName)

	exist, err := s.categories.Exist(ctx, categoryFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if menu category exists")

		return fmt.Errorf("failed to check if menu category exists: %w", err)
	}

	if !exist {
		return failure.BadRequestFromString("menu category not found")
	}

	if req.Price.IsNegative() || req.Price.IsZero() {
		return failure.BadRequestFromString("price must be greater than zero")
	}

	imageURL := constant.Empty
	var uploadedObjectName string
	if req.Image != nil {
		bucketName := s.cfg.External.S3.BucketName
		filename := objectName(req.Image.Filename)

		url, err := s.s3.UploadFile(ctx, bucketName, model.ItemEntityName, req.ImageFile, req.Image, filename)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload image to S3")

			return fmt.Errorf("failed to upload image: %w", err)
		}
		imageURL = url
		uploadedObjectName = filename
	}

	if err = s.items.Insert(ctx, req.ToModel(user, imageURL)); err != nil {
		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, model.ItemEntityName, uploadedObjectName)
		}

		return err
	}

	s.invalidateItemCaches(ctx, constant.Empty)

	return nil
}

func (s *serviceImpl) UpdateItem(ctx context.Context, req dto.UpdateItemRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldItemID, model.ItemTableName)

	currentItem, err := s.items.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check menu item existence")

		return err
	}

	if currentItem.ID == constant.Empty {
		return failure.NotFound("menu item not found")
	}

	if req.Price != nil && (req.Price.IsNegative() || req.Price.IsZero()) {
		return failure.BadRequestFromString("price must be greater than zero")
	}

	bucketName := s.cfg.External.S3.BucketName

	imageURL := constant.Empty
	var uploadedObjectName string
	if req.Image != nil {
		filename := objectName(req.Image.Filename)

		url, err := s.s3.UploadFile(ctx, bucketName, model.ItemEntityName, req.ImageFile, req.Image, filename)
		if err != nil {
			return fmt.Errorf("failed to upload image: %w", err)
		}
		imageURL = url
		uploadedObjectName = filename
	}

	updatedFields := shared.TransformFields(req, user)
	if imageURL != constant.Empty {
		updatedFields[model.FieldImageURL] = imageURL
	}

	if err = s.items.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update menu item")

		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.ItemEntityName, uploadedObjectName)
		}

		return fmt.Errorf("failed to update menu item: %w", err)
	}

	if imageURL != constant.Empty && currentItem.ImageURL != constant.Empty {
		oldObjectName := s.s3.GetObjectNameFromURL(bucketName, currentItem.ImageURL)
		if oldObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.ItemEntityName, oldObjectName)
		}
	}

	s.invalidateItemCaches(ctx, id)

	return nil
}

func (s *serviceImpl) DeleteItem(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldItemID, model.ItemTableName)

	item, err := s.items.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu item")

		return fmt.Errorf("failed to get menu item: %w", err)
	}

	if item.ID == constant.Empty {
		return failure.NotFound("menu item not found")
	}

	if err = s.items.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete menu item")

		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	if item.ImageURL != constant.Empty {
		bucketName := s.cfg.External.S3.BucketName

		oldObjectName := s.s3.GetObjectNameFromURL(bucketName, item.ImageURL)
		if oldObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.ItemEntityName, oldObjectName)
		}
	}

	s.invalidateItemCaches(ctx, id)

	return nil
}

func (s *serviceImpl) invalidateItemCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetItem, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete menu item cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllItems)
		shared.InvalidateCaches(c, s.cache, cacheCountItems)
	}()
}

// objectName builds a unique object key keeping the upload's extension.
func objectName(original string) string {
	filename := uuid.NewString()

	parts := strings.Split(original, ".")
	if len(parts) > 1 {
		filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
	}

	return filename
}
