package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"resto/infras/otel"
	"resto/infras/postgres"
	"resto/internal/domains/menu/model"
	gDto "resto/shared/dto"
	gRepo "resto/shared/repository"
)

type Category interface {
	Insert(ctx context.Context, model model.Category) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Category, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Category, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type categoryImpl struct {
	gRepo.Repository[model.Category]
	db   *postgres.Connection
	otel otel.Otel
}

func NewCategory(db *postgres.Connection, otel otel.Otel) Category {
	return &categoryImpl{
		Repository: gRepo.NewRepository[model.Category](model.CategoryEntityName, model.CategoryTableName, model.FieldCategoryID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type Item interface {
	Insert(ctx context.Context, model model.Item) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Item, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Item, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type itemImpl struct {
	gRepo.Repository[model.Item]
	db   *postgres.Connection
	otel otel.Otel
}

func NewItem(db *postgres.Connection, otel otel.Otel) Item {
	return &itemImpl{
		Repository: gRepo.NewRepository[model.Item](model.ItemEntityName, model.ItemTableName, model.FieldItemID, db, otel),
		db:         db,
		otel:       otel,
	}
}
