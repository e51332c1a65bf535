package dto

import (
	"mime/multipart"

	"resto/internal/domains/menu/model"
	"resto/shared"
	gDto "resto/shared/dto"
	gModel "resto/shared/model"
	"resto/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateCategoryRequest struct {
	Name         string `json:"name"          validate:"required,max=100"`
	DisplayOrder int    `json:"display_order" validate:"omitempty,min=0"`
}

func (r *CreateCategoryRequest) ToModel(username string) model.Category {
	return model.Category{
		ID:           uuid.NewString(),
		Name:         r.Name,
		DisplayOrder: r.DisplayOrder,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UpdateCategoryRequest struct {
	Name         string `db:"name"          json:"name"          validate:"omitempty,max=100"`
	DisplayOrder *int   `db:"display_order" json:"display_order" validate:"omitempty,min=0"`
}

type CategoryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
	gDto.Metadata
}

func (r *CategoryResponse) FromModel(model model.Category) {
	r.ID = model.ID
	r.Name = model.Name
	r.DisplayOrder = model.DisplayOrder
	r.Metadata.FromModel(model.Metadata)
}

type GetCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

func (r *GetCategoriesResponse) FromModels(models []model.Category) {
	r.Categories = make([]CategoryResponse, len(models))
	for i, m := range models {
		r.Categories[i].FromModel(m)
	}
}

type CreateItemRequest struct {
	CategoryID  string                `json:"category_id" validate:"required,uuid"`
	Name        string                `json:"name"        validate:"required,max=100"`
	Description *string               `json:"description,omitempty"`
	Price       decimal.Decimal       `json:"price"       validate:"required"`
	IsAvailable *bool                 `json:"is_available,omitempty"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
}

func (r *CreateItemRequest) ToModel(username, imageURL string) model.Item {
	isAvailable := true
	if r.IsAvailable != nil {
		isAvailable = *r.IsAvailable
	}

	return model.Item{
		ID:          uuid.NewString(),
		CategoryID:  r.CategoryID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    imageURL,
		IsAvailable: isAvailable,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UpdateItemRequest struct {
	CategoryID  string                `db:"category_id"  json:"category_id"  validate:"omitempty,uuid"`
	Name        string                `db:"name"         json:"name"         validate:"omitempty,max=100"`
	Description *string               `db:"description"  json:"description"  validate:"omitempty"`
	Price       *decimal.Decimal      `db:"price"        json:"price"        validate:"omitempty"`
	IsAvailable *bool                 `db:"is_available" json:"is_available" validate:"omitempty"`
	Image       *multipart.FileHeader `json:"image"      validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
}

type ItemResponse struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"category_id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	IsAvailable bool            `json:"is_available"`
	gDto.Metadata
}

func (r *ItemResponse) FromModel(model model.Item) {
	r.ID = model.ID
	r.CategoryID = model.CategoryID
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.ImageURL = model.ImageURL
	r.IsAvailable = model.IsAvailable
	r.Metadata.FromModel(model.Metadata)
}

type GetItemsResponse struct {
	Items     []ItemResponse `json:"items"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetItemsResponse) FromModels(models []model.Item, total, limit int) {
	r.Items = make([]ItemResponse, len(models))
	for i, m := range models {
		r.Items[i].FromModel(m)
	}

	r.TotalData = total
	r.TotalPage = shared.CalculateTotalPage(total, limit)
}
