package model

import (
	"resto/shared/model"

	"github.com/shopspring/decimal"
)

const (
	CategoryTableName  = "menu_categories"
	CategoryEntityName = "menu_category"

	FieldCategoryID   = "id"
	FieldCategoryName = "name"
	FieldDisplayOrder = "display_order"

	ItemTableName  = "menu_items"
	ItemEntityName = "menu_item"

	FieldItemID         = "id"
	FieldItemName       = "name"
	FieldItemCategoryID = "category_id"
	FieldDescription    = "description"
	FieldPrice          = "price"
	FieldImageURL       = "image_url"
	FieldIsAvailable    = "is_available"
)

type Category struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	DisplayOrder int    `db:"display_order"`
	model.Metadata
}

type Item struct {
	ID          string          `db:"id"`
	CategoryID  string          `db:"category_id"`
	Name        string          `db:"name"`
	Description *string         `db:"description"`
	Price       decimal.Decimal `db:"price"`
	ImageURL    string          `db:"image_url"`
	IsAvailable bool            `db:"is_available"`
	model.Metadata
}
