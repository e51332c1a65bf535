package model

import (
	"resto/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "orders"
	EntityName = "order"

	FieldID                  = "id"
	FieldUserID              = "user_id"
	FieldBookingID           = "booking_id"
	FieldFoodTotal           = "food_total"
	FieldBookingFee          = "booking_fee"
	FieldTotalAmount         = "total_amount"
	FieldOrderType           = "order_type"
	FieldSpecialInstructions = "special_instructions"
	FieldStatus              = "status"
	FieldPaymentStatus       = "payment_status"
	FieldPaymentMethod       = "payment_method"
	FieldPaymentRef          = "payment_ref"

	ItemTableName  = "order_items"
	ItemEntityName = "order_item"

	FieldItemID         = "id"
	FieldItemOrderID    = "order_id"
	FieldItemMenuItemID = "menu_item_id"
	FieldQuantity       = "quantity"
	FieldPrice          = "price"
	FieldSpecialNotes   = "special_notes"
)

type Order struct {
	ID                  string          `db:"id"`
	UserID              string          `db:"user_id"`
	BookingID           *string         `db:"booking_id"`
	FoodTotal           decimal.Decimal `db:"food_total"`
	BookingFee          decimal.Decimal `db:"booking_fee"`
	TotalAmount         decimal.Decimal `db:"total_amount"`
	OrderType           string          `db:"order_type"`
	SpecialInstructions *string         `db:"special_instructions"`
	Status              string          `db:"status"`
	PaymentStatus       string          `db:"payment_status"`
	PaymentMethod       *string         `db:"payment_method"`
	PaymentRef          *string         `db:"payment_ref"`
	model.Metadata
}

type OrderItem struct {
	ID           string          `db:"id"`
	OrderID      string          `db:"order_id"`
	MenuItemID   string          `db:"menu_item_id"`
	Quantity     int             `db:"quantity"`
	Price        decimal.Decimal `db:"price"`
	SpecialNotes *string         `db:"special_notes"`
}

// OrderItemDetail is an order item joined with its menu item.
type OrderItemDetail struct {
	OrderItem
	Name        string  `db:"name"`
	Description *string `db:"description"`
}
