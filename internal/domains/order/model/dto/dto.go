package dto

import (
	"resto/internal/domains/order/model"
	"resto/shared"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	gModel "resto/shared/model"
	"resto/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	MenuItemID   string  `json:"menu_item_id" validate:"required,uuid"`
	Quantity     int     `json:"quantity"     validate:"required,min=1"`
	SpecialNotes *string `json:"special_notes,omitempty"`
}

type CreateOrderRequest struct {
	BookingID           *string            `json:"booking_id,omitempty"           validate:"omitempty,uuid"`
	OrderType           string             `json:"order_type"                     validate:"omitempty,oneof=dine-in takeaway"`
	SpecialInstructions *string            `json:"special_instructions,omitempty"`
	Items               []OrderItemRequest `json:"items"                          validate:"required,min=1,dive"`
}

// ToModels builds the order row and its item rows. Prices come from the
// current menu, not the request; the caller passes them keyed by menu item ID.
func (r *CreateOrderRequest) ToModels(username string, prices map[string]decimal.Decimal, bookingFee decimal.Decimal) (model.Order, []model.OrderItem) {
	orderType := r.OrderType
	if orderType == constant.Empty {
		orderType = constant.OrderTypeDineIn
	}

	foodTotal := decimal.Zero

	items := make([]model.OrderItem, len(r.Items))
	orderID := uuid.NewString()

	for i, item := range r.Items {
		price := prices[item.MenuItemID]
		foodTotal = foodTotal.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))

		items[i] = model.OrderItem{
			ID:           uuid.NewString(),
			OrderID:      orderID,
			MenuItemID:   item.MenuItemID,
			Quantity:     item.Quantity,
			Price:        price,
			SpecialNotes: item.SpecialNotes,
		}
	}

	order := model.Order{
		ID:                  orderID,
		UserID:              username,
		BookingID:           r.BookingID,
		FoodTotal:           foodTotal,
		BookingFee:          bookingFee,
		TotalAmount:         foodTotal.Add(bookingFee),
		OrderType:           orderType,
		SpecialInstructions: r.SpecialInstructions,
		Status:              constant.OrderStatusPending,
		PaymentStatus:       constant.PaymentStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}

	return order, items
}

type UpdateOrderRequest struct {
	Status        string `db:"status"         json:"status"         validate:"omitempty,oneof=pending confirmed preparing served completed cancelled"`
	PaymentStatus string `db:"payment_status" json:"payment_status" validate:"omitempty,oneof=pending paid refunded"`
}

type CreateOrderResponse struct {
	OrderID     string          `json:"order_id"`
	FoodTotal   decimal.Decimal `json:"food_total"`
	BookingFee  decimal.Decimal `json:"booking_fee"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type OrderItemResponse struct {
	ID           string          `json:"id"`
	MenuItemID   string          `json:"menu_item_id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	SpecialNotes *string         `json:"special_notes,omitempty"`
}

func (r *OrderItemResponse) FromModel(model model.OrderItemDetail) {
	r.ID = model.ID
	r.MenuItemID = model.MenuItemID
	r.Name = model.Name
	r.Description = model.Description
	r.Quantity = model.Quantity
	r.Price = model.Price
	r.SpecialNotes = model.SpecialNotes
}

type OrderResponse struct {
	ID                  string              `json:"id"`
	UserID              string              `json:"user_id"`
	BookingID           *string             `json:"booking_id,omitempty"`
	FoodTotal           decimal.Decimal     `json:"food_total"`
	BookingFee          decimal.Decimal     `json:"booking_fee"`
	TotalAmount         decimal.Decimal     `json:"total_amount"`
	OrderType           string              `json:"order_type"`
	SpecialInstructions *string             `json:"special_instructions,omitempty"`
	Status              string              `json:"status"`
	PaymentStatus       string              `json:"payment_status"`
	PaymentMethod       *string             `json:"payment_method,omitempty"`
	PaymentRef          *string             `json:"payment_ref,omitempty"`
	Items               []OrderItemResponse `json:"items"`
	gDto.Metadata
}

func (r *OrderResponse) FromModel(model model.Order, items []model.OrderItemDetail) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.BookingID = model.BookingID
	r.FoodTotal = model.FoodTotal
	r.BookingFee = model.BookingFee
	r.TotalAmount = model.TotalAmount
	r.OrderType = model.OrderType
	r.SpecialInstructions = model.SpecialInstructions
	r.Status = model.Status
	r.PaymentStatus = model.PaymentStatus
	r.PaymentMethod = model.PaymentMethod
	r.PaymentRef = model.PaymentRef
	r.Metadata.FromModel(model.Metadata)

	r.Items = make([]OrderItemResponse, len(items))
	for i, item := range items {
		r.Items[i].FromModel(item)
	}
}

type GetOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetOrdersResponse) FromModels(models []model.Order, itemsByOrder map[string][]model.OrderItemDetail, total, limit int) {
	r.Orders = make([]OrderResponse, len(models))
	for i, m := range models {
		r.Orders[i].FromModel(m, itemsByOrder[m.ID])
	}

	r.TotalData = total
	r.TotalPage = shared.CalculateTotalPage(total, limit)
}
