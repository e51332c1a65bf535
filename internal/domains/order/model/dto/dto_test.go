package dto_test

import (
	"testing"

	"resto/internal/domains/order/model"
	"resto/internal/domains/order/model/dto"
	"resto/shared/constant"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderRequest_ToModels(t *testing.T) {
	bookingID := "booking-1"
	notes := "no onions"
	req := dto.CreateOrderRequest{
		BookingID: &bookingID,
		OrderType: constant.OrderTypeDineIn,
		Items: []dto.OrderItemRequest{
			{MenuItemID: "item-1", Quantity: 2, SpecialNotes: &notes},
			{MenuItemID: "item-2", Quantity: 1},
		},
	}

	prices := map[string]decimal.Decimal{
		"item-1": decimal.NewFromInt(250),
		"item-2": decimal.NewFromInt(400),
	}

	order, items := req.ToModels("test-user-id", prices, decimal.NewFromInt(100))

	assert.NotEmpty(t, order.ID, "expected ID to be generated")
	assert.Equal(t, "test-user-id", order.UserID)
	assert.Equal(t, &bookingID, order.BookingID)
	assert.True(t, decimal.NewFromInt(900).Equal(order.FoodTotal), "expected food total 900, got %s", order.FoodTotal)
	assert.True(t, decimal.NewFromInt(100).Equal(order.BookingFee))
	assert.True(t, decimal.NewFromInt(1000).Equal(order.TotalAmount))
	assert.Equal(t, constant.OrderStatusPending, order.Status)
	assert.Equal(t, constant.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, "test-user-id", order.CreatedBy)

	require.Len(t, items, 2)
	for i, item := range items {
		assert.Equal(t, order.ID, item.OrderID)
		assert.Equal(t, req.Items[i].MenuItemID, item.MenuItemID)
		assert.Equal(t, req.Items[i].Quantity, item.Quantity)
		assert.True(t, prices[item.MenuItemID].Equal(item.Price), "expected menu price to be snapshotted")
	}
	assert.Equal(t, &notes, items[0].SpecialNotes)
}

func TestCreateOrderRequest_ToModelsDefaultsOrderType(t *testing.T) {
	req := dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{MenuItemID: "item-1", Quantity: 1}},
	}

	order, _ := req.ToModels("test-user-id", map[string]decimal.Decimal{"item-1": decimal.NewFromInt(100)}, decimal.Zero)

	assert.Equal(t, constant.OrderTypeDineIn, order.OrderType)
	assert.True(t, order.FoodTotal.Equal(order.TotalAmount), "expected no fee added")
}

func TestOrderResponse_FromModel(t *testing.T) {
	method := "card"
	orderModel := model.Order{
		ID:            "order-1",
		UserID:        "test-user",
		FoodTotal:     decimal.NewFromInt(500),
		BookingFee:    decimal.NewFromInt(100),
		TotalAmount:   decimal.NewFromInt(600),
		OrderType:     constant.OrderTypeDineIn,
		Status:        constant.OrderStatusConfirmed,
		PaymentStatus: constant.PaymentStatusPaid,
		PaymentMethod: &method,
	}

	items := []model.OrderItemDetail{
		{OrderItem: model.OrderItem{ID: "oi-1", MenuItemID: "item-1", Quantity: 2, Price: decimal.NewFromInt(250)}, Name: "Nasi Goreng"},
	}

	var response dto.OrderResponse
	response.FromModel(orderModel, items)

	assert.Equal(t, "order-1", response.ID)
	assert.Equal(t, constant.PaymentStatusPaid, response.PaymentStatus)
	assert.Equal(t, &method, response.PaymentMethod)
	require.Len(t, response.Items, 1)
	assert.Equal(t, "Nasi Goreng", response.Items[0].Name)
	assert.Equal(t, 2, response.Items[0].Quantity)
}

func TestGetOrdersResponse_FromModels(t *testing.T) {
	models := []model.Order{
		{ID: "order-1"},
		{ID: "order-2"},
	}

	itemsByOrder := map[string][]model.OrderItemDetail{
		"order-1": {{OrderItem: model.OrderItem{ID: "oi-1"}, Name: "Nasi Goreng"}},
	}

	var response dto.GetOrdersResponse
	response.FromModels(models, itemsByOrder, 15, 10)

	assert.Equal(t, 15, response.TotalData)
	assert.Equal(t, 2, response.TotalPage)
	require.Len(t, response.Orders, 2)
	assert.Len(t, response.Orders[0].Items, 1)
	assert.Len(t, response.Orders[1].Items, 0, "expected orders without items to map to an empty list")
}
