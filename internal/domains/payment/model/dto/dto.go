package dto

import (
	"resto/internal/domains/payment/model"
	gModel "resto/shared/model"
	"resto/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CheckoutRequest struct {
	OrderID   *string         `json:"order_id,omitempty"   validate:"omitempty,uuid"`
	BookingID *string         `json:"booking_id,omitempty" validate:"omitempty,uuid"`
	Amount    decimal.Decimal `json:"amount"               validate:"required"`
	Method    string          `json:"method"               validate:"required,max=50"`
}

func (r *CheckoutRequest) ToModel(username, status, txRef string) model.Payment {
	return model.Payment{
		ID:        uuid.NewString(),
		UserID:    username,
		OrderID:   r.OrderID,
		BookingID: r.BookingID,
		Method:    r.Method,
		Amount:    r.Amount,
		Status:    status,
		TxRef:     txRef,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type CheckoutResponse struct {
	TxRef   string `json:"tx_ref"`
	Status  string `json:"status"`
	Message string `json:"message"`
}
