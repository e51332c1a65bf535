package model

import (
	"resto/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldOrderID   = "order_id"
	FieldBookingID = "booking_id"
	FieldMethod    = "method"
	FieldAmount    = "amount"
	FieldStatus    = "status"
	FieldTxRef     = "tx_ref"
)

type Payment struct {
	ID        string          `db:"id"`
	UserID    string          `db:"user_id"`
	OrderID   *string         `db:"order_id"`
	BookingID *string         `db:"booking_id"`
	Method    string          `db:"method"`
	Amount    decimal.Decimal `db:"amount"`
	Status    string          `db:"status"`
	TxRef     string          `db:"tx_ref"`
	model.Metadata
}
