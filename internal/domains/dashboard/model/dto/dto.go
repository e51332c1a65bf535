package dto

import "github.com/shopspring/decimal"

type StatsResponse struct {
	TodayBookings  int             `json:"today_bookings"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	PendingOrders  int             `json:"pending_orders"`
	TotalCustomers int             `json:"total_customers"`
}
