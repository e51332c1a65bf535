package router

import (
	"resto/internal/handlers/auth"
	"resto/internal/handlers/availability"
	"resto/internal/handlers/booking"
	"resto/internal/handlers/dashboard"
	"resto/internal/handlers/menu"
	"resto/internal/handlers/order"
	"resto/internal/handlers/payment"
	"resto/internal/handlers/table"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Table        table.Handler
	Availability availability.Handler
	Booking      booking.Handler
	Menu         menu.Handler
	Order        order.Handler
	Payment      payment.Handler
	Dashboard    dashboard.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Table.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Menu.Router(routerGroup)
		r.DomainHandlers.Order.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
