package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"

	"resto/config"
	"resto/infras/kafka"
	"resto/infras/otel"
	"resto/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventPaymentCaptured  = "payment.captured"
)

type BookingEvent struct {
	Event           string   `json:"event"`
	BookingIDs      []string `json:"booking_ids"`
	UserID          string   `json:"user_id"`
	TableIDs        []string `json:"table_ids"`
	BookingDate     string   `json:"booking_date"`
	BookingTime     string   `json:"booking_time"`
	GuestsCount     int      `json:"guests_count"`
	SpecialRequests *string  `json:"special_requests,omitempty"`
}

type PaymentEvent struct {
	Event     string `json:"event"`
	TxRef     string `json:"tx_ref"`
	UserID    string `json:"user_id"`
	OrderID   string `json:"order_id,omitempty"`
	BookingID string `json:"booking_id,omitempty"`
	Method    string `json:"method"`
	Amount    string `json:"amount"`
	Status    string `json:"status"`
}

// Publisher emits receipt events for downstream notification consumers.
// Publishing is best effort: failures are logged and never surfaced to the
// request path.
type Publisher interface {
	BookingCreated(ctx context.Context, event BookingEvent)
	BookingCancelled(ctx context.Context, event BookingEvent)
	PaymentCaptured(ctx context.Context, event PaymentEvent)
}

type publisherImpl struct {
	kafka kafka.Client
	cfg   *config.Config
	otel  otel.Otel
}

func NewPublisher(kafkaClient kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		kafka: kafkaClient,
		cfg:   cfg,
		otel:  otel,
	}
}

func (p *publisherImpl) BookingCreated(ctx context.Context, event BookingEvent) {
	event.Event = EventBookingCreated
	p.publishBooking(ctx, event)
}

func (p *publisherImpl) BookingCancelled(ctx context.Context, event BookingEvent) {
	event.Event = EventBookingCancelled
	p.publishBooking(ctx, event)
}

func (p *publisherImpl) PaymentCaptured(ctx context.Context, event PaymentEvent) {
	event.Event = EventPaymentCaptured

	go func() {
		c := context.WithoutCancel(ctx)

		_, scope := p.otel.NewScope(c, constant.OtelEventScopeName, constant.OtelEventScopeName+".PaymentCaptured")
		defer scope.End()

		err := p.kafka.SendMessages(c, p.cfg.Kafka.Topics.Payments, kafka.Message{
			Key:   event.TxRef,
			Value: event,
		})
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("tx_ref", event.TxRef).Msg("failed to publish payment event")
		}
	}()
}

func (p *publisherImpl) publishBooking(ctx context.Context, event BookingEvent) {
	go func() {
		c := context.WithoutCancel(ctx)

		_, scope := p.otel.NewScope(c, constant.OtelEventScopeName, constant.OtelEventScopeName+"."+event.Event)
		defer scope.End()

		key := event.UserID
		if len(event.BookingIDs) > 0 {
			key = event.BookingIDs[0]
		}

		err := p.kafka.SendMessages(c, p.cfg.Kafka.Topics.Bookings, kafka.Message{
			Key:   key,
			Value: event,
		})
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("event", event.Event).Msg("failed to publish booking event")
		}
	}()
}
