package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventVisitCheckedIn = "visit.checked_in"
	EventBookingCreated = "booking.created"
	EventFollowUpDue    = "lead.followup_due"
)

// Event is the envelope every message on the notifications queue uses;
// exactly one payload field is set, matching Type.
type Event struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Visit      *VisitCheckedInPayload `json:"visit,omitempty"`
	Booking    *BookingCreatedPayload `json:"booking,omitempty"`
	FollowUp   *FollowUpDuePayload    `json:"follow_up,omitempty"`
}

type VisitCheckedInPayload struct {
	VisitID        string    `json:"visit_id"`
	LeadID         string    `json:"lead_id"`
	ExecutiveID    string    `json:"executive_id"`
	SiteID         string    `json:"site_id"`
	DistanceMeters float64   `json:"distance_meters"`
	CheckinTime    time.Time `json:"checkin_time"`
}

type BookingCreatedPayload struct {
	BookingID   string  `json:"booking_id"`
	LeadID      string  `json:"lead_id"`
	ClientName  string  `json:"client_name"`
	SiteID      string  `json:"site_id"`
	ExecutiveID string  `json:"executive_id"`
	Amount      float64 `json:"amount"`
}

type FollowUpDuePayload struct {
	LeadID      string    `json:"lead_id"`
	ClientName  string    `json:"client_name"`
	ExecutiveID string    `json:"executive_id"`
	Since       time.Time `json:"since"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishVisitCheckedIn(ctx context.Context, payload VisitCheckedInPayload) error {
	return p.publish(ctx, Event{
		Type:       EventVisitCheckedIn,
		OccurredAt: time.Now(),
		Visit:      &payload,
	})
}

func (p *RabbitMQProducer) PublishBookingCreated(ctx context.Context, payload BookingCreatedPayload) error {
	return p.publish(ctx, Event{
		Type:       EventBookingCreated,
		OccurredAt: time.Now(),
		Booking:    &payload,
	})
}

func (p *RabbitMQProducer) PublishFollowUpDue(ctx context.Context, payload FollowUpDuePayload) error {
	return p.publish(ctx, Event{
		Type:       EventFollowUpDue,
		OccurredAt: time.Now(),
		FollowUp:   &payload,
	})
}

func (p *RabbitMQProducer) publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	return nil
}
