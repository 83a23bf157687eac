package queue

import (
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/fieldsales/internal/infra/mail"
)

// NotificationMailer is what the worker needs from the mail layer.
type NotificationMailer interface {
	SendBookingAlert(to string, data mail.BookingAlertData) error
	SendFollowUpAlert(to string, data mail.FollowUpAlertData) error
}

// NotificationWorker drains the notifications queue and emails the
// sales manager. It owns no database access.
type NotificationWorker struct {
	Channel   *amqp.Channel
	Mailer    NotificationMailer
	ManagerTo string
	Log       *logrus.Logger
}

func NewNotificationWorker(ch *amqp.Channel, mailer NotificationMailer, managerTo string, log *logrus.Logger) *NotificationWorker {
	return &NotificationWorker{
		Channel:   ch,
		Mailer:    mailer,
		ManagerTo: managerTo,
		Log:       log,
	}
}

func (w *NotificationWorker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		w.Log.WithError(err).Fatal("failed to register RabbitMQ consumer")
	}

	for d := range msgs {
		var event Event
		if err := json.Unmarshal(d.Body, &event); err != nil {
			w.Log.WithError(err).Warn("malformed event, sending to DLQ")
			d.Nack(false, false)
			continue
		}

		if err := w.handle(event); err != nil {
			w.Log.WithError(err).WithField("type", event.Type).Warn("event handling failed, sending to DLQ")
			d.Nack(false, false)
			continue
		}

		d.Ack(false)
	}
}

func (w *NotificationWorker) handle(event Event) error {
	switch event.Type {
	case EventBookingCreated:
		if event.Booking == nil {
			return fmt.Errorf("booking event without payload")
		}
		return w.Mailer.SendBookingAlert(w.ManagerTo, mail.BookingAlertData{
			ClientName:    event.Booking.ClientName,
			ExecutiveName: event.Booking.ExecutiveID,
			SiteName:      event.Booking.SiteID,
			AmountLakhs:   fmt.Sprintf("%.1f", event.Booking.Amount/100000),
		})
	case EventFollowUpDue:
		if event.FollowUp == nil {
			return fmt.Errorf("follow-up event without payload")
		}
		return w.Mailer.SendFollowUpAlert(w.ManagerTo, mail.FollowUpAlertData{
			ClientName: event.FollowUp.ClientName,
			Since:      event.FollowUp.Since.Format("2006-01-02"),
		})
	case EventVisitCheckedIn:
		// Check-ins are informational; nothing to notify for now.
		return nil
	default:
		return fmt.Errorf("unknown event type %q", event.Type)
	}
}
