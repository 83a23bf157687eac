package worker

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/fieldsales/internal/infra/queue"
)

type ReminderPublisher interface {
	PublishFollowUpDue(ctx context.Context, payload queue.FollowUpDuePayload) error
}

// FollowUpReminderWorker sweeps leads sitting in Follow-up beyond the
// reminder window and publishes a reminder event for each, once per
// lead per funnel stop (keyed on the lead's updated_at).
type FollowUpReminderWorker struct {
	db             *sql.DB
	publisher      ReminderPublisher
	log            *logrus.Logger
	reminderWindow time.Duration
	tickInterval   time.Duration

	reminded map[string]time.Time
}

func NewFollowUpReminderWorker(db *sql.DB, publisher ReminderPublisher, log *logrus.Logger) *FollowUpReminderWorker {
	return &FollowUpReminderWorker{
		db:             db,
		publisher:      publisher,
		log:            log,
		reminderWindow: 3 * 24 * time.Hour,
		tickInterval:   time.Hour,
		reminded:       make(map[string]time.Time),
	}
}

func (w *FollowUpReminderWorker) Start(ctx context.Context) {
	w.log.WithField("window", w.reminderWindow).Info("follow-up reminder worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("follow-up reminder worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *FollowUpReminderWorker) sweep(ctx context.Context) {
	query := `
		SELECT id, client_name, assigned_executive_id, updated_at
		FROM leads
		WHERE status = 'Follow-up' AND updated_at < $1
		ORDER BY updated_at
	`
	cutoff := time.Now().Add(-w.reminderWindow)

	rows, err := w.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		w.log.WithError(err).Error("follow-up sweep query failed")
		return
	}
	defer rows.Close()

	published := 0
	for rows.Next() {
		var id, clientName, executiveID string
		var updatedAt time.Time

		if err := rows.Scan(&id, &clientName, &executiveID, &updatedAt); err != nil {
			w.log.WithError(err).Warn("failed to scan overdue lead")
			continue
		}

		if last, ok := w.reminded[id]; ok && last.Equal(updatedAt) {
			continue
		}

		err := w.publisher.PublishFollowUpDue(ctx, queue.FollowUpDuePayload{
			LeadID:      id,
			ClientName:  clientName,
			ExecutiveID: executiveID,
			Since:       updatedAt,
		})
		if err != nil {
			w.log.WithError(err).WithField("lead_id", id).Warn("failed to publish follow-up reminder")
			continue
		}

		w.reminded[id] = updatedAt
		published++
	}

	if err := rows.Err(); err != nil {
		w.log.WithError(err).Error("follow-up sweep failed")
		return
	}
	if published > 0 {
		w.log.WithField("count", published).Info("follow-up reminders published")
	}
}
