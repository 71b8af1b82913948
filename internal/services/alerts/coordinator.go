package alerts

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/logging"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/metrics"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/models"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/store"
)

// DefaultAdminName is recorded when no acknowledger name is supplied
const DefaultAdminName = "Admin"

// Broadcaster pushes acknowledgement events to live subscribers
type Broadcaster interface {
	BroadcastAlertAcknowledged(ev models.AlertAcknowledgedEvent)
}

// Coordinator owns alert reads and the acknowledgement transition
type Coordinator struct {
	log         zerolog.Logger
	store       *store.Store
	broadcaster Broadcaster
	metrics     *metrics.Metrics
}

// NewCoordinator creates the alert coordinator
func NewCoordinator(st *store.Store, broadcaster Broadcaster, m *metrics.Metrics) *Coordinator {
	return &Coordinator{
		log:         logging.NewServiceLogger("alerts"),
		store:       st,
		broadcaster: broadcaster,
		metrics:     m,
	}
}

// List returns stored alerts, newest first. With pendingOnly set only
// unacknowledged alerts are returned.
func (c *Coordinator) List(ctx context.Context, pendingOnly bool, limit int) ([]models.Alert, error) {
	return c.store.ListAlerts(ctx, pendingOnly, limit)
}

// Get returns a single alert by id
func (c *Coordinator) Get(ctx context.Context, id int64) (models.Alert, error) {
	return c.store.GetAlert(ctx, id)
}

// Acknowledge transitions a pending alert to acknowledged and pushes
// the event to live subscribers. Acknowledging an already-acknowledged
// alert returns store.ErrAlreadyAcknowledged together with the
// committed record so callers can report the original acknowledger.
func (c *Coordinator) Acknowledge(ctx context.Context, id int64, adminName string) (models.Alert, error) {
	if adminName == "" {
		adminName = DefaultAdminName
	}

	alert, err := c.store.Acknowledge(ctx, id, adminName, time.Now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrAlreadyAcknowledged) {
			c.log.Info().
				Int64("alert_id", id).
				Str("admin", adminName).
				Msg("Alert was already acknowledged")
		}
		return alert, err
	}

	c.metrics.AlertsAcknowledged.Add(1)
	c.log.Info().
		Int64("alert_id", alert.ID).
		Str("admin", adminName).
		Msg("Alert acknowledged")

	if c.broadcaster != nil {
		c.broadcaster.BroadcastAlertAcknowledged(models.AlertAcknowledgedEvent{
			AlertID:        alert.ID,
			AcknowledgedBy: adminName,
			Timestamp:      alert.AcknowledgedAt.Format(time.RFC3339),
		})
	}

	return alert, nil
}

// Summary aggregates alert counts for the trailing window
func (c *Coordinator) Summary(ctx context.Context, since time.Time) (models.Summary, error) {
	return c.store.Summary(ctx, since)
}

// Hourly buckets alert counts per hour and object class, aligned to
// the given timezone. A positive cameraID restricts counts to that
// camera.
func (c *Coordinator) Hourly(ctx context.Context, since time.Time, cameraID int64, loc *time.Location) ([]models.HourlyCount, error) {
	return c.store.Hourly(ctx, since, cameraID, loc)
}
