package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/config"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/logging"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/metrics"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/models"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/services/classifier"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/services/dedup"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/store"
)

// Broadcaster pushes created alerts to live subscribers
type Broadcaster interface {
	BroadcastNewAlert(a models.Alert)
}

// Notifier dispatches out-of-band notifications for created alerts
type Notifier interface {
	NotifyNewAlert(a models.Alert)
}

// Subscriber is the NATS surface the ingest service consumes
type Subscriber interface {
	QueueSubscribe(subject, queue string, handler func([]byte)) (*nats.Subscription, error)
}

// AlertStore is the persistence surface the pipeline needs
type AlertStore interface {
	GetCamera(ctx context.Context, id int64) (models.Camera, error)
	CreateAlert(ctx context.Context, na store.NewAlert) (models.Alert, error)
}

var (
	// ErrInvalidEvent is returned for detections missing a camera
	// reference or object class
	ErrInvalidEvent = errors.New("invalid detection event")

	// ErrUnknownCamera is returned when the detection references a
	// camera that is not registered
	ErrUnknownCamera = errors.New("unknown camera")
)

// Service runs detections through classify, dedup, persist and
// fan-out. Persistence is the commit point: broadcast, downstream
// publish and notification all happen after the row exists and are
// best-effort.
type Service struct {
	cfg         *config.Config
	log         zerolog.Logger
	store       AlertStore
	classifier  *classifier.Classifier
	window      *dedup.Window
	broadcaster Broadcaster
	notifier    Notifier
	publisher   models.MessagePublisher
	metrics     *metrics.Metrics
}

// New creates the ingest service
func New(
	cfg *config.Config,
	st AlertStore,
	cl *classifier.Classifier,
	window *dedup.Window,
	broadcaster Broadcaster,
	notifier Notifier,
	publisher models.MessagePublisher,
	m *metrics.Metrics,
) *Service {
	return &Service{
		cfg:         cfg,
		log:         logging.NewServiceLogger("ingest"),
		store:       st,
		classifier:  cl,
		window:      window,
		broadcaster: broadcaster,
		notifier:    notifier,
		publisher:   publisher,
		metrics:     m,
	}
}

// Subscribe attaches the service to the detection stream. All backend
// instances share one queue group so each detection is processed once.
func (s *Service) Subscribe(sub Subscriber) error {
	_, err := sub.QueueSubscribe(s.cfg.DetectionsSubject, s.cfg.DetectionsQueue, func(data []byte) {
		var ev models.DetectionEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			s.log.Error().Err(err).Msg("Failed to decode detection event")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if _, err := s.ProcessDetection(ctx, ev); err != nil {
			s.log.Error().
				Err(err).
				Int64("camera_id", ev.CameraID).
				Str("object_class", ev.ObjectClass).
				Msg("Failed to process detection event")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", s.cfg.DetectionsSubject, err)
	}

	s.log.Info().
		Str("subject", s.cfg.DetectionsSubject).
		Str("queue", s.cfg.DetectionsQueue).
		Msg("Subscribed to detection stream")
	return nil
}

// ProcessDetection takes one detection through the full pipeline and
// reports whether it was rejected, suppressed, or became an alert.
func (s *Service) ProcessDetection(ctx context.Context, ev models.DetectionEvent) (models.IngestResult, error) {
	s.metrics.DetectionsReceived.Add(1)

	if ev.CameraID <= 0 || ev.ObjectClass == "" {
		s.metrics.DetectionsRejected.Add(1)
		return models.IngestResult{}, ErrInvalidEvent
	}

	verdict := s.classifier.Classify(ev)
	if !verdict.Accept {
		s.metrics.DetectionsRejected.Add(1)
		s.log.Debug().
			Int64("camera_id", ev.CameraID).
			Str("object_class", ev.ObjectClass).
			Float64("confidence", ev.Confidence).
			Msg("Detection rejected")
		return models.IngestResult{Rejected: true}, nil
	}

	camera, err := s.store.GetCamera(ctx, ev.CameraID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.metrics.DetectionsRejected.Add(1)
			return models.IngestResult{}, fmt.Errorf("%w: %d", ErrUnknownCamera, ev.CameraID)
		}
		s.metrics.StoreErrors.Add(1)
		return models.IngestResult{}, fmt.Errorf("failed to look up camera %d: %w", ev.CameraID, err)
	}

	at := ev.CapturedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}

	if !s.window.ShouldEmit(ev.CameraID, ev.ObjectClass, at) {
		s.metrics.AlertsSuppressed.Add(1)
		s.log.Debug().
			Int64("camera_id", ev.CameraID).
			Str("object_class", ev.ObjectClass).
			Msg("Detection suppressed by cooldown window")
		return models.IngestResult{Suppressed: true}, nil
	}

	alert, err := s.store.CreateAlert(ctx, store.NewAlert{
		CameraID:     camera.ID,
		CameraName:   camera.Name,
		Location:     camera.Location,
		ObjectClass:  ev.ObjectClass,
		Confidence:   ev.Confidence,
		Severity:     verdict.Severity,
		Message:      models.AlertMessage(ev.ObjectClass, verdict.Severity),
		SnapshotPath: ev.FrameRef,
		CreatedAt:    at,
	})
	if err != nil {
		// Release the window entry recorded above so the failed
		// attempt does not suppress a retry for the full cooldown
		s.window.Rollback(ev.CameraID, ev.ObjectClass, at)
		s.metrics.StoreErrors.Add(1)
		return models.IngestResult{}, fmt.Errorf("failed to persist alert: %w", err)
	}

	s.metrics.AlertsCreated.Add(1)
	camLog := logging.WithCamera(s.log, alert.CameraID)
	camLog.Info().
		Int64("alert_id", alert.ID).
		Str("object_class", alert.ObjectClass).
		Str("severity", alert.Severity.String()).
		Float64("confidence", alert.Confidence).
		Msg("Alert created")

	if s.broadcaster != nil {
		s.broadcaster.BroadcastNewAlert(alert)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(s.cfg.AlertsSubject, models.NewAlertEventFrom(alert)); err != nil {
			s.log.Error().Err(err).Int64("alert_id", alert.ID).Msg("Failed to publish alert downstream")
		}
	}

	if s.notifier != nil {
		s.notifier.NotifyNewAlert(alert)
	}

	return models.IngestResult{Alert: &alert}, nil
}
