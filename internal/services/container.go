package services

import (
	"context"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/config"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/metrics"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/models"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/services/alerts"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/services/camera"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/services/classifier"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/services/dedup"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/services/hub"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/services/ingest"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/services/messaging"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/services/notify"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/store"
)

// ServiceContainer holds all services
type ServiceContainer struct {
	Config    *config.Config
	Metrics   *metrics.Metrics
	Store     *store.Store
	Hub       *hub.Hub
	Messaging *messaging.Service
	CameraSvc *camera.Service
	AlertsSvc *alerts.Coordinator
	IngestSvc *ingest.Service
}

// NewServiceContainer creates a new service container. The NATS
// connection is optional: without it the ingest pipeline still serves
// the HTTP detection endpoint.
func NewServiceContainer(cfg *config.Config, st *store.Store, msg *messaging.Service) (*ServiceContainer, error) {
	m := metrics.New()
	wsHub := hub.NewHub(cfg, m)
	notifier := notify.New(cfg, m)

	var publisher models.MessagePublisher
	if msg != nil {
		publisher = msg
	}

	ingestSvc := ingest.New(
		cfg,
		st,
		classifier.New(cfg),
		dedup.NewWindow(cfg.AlertCooldown),
		wsHub,
		notifier,
		publisher,
		m,
	)

	sc := &ServiceContainer{
		Config:    cfg,
		Metrics:   m,
		Store:     st,
		Hub:       wsHub,
		Messaging: msg,
		CameraSvc: camera.New(st, wsHub),
		AlertsSvc: alerts.NewCoordinator(st, wsHub, m),
		IngestSvc: ingestSvc,
	}

	if msg != nil {
		if err := ingestSvc.Subscribe(msg); err != nil {
			return nil, err
		}
	}

	return sc, nil
}

// Shutdown gracefully shuts down all services
func (sc *ServiceContainer) Shutdown(ctx context.Context) error {
	if sc.Messaging != nil {
		if err := sc.Messaging.Shutdown(ctx); err != nil {
			return err
		}
	}

	if sc.Hub != nil {
		sc.Hub.Shutdown()
	}

	if sc.Store != nil {
		return sc.Store.Close()
	}

	return nil
}
