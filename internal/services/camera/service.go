package camera

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/logging"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/models"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/store"
)

// ErrNameRequired is returned when registering a camera without a name
var ErrNameRequired = errors.New("camera name is required")

// Broadcaster pushes camera status changes to live subscribers
type Broadcaster interface {
	BroadcastCameraStatus(ev models.CameraStatusEvent)
}

// Service manages the camera registry
type Service struct {
	log         zerolog.Logger
	store       *store.Store
	broadcaster Broadcaster
}

// New creates the camera service
func New(st *store.Store, broadcaster Broadcaster) *Service {
	return &Service{
		log:         logging.NewServiceLogger("camera"),
		store:       st,
		broadcaster: broadcaster,
	}
}

// Add registers a new camera. New cameras start active.
func (s *Service) Add(ctx context.Context, req models.CameraRequest) (models.Camera, error) {
	if req.Name == "" {
		return models.Camera{}, ErrNameRequired
	}

	camera, err := s.store.AddCamera(ctx, req.Name, req.Location, req.RTSPUrl)
	if err != nil {
		return models.Camera{}, err
	}

	s.log.Info().
		Int64("camera_id", camera.ID).
		Str("name", camera.Name).
		Str("location", camera.Location).
		Msg("Camera registered")
	return camera, nil
}

// Get returns a single camera by id
func (s *Service) Get(ctx context.Context, id int64) (models.Camera, error) {
	return s.store.GetCamera(ctx, id)
}

// List returns all registered cameras in registration order
func (s *Service) List(ctx context.Context) ([]models.Camera, error) {
	return s.store.ListCameras(ctx)
}

// Toggle flips a camera between active and inactive and pushes the
// change to live subscribers
func (s *Service) Toggle(ctx context.Context, id int64) (models.Camera, error) {
	camera, err := s.store.GetCamera(ctx, id)
	if err != nil {
		return models.Camera{}, err
	}

	next := camera.Status.Toggle()
	if err := s.store.SetCameraStatus(ctx, id, next); err != nil {
		return models.Camera{}, err
	}
	camera.Status = next

	s.log.Info().
		Int64("camera_id", camera.ID).
		Str("status", next.String()).
		Msg("Camera status toggled")

	if s.broadcaster != nil {
		s.broadcaster.BroadcastCameraStatus(models.CameraStatusEvent{
			CameraID: camera.ID,
			Status:   next.String(),
		})
	}

	return camera, nil
}

// Remove deletes a camera from the registry. Existing alerts keep
// their denormalized camera name and location.
func (s *Service) Remove(ctx context.Context, id int64) error {
	if err := s.store.DeleteCamera(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("camera_id", id).Msg("Camera removed")
	return nil
}

// CountActive returns the number of active cameras
func (s *Service) CountActive(ctx context.Context) (int, error) {
	return s.store.CountActiveCameras(ctx)
}
