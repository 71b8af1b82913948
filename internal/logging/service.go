package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func NewServiceLogger(service string) zerolog.Logger {
	return log.With().Str("service", service).Logger()
}

func WithCamera(base zerolog.Logger, cameraID int64) zerolog.Logger {
	return base.With().Int64("camera_id", cameraID).Logger()
}
