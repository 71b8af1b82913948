package models

import (
	"time"
)

// BoundingBox holds detection box coordinates in pixels
type BoundingBox struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// DetectionEvent is a raw per-frame detection emitted by a camera
// process. It is ephemeral: consumed once by the classifier and never
// persisted standalone.
type DetectionEvent struct {
	CameraID    int64        `json:"camera_id"`
	ObjectClass string       `json:"object_class"`
	Confidence  float64      `json:"confidence"`
	BoundingBox *BoundingBox `json:"bounding_box,omitempty"`
	CapturedAt  time.Time    `json:"captured_at,omitempty"`
	FrameRef    string       `json:"frame_reference,omitempty"`
}

// ClassificationResult is the classifier's verdict on a detection
type ClassificationResult struct {
	Accept   bool
	Severity Severity
}

// IngestResult summarizes what happened to one detection event
type IngestResult struct {
	Rejected   bool   `json:"rejected"`
	Suppressed bool   `json:"suppressed"`
	Alert      *Alert `json:"alert,omitempty"`
}

// MessagePublisher interface for publishing alerts downstream
type MessagePublisher interface {
	Publish(subject string, data interface{}) error
}
