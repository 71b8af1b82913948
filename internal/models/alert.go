package models

import (
	"fmt"
	"time"
)

// Severity represents the severity tier of an alert
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// String returns the string representation of Severity
func (s Severity) String() string {
	return string(s)
}

// IsValid checks if the severity is valid
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	default:
		return false
	}
}

// Escalate returns the severity one tier up, capped at HIGH
func (s Severity) Escalate() Severity {
	switch s {
	case SeverityLow:
		return SeverityMedium
	case SeverityMedium:
		return SeverityHigh
	default:
		return SeverityHigh
	}
}

// AlertStatus represents the lifecycle state of an alert
type AlertStatus string

const (
	AlertStatusPending      AlertStatus = "PENDING"
	AlertStatusAcknowledged AlertStatus = "ACKNOWLEDGED"
)

// Alert is the durable unit of operator attention. Camera name and
// location are denormalized at creation time so the alert renders
// correctly even after the camera is renamed or removed.
type Alert struct {
	ID             int64       `json:"id"`
	CameraID       int64       `json:"camera_id"`
	CameraName     string      `json:"camera_name"`
	Location       string      `json:"location"`
	ObjectClass    string      `json:"object_class"`
	Confidence     float64     `json:"confidence"`
	Severity       Severity    `json:"severity"`
	Message        string      `json:"message"`
	SnapshotPath   string      `json:"snapshot_path,omitempty"`
	Status         AlertStatus `json:"status"`
	AcknowledgedBy *string     `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time  `json:"acknowledged_at,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

// AlertMessage builds the human-readable alert message text
func AlertMessage(objectClass string, severity Severity) string {
	return fmt.Sprintf("%s detected with %s severity", objectClass, severity)
}

// NewAlertEvent is the payload pushed to live subscribers when an
// alert is created
type NewAlertEvent struct {
	AlertID     int64    `json:"alert_id"`
	CameraID    int64    `json:"camera_id"`
	CameraName  string   `json:"camera_name"`
	Location    string   `json:"location"`
	ObjectClass string   `json:"object_class"`
	Confidence  float64  `json:"confidence"`
	Severity    Severity `json:"severity"`
	Timestamp   string   `json:"timestamp"`
	Snapshot    string   `json:"snapshot"`
}

// NewAlertEventFrom builds the push payload for a persisted alert
func NewAlertEventFrom(a Alert) NewAlertEvent {
	return NewAlertEvent{
		AlertID:     a.ID,
		CameraID:    a.CameraID,
		CameraName:  a.CameraName,
		Location:    a.Location,
		ObjectClass: a.ObjectClass,
		Confidence:  a.Confidence,
		Severity:    a.Severity,
		Timestamp:   a.CreatedAt.Format(time.RFC3339),
		Snapshot:    a.SnapshotPath,
	}
}

// AlertAcknowledgedEvent is pushed to live subscribers when an alert
// is acknowledged so open dashboards drop it without re-polling
type AlertAcknowledgedEvent struct {
	AlertID        int64  `json:"alert_id"`
	AcknowledgedBy string `json:"acknowledged_by"`
	Timestamp      string `json:"timestamp"`
}

// CameraStatusEvent is pushed when a camera is toggled
type CameraStatusEvent struct {
	CameraID int64  `json:"camera_id"`
	Status   string `json:"status"`
}
