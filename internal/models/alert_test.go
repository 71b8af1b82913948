package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeverityEscalate(t *testing.T) {
	assert.Equal(t, SeverityMedium, SeverityLow.Escalate())
	assert.Equal(t, SeverityHigh, SeverityMedium.Escalate())
	assert.Equal(t, SeverityHigh, SeverityHigh.Escalate())
}

func TestSeverityIsValid(t *testing.T) {
	assert.True(t, SeverityLow.IsValid())
	assert.True(t, SeverityMedium.IsValid())
	assert.True(t, SeverityHigh.IsValid())
	assert.False(t, Severity("CRITICAL").IsValid())
}

func TestCameraStatusToggle(t *testing.T) {
	assert.Equal(t, CameraStatusInactive, CameraStatusActive.Toggle())
	assert.Equal(t, CameraStatusActive, CameraStatusInactive.Toggle())
}

func TestAlertMessage(t *testing.T) {
	assert.Equal(t, "pistol detected with HIGH severity", AlertMessage("pistol", SeverityHigh))
}

func TestNewAlertEventFrom(t *testing.T) {
	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ev := NewAlertEventFrom(Alert{
		ID:           7,
		CameraID:     1,
		CameraName:   "Entrance",
		Location:     "Lobby",
		ObjectClass:  "pistol",
		Confidence:   0.8,
		Severity:     SeverityHigh,
		SnapshotPath: "snapshots/frame.jpg",
		CreatedAt:    created,
	})

	assert.Equal(t, int64(7), ev.AlertID)
	assert.Equal(t, "Entrance", ev.CameraName)
	assert.Equal(t, "2026-03-10T12:00:00Z", ev.Timestamp)
	assert.Equal(t, "snapshots/frame.jpg", ev.Snapshot)
}
