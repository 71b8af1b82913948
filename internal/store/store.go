package store

import (
	"errors"
	"time"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/models"
)

var (
	// ErrNotFound is returned when the requested alert or camera does
	// not exist
	ErrNotFound = errors.New("not found")

	// ErrAlreadyAcknowledged is returned when acknowledging an alert
	// that has already been acknowledged. It is a distinct outcome,
	// not a failure: the committed record is returned alongside it so
	// the caller can report the original acknowledger.
	ErrAlreadyAcknowledged = errors.New("alert already acknowledged")
)

// timeLayout is a fixed-width RFC3339 form so stored timestamps order
// lexicographically. All timestamps are stored in UTC.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// NewAlert carries the fields for persisting an alert. ID, status and
// acknowledgement fields are owned by the store.
type NewAlert struct {
	CameraID     int64
	CameraName   string
	Location     string
	ObjectClass  string
	Confidence   float64
	Severity     models.Severity
	Message      string
	SnapshotPath string
	CreatedAt    time.Time
}
