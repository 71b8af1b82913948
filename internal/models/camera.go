package models

import (
	"time"
)

// CameraStatus represents the camera operational status
type CameraStatus string

const (
	CameraStatusActive   CameraStatus = "active"
	CameraStatusInactive CameraStatus = "inactive"
)

// String returns the string representation of CameraStatus
func (cs CameraStatus) String() string {
	return string(cs)
}

// IsValid checks if the camera status is valid
func (cs CameraStatus) IsValid() bool {
	switch cs {
	case CameraStatusActive, CameraStatusInactive:
		return true
	default:
		return false
	}
}

// Toggle returns the opposite status
func (cs CameraStatus) Toggle() CameraStatus {
	if cs == CameraStatusActive {
		return CameraStatusInactive
	}
	return CameraStatusActive
}

// Camera is registry metadata for a video source. The detection
// pipeline treats it as read-only: name and location are copied onto
// alerts at creation time.
type Camera struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Location  string       `json:"location"`
	RTSPUrl   string       `json:"rtsp_url"`
	Status    CameraStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}

// CameraRequest is the payload for registering a camera
type CameraRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	RTSPUrl  string `json:"rtsp_url"`
}
