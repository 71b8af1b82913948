package models

// ClassCount is the number of alerts for one object class
type ClassCount struct {
	ObjectClass string `json:"object_class"`
	Count       int    `json:"count"`
}

// CameraAlertCount is the number of alerts for one camera
type CameraAlertCount struct {
	CameraID int64  `json:"camera_id"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
}

// Summary aggregates alerts of any status created at-or-after a cutoff
type Summary struct {
	TotalDetections int                `json:"total_detections"`
	ByClass         []ClassCount       `json:"by_class"`
	ByCamera        []CameraAlertCount `json:"by_camera"`
}

// HourlyCount is the number of alerts for one class in one fixed
// one-hour bucket, aligned to the top of the hour in the reporting
// timezone
type HourlyCount struct {
	Hour        string `json:"hour"`
	ObjectClass string `json:"object_class"`
	Count       int    `json:"count"`
}
