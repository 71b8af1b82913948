package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/models"
)

// Store is the durable source of truth for cameras and alerts, backed
// by SQLite. A single connection serializes all writes, which is also
// the serialization point for alert id assignment.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at dsn
func Open(dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = "file:surveillance.db?_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return &Store{db: db}, nil
}

// Init creates the schema if it does not exist
func (s *Store) Init(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cameras (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			rtsp_url TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'active',
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS alerts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			camera_id INTEGER NOT NULL,
			camera_name TEXT NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			object_class TEXT NOT NULL,
			confidence REAL NOT NULL,
			severity TEXT NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			snapshot_path TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'PENDING',
			acknowledged_by TEXT,
			acknowledged_at TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_status ON alerts(status)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_created_at ON alerts(created_at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// =====================
// CAMERA OPERATIONS
// =====================

// AddCamera registers a camera and returns the stored record
func (s *Store) AddCamera(ctx context.Context, name, location, rtspURL string) (models.Camera, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO cameras (name, location, rtsp_url, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		name, location, rtspURL, string(models.CameraStatusActive), formatTime(now))
	if err != nil {
		return models.Camera{}, fmt.Errorf("insert camera: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Camera{}, err
	}
	return s.GetCamera(ctx, id)
}

// GetCamera returns the camera with the given id, or ErrNotFound
func (s *Store) GetCamera(ctx context.Context, id int64) (models.Camera, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, location, rtsp_url, status, created_at FROM cameras WHERE id = ?`, id)
	return scanCamera(row)
}

// ListCameras returns all cameras in registration order
func (s *Store) ListCameras(ctx context.Context) ([]models.Camera, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, location, rtsp_url, status, created_at FROM cameras ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cameras := make([]models.Camera, 0)
	for rows.Next() {
		cam, err := scanCamera(rows)
		if err != nil {
			return nil, err
		}
		cameras = append(cameras, cam)
	}
	return cameras, rows.Err()
}

// SetCameraStatus updates a camera's status
func (s *Store) SetCameraStatus(ctx context.Context, id int64, status models.CameraStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE cameras SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCamera removes a camera from the registry. Alerts keep their
// denormalized camera name and location.
func (s *Store) DeleteCamera(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cameras WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// CountActiveCameras returns the number of cameras with active status
func (s *Store) CountActiveCameras(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cameras WHERE status = ?`, string(models.CameraStatusActive)).Scan(&count)
	return count, err
}

// =====================
// ALERT OPERATIONS
// =====================

// CreateAlert persists a new PENDING alert and returns the full record
// with its assigned id. Ids are monotonically increasing.
func (s *Store) CreateAlert(ctx context.Context, na NewAlert) (models.Alert, error) {
	createdAt := na.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO alerts (camera_id, camera_name, location, object_class, confidence, severity, message, snapshot_path, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		na.CameraID,
		na.CameraName,
		na.Location,
		na.ObjectClass,
		na.Confidence,
		string(na.Severity),
		na.Message,
		na.SnapshotPath,
		string(models.AlertStatusPending),
		formatTime(createdAt),
	)
	if err != nil {
		return models.Alert{}, fmt.Errorf("insert alert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Alert{}, err
	}
	return s.GetAlert(ctx, id)
}

// GetAlert returns the alert with the given id, or ErrNotFound
func (s *Store) GetAlert(ctx context.Context, id int64) (models.Alert, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, camera_id, camera_name, location, object_class, confidence, severity, message, snapshot_path, status, acknowledged_by, acknowledged_at, created_at
		FROM alerts WHERE id = ?`, id)
	return scanAlert(row)
}

// ListAlerts returns alerts newest first, optionally only PENDING ones
func (s *Store) ListAlerts(ctx context.Context, pendingOnly bool, limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT id, camera_id, camera_name, location, object_class, confidence, severity, message, snapshot_path, status, acknowledged_by, acknowledged_at, created_at
		FROM alerts`
	args := []interface{}{}
	if pendingOnly {
		query += ` WHERE status = ?`
		args = append(args, string(models.AlertStatusPending))
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts := make([]models.Alert, 0)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// Acknowledge transitions a PENDING alert to ACKNOWLEDGED. The
// transition happens exactly once: concurrent callers race on a
// conditional UPDATE and losers get ErrAlreadyAcknowledged together
// with the committed record carrying the original acknowledger.
func (s *Store) Acknowledge(ctx context.Context, id int64, adminName string, now time.Time) (models.Alert, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE alerts SET status = ?, acknowledged_by = ?, acknowledged_at = ? WHERE id = ? AND status = ?`,
		string(models.AlertStatusAcknowledged),
		adminName,
		formatTime(now),
		id,
		string(models.AlertStatusPending),
	)
	if err != nil {
		return models.Alert{}, fmt.Errorf("acknowledge alert: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return models.Alert{}, err
	}

	alert, getErr := s.GetAlert(ctx, id)
	if getErr != nil {
		return models.Alert{}, getErr
	}
	if rows == 1 {
		return alert, nil
	}
	return alert, ErrAlreadyAcknowledged
}

// =====================
// ANALYTICS OPERATIONS
// =====================

// Summary aggregates alerts of any status created at-or-after since.
// Class and camera groups are sorted by count descending; ties break
// toward the group with the most recent alert.
func (s *Store) Summary(ctx context.Context, since time.Time) (models.Summary, error) {
	summary := models.Summary{
		ByClass:  make([]models.ClassCount, 0),
		ByCamera: make([]models.CameraAlertCount, 0),
	}
	cutoff := formatTime(since)

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM alerts WHERE created_at >= ?`, cutoff).Scan(&summary.TotalDetections)
	if err != nil {
		return summary, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT object_class, COUNT(*) AS count, MAX(created_at) AS latest
		FROM alerts WHERE created_at >= ?
		GROUP BY object_class
		ORDER BY count DESC, latest DESC`, cutoff)
	if err != nil {
		return summary, err
	}
	defer rows.Close()
	for rows.Next() {
		var cc models.ClassCount
		var latest string
		if err := rows.Scan(&cc.ObjectClass, &cc.Count, &latest); err != nil {
			return summary, err
		}
		summary.ByClass = append(summary.ByClass, cc)
	}
	if err := rows.Err(); err != nil {
		return summary, err
	}

	camRows, err := s.db.QueryContext(ctx,
		`SELECT camera_id, camera_name, COUNT(*) AS count, MAX(created_at) AS latest
		FROM alerts WHERE created_at >= ?
		GROUP BY camera_id, camera_name
		ORDER BY count DESC, latest DESC`, cutoff)
	if err != nil {
		return summary, err
	}
	defer camRows.Close()
	for camRows.Next() {
		var cc models.CameraAlertCount
		var latest string
		if err := camRows.Scan(&cc.CameraID, &cc.Name, &cc.Count, &latest); err != nil {
			return summary, err
		}
		summary.ByCamera = append(summary.ByCamera, cc)
	}
	return summary, camRows.Err()
}

// Hourly buckets alerts created at-or-after since into fixed one-hour
// windows aligned to the top of the hour in loc. A positive cameraID
// restricts the counts to that camera. Bucketing happens in Go so
// alignment never depends on the server locale or on SQLite's
// UTC-only strftime.
func (s *Store) Hourly(ctx context.Context, since time.Time, cameraID int64, loc *time.Location) ([]models.HourlyCount, error) {
	if loc == nil {
		loc = time.UTC
	}
	query := `SELECT created_at, object_class FROM alerts WHERE created_at >= ?`
	args := []interface{}{formatTime(since)}
	if cameraID > 0 {
		query += ` AND camera_id = ?`
		args = append(args, cameraID)
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type bucketKey struct {
		hour  string
		class string
	}
	counts := make(map[bucketKey]int)
	order := make([]bucketKey, 0)
	for rows.Next() {
		var createdAt, class string
		if err := rows.Scan(&createdAt, &class); err != nil {
			return nil, err
		}
		t, err := parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse alert timestamp: %w", err)
		}
		local := t.In(loc)
		bucket := time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, loc)
		key := bucketKey{hour: bucket.Format("2006-01-02 15:00:00"), class: class}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]models.HourlyCount, 0, len(order))
	for _, key := range order {
		out = append(out, models.HourlyCount{
			Hour:        key.hour,
			ObjectClass: key.class,
			Count:       counts[key],
		})
	}
	return out, nil
}

// =====================
// ROW SCANNING
// =====================

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCamera(row rowScanner) (models.Camera, error) {
	var cam models.Camera
	var status, createdAt string
	err := row.Scan(&cam.ID, &cam.Name, &cam.Location, &cam.RTSPUrl, &status, &createdAt)
	if err == sql.ErrNoRows {
		return models.Camera{}, ErrNotFound
	}
	if err != nil {
		return models.Camera{}, err
	}
	cam.Status = models.CameraStatus(status)
	if cam.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Camera{}, fmt.Errorf("parse camera timestamp: %w", err)
	}
	return cam, nil
}

func scanAlert(row rowScanner) (models.Alert, error) {
	var a models.Alert
	var severity, status, createdAt string
	var ackBy, ackAt sql.NullString
	err := row.Scan(
		&a.ID, &a.CameraID, &a.CameraName, &a.Location, &a.ObjectClass,
		&a.Confidence, &severity, &a.Message, &a.SnapshotPath,
		&status, &ackBy, &ackAt, &createdAt,
	)
	if err == sql.ErrNoRows {
		return models.Alert{}, ErrNotFound
	}
	if err != nil {
		return models.Alert{}, err
	}
	a.Severity = models.Severity(severity)
	a.Status = models.AlertStatus(status)
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Alert{}, fmt.Errorf("parse alert timestamp: %w", err)
	}
	if ackBy.Valid {
		a.AcknowledgedBy = &ackBy.String
	}
	if ackAt.Valid {
		t, err := parseTime(ackAt.String)
		if err != nil {
			return models.Alert{}, fmt.Errorf("parse acknowledged_at: %w", err)
		}
		a.AcknowledgedAt = &t
	}
	return a, nil
}
