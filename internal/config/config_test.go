package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "detections", cfg.DetectionsSubject)
	assert.Equal(t, "surveillance-backend", cfg.DetectionsQueue)
	assert.Equal(t, "alerts", cfg.AlertsSubject)
	assert.Equal(t, 30*time.Second, cfg.AlertCooldown)
	assert.Equal(t, 0.5, cfg.MinConfidence)
	assert.Equal(t, 0.9, cfg.HighConfidence)
	assert.Equal(t, []string{"baseball bat", "crow bar", "gun", "hammer", "knife", "pistol", "rifle"}, cfg.HarmfulClasses)
	assert.Equal(t, "data/surveillance.db", cfg.DBPath)
	assert.Equal(t, "UTC", cfg.ReportingTimezone)
	assert.Equal(t, 32, cfg.WSSendBuffer)
	assert.False(t, cfg.EmailEnabled)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "8090")
	t.Setenv("ALERT_COOLDOWN", "45s")
	t.Setenv("MIN_CONFIDENCE", "0.7")
	t.Setenv("HARMFUL_CLASSES", "pistol, machete")
	t.Setenv("EMAIL_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, 8090, cfg.Port)
	assert.Equal(t, 45*time.Second, cfg.AlertCooldown)
	assert.Equal(t, 0.7, cfg.MinConfidence)
	assert.Equal(t, []string{"pistol", "machete"}, cfg.HarmfulClasses)
	assert.True(t, cfg.EmailEnabled)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("ALERT_COOLDOWN", "soon")
	t.Setenv("MIN_CONFIDENCE", "high")

	cfg := Load()

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.AlertCooldown)
	assert.Equal(t, 0.5, cfg.MinConfidence)
}

func TestReportingLocation(t *testing.T) {
	cfg := &Config{ReportingTimezone: "UTC"}
	assert.Equal(t, time.UTC, cfg.ReportingLocation())

	cfg = &Config{ReportingTimezone: "Not/AZone"}
	assert.Equal(t, time.UTC, cfg.ReportingLocation())
}
