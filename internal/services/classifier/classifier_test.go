package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/config"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		MinConfidence:  0.5,
		HighConfidence: 0.9,
		HarmfulClasses: []string{"baseball bat", "crow bar", "gun", "hammer", "knife", "pistol", "rifle"},
	}
}

func TestClassify_RejectsNonHarmfulClass(t *testing.T) {
	c := New(testConfig())

	result := c.Classify(models.DetectionEvent{CameraID: 1, ObjectClass: "person", Confidence: 0.99})
	assert.False(t, result.Accept)

	result = c.Classify(models.DetectionEvent{CameraID: 1, ObjectClass: "backpack", Confidence: 0.99})
	assert.False(t, result.Accept)
}

func TestClassify_RejectsEmptyClass(t *testing.T) {
	c := New(testConfig())

	result := c.Classify(models.DetectionEvent{CameraID: 1, ObjectClass: "", Confidence: 0.99})
	assert.False(t, result.Accept)

	result = c.Classify(models.DetectionEvent{CameraID: 1, ObjectClass: "   ", Confidence: 0.99})
	assert.False(t, result.Accept)
}

func TestClassify_RejectsBelowConfidenceFloor(t *testing.T) {
	c := New(testConfig())

	result := c.Classify(models.DetectionEvent{CameraID: 1, ObjectClass: "pistol", Confidence: 0.49})
	assert.False(t, result.Accept)
}

func TestClassify_AcceptsAtConfidenceFloor(t *testing.T) {
	c := New(testConfig())

	result := c.Classify(models.DetectionEvent{CameraID: 1, ObjectClass: "pistol", Confidence: 0.5})
	assert.True(t, result.Accept)
	assert.Equal(t, models.SeverityHigh, result.Severity)
}

func TestClassify_BaseSeverityTiers(t *testing.T) {
	c := New(testConfig())

	tests := []struct {
		class    string
		expected models.Severity
	}{
		{"pistol", models.SeverityHigh},
		{"rifle", models.SeverityHigh},
		{"gun", models.SeverityHigh},
		{"knife", models.SeverityMedium},
		{"baseball bat", models.SeverityLow},
		{"crow bar", models.SeverityLow},
		{"hammer", models.SeverityLow},
	}

	for _, tt := range tests {
		result := c.Classify(models.DetectionEvent{CameraID: 1, ObjectClass: tt.class, Confidence: 0.7})
		assert.True(t, result.Accept, tt.class)
		assert.Equal(t, tt.expected, result.Severity, tt.class)
	}
}

func TestClassify_EscalatesAtHighConfidence(t *testing.T) {
	c := New(testConfig())

	// LOW escalates to MEDIUM
	result := c.Classify(models.DetectionEvent{CameraID: 1, ObjectClass: "hammer", Confidence: 0.95})
	assert.True(t, result.Accept)
	assert.Equal(t, models.SeverityMedium, result.Severity)

	// MEDIUM escalates to HIGH
	result = c.Classify(models.DetectionEvent{CameraID: 1, ObjectClass: "knife", Confidence: 0.9})
	assert.True(t, result.Accept)
	assert.Equal(t, models.SeverityHigh, result.Severity)

	// HIGH stays HIGH
	result = c.Classify(models.DetectionEvent{CameraID: 1, ObjectClass: "rifle", Confidence: 1.0})
	assert.True(t, result.Accept)
	assert.Equal(t, models.SeverityHigh, result.Severity)
}

func TestClassify_GunWithDefaultConfig(t *testing.T) {
	// Default config must accept a high-confidence gun detection
	c := New(config.Load())

	result := c.Classify(models.DetectionEvent{CameraID: 1, ObjectClass: "gun", Confidence: 0.95})
	assert.True(t, result.Accept)
	assert.Equal(t, models.SeverityHigh, result.Severity)
}

func TestClassify_CaseInsensitiveClassMatch(t *testing.T) {
	c := New(testConfig())

	result := c.Classify(models.DetectionEvent{CameraID: 1, ObjectClass: "Pistol", Confidence: 0.8})
	assert.True(t, result.Accept)
	assert.Equal(t, models.SeverityHigh, result.Severity)
}

func TestClassify_CustomHarmfulClassDefaultsLow(t *testing.T) {
	cfg := testConfig()
	cfg.HarmfulClasses = append(cfg.HarmfulClasses, "machete")
	c := New(cfg)

	result := c.Classify(models.DetectionEvent{CameraID: 1, ObjectClass: "machete", Confidence: 0.7})
	assert.True(t, result.Accept)
	assert.Equal(t, models.SeverityLow, result.Severity)
}
