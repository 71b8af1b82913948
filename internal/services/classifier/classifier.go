package classifier

import (
	"strings"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/config"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/models"
)

// Default base severity per object class. Firearms start HIGH, blades
// MEDIUM, blunt objects LOW. Classes outside the harmful set never
// become alerts.
var baseSeverity = map[string]models.Severity{
	"pistol":       models.SeverityHigh,
	"rifle":        models.SeverityHigh,
	"gun":          models.SeverityHigh,
	"knife":        models.SeverityMedium,
	"baseball bat": models.SeverityLow,
	"crow bar":     models.SeverityLow,
	"hammer":       models.SeverityLow,
}

// Classifier maps a raw detection to a severity tier and decides
// whether it is worth an alert at all. It is a pure function over its
// configuration: no side effects, no shared mutable state.
type Classifier struct {
	minConfidence  float64
	highConfidence float64
	harmful        map[string]struct{}
}

// New builds a classifier from the configured thresholds and harmful
// class list
func New(cfg *config.Config) *Classifier {
	harmful := make(map[string]struct{}, len(cfg.HarmfulClasses))
	for _, class := range cfg.HarmfulClasses {
		harmful[strings.ToLower(class)] = struct{}{}
	}
	return &Classifier{
		minConfidence:  cfg.MinConfidence,
		highConfidence: cfg.HighConfidence,
		harmful:        harmful,
	}
}

// Classify returns the severity for a detection, or Accept=false when
// the detection is below the confidence floor or outside the harmful
// class set. Rejected detections must not touch any downstream state.
func (c *Classifier) Classify(ev models.DetectionEvent) models.ClassificationResult {
	class := strings.ToLower(strings.TrimSpace(ev.ObjectClass))
	if class == "" {
		return models.ClassificationResult{Accept: false}
	}
	if _, ok := c.harmful[class]; !ok {
		return models.ClassificationResult{Accept: false}
	}
	if ev.Confidence < c.minConfidence {
		return models.ClassificationResult{Accept: false}
	}

	severity, ok := baseSeverity[class]
	if !ok {
		severity = models.SeverityLow
	}
	if ev.Confidence >= c.highConfidence {
		severity = severity.Escalate()
	}
	return models.ClassificationResult{Accept: true, Severity: severity}
}
