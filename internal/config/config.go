package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Application
	Version     string
	Environment string
	Port        int
	LogLevel    string

	// Logdy (lightweight web log viewer)
	LogdyEnabled bool
	LogdyHost    string
	LogdyPort    int

	// NATS (detection event stream and downstream alert publishing)
	// Default: nats://localhost:4222 (works with Docker Compose setup)
	NatsURL            string
	NatsConnectTimeout time.Duration
	NatsReconnectWait  time.Duration
	NatsMaxReconnects  int
	NatsDrainTimeout   time.Duration // For graceful shutdown

	// Detection ingest
	DetectionsSubject string
	DetectionsQueue   string

	// Alerting
	AlertsSubject  string // downstream NATS subject for created alerts
	AlertCooldown  time.Duration
	MinConfidence  float64
	HighConfidence float64 // escalates severity by one tier
	HarmfulClasses []string

	// Storage
	DBPath string

	// Analytics
	// Hour buckets are aligned in this timezone regardless of server
	// locale
	ReportingTimezone string

	// WebSocket fan-out
	WSSendBuffer   int
	WSWriteTimeout time.Duration
	WSPingInterval time.Duration

	// Notifications
	EmailEnabled   bool
	SMTPServer     string
	SMTPPort       int
	EmailFrom      string
	EmailTo        []string
	WebhookURL     string
	WebhookTimeout time.Duration

	// Graceful Shutdown
	ShutdownTimeout time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file found or error loading .env file, using environment variables and defaults")
	} else {
		log.Info().Msg("Loaded configuration from .env file")
	}

	return &Config{
		// Application
		Version:     getEnv("VERSION", "1.0.0"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnvInt("PORT", 5000),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// Logdy (lightweight web log viewer)
		LogdyEnabled: getEnvBool("LOGDY_ENABLED", false),
		LogdyHost:    getEnv("LOGDY_HOST", "localhost"),
		LogdyPort:    getEnvInt("LOGDY_PORT", 8080),

		// NATS
		NatsURL:            getNatsURL(),
		NatsConnectTimeout: getEnvDuration("NATS_CONNECT_TIMEOUT", 10*time.Second),
		NatsReconnectWait:  getEnvDuration("NATS_RECONNECT_WAIT", 2*time.Second),
		NatsMaxReconnects:  getEnvInt("NATS_MAX_RECONNECTS", -1), // -1 = unlimited
		NatsDrainTimeout:   getEnvDuration("NATS_DRAIN_TIMEOUT", 5*time.Second),

		// Detection ingest
		DetectionsSubject: getEnv("DETECTIONS_SUBJECT", "detections"),
		DetectionsQueue:   getEnv("DETECTIONS_QUEUE", "surveillance-backend"),

		// Alerting
		AlertsSubject:  getEnv("ALERTS_SUBJECT", "alerts"),
		AlertCooldown:  getEnvDuration("ALERT_COOLDOWN", 30*time.Second),
		MinConfidence:  getEnvFloat("MIN_CONFIDENCE", 0.5),
		HighConfidence: getEnvFloat("HIGH_CONFIDENCE", 0.9),
		HarmfulClasses: getEnvList("HARMFUL_CLASSES", []string{
			"baseball bat",
			"crow bar",
			"gun",
			"hammer",
			"knife",
			"pistol",
			"rifle",
		}),

		// Storage
		DBPath: getEnv("DB_PATH", "data/surveillance.db"),

		// Analytics
		ReportingTimezone: getEnv("REPORTING_TIMEZONE", "UTC"),

		// WebSocket fan-out
		WSSendBuffer:   getEnvInt("WS_SEND_BUFFER", 32),
		WSWriteTimeout: getEnvDuration("WS_WRITE_TIMEOUT", 5*time.Second),
		WSPingInterval: getEnvDuration("WS_PING_INTERVAL", 30*time.Second),

		// Notifications
		EmailEnabled:   getEnvBool("EMAIL_ENABLED", false),
		SMTPServer:     getEnv("SMTP_SERVER", "smtp.gmail.com"),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		EmailFrom:      getEnv("EMAIL_FROM", "alerts@surveillance.com"),
		EmailTo:        getEnvList("EMAIL_TO", []string{"admin@surveillance.com"}),
		WebhookURL:     getEnv("WEBHOOK_URL", ""),
		WebhookTimeout: getEnvDuration("WEBHOOK_TIMEOUT", 5*time.Second),

		// Graceful Shutdown
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// ReportingLocation resolves the configured reporting timezone,
// falling back to UTC when the zone name is unknown
func (c *Config) ReportingLocation() *time.Location {
	loc, err := time.LoadLocation(c.ReportingTimezone)
	if err != nil {
		log.Warn().Str("timezone", c.ReportingTimezone).Msg("Unknown reporting timezone, using UTC")
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

// Helper functions for Docker environment detection
func isRunningInDocker() bool {
	if os.Getenv("DOCKER_CONTAINER") == "true" {
		return true
	}

	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}

	return false
}

// getNatsURL returns the appropriate NATS URL based on environment
func getNatsURL() string {
	if envURL := os.Getenv("NATS_URL"); envURL != "" {
		return envURL
	}

	// If running in Docker, use service name; otherwise use localhost
	if isRunningInDocker() {
		return "nats://nats:4222"
	}

	return "nats://localhost:4222"
}
