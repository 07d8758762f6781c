package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds runtime settings, read once from the environment at startup
// and treated as immutable afterwards.
type Config struct {
	Port     string
	DBPath   string
	LogLevel string

	// RecurInterval is how often the recurrence engine re-checks for due
	// templates after the initial pass at startup.
	RecurInterval time.Duration

	SessionTTL time.Duration

	// Web push is enabled only when both VAPID keys are set.
	VAPIDPublicKey  string
	VAPIDPrivateKey string

	// Backups are enabled only when the S3 settings and passphrase are set.
	BackupInterval   time.Duration
	BackupPassphrase string
	S3Endpoint       string
	S3Bucket         string
	S3Region         string
	S3AccessKey      string
	S3SecretKey      string
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:             envOr("TASKFLOW_PORT", "8080"),
		DBPath:           envOr("TASKFLOW_DB_PATH", "taskflow.db"),
		LogLevel:         envOr("TASKFLOW_LOG_LEVEL", "info"),
		RecurInterval:    envDuration("TASKFLOW_RECUR_INTERVAL", time.Hour),
		SessionTTL:       envDuration("TASKFLOW_SESSION_TTL", 30*24*time.Hour),
		VAPIDPublicKey:   strings.TrimSpace(os.Getenv("TASKFLOW_VAPID_PUBLIC_KEY")),
		VAPIDPrivateKey:  strings.TrimSpace(os.Getenv("TASKFLOW_VAPID_PRIVATE_KEY")),
		BackupInterval:   envDuration("TASKFLOW_BACKUP_INTERVAL", 24*time.Hour),
		BackupPassphrase: os.Getenv("TASKFLOW_BACKUP_PASSPHRASE"),
		S3Endpoint:       strings.TrimSpace(os.Getenv("TASKFLOW_S3_ENDPOINT")),
		S3Bucket:         strings.TrimSpace(os.Getenv("TASKFLOW_S3_BUCKET")),
		S3Region:         envOr("TASKFLOW_S3_REGION", "auto"),
		S3AccessKey:      strings.TrimSpace(os.Getenv("TASKFLOW_S3_ACCESS_KEY")),
		S3SecretKey:      strings.TrimSpace(os.Getenv("TASKFLOW_S3_SECRET_KEY")),
	}

	if cfg.RecurInterval <= 0 {
		return cfg, fmt.Errorf("TASKFLOW_RECUR_INTERVAL must be positive")
	}
	if (cfg.VAPIDPublicKey == "") != (cfg.VAPIDPrivateKey == "") {
		return cfg, fmt.Errorf("TASKFLOW_VAPID_PUBLIC_KEY and TASKFLOW_VAPID_PRIVATE_KEY must be set together")
	}

	return cfg, nil
}

// BackupEnabled reports whether enough settings are present for S3 backups.
func (c Config) BackupEnabled() bool {
	return c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != "" && c.BackupPassphrase != ""
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
