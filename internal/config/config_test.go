package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Port)
	}
	if cfg.DBPath != "taskflow.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if cfg.RecurInterval != time.Hour {
		t.Errorf("recur interval = %v, want 1h", cfg.RecurInterval)
	}
	if cfg.SessionTTL != 30*24*time.Hour {
		t.Errorf("session ttl = %v, want 720h", cfg.SessionTTL)
	}
	if cfg.BackupEnabled() {
		t.Error("backup should be disabled without S3 settings")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TASKFLOW_PORT", "9999")
	t.Setenv("TASKFLOW_RECUR_INTERVAL", "15m")
	t.Setenv("TASKFLOW_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9999" || cfg.RecurInterval != 15*time.Minute || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("TASKFLOW_RECUR_INTERVAL", "often")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RecurInterval != time.Hour {
		t.Errorf("recur interval = %v, want fallback 1h", cfg.RecurInterval)
	}
}

func TestLoadVAPIDKeysMustPair(t *testing.T) {
	t.Setenv("TASKFLOW_VAPID_PUBLIC_KEY", "pub-only")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unpaired VAPID key")
	}
}

func TestBackupEnabled(t *testing.T) {
	t.Setenv("TASKFLOW_S3_BUCKET", "backups")
	t.Setenv("TASKFLOW_S3_ACCESS_KEY", "key")
	t.Setenv("TASKFLOW_S3_SECRET_KEY", "secret")
	t.Setenv("TASKFLOW_BACKUP_PASSPHRASE", "hunter22")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.BackupEnabled() {
		t.Error("backup should be enabled with full S3 settings")
	}
}
