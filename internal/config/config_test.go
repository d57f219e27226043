package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadValidConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `service: com.example.practice
backend: memory
audit_log: /tmp/rememberme/audit.log
metadata: /tmp/rememberme/meta.json
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Service != "com.example.practice" {
		t.Errorf("Service = %q, want %q", cfg.Service, "com.example.practice")
	}
	if cfg.Backend != "memory" {
		t.Errorf("Backend = %q, want %q", cfg.Backend, "memory")
	}
	if cfg.AuditLog != "/tmp/rememberme/audit.log" {
		t.Errorf("AuditLog = %q, want %q", cfg.AuditLog, "/tmp/rememberme/audit.log")
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level = %v, want debug", cfg.Level())
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.Service != "com.rememberme" {
		t.Errorf("Service = %q, want com.rememberme", cfg.Service)
	}
	if cfg.Backend != "system" {
		t.Errorf("Backend = %q, want system", cfg.Backend)
	}
	if filepath.Base(cfg.AuditLog) != "audit.log" {
		t.Errorf("AuditLog = %q, want ~/.rememberme/audit.log", cfg.AuditLog)
	}
	if cfg.Level() != slog.LevelInfo {
		t.Errorf("Level = %v, want info", cfg.Level())
	}
}

func TestLoadEmptyFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != "system" {
		t.Errorf("Backend = %q, want system", cfg.Backend)
	}
}

func TestLoadCommentsOnly(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")

	content := `# backend: keyring
# log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != "system" {
		t.Errorf("Backend = %q, want system", cfg.Backend)
	}
}

func TestLoadInvalidBackend(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := os.WriteFile(path, []byte("backend: vault\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestLoadInvalidLogLevel(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := os.WriteFile(path, []byte("log_level: chatty\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown log level")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := os.WriteFile(path, []byte("backend: [memory\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
