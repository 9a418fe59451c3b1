package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("EventHubConnectionString", "Endpoint=sb://ns.servicebus.windows.net/;SharedAccessKeyName=k;SharedAccessKey=v")
	t.Setenv("EventHubName", "orders")
	t.Setenv("HTTP_PORT", "9090")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.EventHub.Name != "orders" {
		t.Errorf("Name = %q, want orders", c.EventHub.Name)
	}
	if c.HTTP.Port != "9090" {
		t.Errorf("Port = %q, want 9090", c.HTTP.Port)
	}
	if c.EventHub.MaxBatchBytes != 1048576 {
		t.Errorf("MaxBatchBytes = %d, want default 1048576", c.EventHub.MaxBatchBytes)
	}
	if c.EventHub.SendTimeout != 60*time.Second {
		t.Errorf("SendTimeout = %s, want 60s", c.EventHub.SendTimeout)
	}
	if c.EventHub.DialTimeout != 10*time.Second {
		t.Errorf("DialTimeout = %s, want 10s", c.EventHub.DialTimeout)
	}
	if err := c.EventHub.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFromFileEnvironmentWins(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "conf.yaml")
	content := []byte("eventHub:\n  connectionString: Endpoint=sb://file.servicebus.windows.net/\n  name: from-file\n")
	if err := os.WriteFile(file, content, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", file)
	t.Setenv("EventHubName", "from-env")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.EventHub.ConnectionString != "Endpoint=sb://file.servicebus.windows.net/" {
		t.Errorf("ConnectionString = %q", c.EventHub.ConnectionString)
	}
	if c.EventHub.Name != "from-env" {
		t.Errorf("Name = %q, want from-env", c.EventHub.Name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		conf    EventHubConfig
		missing bool
		wantErr bool
	}{
		{name: "complete", conf: EventHubConfig{ConnectionString: "cs", Name: "hub", MaxBatchBytes: 10}},
		{name: "no connection string", conf: EventHubConfig{Name: "hub", MaxBatchBytes: 10}, missing: true, wantErr: true},
		{name: "no name", conf: EventHubConfig{ConnectionString: "cs", MaxBatchBytes: 10}, missing: true, wantErr: true},
		{name: "whitespace counts as present", conf: EventHubConfig{ConnectionString: " ", Name: "\t", MaxBatchBytes: 10}},
		{name: "zero batch bytes", conf: EventHubConfig{ConnectionString: "cs", Name: "hub"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conf.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := errors.Is(err, ErrConfigurationMissing); got != tt.missing {
				t.Errorf("errors.Is(ErrConfigurationMissing) = %v, want %v", got, tt.missing)
			}
		})
	}
}

func TestSendTimeoutOrDefault(t *testing.T) {
	if got := (EventHubConfig{}).SendTimeoutOrDefault(); got != DefaultSendTimeout {
		t.Errorf("zero -> %s, want %s", got, DefaultSendTimeout)
	}
	if got := (EventHubConfig{SendTimeout: time.Second}).SendTimeoutOrDefault(); got != time.Second {
		t.Errorf("1s -> %s", got)
	}
}

func TestSlogLevel(t *testing.T) {
	if got := (LogConfig{Level: "debug"}).SlogLevel(); got != slog.LevelDebug {
		t.Errorf("debug -> %v", got)
	}
	if got := (LogConfig{Level: "WARN"}).SlogLevel(); got != slog.LevelWarn {
		t.Errorf("WARN -> %v", got)
	}
	if got := (LogConfig{Level: "loud"}).SlogLevel(); got != slog.LevelInfo {
		t.Errorf("unknown -> %v", got)
	}
}
