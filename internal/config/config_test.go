package config

import (
	"os"
	"testing"
	"time"
)

// setRequired sets the env vars every Load call needs.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("ADMIN_KEY", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Server.MaxBodySize != 20971520 {
		t.Errorf("Server.MaxBodySize = %d, want %d", cfg.Server.MaxBodySize, 20971520)
	}
	if cfg.Event.Name != "INNOVERSE 26" {
		t.Errorf("Event.Name = %q, want %q", cfg.Event.Name, "INNOVERSE 26")
	}
	if cfg.Event.ReservedCollegeLimit != 10 {
		t.Errorf("Event.ReservedCollegeLimit = %d, want %d", cfg.Event.ReservedCollegeLimit, 10)
	}
	if cfg.Event.ExportFilename != "registrations.xlsx" {
		t.Errorf("Event.ExportFilename = %q, want %q", cfg.Event.ExportFilename, "registrations.xlsx")
	}
	if !cfg.Rate.Enabled {
		t.Error("Rate.Enabled = false, want true")
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("EVENT_NAME", "HACKFEST 27")
	t.Setenv("RESERVED_COLLEGE_LIMIT", "5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Event.Name != "HACKFEST 27" {
		t.Errorf("Event.Name = %q, want %q", cfg.Event.Name, "HACKFEST 27")
	}
	if cfg.Event.ReservedCollegeLimit != 5 {
		t.Errorf("Event.ReservedCollegeLimit = %d, want %d", cfg.Event.ReservedCollegeLimit, 5)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	t.Setenv("ADMIN_KEY", "test-secret")
	t.Setenv("DB_URL", "postgres://localhost/alttest")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.URL != "postgres://localhost/alttest" {
		t.Errorf("Database.URL = %q, want %q", cfg.Database.URL, "postgres://localhost/alttest")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("DB_URL")
	os.Unsetenv("ADMIN_KEY")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for missing DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for missing ADMIN_KEY")
	}
}

func TestLoad_Duration(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_READ_TIMEOUT", "45s")
	t.Setenv("DB_MAX_CONN_LIFETIME", "1m30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Database.MaxConnLifetime != 90*time.Second {
		t.Errorf("Database.MaxConnLifetime = %v, want %v", cfg.Database.MaxConnLifetime, 90*time.Second)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name, key, value string
	}{
		{"bad port", "SERVER_PORT", "not-a-number"},
		{"port out of range", "SERVER_PORT", "99999"},
		{"bad duration", "SERVER_READ_TIMEOUT", "fast"},
		{"bad bool", "RATE_LIMIT_ENABLED", "maybe"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad log format", "LOG_FORMAT", "xml"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestEventConfig_Slug(t *testing.T) {
	cases := []struct {
		name    string
		cfg     EventConfig
		want    string
	}{
		{"explicit slug wins", EventConfig{ReservedCollege: "Acme Institute", ReservedCollegeSlug: "acme"}, "acme"},
		{"derived from name", EventConfig{ReservedCollege: "Acme Institute of Technology"}, "acme-institute-of-technology"},
		{"punctuation collapsed", EventConfig{ReservedCollege: "St. Mary's College"}, "st-mary-s-college"},
		{"empty college", EventConfig{}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.Slug(); got != tc.want {
				t.Errorf("Slug() = %q, want %q", got, tc.want)
			}
		})
	}
}
