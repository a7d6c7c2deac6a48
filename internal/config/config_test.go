package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
database:
  host: "localhost"
  port: 5432
  name: "liftlens"
  user: "liftlens"
  password: "secret"
  sslmode: "disable"
auth:
  api_key: "test-key-123"
analytics:
  timezone: "Europe/Berlin"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all
// fields populated and analytics defaults applied.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "liftlens" {
		t.Errorf("database.name = %q, want liftlens", cfg.Database.Name)
	}
	if cfg.Auth.APIKey != "test-key-123" {
		t.Errorf("auth.api_key = %q", cfg.Auth.APIKey)
	}
	if cfg.Analytics.Timezone != "Europe/Berlin" {
		t.Errorf("analytics.timezone = %q, want Europe/Berlin", cfg.Analytics.Timezone)
	}
	if cfg.Analytics.TrendThresholdPct != 2.0 {
		t.Errorf("trend threshold default = %v, want 2.0", cfg.Analytics.TrendThresholdPct)
	}
}

// TestLoadEnvOverrides verifies that LIFTLENS_* environment variables win
// over file values.
func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LIFTLENS_SERVER_PORT", "9999")
	t.Setenv("LIFTLENS_DB_PASSWORD", "from-env")
	t.Setenv("LIFTLENS_TIMEZONE", "America/Chicago")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want 9999 from env", cfg.Server.Port)
	}
	if cfg.Database.Password != "from-env" {
		t.Errorf("database.password = %q, want from-env", cfg.Database.Password)
	}
	if cfg.Analytics.Timezone != "America/Chicago" {
		t.Errorf("analytics.timezone = %q, want America/Chicago", cfg.Analytics.Timezone)
	}
}

// TestLoadMissingRequired verifies each required field fails validation with
// a field-specific message.
func TestLoadMissingRequired(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{
			"missing api key",
			`
server: {host: "a", port: 1}
database: {host: "h", port: 5432, name: "n", user: "u"}
`,
		},
		{
			"missing db host",
			`
server: {host: "a", port: 1}
database: {port: 5432, name: "n", user: "u"}
auth: {api_key: "k"}
`,
		},
		{
			"missing port without tailscale",
			`
server: {host: "a"}
database: {host: "h", port: 5432, name: "n", user: "u"}
auth: {api_key: "k"}
`,
		},
		{
			"tailscale without hostname",
			`
database: {host: "h", port: 5432, name: "n", user: "u"}
auth: {api_key: "k"}
tailscale: {enabled: true}
`,
		},
	}
	for _, tc := range cases {
		if _, err := Load(writeTemp(t, tc.yaml)); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

// TestDSN verifies the PostgreSQL connection string shape, including the
// sslmode default.
func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, Name: "liftlens", User: "u", Password: "p"}
	want := "postgres://u:p@db:5432/liftlens?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
