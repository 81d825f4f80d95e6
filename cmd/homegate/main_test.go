package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// freePort asks the kernel for an unused TCP port.
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close() //nolint:errcheck // Test helper
	return l.Addr().(*net.TCPAddr).Port
}

// writeConfig writes a config with MQTT, alerts and InfluxDB turned off.
func writeConfig(t *testing.T, dbPath string, port int) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "test-config.yaml")
	content := fmt.Sprintf(`
site:
  id: test-site

database:
  path: %q
  wal_mode: true
  busy_timeout: 5

mqtt:
  enabled: false

alerts:
  transport: none

influxdb:
  enabled: false

auth:
  seed_owner: true

logging:
  level: error
  format: text
  output: stdout

api:
  host: "127.0.0.1"
  port: %d
  timeouts:
    read: 5
    write: 5
    idle: 5
`, dbPath, port)
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

// TestRun_InvalidConfig verifies run fails with invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("HOMEGATE_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_MissingDatabasePath verifies validation rejects an empty database path.
func TestRun_MissingDatabasePath(t *testing.T) {
	t.Setenv("HOMEGATE_CONFIG", writeConfig(t, "", freePort(t)))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx)
	if err == nil {
		t.Fatal("run() should fail with empty database path")
	}
	if !strings.Contains(err.Error(), "database.path") {
		t.Errorf("error = %v, want database.path validation failure", err)
	}
}

// TestGetConfigPath_Default verifies default config path.
func TestGetConfigPath_Default(t *testing.T) {
	t.Setenv("HOMEGATE_CONFIG", "")

	if path := getConfigPath(); path != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", path, defaultConfigPath)
	}
}

// TestGetConfigPath_EnvOverride verifies environment variable override.
func TestGetConfigPath_EnvOverride(t *testing.T) {
	expected := "/custom/path/config.yaml"
	t.Setenv("HOMEGATE_CONFIG", expected)

	if path := getConfigPath(); path != expected {
		t.Errorf("getConfigPath() = %q, want %q", path, expected)
	}
}

// TestRun_StartupAndShutdown starts the gateway without external services,
// checks the API answers, and cancels.
func TestRun_StartupAndShutdown(t *testing.T) {
	port := freePort(t)
	t.Setenv("HOMEGATE_CONFIG", writeConfig(t, filepath.Join(t.TempDir(), "test.db"), port))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- run(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/health", port)
	deadline := time.Now().Add(10 * time.Second)
	for {
		resp, err := http.Get(url) //nolint:noctx // Test polling
		if err == nil {
			resp.Body.Close() //nolint:errcheck // Test cleanup
			if resp.StatusCode != http.StatusOK {
				t.Errorf("/health status = %d, want 200", resp.StatusCode)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("API did not come up: %v", err)
		}
		select {
		case err := <-done:
			t.Fatalf("run() exited early: %v", err)
		case <-time.After(50 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run() error = %v, want clean shutdown", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("run() did not return after cancel")
	}
}

// TestRunMigrate_UpDownStatus walks the schema through the migrate subcommand.
func TestRunMigrate_UpDownStatus(t *testing.T) {
	t.Setenv("HOMEGATE_CONFIG", writeConfig(t, filepath.Join(t.TempDir(), "migrate.db"), freePort(t)))
	ctx := context.Background()

	steps := []struct {
		args []string
		want string
		not  string
	}{
		{nil, "pending  20260301_120000  create_documents", "applied"},
		{[]string{"up"}, "applied  20260301_120000", "pending"},
		{[]string{"status"}, "applied  20260301_120000", "pending"},
		{[]string{"down"}, "pending  20260301_120000  create_documents", "applied"},
	}
	for _, step := range steps {
		var out bytes.Buffer
		if err := runMigrate(ctx, step.args, &out); err != nil {
			t.Fatalf("runMigrate(%v) error = %v", step.args, err)
		}
		if !strings.Contains(out.String(), step.want) || strings.Contains(out.String(), step.not) {
			t.Errorf("runMigrate(%v) output = %q, want %q without %q", step.args, out.String(), step.want, step.not)
		}
	}

	for _, args := range [][]string{{"sideways"}, {"up", "extra"}} {
		if err := runMigrate(ctx, args, &bytes.Buffer{}); !errors.Is(err, errUsage) {
			t.Errorf("runMigrate(%v) error = %v, want usage error", args, err)
		}
	}
}
