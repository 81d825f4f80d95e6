package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
site:
  id: "test-home"
database:
  path: "/tmp/test.db"
  wal_mode: true
  busy_timeout: 5
mqtt:
  broker:
    host: "localhost"
    port: 1883
    client_id: "test-client"
  qos: 1
api:
  host: "0.0.0.0"
  port: 8080
alerts:
  transport: "kafka"
kafka:
  brokers: ["kafka-1:9092", "kafka-2:9092"]
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Site.ID != "test-home" {
		t.Errorf("Site.ID = %q, want %q", cfg.Site.ID, "test-home")
	}

	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/test.db")
	}

	if cfg.API.Port != 8080 {
		t.Errorf("API.Port = %d, want 8080", cfg.API.Port)
	}

	if cfg.Alerts.Transport != AlertTransportKafka {
		t.Errorf("Alerts.Transport = %q, want %q", cfg.Alerts.Transport, AlertTransportKafka)
	}

	if len(cfg.Kafka.Brokers) != 2 {
		t.Errorf("len(Kafka.Brokers) = %d, want 2", len(cfg.Kafka.Brokers))
	}

	// Untouched sections keep their defaults
	if cfg.Alerts.SendTimeout != 5 {
		t.Errorf("Alerts.SendTimeout = %d, want default 5", cfg.Alerts.SendTimeout)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	content := `
site:
  id: ""
database:
  path: "/tmp/test.db"
api:
  port: 8080
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected validation error for empty site.id, got nil")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			config:  Default(),
			wantErr: false,
		},
		{
			name: "minimal config",
			config: &Config{
				Site:     SiteConfig{ID: "home-001"},
				Database: DatabaseConfig{Path: "/data/homegate.db"},
				API:      APIConfig{Port: 5001},
			},
			wantErr: false,
		},
		{
			name: "missing site ID",
			config: &Config{
				Database: DatabaseConfig{Path: "/data/homegate.db"},
				API:      APIConfig{Port: 5001},
			},
			wantErr: true,
		},
		{
			name: "missing database path",
			config: &Config{
				Site: SiteConfig{ID: "home-001"},
				API:  APIConfig{Port: 5001},
			},
			wantErr: true,
		},
		{
			name: "invalid QoS",
			config: &Config{
				Site:     SiteConfig{ID: "home-001"},
				Database: DatabaseConfig{Path: "/data/homegate.db"},
				MQTT:     MQTTConfig{QoS: 3},
				API:      APIConfig{Port: 5001},
			},
			wantErr: true,
		},
		{
			name: "invalid port high",
			config: &Config{
				Site:     SiteConfig{ID: "home-001"},
				Database: DatabaseConfig{Path: "/data/homegate.db"},
				API:      APIConfig{Port: 70000},
			},
			wantErr: true,
		},
		{
			name: "unknown alert transport",
			config: &Config{
				Site:     SiteConfig{ID: "home-001"},
				Database: DatabaseConfig{Path: "/data/homegate.db"},
				API:      APIConfig{Port: 5001},
				Alerts:   AlertsConfig{Transport: "pigeon"},
			},
			wantErr: true,
		},
		{
			name: "mqtt transport with mqtt disabled",
			config: &Config{
				Site:     SiteConfig{ID: "home-001"},
				Database: DatabaseConfig{Path: "/data/homegate.db"},
				API:      APIConfig{Port: 5001},
				Alerts:   AlertsConfig{Transport: AlertTransportMQTT},
			},
			wantErr: true,
		},
		{
			name: "kafka transport without brokers",
			config: &Config{
				Site:     SiteConfig{ID: "home-001"},
				Database: DatabaseConfig{Path: "/data/homegate.db"},
				API:      APIConfig{Port: 5001},
				Alerts:   AlertsConfig{Transport: AlertTransportKafka},
			},
			wantErr: true,
		},
		{
			name: "influxdb enabled without bucket",
			config: &Config{
				Site:     SiteConfig{ID: "home-001"},
				Database: DatabaseConfig{Path: "/data/homegate.db"},
				API:      APIConfig{Port: 5001},
				InfluxDB: InfluxDBConfig{Enabled: true, URL: "http://influx:8086", Org: "home"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_GetTimeouts(t *testing.T) {
	cfg := &Config{
		API: APIConfig{
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 45,
				Idle:  60,
			},
		},
		Alerts:          AlertsConfig{SendTimeout: 7},
		FaceRecognition: FaceRecognitionConfig{Timeout: 3},
	}

	if got := cfg.GetReadTimeout().Seconds(); got != 30 {
		t.Errorf("GetReadTimeout() = %v, want 30", got)
	}

	if got := cfg.GetWriteTimeout().Seconds(); got != 45 {
		t.Errorf("GetWriteTimeout() = %v, want 45", got)
	}

	if got := cfg.GetIdleTimeout().Seconds(); got != 60 {
		t.Errorf("GetIdleTimeout() = %v, want 60", got)
	}

	if got := cfg.GetAlertSendTimeout().Seconds(); got != 7 {
		t.Errorf("GetAlertSendTimeout() = %v, want 7", got)
	}

	if got := cfg.GetDetectorTimeout().Seconds(); got != 3 {
		t.Errorf("GetDetectorTimeout() = %v, want 3", got)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := Default()

	t.Setenv("HOMEGATE_DATABASE_PATH", "/custom/path.db")
	t.Setenv("HOMEGATE_API_HOST", "192.168.1.1")
	t.Setenv("HOMEGATE_API_PORT", "9090")
	t.Setenv("HOMEGATE_MQTT_HOST", "mqtt.example.com")
	t.Setenv("HOMEGATE_MQTT_USERNAME", "testuser")
	t.Setenv("HOMEGATE_MQTT_PASSWORD", "testpass")
	t.Setenv("HOMEGATE_KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("HOMEGATE_ALERTS_TRANSPORT", "kafka")
	t.Setenv("HOMEGATE_INFLUXDB_TOKEN", "secret-token")
	t.Setenv("HOMEGATE_LOG_LEVEL", "debug")
	t.Setenv("HOMEGATE_FACE_DETECTOR_URL", "http://camera.local/detect")

	applyEnvOverrides(cfg)

	if cfg.Database.Path != "/custom/path.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/custom/path.db")
	}

	if cfg.API.Host != "192.168.1.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "192.168.1.1")
	}

	if cfg.API.Port != 9090 {
		t.Errorf("API.Port = %d, want 9090", cfg.API.Port)
	}

	if cfg.MQTT.Broker.Host != "mqtt.example.com" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "mqtt.example.com")
	}

	if cfg.MQTT.Auth.Username != "testuser" || cfg.MQTT.Auth.Password != "testpass" {
		t.Errorf("MQTT.Auth = %+v, want testuser/testpass", cfg.MQTT.Auth)
	}

	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("Kafka.Brokers = %v, want [k1:9092 k2:9092]", cfg.Kafka.Brokers)
	}

	if cfg.Alerts.Transport != "kafka" {
		t.Errorf("Alerts.Transport = %q, want kafka", cfg.Alerts.Transport)
	}

	if cfg.InfluxDB.Token != "secret-token" {
		t.Errorf("InfluxDB.Token = %q, want %q", cfg.InfluxDB.Token, "secret-token")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}

	if cfg.FaceRecognition.DetectorURL != "http://camera.local/detect" {
		t.Errorf("FaceRecognition.DetectorURL = %q", cfg.FaceRecognition.DetectorURL)
	}
}

func TestApplyEnvOverrides_InvalidPortIgnored(t *testing.T) {
	cfg := Default()
	t.Setenv("HOMEGATE_API_PORT", "not-a-port")

	applyEnvOverrides(cfg)

	if cfg.API.Port != 5001 {
		t.Errorf("API.Port = %d, want default 5001", cfg.API.Port)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Site.ID == "" {
		t.Error("Default should have non-empty Site.ID")
	}

	if cfg.Database.Path == "" {
		t.Error("Default should have non-empty Database.Path")
	}

	if cfg.MQTT.Broker.Port != 1883 {
		t.Errorf("Default MQTT.Broker.Port = %d, want 1883", cfg.MQTT.Broker.Port)
	}

	if cfg.API.Port != 5001 {
		t.Errorf("Default API.Port = %d, want 5001", cfg.API.Port)
	}

	if cfg.Alerts.Transport != AlertTransportMQTT {
		t.Errorf("Default Alerts.Transport = %q, want %q", cfg.Alerts.Transport, AlertTransportMQTT)
	}
}
