// Homegate - smart-home gateway
//
// This is the main entry point for the Homegate gateway. It serves the REST
// API used by the mobile app and device firmware, validates readings against
// the built-in type registry, escalates dangerous gas levels, and optionally
// bridges readings and commands over MQTT.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	_ "github.com/nerrad567/homegate/migrations"

	"github.com/nerrad567/homegate/internal/alert"
	"github.com/nerrad567/homegate/internal/api"
	"github.com/nerrad567/homegate/internal/auth"
	"github.com/nerrad567/homegate/internal/catalog"
	"github.com/nerrad567/homegate/internal/command"
	"github.com/nerrad567/homegate/internal/facerecog"
	"github.com/nerrad567/homegate/internal/infrastructure/config"
	"github.com/nerrad567/homegate/internal/infrastructure/database"
	"github.com/nerrad567/homegate/internal/infrastructure/influxdb"
	"github.com/nerrad567/homegate/internal/infrastructure/logging"
	"github.com/nerrad567/homegate/internal/infrastructure/metrics"
	"github.com/nerrad567/homegate/internal/infrastructure/mqtt"
	"github.com/nerrad567/homegate/internal/notification"
	"github.com/nerrad567/homegate/internal/reading"
	"github.com/nerrad567/homegate/internal/sensor"
	"github.com/nerrad567/homegate/internal/store"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var err error
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		err = runMigrate(ctx, os.Args[2:], os.Stdout)
	} else {
		err = run(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting Homegate",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// A missing .env file is normal outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("ignoring unreadable .env file", "error", err)
	}

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	db, err := database.Open(ctx, database.ConfigFrom(cfg.Database))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", db.Path())

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	docs := store.NewSQLiteStore(db.DB)
	registry := catalog.Default()
	writer := reading.NewWriter(docs, nil)
	collectors := metrics.New()
	if err := collectors.RegisterDB(db.DB); err != nil {
		return fmt.Errorf("registering database metrics: %w", err)
	}
	health := map[string]api.HealthChecker{"database": db}

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	var alertPub alert.Publisher
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log.Component("mqtt"))
		alertPub = mqttClient
		health["mqtt"] = mqttClient
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
	} else {
		log.Info("MQTT disabled")
	}

	alerts, alertCloser, err := alert.New(cfg, alertPub)
	if err != nil {
		return fmt.Errorf("creating alert sender: %w", err)
	}
	defer func() {
		if closeErr := alertCloser.Close(); closeErr != nil {
			log.Error("error closing alert sender", "error", closeErr)
		}
	}()
	log.Info("alert transport ready", "transport", cfg.Alerts.Transport)

	// Connect to InfluxDB (optional)
	var recorder sensor.Recorder
	influxClient, err := influxdb.Connect(cfg.InfluxDB)
	switch {
	case errors.Is(err, influxdb.ErrDisabled):
		log.Info("InfluxDB disabled")
	case err != nil:
		return fmt.Errorf("connecting to InfluxDB: %w", err)
	default:
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		recorder = influxClient
		health["influxdb"] = influxClient
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	}

	var detector facerecog.Detector
	if cfg.FaceRecognition.DetectorURL != "" {
		detector = facerecog.NewHTTPDetector(cfg.FaceRecognition.DetectorURL, cfg.GetDetectorTimeout())
		log.Info("face detector configured", "url", cfg.FaceRecognition.DetectorURL)
	}

	notifications := notification.NewService(docs)
	sensors := sensor.NewService(sensor.Deps{
		Registry:     registry,
		Store:        docs,
		Writer:       writer,
		Notifier:     notifications,
		Alerts:       alerts,
		AlertTimeout: cfg.GetAlertSendTimeout(),
		Recorder:     recorder,
		Detector:     detector,
		Metrics:      collectors,
		Logger:       log.Component("sensor"),
	})

	commands := command.NewService(registry, docs, writer)
	commands.SetLogger(log.Component("command"))
	commands.SetMetrics(collectors)

	users := auth.NewUserRepository(docs)
	if cfg.Auth.SeedOwner {
		if _, seedErr := auth.SeedOwner(ctx, users, log.Logger); seedErr != nil {
			return fmt.Errorf("seeding owner: %w", seedErr)
		}
	}

	if mqttClient != nil {
		topics := mqttClient.Topics()
		commands.SetDispatcher(command.NewMQTTDispatcher(mqttClient, topics))
		if cfg.MQTT.Ingest {
			if subErr := mqttClient.Subscribe(topics.AllSensors(), mqttClient.QoS(), sensors.MQTTHandler(topics)); subErr != nil {
				return fmt.Errorf("subscribing to sensor topics: %w", subErr)
			}
			log.Info("MQTT sensor ingest enabled", "topic", topics.AllSensors())
		}
	}

	server, err := api.New(api.Deps{
		Config:        cfg.API,
		Logger:        log.Component("api"),
		Sensors:       sensors,
		Commands:      commands,
		Notifications: notifications,
		Auth:          auth.NewService(users, nil),
		Faces:         facerecog.NewService(docs, notifications, nil),
		Metrics:       collectors,
		Health:        health,
		Version:       version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("initialisation complete, waiting for shutdown signal",
		"address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
	)

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// API server, InfluxDB, alert sender, MQTT, database

	log.Info("Homegate stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses HOMEGATE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("HOMEGATE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
