package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"marketplace/cmd"
	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	producer, err := kafka.NewProducer(configs.KafkaHost, configs.KafkaOrderEventsTopic)
	if err != nil {
		log.Fatalf("Error creating kafka producer: %v", err)
	}
	defer func() {
		if closeErr := producer.Close(); closeErr != nil {
			logger.Error("Kafka producer close failed", "error", closeErr)
		}
	}()

	app, err := cmd.NewCompositionRoot(configs, db, producer, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startWebServer(ctx, app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	batchSize := 0
	if raw := os.Getenv("OUTBOX_RELAY_BATCH_SIZE"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("OUTBOX_RELAY_BATCH_SIZE must be an integer: %v", err)
		}
		batchSize = parsed
	}

	config := cmd.Config{
		HTTPPort:              os.Getenv("HTTP_PORT"),
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                os.Getenv("DB_PORT"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSslMode:             os.Getenv("DB_SSLMODE"),
		KafkaHost:             os.Getenv("KAFKA_HOST"),
		KafkaOrderEventsTopic: os.Getenv("KAFKA_ORDER_EVENTS_TOPIC"),
		OutboxRelaySchedule:   os.Getenv("OUTBOX_RELAY_SCHEDULE"),
		OutboxRelayBatchSize:  batchSize,
	}
	return config.WithDefaults()
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURIPath: true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.InfoContext(c.Request().Context(), "request",
				"method", v.Method,
				"path", v.URIPath,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	}))

	doc, err := httpin.LoadOpenAPI()
	if err != nil {
		log.Fatalf("Error loading API description: %v", err)
	}
	if err = httpin.RegisterSwagger(doc); err != nil {
		log.Fatalf("Error registering swagger: %v", err)
	}
	validator, err := httpin.OpenAPIValidator(doc)
	if err != nil {
		log.Fatalf("Error creating request validator: %v", err)
	}
	e.Use(validator)

	app.CreateHTTPServer().Register(e)

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); startErr != nil &&
			!errors.Is(startErr, http.ErrServerClosed) {
			log.Fatalf("HTTP server stopped: %v", startErr)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
