package main

import (
	"context"

	bookinghandler "evently/internal/bookings/handler"
	bookingrepository "evently/internal/bookings/repository"
	bookingservice "evently/internal/bookings/service"
	bookingvalidator "evently/internal/bookings/validator"
	eventhandler "evently/internal/events/handler"
	eventrepository "evently/internal/events/repository"
	eventservice "evently/internal/events/service"
	eventvalidator "evently/internal/events/validator"
	"evently/internal/health"
	"evently/pkg/app"
	"evently/pkg/assets"
	"evently/pkg/client"
	"evently/pkg/config"
	"evently/pkg/kafka"
)

const ServiceName = "evently"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Evently service")

	conn := client.NewConn(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	defer func() {
		if err := conn.Disconnect(context.Background()); err != nil {
			cfg.Log.Error("Failed to disconnect from MongoDB", "error", err)
		}
	}()

	// The connection is lazy: the first repository call dials it. Resolving
	// the database here does the dial up front so a bad URI fails at startup
	// instead of on the first request.
	db, err := conn.Database(context.Background(), cfg.MongoDatabaseName)
	if err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	producer := initProducer(cfg)
	if producer != nil {
		defer func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Error("Failed to close Kafka producer", "error", err)
			}
		}()
	}

	eventRepo := eventrepository.NewMongoEventRepository(db, cfg)
	var eventsPublisher eventservice.Publisher
	if producer != nil {
		eventsPublisher = producer
	}
	eventSvc := eventservice.NewEventService(
		eventRepo,
		eventvalidator.NewEventValidator(cfg.Log),
		eventsPublisher,
		cfg,
	)

	var bookingsPublisher bookingservice.Publisher
	if producer != nil {
		bookingsPublisher = producer
	}
	bookingSvc := bookingservice.NewBookingService(
		bookingrepository.NewMongoBookingRepository(db, cfg),
		eventRepo,
		bookingvalidator.NewBookingValidator(cfg.Log),
		bookingsPublisher,
		cfg,
	)

	var uploader assets.Uploader
	if cfg.AssetHostURL != "" {
		uploader = assets.NewHTTPUploader(cfg.AssetHostURL, cfg.AssetUploadTimeout)
	}

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		health.NewHandler(conn, cfg.Log),
		eventhandler.NewEventHandler(eventSvc, uploader, cfg.Log),
		bookinghandler.NewBookingHandler(bookingSvc, cfg.Log),
	)
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, notifications disabled")
		return nil
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	cfg.Log.Info("Kafka producer initialized", "topic", cfg.KafkaTopic)
	return producer
}
