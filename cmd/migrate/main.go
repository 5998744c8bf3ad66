package main

import (
	"context"
	"time"

	mongoMigration "evently/internal/migrations/mongo"
	"evently/pkg/client"
	"evently/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.Log.Info("Starting Mongo migration job")

	conn := client.NewConn(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	defer func() {
		if err := conn.Disconnect(context.Background()); err != nil {
			cfg.Log.Error("Failed to disconnect from MongoDB", "error", err)
		}
	}()

	db, err := conn.Database(ctx, cfg.MongoDatabaseName)
	if err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	if err := mongoMigration.RunMigration(ctx, db); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	cfg.Log.Info("Migration completed successfully")
}
