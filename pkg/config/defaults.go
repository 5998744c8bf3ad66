package config

import "time"

const (
	DefaultMongoDatabaseName = "evently"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 8 * 1024 * 1024 // 8MB, event images arrive inline

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultAssetUploadTimeout = 20 * time.Second

	DefaultKafkaTopic = "evently.notifications"

	DefaultPaginationLimit = 100
)
