package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"evently/pkg/logger"
)

// Conn owns the single Mongo connection for the process. The first Get
// dials and pings the server; on success the client is cached for the
// process lifetime and every later Get returns it. On failure nothing is
// cached, so a later Get performs a fresh attempt. Concurrent first callers
// serialize on the mutex and share the one attempt instead of opening a
// second connection.
type Conn struct {
	uri     string
	timeout time.Duration
	log     *logger.Logger

	mu     sync.Mutex
	client *mongo.Client
}

func NewConn(log *logger.Logger, uri string, connTimeout time.Duration) *Conn {
	return &Conn{
		uri:     uri,
		timeout: connTimeout,
		log:     log,
	}
}

func (c *Conn) Get(ctx context.Context) (*mongo.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(c.uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(dialCtx, nil); err != nil {
		// Tear the half-open client down so the next Get retries cleanly.
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	c.log.Info("Successfully connected to MongoDB")
	c.client = client
	return c.client, nil
}

// Database resolves the named database on the shared connection.
func (c *Conn) Database(ctx context.Context, name string) (*mongo.Database, error) {
	client, err := c.Get(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(name), nil
}

// Disconnect closes the cached connection if one was established. Safe to
// call when no connection was ever made.
func (c *Conn) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}

	err := c.client.Disconnect(ctx)
	c.client = nil
	if err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	c.log.Info("MongoDB connection closed")
	return nil
}
