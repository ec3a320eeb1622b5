package mongodb

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Client wraps a mongo.Client bound to a single database.
type Client struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewClient connects to MongoDB, configures the connection pool and verifies
// the connection with a ping before returning.
func NewClient(ctx context.Context, uri, database string) (*Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(uri)
	opts.SetMaxPoolSize(100)
	opts.SetMinPoolSize(5)
	opts.SetMaxConnIdleTime(30 * time.Minute)
	opts.SetConnectTimeout(10 * time.Second)
	opts.SetServerSelectionTimeout(5 * time.Second)
	opts.SetRetryWrites(true)

	mongoClient, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	c := &Client{
		client:   mongoClient,
		database: mongoClient.Database(database),
	}

	if err := c.Ping(connectCtx); err != nil {
		c.Close(connectCtx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return c, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

func (c *Client) Collection(name string) *mongo.Collection {
	return c.database.Collection(name)
}

// HealthHandler returns a handler for the store health check endpoint.
func HealthHandler(client *Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		if err := client.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"status": "healthy",
		})
	}
}
