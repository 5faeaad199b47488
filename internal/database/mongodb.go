package database

import (
	"context"
	"time"

	errors "github.com/Laisky/errors/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/config"
	"github.com/nexbytes/nexfolio/backend/go-services/pkg/logger"
)

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration, maxPoolSize uint64) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri)
	if maxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(maxPoolSize)
	}
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, "mongo connect")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "mongo ping")
	}
	return client, nil
}

// Pool owns the process-wide client and database handle. It is built once by
// the application root and handed to every repository.
type Pool struct {
	Client  *mongo.Client
	DB      *mongo.Database
	timeout time.Duration
}

// NewPool wraps an already connected client.
func NewPool(client *mongo.Client, database string, timeout time.Duration) *Pool {
	return &Pool{Client: client, DB: client.Database(database), timeout: timeout}
}

// Open connects with bounded retry and exponential backoff to tolerate startup races.
func Open(ctx context.Context, cfg config.MongoDBConfig, maxAttempts int) (*Pool, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	backoff := time.Second
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, err := ConnectMongo(ctx, cfg.URI, cfg.Timeout, cfg.MaxPoolSize)
		if err == nil {
			return NewPool(client, cfg.Database, cfg.Timeout), nil
		}
		lastErr = err
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}
	return nil, errors.Wrapf(lastErr, "could not connect to MongoDB after %d attempts", maxAttempts)
}

func (p *Pool) Collection(name string) *mongo.Collection {
	return p.DB.Collection(name)
}

// Ping checks the primary is reachable.
func (p *Pool) Ping(ctx context.Context) error {
	if p == nil || p.Client == nil {
		return errors.New("mongo pool not initialized")
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	return p.Client.Ping(ctx, readpref.Primary())
}

func (p *Pool) Close(ctx context.Context) error {
	if p == nil || p.Client == nil {
		return nil
	}
	return p.Client.Disconnect(ctx)
}
