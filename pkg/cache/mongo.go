package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOptions configures a MongoCache.
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

// MongoCache stores each entry as a document keyed by _id.
type MongoCache struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoEntry struct {
	Key       string     `bson:"_id"`
	Data      []byte     `bson:"data"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// NewMongoCache connects to MongoDB and verifies the connection, retrying
// transient failures.
func NewMongoCache(ctx context.Context, opts MongoOptions) (*MongoCache, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("%w: mongo connect: %v", ErrUnavailable, err)
	}

	err = RetryWithBackoff(ctx, func() error {
		return Retryable(client.Ping(ctx, nil))
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: mongo ping: %v", ErrUnavailable, err)
	}

	return &MongoCache{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

// Get retrieves a value. Expired documents are deleted and reported as
// misses.
func (c *MongoCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var e mongoEntry
	err := c.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if e.ExpiresAt != nil && time.Now().After(*e.ExpiresAt) {
		_ = c.Delete(ctx, key)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set upserts the document for key.
func (c *MongoCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := mongoEntry{Key: key, Data: data}
	if ttl > 0 {
		exp := time.Now().Add(ttl)
		e.ExpiresAt = &exp
	}
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": key}, e, options.Replace().SetUpsert(true))
	return err
}

// Delete removes the document for key.
func (c *MongoCache) Delete(ctx context.Context, key string) error {
	_, err := c.coll.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

// Close disconnects the client.
func (c *MongoCache) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

var _ Cache = (*MongoCache)(nil)
