package cache

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCache stores entries in a MongoDB collection, one document per key.
// Expiration is enforced twice: a TTL index lets MongoDB reap stale
// documents in the background, and Get double-checks the deadline because
// the reaper only runs periodically.
type MongoCache struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoEntry is the document shape. ExpiresAt is a pointer so that
// never-expiring entries omit the field and escape the TTL index.
type mongoEntry struct {
	Key       string     `bson:"_id"`
	Data      []byte     `bson:"data"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// NewMongoCache connects to MongoDB and prepares the named collection,
// creating the TTL index on expires_at if it does not exist.
func NewMongoCache(ctx context.Context, uri, database, collection string) (Cache, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, Retryable(err)
	}

	coll := client.Database(database).Collection(collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &MongoCache{client: client, coll: coll}, nil
}

// Get retrieves a value. Entries past their deadline are reported as
// misses even when the background reaper has not removed them yet.
func (c *MongoCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry mongoEntry
	err := c.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if entry.ExpiresAt != nil && time.Now().After(*entry.ExpiresAt) {
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set stores a value, replacing any existing entry for the key.
func (c *MongoCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := mongoEntry{Key: key, Data: data}
	if ttl > 0 {
		deadline := time.Now().Add(ttl)
		entry.ExpiresAt = &deadline
	}
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": key}, entry, options.Replace().SetUpsert(true))
	return err
}

// Delete removes a value. Deleting an absent key is not an error.
func (c *MongoCache) Delete(ctx context.Context, key string) error {
	_, err := c.coll.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

// Close disconnects from the server.
func (c *MongoCache) Close() error {
	return c.client.Disconnect(context.Background())
}

var _ Cache = (*MongoCache)(nil)
