package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sphaso/treap/pkg/cache"
)

// MongoStore persists records in a MongoDB collection, for deployments
// where several server instances share one tree store.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	// URI is the MongoDB connection string.
	URI string

	// Database is the database name. Defaults to "treap".
	Database string

	// Collection is the collection name. Defaults to "trees".
	Collection string
}

// NewMongoStore connects to MongoDB, retrying transient failures with
// backoff, and ensures a unique index on the record name.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "treap"
	}
	if cfg.Collection == "" {
		cfg.Collection = "trees"
	}

	var client *mongo.Client
	err := cache.RetryWithBackoff(ctx, func() error {
		c, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
		if err != nil {
			return cache.Retryable(err)
		}
		if err := c.Ping(ctx, nil); err != nil {
			_ = c.Disconnect(ctx)
			return cache.Retryable(err)
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create name index: %w", err)
	}

	return &MongoStore{client: client, coll: coll}, nil
}

// Get retrieves a record by name. Returns nil, nil if missing.
func (s *MongoStore) Get(ctx context.Context, name string) (*Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tree %s: %w", name, err)
	}
	return &rec, nil
}

// Put upserts a record by name.
func (s *MongoStore) Put(ctx context.Context, rec *Record) error {
	prev, err := s.Get(ctx, rec.Name)
	if err != nil {
		return err
	}
	stamp(rec, prev, time.Now())

	_, err = s.coll.ReplaceOne(ctx, bson.M{"name": rec.Name}, rec,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert tree %s: %w", rec.Name, err)
	}
	return nil
}

// Delete removes a record by name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"name": name}); err != nil {
		return fmt.Errorf("delete tree %s: %w", name, err)
	}
	return nil
}

// List returns all records sorted by name.
func (s *MongoStore) List(ctx context.Context) ([]*Record, error) {
	cur, err := s.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list trees: %w", err)
	}

	var out []*Record
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode trees: %w", err)
	}
	return out, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
