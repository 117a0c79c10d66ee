// Package mongo is an optional document backend keeping the expense
// document as a single upserted record in a MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/patrickhernande1993/novo-lar/internal/docstore"
)

const collectionName = "documents"

// Collection abstracts the mongo collection operations the store needs.
type Collection interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
}

type Store struct {
	client *mongo.Client
	coll   Collection
}

type document struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// New connects to MongoDB and pings it before returning a ready store.
func New(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	slog.InfoContext(ctx, "Connected to MongoDB", "database", database)

	return &Store{
		client: client,
		coll:   client.Database(database).Collection(collectionName),
	}, nil
}

// NewWithCollection builds a store over an existing collection handle.
func NewWithCollection(coll Collection) *Store {
	return &Store{coll: coll}
}

func (s *Store) Read(ctx context.Context) ([]byte, error) {
	var doc document
	err := s.coll.FindOne(ctx, bson.M{"_id": docstore.Key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, docstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return doc.Value, nil
}

func (s *Store) Write(ctx context.Context, doc []byte) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": docstore.Key},
		document{Key: docstore.Key, Value: doc, UpdatedAt: time.Now().UTC()},
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
