package mongo_test

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/patrickhernande1993/novo-lar/internal/docstore"
	"github.com/patrickhernande1993/novo-lar/internal/docstore/mongo"
)

// fakeCollection backs the store with an in-process map.
type fakeCollection struct {
	docs map[string]bson.M
}

func newFakeCollection() *fakeCollection {
	return &fakeCollection{docs: map[string]bson.M{}}
}

func (f *fakeCollection) FindOne(_ context.Context, filter interface{}, _ ...*options.FindOneOptions) *driver.SingleResult {
	key := filter.(bson.M)["_id"].(string)
	doc, ok := f.docs[key]
	if !ok {
		return driver.NewSingleResultFromDocument(bson.D{}, driver.ErrNoDocuments, nil)
	}
	return driver.NewSingleResultFromDocument(doc, nil, nil)
}

func (f *fakeCollection) ReplaceOne(_ context.Context, filter interface{}, replacement interface{}, _ ...*options.ReplaceOptions) (*driver.UpdateResult, error) {
	key := filter.(bson.M)["_id"].(string)
	raw, err := bson.Marshal(replacement)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	f.docs[key] = doc
	return &driver.UpdateResult{UpsertedCount: 1}, nil
}

func TestReadMissingDocument(t *testing.T) {
	store := mongo.NewWithCollection(newFakeCollection())

	_, err := store.Read(context.Background())
	if err != docstore.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	coll := newFakeCollection()
	store := mongo.NewWithCollection(coll)

	if err := store.Write(ctx, []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != `[{"id":"1"}]` {
		t.Fatalf("unexpected document: %s", got)
	}

	// a second write replaces the stored document under the same key
	if err := store.Write(ctx, []byte(`[]`)); err != nil {
		t.Fatalf("second write: %v", err)
	}
	got, err = store.Read(ctx)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if string(got) != `[]` {
		t.Fatalf("unexpected document after rewrite: %s", got)
	}
	if len(coll.docs) != 1 {
		t.Fatalf("expected a single stored document, got %d", len(coll.docs))
	}
}

func TestCloseWithoutClient(t *testing.T) {
	store := mongo.NewWithCollection(newFakeCollection())
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
