package backend

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/patrickhernande1993/novo-lar/internal/config"
	"github.com/patrickhernande1993/novo-lar/internal/docstore"
	"github.com/patrickhernande1993/novo-lar/internal/log"
)

func testFactory() *Factory {
	return NewFactory(log.New(log.Config{
		Handler: slog.NewTextHandler(io.Discard, nil),
	}))
}

func TestTypeIsValid(t *testing.T) {
	for _, tt := range []struct {
		typ   Type
		valid bool
	}{
		{SQLite, true},
		{Mongo, true},
		{Memory, true},
		{Type("sheets"), false},
		{Type(""), false},
	} {
		if got := tt.typ.IsValid(); got != tt.valid {
			t.Errorf("%q.IsValid() = %v, want %v", tt.typ, got, tt.valid)
		}
	}
}

func TestCreateMemory(t *testing.T) {
	store, err := testFactory().Create(context.Background(), &config.Config{DataBackend: "memory"})
	if err != nil {
		t.Fatalf("create memory store: %v", err)
	}
	defer func() { _ = store.Close() }()

	if _, err := store.Read(context.Background()); err != docstore.ErrNotFound {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}
}

func TestCreateSQLite(t *testing.T) {
	cfg := &config.Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: filepath.Join(t.TempDir(), "test.db"),
	}
	store, err := testFactory().Create(context.Background(), cfg)
	if err != nil {
		t.Fatalf("create sqlite store: %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Write(context.Background(), []byte(`[]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := store.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(doc) != `[]` {
		t.Fatalf("read = %q, want %q", doc, `[]`)
	}
}

func TestCreateUnknownBackend(t *testing.T) {
	if _, err := testFactory().Create(context.Background(), &config.Config{DataBackend: "sheets"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
