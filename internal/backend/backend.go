// Package backend selects and builds the document store the expense
// collection persists to.
package backend

import (
	"context"
	"fmt"

	"github.com/patrickhernande1993/novo-lar/internal/config"
	"github.com/patrickhernande1993/novo-lar/internal/docstore"
	"github.com/patrickhernande1993/novo-lar/internal/docstore/memory"
	"github.com/patrickhernande1993/novo-lar/internal/docstore/mongo"
	"github.com/patrickhernande1993/novo-lar/internal/docstore/sqlite"
	"github.com/patrickhernande1993/novo-lar/internal/log"
)

// Type identifies a document store implementation.
type Type string

const (
	SQLite Type = "sqlite"
	Mongo  Type = "mongo"
	Memory Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case SQLite, Mongo, Memory:
		return true
	default:
		return false
	}
}

// Factory builds document stores from the application config.
type Factory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) *Factory {
	return &Factory{logger: logger.WithComponent("backend")}
}

// Create opens the document store named by cfg.DataBackend. The
// returned store owns its connection; callers close it on shutdown.
func (f *Factory) Create(ctx context.Context, cfg *config.Config) (docstore.Documents, error) {
	backendType := Type(cfg.DataBackend)
	switch backendType {
	case SQLite:
		store, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		f.logger.Info("initialized sqlite document store", "db_path", cfg.SQLiteDBPath)
		return store, nil

	case Mongo:
		store, err := mongo.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("open mongo store: %w", err)
		}
		f.logger.Info("initialized mongo document store", "database", cfg.MongoDatabase)
		return store, nil

	case Memory:
		f.logger.Info("initialized in-memory document store")
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", backendType)
	}
}
