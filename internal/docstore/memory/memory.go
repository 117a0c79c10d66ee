// Package memory is an in-process document backend used by tests and
// the "memory" data backend.
package memory

import (
	"context"
	"sync"

	"github.com/patrickhernande1993/novo-lar/internal/docstore"
)

type Store struct {
	mu    sync.Mutex
	doc   []byte
	found bool
}

func New() *Store {
	return &Store{}
}

// Seed creates a store pre-populated with a document, as if it had been
// written in an earlier session.
func Seed(doc []byte) *Store {
	s := New()
	s.doc = append([]byte(nil), doc...)
	s.found = true
	return s
}

func (s *Store) Read(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.found {
		return nil, docstore.ErrNotFound
	}
	return append([]byte(nil), s.doc...), nil
}

func (s *Store) Write(_ context.Context, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = append([]byte(nil), doc...)
	s.found = true
	return nil
}

func (s *Store) Close() error {
	return nil
}
