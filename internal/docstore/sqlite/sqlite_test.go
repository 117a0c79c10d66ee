package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickhernande1993/novo-lar/internal/docstore"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "novolar.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestReadMissingDocument(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Read(context.Background())
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestWriteReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Write(ctx, []byte(`[{"id":"1","amount":1250.00}]`)))
	got, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1","amount":1250.00}]`, string(got))
}

func TestWriteUpserts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Write(ctx, []byte(`first`)))
	require.NoError(t, s.Write(ctx, []byte(`second`)))

	got, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `second`, string(got))
}

func TestReopenKeepsDocument(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "novolar.db")

	s, err := New(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Write(ctx, []byte(`persisted`)))
	require.NoError(t, s.Close())

	s, err = New(dbPath)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `persisted`, string(got))
}
