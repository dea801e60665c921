package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "compile.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func record(id string, doc string, createdAt int64) Record {
	return Record{
		ID:           id,
		DocumentURI:  doc,
		CreatedAt:    createdAt,
		ErrorCount:   1,
		WarningCount: 2,
		Config:       []byte(`{"version":1}`),
		Diagnostics:  `[]`,
	}
}

// =============================================================================
// Compile Log
// =============================================================================

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compile.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, second.Close())
}

func TestWriteAndListCompilation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id := uuid.NewString()
	require.NoError(t, s.WriteCompilation(ctx, record(id, "file:///demo.tac", 100)))

	records, err := s.ListCompilations(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "file:///demo.tac", rec.DocumentURI)
	assert.Equal(t, int64(100), rec.CreatedAt)
	assert.Equal(t, 1, rec.ErrorCount)
	assert.Equal(t, 2, rec.WarningCount)
	assert.Equal(t, []byte(`{"version":1}`), rec.Config)
}

func TestWriteCompilationDuplicateIDIgnored(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := record("fixed-id", "file:///demo.tac", 100)
	require.NoError(t, s.WriteCompilation(ctx, rec))

	rec.ErrorCount = 99
	require.NoError(t, s.WriteCompilation(ctx, rec), "retried write is not an error")

	records, err := s.ListCompilations(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].ErrorCount, "first write wins")
}

func TestListCompilationsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteCompilation(ctx, record("a", "file:///demo.tac", 100)))
	require.NoError(t, s.WriteCompilation(ctx, record("b", "file:///demo.tac", 300)))
	require.NoError(t, s.WriteCompilation(ctx, record("c", "file:///demo.tac", 200)))

	records, err := s.ListCompilations(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "b", records[0].ID)
	assert.Equal(t, "c", records[1].ID)
	assert.Equal(t, "a", records[2].ID)
}

func TestListCompilationsEqualTimestampsOrderByID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteCompilation(ctx, record("zz", "file:///demo.tac", 100)))
	require.NoError(t, s.WriteCompilation(ctx, record("aa", "file:///demo.tac", 100)))

	records, err := s.ListCompilations(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "aa", records[0].ID)
	assert.Equal(t, "zz", records[1].ID)
}

func TestListCompilationsFiltersByDocument(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteCompilation(ctx, record("a", "file:///one.tac", 100)))
	require.NoError(t, s.WriteCompilation(ctx, record("b", "file:///two.tac", 200)))

	records, err := s.ListCompilations(ctx, "file:///one.tac", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].ID)
}

func TestListCompilationsHonorsLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.WriteCompilation(ctx, record(id, "file:///demo.tac", int64(i))))
	}

	records, err := s.ListCompilations(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestListCompilationsEmptyIsNotNil(t *testing.T) {
	s := openTestStore(t)

	records, err := s.ListCompilations(context.Background(), "", 10)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
