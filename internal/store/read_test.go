package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/raddict/internal/dictionary"
)

func TestReadLoads_NewestFirst(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, src := range []string{"a", "b", "c"} {
		_, err := s.WriteLoad(ctx, createTestLoad(src, src))
		require.NoError(t, err)
	}

	loads, err := s.ReadLoads(ctx, 0)
	require.NoError(t, err)
	require.Len(t, loads, 3)
	assert.Equal(t, "c", loads[0].Source)
	assert.Equal(t, "b", loads[1].Source)
	assert.Equal(t, "a", loads[2].Source)
	assert.Equal(t, []string{"c"}, loads[0].Files)
}

func TestReadLoads_Limit(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.WriteLoad(ctx, createTestLoad("memory"))
		require.NoError(t, err)
	}

	loads, err := s.ReadLoads(ctx, 2)
	require.NoError(t, err)
	require.Len(t, loads, 2)
	assert.Equal(t, "load-5", loads[0].ID)
	assert.Equal(t, "load-4", loads[1].ID)
}

func TestReadLoads_Empty(t *testing.T) {
	s := createTestStore(t)

	loads, err := s.ReadLoads(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, loads)
	assert.Empty(t, loads)
}

func TestReadLoadsBySource(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, src := range []string{"/d/a", "/d/b", "/d/a"} {
		_, err := s.WriteLoad(ctx, createTestLoad(src))
		require.NoError(t, err)
	}

	loads, err := s.ReadLoadsBySource(ctx, "/d/a", 0)
	require.NoError(t, err)
	require.Len(t, loads, 2)
	assert.Equal(t, "load-3", loads[0].ID)
	assert.Equal(t, "load-1", loads[1].ID)

	loads, err = s.ReadLoadsBySource(ctx, "/d/a", 1)
	require.NoError(t, err)
	assert.Len(t, loads, 1)
}

func TestReadLoad_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	want := LoadRecord{
		DictID:       "dict-7",
		Source:       "/etc/radcli/dictionary",
		OK:           false,
		ErrorCode:    "INVALID_TYPE",
		ErrorMessage: "INVALID_TYPE: invalid type bogustype (line 4 of dictionary /etc/radcli/dictionary)",
		Stats:        dictionary.Stats{Attributes: 3, Values: 2, Vendors: 1},
		Files:        []string{"/etc/radcli/dictionary"},
	}
	written, err := s.WriteLoad(ctx, want)
	require.NoError(t, err)

	got, err := s.ReadLoad(ctx, written.ID)
	require.NoError(t, err)
	assert.Equal(t, written, got)
}

func TestReadLoad_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadLoad(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
