package analyses

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, Analysis{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)}))
	}

	items, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, ids(items))

	items, err = repo.List(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(items))

	items, err = repo.List(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestMemoryRepoGetByID(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, Analysis{ID: "a", Source: SourceText}))

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, SourceText, got.Source)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepoCanceledContext(t *testing.T) {
	repo := NewMemoryRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.Create(ctx, Analysis{ID: "a"}), context.Canceled)
	_, err := repo.GetByID(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.List(ctx, 1, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func ids(items []Analysis) []string {
	out := make([]string, 0, len(items))
	for _, a := range items {
		out = append(out, a.ID)
	}
	return out
}
