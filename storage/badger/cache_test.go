package badger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nggurbanov/course-project-discovery/ai"
	"github.com/nggurbanov/course-project-discovery/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ai.TagCache = (storage.TagRepository)(nil)

func TestTagRepository_PutAndGet(t *testing.T) {
	repo, err := NewMemoryTagRepository()
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()

	_, found, err := repo.GetTags(ctx, 42)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.PutTags(ctx, 42, []string{"NLP", "Образование"}))

	tags, found, err := repo.GetTags(ctx, 42)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"NLP", "Образование"}, tags)
}

func TestTagRepository_Overwrite(t *testing.T) {
	repo, err := NewMemoryTagRepository()
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()

	require.NoError(t, repo.PutTags(ctx, 7, []string{"Музыка"}))
	require.NoError(t, repo.PutTags(ctx, 7, []string{"Аудио", "Видео"}))

	tags, found, err := repo.GetTags(ctx, 7)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"Аудио", "Видео"}, tags)
}

func TestTagRepository_Count(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()
	repo := newTagRepository(backend, false)
	ctx := context.Background()

	for i := uint64(0); i < 5; i++ {
		require.NoError(t, repo.PutTags(ctx, i, []string{"IoT"}))
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestTagRepository_PersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	ctx := context.Background()

	repo, err := NewTagRepository(dir)
	require.NoError(t, err)
	require.NoError(t, repo.PutTags(ctx, 99, []string{"DevOps"}))
	require.NoError(t, repo.Close())

	repo, err = NewTagRepository(dir)
	require.NoError(t, err)
	defer repo.Close()

	tags, found, err := repo.GetTags(ctx, 99)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"DevOps"}, tags)
}

func TestTagRepository_SharedBackendStaysOpen(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	repo := newTagRepository(backend, false)
	require.NoError(t, repo.Close())
	assert.False(t, backend.IsClosed())
}

func TestTagRepository_Closed(t *testing.T) {
	repo, err := NewMemoryTagRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Close())
	require.NoError(t, repo.Close(), "second close is a no-op")

	_, _, err = repo.GetTags(context.Background(), 1)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, repo.PutTags(context.Background(), 1, []string{"IoT"}), storage.ErrStorageClosed)
}
