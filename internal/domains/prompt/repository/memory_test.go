package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-catalog/internal/domains/prompt/model"
)

func newPrompt(id string) model.Prompt {
	return model.Prompt{
		ID:             id,
		Title:          "Title " + id,
		Tags:           []string{"tag"},
		Versions:       []model.Version{{ID: id + "-v1", VersionNumber: 1, Content: "content"}},
		CurrentVersion: 1,
	}
}

func TestMemoryRepository_InsertPrepends(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.Insert(ctx, newPrompt("a"))
	require.NoError(t, err)
	catalog, err := repo.Insert(ctx, newPrompt("b"))
	require.NoError(t, err)

	require.Len(t, catalog.Prompts, 2)
	assert.Equal(t, "b", catalog.Prompts[0].ID)
	assert.Equal(t, "a", catalog.Prompts[1].ID)
	assert.Equal(t, uint64(2), catalog.Revision)
}

func TestMemoryRepository_InsertDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.Insert(ctx, newPrompt("a"))
	require.NoError(t, err)

	_, err = repo.Insert(ctx, newPrompt("a"))
	assert.ErrorIs(t, err, model.ErrDuplicatePrompt)
	assert.Len(t, repo.Snapshot(ctx).Prompts, 1)
}

func TestMemoryRepository_GetByIDNotFound(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrPromptNotFound)
}

func TestMemoryRepository_SnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	_, err := repo.Insert(ctx, newPrompt("a"))
	require.NoError(t, err)

	before := repo.Snapshot(ctx)

	_, err = repo.Update(ctx, "a", func(p model.Prompt) (model.Prompt, error) {
		p.Title = "changed"
		p.Tags = append(p.Tags, "more")
		return p, nil
	})
	require.NoError(t, err)

	// The earlier snapshot is stale but unchanged
	assert.Equal(t, "Title a", before.Prompts[0].Title)
	assert.Equal(t, []string{"tag"}, before.Prompts[0].Tags)

	// Mutating a snapshot never leaks into the repository
	after := repo.Snapshot(ctx)
	after.Prompts[0].Tags[0] = "hacked"
	after.Prompts[0] = newPrompt("z")

	stored, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "changed", stored.Title)
	assert.Equal(t, []string{"tag", "more"}, stored.Tags)
}

func TestMemoryRepository_UpdateErrorRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	_, err := repo.Insert(ctx, newPrompt("a"))
	require.NoError(t, err)
	revision := repo.Snapshot(ctx).Revision

	boom := errors.New("boom")
	_, err = repo.Update(ctx, "a", func(p model.Prompt) (model.Prompt, error) {
		p.Title = "half-done"
		return p, boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Title a", stored.Title)
	assert.Equal(t, revision, repo.Snapshot(ctx).Revision)
}

func TestMemoryRepository_UpdatePanicReleasesLock(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	_, err := repo.Insert(ctx, newPrompt("a"))
	require.NoError(t, err)

	assert.Panics(t, func() {
		_, _ = repo.Update(ctx, "a", func(p model.Prompt) (model.Prompt, error) {
			panic("boom")
		})
	})

	// Lock released: further writes succeed
	_, err = repo.Update(ctx, "a", func(p model.Prompt) (model.Prompt, error) {
		p.Title = "ok"
		return p, nil
	})
	require.NoError(t, err)
}

func TestMemoryRepository_UpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	_, err := repo.Insert(ctx, newPrompt("a"))
	require.NoError(t, err)

	updated, err := repo.Update(ctx, "a", func(p model.Prompt) (model.Prompt, error) {
		p.ID = "other"
		return p, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "a", updated.ID)
}

func TestMemoryRepository_UpdateNotFound(t *testing.T) {
	repo := NewMemoryRepository()
	called := false

	_, err := repo.Update(context.Background(), "missing", func(p model.Prompt) (model.Prompt, error) {
		called = true
		return p, nil
	})
	assert.ErrorIs(t, err, model.ErrPromptNotFound)
	assert.False(t, called)
}

func TestMemoryRepository_Replace(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	catalog, err := repo.Replace(ctx, []model.Prompt{newPrompt("1"), newPrompt("2")})
	require.NoError(t, err)
	assert.Len(t, catalog.Prompts, 2)
	assert.Equal(t, "1", catalog.Prompts[0].ID)

	_, err = repo.Replace(ctx, []model.Prompt{newPrompt("1"), newPrompt("1")})
	assert.ErrorIs(t, err, model.ErrDuplicatePrompt)
	assert.Len(t, repo.Snapshot(ctx).Prompts, 2)
}

func TestMemoryRepository_Subscribe(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	var got []uint64
	unsubscribe := repo.Subscribe(func(c model.Catalog) {
		got = append(got, c.Revision)
		// Listeners may read back without deadlocking
		_ = repo.Snapshot(ctx)
	})

	_, err := repo.Insert(ctx, newPrompt("a"))
	require.NoError(t, err)
	_, err = repo.Update(ctx, "a", func(p model.Prompt) (model.Prompt, error) { return p, nil })
	require.NoError(t, err)

	unsubscribe()
	_, err = repo.Insert(ctx, newPrompt("b"))
	require.NoError(t, err)

	assert.Equal(t, []uint64{1, 2}, got)
}

func TestMemoryRepository_ConcurrentUpdatesAreSerialized(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	_, err := repo.Insert(ctx, newPrompt("a"))
	require.NoError(t, err)

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Update(ctx, "a", func(p model.Prompt) (model.Prompt, error) {
				p.Comments = append(p.Comments, model.Comment{ID: fmt.Sprintf("c%d", i)})
				return p, nil
			})
			assert.NoError(t, err)
		}(i)
		go func() {
			_ = repo.Snapshot(ctx)
		}()
	}
	wg.Wait()

	stored, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, stored.Comments, writers)
}
