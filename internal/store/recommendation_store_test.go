package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/menupick/internal/db"
	"github.com/vbonduro/menupick/internal/domain"
)

func newTestStore(t *testing.T) *RecommendationStore {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return NewRecommendationStore(d)
}

func TestRecommendationStoreCreate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec, err := store.Create(ctx, &domain.Recommendation{
		MenuText:   "Salad, Burger",
		ImageMIME:  "image/jpeg",
		ImageBytes: 2048,
		Backend:    "openai",
		Model:      "gpt-4o",
		Text:       "Salad.",
	})
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Len(t, rec.ID, 36)
	assert.Equal(t, "Salad, Burger", rec.MenuText)
	assert.Equal(t, "image/jpeg", rec.ImageMIME)
	assert.Equal(t, 2048, rec.ImageBytes)
	assert.Equal(t, "openai", rec.Backend)
	assert.Equal(t, "gpt-4o", rec.Model)
	assert.Equal(t, "Salad.", rec.Text)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestRecommendationStoreGetByIDMissing(t *testing.T) {
	store := newTestStore(t)

	rec, err := store.GetByID(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestRecommendationStoreListRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		_, err := store.Create(ctx, &domain.Recommendation{Backend: "ollama", Model: "llava", Text: text})
		require.NoError(t, err)
	}

	recs, err := store.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "third", recs[0].Text)
	assert.Equal(t, "second", recs[1].Text)
}

func TestRecommendationStoreListRecentEmpty(t *testing.T) {
	store := newTestStore(t)

	recs, err := store.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.NotNil(t, recs)
}

func TestRecommendationStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec, err := store.Create(ctx, &domain.Recommendation{Backend: "claude", Model: "m", Text: "x"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, rec.ID))

	got, err := store.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.Error(t, store.Delete(ctx, rec.ID))
}
