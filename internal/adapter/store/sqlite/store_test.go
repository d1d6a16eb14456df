package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/smart-code-reviewer/internal/adapter/store/sqlite"
	"github.com/bkyoung/smart-code-reviewer/internal/domain"
)

func testResult() domain.ReviewResult {
	return domain.ReviewResult{
		Language: "python",
		Categories: []domain.CategoryFeedback{
			{Category: domain.CategoryReadability, Score: 8, Summary: "clear", Suggestions: []string{}},
			{Category: domain.CategoryStructure, Score: 6, Summary: "tangled", Suggestions: []string{"split the handler"}},
			{Category: domain.CategoryMaintainability, Score: 7, Summary: "fine", Suggestions: []string{}},
		},
		OverallScore: 7.0,
		TLDR:         "Decent code.",
		RawResponse:  `{"overall_score": 7.0}`,
	}
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_SaveAndListReviews(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.SaveReview(ctx, "main.py", testResult(), true)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	records, err := store.ListReviews(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "main.py", rec.Path)
	assert.Equal(t, "python", rec.Language)
	assert.Equal(t, 7.0, rec.OverallScore)
	assert.Equal(t, "Decent code.", rec.TLDR)
	assert.True(t, rec.Passed)
	assert.Equal(t, `{"overall_score": 7.0}`, rec.RawResponse)

	require.Len(t, rec.Categories, 3)
	assert.Equal(t, domain.CategoryReadability, rec.Categories[0].Category)
	assert.Equal(t, []string{"split the handler"}, rec.Categories[1].Suggestions)
	assert.Equal(t, []string{}, rec.Categories[0].Suggestions)
}

func TestStore_ListReviews_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveReview(ctx, "first.py", testResult(), true)
	require.NoError(t, err)
	_, err = store.SaveReview(ctx, "second.py", testResult(), false)
	require.NoError(t, err)

	records, err := store.ListReviews(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "second.py", records[0].Path)
	assert.False(t, records[0].Passed)
	assert.Equal(t, "first.py", records[1].Path)
}

func TestStore_ListReviews_Limit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.SaveReview(ctx, "file.py", testResult(), true)
		require.NoError(t, err)
	}

	records, err := store.ListReviews(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestStore_ListReviews_Empty(t *testing.T) {
	store := newTestStore(t)

	records, err := store.ListReviews(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
