package dashboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/smart-code-reviewer/internal/adapter/dashboard"
	"github.com/bkyoung/smart-code-reviewer/internal/adapter/store/sqlite"
	"github.com/bkyoung/smart-code-reviewer/internal/domain"
)

type fakeHistory struct {
	records []sqlite.Record
	err     error
}

func (f *fakeHistory) ListReviews(ctx context.Context, limit int) ([]sqlite.Record, error) {
	return f.records, f.err
}

func testRecords() []sqlite.Record {
	return []sqlite.Record{
		{
			ID:           1,
			CreatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			Path:         "main.py",
			Language:     "python",
			OverallScore: 7.5,
			TLDR:         "Mostly fine.",
			Passed:       true,
			Categories: []domain.CategoryFeedback{
				{Category: domain.CategoryReadability, Score: 8, Summary: "clear", Suggestions: []string{"rename x"}},
			},
		},
	}
}

func TestHandler_Index(t *testing.T) {
	srv := httptest.NewServer(dashboard.NewHandler(&fakeHistory{records: testRecords()}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "main.py")
	assert.Contains(t, string(body), "7.5/10")
	assert.Contains(t, string(body), "Mostly fine.")
	assert.Contains(t, string(body), "rename x")
}

func TestHandler_Index_NoHistory(t *testing.T) {
	srv := httptest.NewServer(dashboard.NewHandler(&fakeHistory{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "No reviews recorded yet")
}

func TestHandler_ReviewsAPI(t *testing.T) {
	srv := httptest.NewServer(dashboard.NewHandler(&fakeHistory{records: testRecords()}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/reviews")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var records []sqlite.Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	require.Len(t, records, 1)
	assert.Equal(t, "main.py", records[0].Path)
	assert.Equal(t, 7.5, records[0].OverallScore)
}

func TestHandler_ReviewsAPI_EmptyHistoryIsArray(t *testing.T) {
	srv := httptest.NewServer(dashboard.NewHandler(&fakeHistory{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/reviews")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(body))
}

func TestHandler_HistoryError(t *testing.T) {
	srv := httptest.NewServer(dashboard.NewHandler(&fakeHistory{err: errors.New("db locked")}))
	defer srv.Close()

	for _, path := range []string{"/", "/api/reviews"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, path)
	}
}

func TestHandler_UnknownPath(t *testing.T) {
	srv := httptest.NewServer(dashboard.NewHandler(&fakeHistory{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
