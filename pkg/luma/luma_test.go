package luma_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netandconnect/portal/pkg/luma"
)

func newClient(t *testing.T, h http.HandlerFunc) *luma.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := luma.New(luma.Config{APIKey: "secret-key", BaseURL: srv.URL})
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := luma.New(luma.Config{})
	assert.ErrorIs(t, err, luma.ErrMissingAPIKey)
	assert.False(t, luma.Config{}.Enabled())
	assert.True(t, luma.Config{APIKey: "k"}.Enabled())
}

func TestListEvents_Pages(t *testing.T) {
	t.Parallel()

	after := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/public/v1/calendar/list-events", r.URL.Path)
		assert.Equal(t, "secret-key", r.Header.Get("x-luma-api-key"))
		assert.Equal(t, "2025-10-01T00:00:00Z", r.URL.Query().Get("after"))
		assert.Equal(t, "asc", r.URL.Query().Get("sort_direction"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("pagination_cursor") == "" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"entries": []map[string]any{{
					"api_id": "calev-1",
					"event": map[string]any{
						"api_id":           "evt-1",
						"name":             "Afterwork business",
						"start_at":         "2025-10-09T18:00:00.000Z",
						"end_at":           "2025-10-09T21:00:00.000Z",
						"url":              "https://lu.ma/afterwork-09",
						"cover_url":        "https://images.lu.ma/cover.png",
						"geo_address_json": map[string]any{"description": "Boulogne, Paris"},
					},
				}},
				"has_more":    true,
				"next_cursor": "cursor-2",
			})
			return
		}
		assert.Equal(t, "cursor-2", r.URL.Query().Get("pagination_cursor"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"entries": []map[string]any{{
				"api_id": "calev-2",
				"event": map[string]any{
					"name":        "Webinar",
					"start_at":    "2025-10-16T18:00:00.000Z",
					"url":         "https://lu.ma/webinar",
					"meeting_url": "https://zoom.example/1",
				},
			}},
			"has_more": false,
		})
	})

	events, err := c.ListEvents(context.Background(), luma.ListEventsParams{After: after, SortDirection: "asc"})
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "evt-1", events[0].ID)
	assert.Equal(t, "Afterwork business", events[0].Title)
	assert.Equal(t, "Boulogne, Paris", events[0].Location)
	assert.Equal(t, time.Date(2025, 10, 9, 18, 0, 0, 0, time.UTC), events[0].StartAt.UTC())
	assert.Equal(t, "https://images.lu.ma/cover.png", events[0].CoverURL)

	assert.Equal(t, "calev-2", events[1].ID)
	assert.Equal(t, "Online", events[1].Location)
}

func TestListEvents_ErrorStatus(t *testing.T) {
	t.Parallel()

	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid key"}`, http.StatusUnauthorized)
	})

	_, err := c.ListEvents(context.Background(), luma.ListEventsParams{})
	require.ErrorIs(t, err, luma.ErrRequestFailed)
	assert.Contains(t, err.Error(), "401")
}

func TestListEvents_StopsOnRepeatedCursor(t *testing.T) {
	t.Parallel()

	calls := 0
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(map[string]any{
			"entries":     []map[string]any{{"api_id": "x", "event": map[string]any{"name": "Loop", "start_at": "2025-10-09T18:00:00Z"}}},
			"has_more":    true,
			"next_cursor": "same",
		})
	})

	events, err := c.ListEvents(context.Background(), luma.ListEventsParams{})
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, 2, calls)
}
