package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"likesdigest/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikedVideos_PagesUntilExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "like", r.URL.Query().Get("myRating"))
		assert.Equal(t, "snippet,contentDetails,statistics", r.URL.Query().Get("part"))

		if r.URL.Query().Get("pageToken") == "" {
			fmt.Fprint(w, `{
				"nextPageToken": "page2",
				"items": [{
					"id": "v1",
					"snippet": {"title": "First", "description": "d1", "channelTitle": "ch", "publishedAt": "2024-01-01T00:00:00Z"},
					"contentDetails": {"duration": "PT5M"},
					"statistics": {"viewCount": "100", "likeCount": "7"}
				}]
			}`)
			return
		}
		assert.Equal(t, "page2", r.URL.Query().Get("pageToken"))
		fmt.Fprint(w, `{"items": [{"id": "v2", "snippet": {"title": "Second"}}]}`)
	}))
	defer server.Close()

	c := NewCollectorWithBaseURL(server.Client(), server.URL)
	videos, err := c.LikedVideos(context.Background(), 50)
	require.NoError(t, err)

	require.Len(t, videos, 2)
	assert.Equal(t, "v1", videos[0].ID)
	assert.Equal(t, int64(100), videos[0].ViewCount)
	assert.Equal(t, "https://www.youtube.com/watch?v=v1", videos[0].URL)
	assert.False(t, videos[0].CollectedAt.IsZero())
	assert.Equal(t, "Second", videos[1].Title)
}

func TestLikedVideos_StopsAtMax(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `{
			"nextPageToken": "more",
			"items": [{"id": "a"}, {"id": "b"}, {"id": "c"}]
		}`)
	}))
	defer server.Close()

	c := NewCollectorWithBaseURL(server.Client(), server.URL)
	videos, err := c.LikedVideos(context.Background(), 2)
	require.NoError(t, err)

	assert.Len(t, videos, 2)
	assert.Equal(t, 1, requests, "cap reached within the first page")
}

func TestLikedVideos_APIErrorAborts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": {"message": "quota exceeded"}}`)
	}))
	defer server.Close()

	c := NewCollectorWithBaseURL(server.Client(), server.URL)
	_, err := c.LikedVideos(context.Background(), 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestFilterNew(t *testing.T) {
	previous := []model.Video{{ID: "v1"}, {ID: "v2"}}
	current := []model.Video{{ID: "v2"}, {ID: "v3"}, {ID: "v4"}}

	fresh := FilterNew(current, previous)

	require.Len(t, fresh, 2)
	assert.Equal(t, "v3", fresh[0].ID)
	assert.Equal(t, "v4", fresh[1].ID)
}
