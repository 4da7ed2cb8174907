// Package youtube talks to the YouTube Data API: OAuth2 session setup
// and the paginated liked-videos listing.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"likesdigest/pkg/model"
)

const defaultAPIURL = "https://www.googleapis.com/youtube/v3"

// pageSize is the API's per-page maximum.
const pageSize = 50

type Collector struct {
	client *http.Client
	apiURL string
}

func NewCollector(client *http.Client) *Collector {
	return &Collector{client: client, apiURL: defaultAPIURL}
}

// NewCollectorWithBaseURL points the collector at a different API host
// (for testing).
func NewCollectorWithBaseURL(client *http.Client, baseURL string) *Collector {
	return &Collector{client: client, apiURL: baseURL}
}

type listResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
			LikeCount string `json:"likeCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// LikedVideos pages through the authenticated account's liked-videos
// listing until it is exhausted or max records are collected. Any
// upstream error aborts the run.
func (c *Collector) LikedVideos(ctx context.Context, max int) ([]model.Video, error) {
	var videos []model.Video
	pageToken := ""

	for len(videos) < max {
		page, err := c.fetchPage(ctx, pageToken, min(pageSize, max-len(videos)))
		if err != nil {
			return nil, err
		}

		now := time.Now()
		for _, item := range page.Items {
			if len(videos) >= max {
				break
			}
			videos = append(videos, model.Video{
				ID:          item.ID,
				Title:       item.Snippet.Title,
				Description: item.Snippet.Description,
				Channel:     item.Snippet.ChannelTitle,
				PublishedAt: item.Snippet.PublishedAt,
				Duration:    item.ContentDetails.Duration,
				ViewCount:   parseCount(item.Statistics.ViewCount),
				LikeCount:   parseCount(item.Statistics.LikeCount),
				URL:         "https://www.youtube.com/watch?v=" + item.ID,
				CollectedAt: now,
			})
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	return videos, nil
}

func (c *Collector) fetchPage(ctx context.Context, pageToken string, maxResults int) (*listResponse, error) {
	q := url.Values{}
	q.Set("part", "snippet,contentDetails,statistics")
	q.Set("myRating", "like")
	q.Set("maxResults", strconv.Itoa(maxResults))
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/videos?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list liked videos: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read listing response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		bodyStr := string(body)
		if len(bodyStr) > 200 {
			bodyStr = bodyStr[:200] + "...(truncated)"
		}
		return nil, fmt.Errorf("youtube api error (status %d): %s", resp.StatusCode, bodyStr)
	}

	var page listResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode listing response: %w", err)
	}
	return &page, nil
}

// FilterNew returns the videos in current whose id is absent from
// previous.
func FilterNew(current, previous []model.Video) []model.Video {
	seen := make(map[string]bool, len(previous))
	for _, v := range previous {
		seen[v.ID] = true
	}

	var fresh []model.Video
	for _, v := range current {
		if !seen[v.ID] {
			fresh = append(fresh, v)
		}
	}
	return fresh
}

func parseCount(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
