// Package youtube is a minimal YouTube Data API v3 client used by the
// catalog search collaborator.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/codgamerofficial/sonicstream/internal/core"
)

// BaseURL is the YouTube Data API base URL.
const BaseURL = "https://www.googleapis.com/youtube/v3"

// musicCategoryID is YouTube's video category for music.
const musicCategoryID = "10"

// Client is a YouTube Data API client.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// New creates a YouTube client.
func New(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		baseURL:    BaseURL,
	}
}

// SetBaseURL overrides the API endpoint, for tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimSuffix(u, "/")
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// Search queries the catalog for music videos matching query and
// returns up to limit tracks, enriched with durations when the videos
// endpoint cooperates.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]core.Track, error) {
	if query == "" {
		return nil, nil
	}
	if limit <= 0 || limit > 25 {
		limit = 15
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("videoCategoryId", musicCategoryID)
	params.Set("maxResults", fmt.Sprint(limit))
	params.Set("q", query)
	params.Set("key", c.apiKey)

	var body searchResponse
	if err := c.get(ctx, "/search?"+params.Encode(), &body); err != nil {
		return nil, err
	}

	tracks := make([]core.Track, 0, len(body.Items))
	ids := make([]string, 0, len(body.Items))
	for _, item := range body.Items {
		if item.ID.VideoID == "" {
			continue
		}

		thumbs := item.Snippet.Thumbnails
		thumb := thumbs.High.URL
		if thumb == "" {
			thumb = thumbs.Medium.URL
		}
		if thumb == "" {
			thumb = thumbs.Default.URL
		}

		tracks = append(tracks, core.Track{
			ID:           item.ID.VideoID,
			Title:        item.Snippet.Title,
			Artist:       item.Snippet.ChannelTitle,
			ThumbnailURL: thumb,
		})
		ids = append(ids, item.ID.VideoID)
	}

	// Duration enrichment is best-effort; results without it are
	// still playable.
	if len(ids) > 0 {
		if durations, err := c.durations(ctx, ids); err == nil {
			for i := range tracks {
				if d, ok := durations[tracks[i].ID]; ok {
					tracks[i].DurationHint = d
				}
			}
		}
	}

	return tracks, nil
}

type videosResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

func (c *Client) durations(ctx context.Context, ids []string) (map[string]string, error) {
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", strings.Join(ids, ","))
	params.Set("key", c.apiKey)

	var body videosResponse
	if err := c.get(ctx, "/videos?"+params.Encode(), &body); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(body.Items))
	for _, item := range body.Items {
		out[item.ID] = formatISO8601(item.ContentDetails.Duration)
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("youtube API status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

var iso8601Re = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// formatISO8601 converts an ISO-8601 duration (PT#H#M#S) to a display
// string like "3:45" or "1:02:03".
func formatISO8601(duration string) string {
	matches := iso8601Re.FindStringSubmatch(duration)
	if len(matches) < 4 {
		return ""
	}

	var h, m, s int
	fmt.Sscanf(matches[1], "%d", &h)
	fmt.Sscanf(matches[2], "%d", &m)
	fmt.Sscanf(matches[3], "%d", &s)

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
