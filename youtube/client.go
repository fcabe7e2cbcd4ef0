package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com"

// HTTPClient allows injecting a custom HTTP client for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc HTTPClient) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL sets a custom API base URL (useful for testing).
func WithBaseURL(base string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

// Client is a YouTube Data API v3 client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPClient
}

// NewClient creates a client authenticated with an API key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search issues a video search restricted to embeddable, syndicated,
// safe-search-strict, English-relevance results.
func (c *Client) Search(ctx context.Context, query string, max int) ([]SearchItem, error) {
	if max <= 0 || max > 25 {
		max = 7
	}

	val := url.Values{}
	val.Set("part", "snippet")
	val.Set("type", "video")
	val.Set("videoEmbeddable", "true")
	val.Set("videoSyndicated", "true")
	val.Set("safeSearch", "strict")
	val.Set("relevanceLanguage", "en")
	val.Set("order", "relevance")
	val.Set("maxResults", strconv.Itoa(max))
	val.Set("q", query)
	val.Set("key", c.apiKey)

	body, err := c.get(ctx, c.baseURL+"/youtube/v3/search?"+val.Encode())
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	items := make([]SearchItem, 0, len(resp.Items))
	for _, it := range resp.Items {
		if it.ID.VideoID == "" {
			continue
		}
		published, _ := time.Parse(time.RFC3339, it.Snippet.PublishedAt)
		items = append(items, SearchItem{
			ID:           it.ID.VideoID,
			Title:        it.Snippet.Title,
			ChannelTitle: it.Snippet.ChannelTitle,
			Description:  it.Snippet.Description,
			PublishedAt:  published,
		})
	}
	return items, nil
}

// Details fetches snippet, content details, statistics and status for the
// given video ids in a single batched call.
func (c *Client) Details(ctx context.Context, ids []string) ([]Video, error) {
	if len(ids) == 0 {
		return []Video{}, nil
	}

	val := url.Values{}
	val.Set("part", "snippet,contentDetails,statistics,status")
	val.Set("id", strings.Join(ids, ","))
	val.Set("key", c.apiKey)

	body, err := c.get(ctx, c.baseURL+"/youtube/v3/videos?"+val.Encode())
	if err != nil {
		return nil, err
	}

	var resp videosResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse videos response: %w", err)
	}

	out := make([]Video, 0, len(resp.Items))
	for _, it := range resp.Items {
		published, _ := time.Parse(time.RFC3339, it.Snippet.PublishedAt)
		views, _ := strconv.ParseInt(it.Statistics.ViewCount, 10, 64)
		likes, _ := strconv.ParseInt(it.Statistics.LikeCount, 10, 64)
		out = append(out, Video{
			ID:              it.ID,
			Title:           it.Snippet.Title,
			ChannelTitle:    it.Snippet.ChannelTitle,
			Description:     it.Snippet.Description,
			PublishedAt:     published,
			ViewCount:       views,
			LikeCount:       likes,
			DurationSeconds: ParseDuration(it.ContentDetails.Duration),
			Embeddable:      it.Status.Embeddable,
			URL:             WatchURL(it.ID),
			EmbedURL:        EmbedURL(it.ID),
		})
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
