// Package youtube provides a client for the YouTube Data API v3.
package youtube

import "time"

// Video is a single search result merged with its details lookup.
type Video struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	ChannelTitle    string    `json:"channelTitle"`
	Description     string    `json:"description"`
	PublishedAt     time.Time `json:"publishedAt"`
	ViewCount       int64     `json:"viewCount"`
	LikeCount       int64     `json:"likeCount"`
	DurationSeconds int       `json:"durationSeconds"`
	Embeddable      bool      `json:"embeddable"`
	URL             string    `json:"url"`
	EmbedURL        string    `json:"embedUrl"`
}

// SearchItem is one item from the search endpoint, before details are fetched.
type SearchItem struct {
	ID           string
	Title        string
	ChannelTitle string
	Description  string
	PublishedAt  time.Time
}

// WatchURL returns the public watch page for a video id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// EmbedURL returns the embeddable player URL for a video id.
func EmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + id
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Description  string `json:"description"`
			PublishedAt  string `json:"publishedAt"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Description  string `json:"description"`
			PublishedAt  string `json:"publishedAt"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
			LikeCount string `json:"likeCount"`
		} `json:"statistics"`
		Status struct {
			Embeddable bool `json:"embeddable"`
		} `json:"status"`
	} `json:"items"`
}
