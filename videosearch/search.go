package videosearch

import (
	"context"
	"log"
	"time"

	"balvis/youtube"
)

// targetCount is the accumulation threshold at which the strategy loop
// stops early.
const targetCount = 5

// minQuickDurationSeconds filters out shorts in QuickSearch mode.
const minQuickDurationSeconds = 120

// VideoAPI is the subset of the YouTube client the searcher depends on.
type VideoAPI interface {
	Search(ctx context.Context, query string, max int) ([]youtube.SearchItem, error)
	Details(ctx context.Context, ids []string) ([]youtube.Video, error)
}

// Searcher runs the multi-strategy search and ranking pipeline.
type Searcher struct {
	api      VideoAPI
	channels []string
	now      func() time.Time
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithChannels overrides the trusted-channel allow-list.
func WithChannels(channels []string) Option {
	return func(s *Searcher) { s.channels = channels }
}

// WithNow injects the clock used for freshness scoring.
func WithNow(now func() time.Time) Option {
	return func(s *Searcher) { s.now = now }
}

// NewSearcher builds a Searcher over the given video API.
func NewSearcher(api VideoAPI, opts ...Option) *Searcher {
	s := &Searcher{api: api, channels: DefaultChannels, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search tries each strategy in order, accumulating embeddable candidates
// until the target threshold is reached, then returns them ranked. A single
// strategy failing is logged and skipped; total exhaustion yields an empty
// slice, never an error.
func (s *Searcher) Search(ctx context.Context, topic string, max int) []youtube.Video {
	if max <= 0 || max > 25 {
		max = 5
	}

	seen := make(map[string]bool)
	var found []youtube.Video

	for _, strat := range BuildStrategies(topic, s.channels) {
		items, err := s.api.Search(ctx, strat.Query, max+2)
		if err != nil {
			log.Printf("video search strategy %q failed: %v", strat.Label, err)
			continue
		}
		if len(items) == 0 {
			continue
		}

		ids := make([]string, 0, len(items))
		for _, it := range items {
			if !seen[it.ID] {
				ids = append(ids, it.ID)
			}
		}
		if len(ids) == 0 {
			continue
		}

		details, err := s.api.Details(ctx, ids)
		if err != nil {
			log.Printf("video details for strategy %q failed: %v", strat.Label, err)
			continue
		}
		for _, v := range details {
			if !v.Embeddable || seen[v.ID] {
				continue
			}
			seen[v.ID] = true
			found = append(found, v)
		}

		if len(found) >= targetCount {
			break
		}
	}

	ranked := Rank(found, s.now())
	if len(ranked) > max {
		ranked = ranked[:max]
	}
	return ranked
}

// QuickSearch is the simplified single-strategy mode: one plain search,
// embeddable-only, and videos under two minutes are dropped to keep shorts
// out of the results.
func (s *Searcher) QuickSearch(ctx context.Context, topic string, max int) []youtube.Video {
	if max <= 0 || max > 25 {
		max = 5
	}

	items, err := s.api.Search(ctx, topic, max+2)
	if err != nil || len(items) == 0 {
		if err != nil {
			log.Printf("quick search failed: %v", err)
		}
		return []youtube.Video{}
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	details, err := s.api.Details(ctx, ids)
	if err != nil {
		log.Printf("quick search details failed: %v", err)
		return []youtube.Video{}
	}

	var found []youtube.Video
	for _, v := range details {
		if !v.Embeddable || v.DurationSeconds < minQuickDurationSeconds {
			continue
		}
		found = append(found, v)
	}

	ranked := Rank(found, s.now())
	if len(ranked) > max {
		ranked = ranked[:max]
	}
	return ranked
}
