package videosearch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"balvis/youtube"
)

// fakeAPI serves canned results keyed by query substring and records the
// queries it saw.
type fakeAPI struct {
	results map[string][]youtube.Video
	errs    map[string]error
	queries []string
}

func (f *fakeAPI) Search(_ context.Context, query string, _ int) ([]youtube.SearchItem, error) {
	f.queries = append(f.queries, query)
	for key, err := range f.errs {
		if strings.Contains(query, key) {
			return nil, err
		}
	}
	for key, vids := range f.results {
		if strings.Contains(query, key) {
			items := make([]youtube.SearchItem, len(vids))
			for i, v := range vids {
				items[i] = youtube.SearchItem{ID: v.ID, Title: v.Title}
			}
			return items, nil
		}
	}
	return nil, nil
}

func (f *fakeAPI) Details(_ context.Context, ids []string) ([]youtube.Video, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []youtube.Video
	for _, vids := range f.results {
		for _, v := range vids {
			if want[v.ID] {
				out = append(out, v)
				want[v.ID] = false
			}
		}
	}
	return out, nil
}

func testVideo(id string, embeddable bool, duration int) youtube.Video {
	return youtube.Video{
		ID:              id,
		Title:           "Video " + id,
		ChannelTitle:    "Channel",
		ViewCount:       1000,
		LikeCount:       50,
		DurationSeconds: duration,
		Embeddable:      embeddable,
		PublishedAt:     rankNow.AddDate(0, -1, 0),
		URL:             youtube.WatchURL(id),
	}
}

func manyVideos(prefix string, n int, embeddable bool) []youtube.Video {
	out := make([]youtube.Video, n)
	for i := range out {
		out[i] = testVideo(fmt.Sprintf("%s%08d", prefix, i), embeddable, 600)
	}
	return out
}

func TestSearchStopsAfterFirstSufficientStrategy(t *testing.T) {
	api := &fakeAPI{results: map[string][]youtube.Video{
		"OR": manyVideos("trs", 6, true),
	}}
	s := NewSearcher(api, WithNow(func() time.Time { return rankNow }))

	got := s.Search(context.Background(), "photosynthesis", 5)
	require.Len(t, got, 5)
	// The first strategy satisfied the threshold, so no fallback queries ran.
	assert.Len(t, api.queries, 1)
	assert.Contains(t, api.queries[0], "photosynthesis")
	assert.Contains(t, api.queries[0], " OR ")
}

func TestSearchAccumulatesAcrossStrategies(t *testing.T) {
	shared := testVideo("sharedvid01", true, 600)
	api := &fakeAPI{results: map[string][]youtube.Video{
		"OR":        {shared, testVideo("channelvid1", true, 600)},
		"education": {shared, testVideo("edutorvideo", true, 600)},
	}}
	s := NewSearcher(api, WithNow(func() time.Time { return rankNow }))

	got := s.Search(context.Background(), "photosynthesis", 5)
	ids := idsOf(got)
	assert.Len(t, got, 3, "duplicate across strategies counted once")
	assert.Contains(t, ids, "sharedvid01")
	assert.Contains(t, ids, "channelvid1")
	assert.Contains(t, ids, "edutorvideo")
	// Fewer than five total, so every strategy was tried.
	assert.Len(t, api.queries, 3)
}

func TestSearchFiltersNonEmbeddable(t *testing.T) {
	api := &fakeAPI{results: map[string][]youtube.Video{
		"OR": {
			testVideo("embeddable1", true, 600),
			testVideo("restricted1", false, 600),
		},
	}}
	s := NewSearcher(api, WithNow(func() time.Time { return rankNow }))

	got := s.Search(context.Background(), "photosynthesis", 5)
	require.Len(t, got, 1)
	assert.Equal(t, "embeddable1", got[0].ID)
}

func TestSearchSkipsFailedStrategies(t *testing.T) {
	api := &fakeAPI{
		errs: map[string]error{"OR": errors.New("quota exceeded")},
		results: map[string][]youtube.Video{
			"education": {testVideo("survivorvid", true, 600)},
		},
	}
	s := NewSearcher(api, WithNow(func() time.Time { return rankNow }))

	got := s.Search(context.Background(), "photosynthesis", 5)
	require.NotEmpty(t, got)
	assert.Equal(t, "survivorvid", got[0].ID)
}

func TestSearchEmptyIsNeverAnError(t *testing.T) {
	api := &fakeAPI{errs: map[string]error{"": errors.New("everything down")}}
	s := NewSearcher(api, WithNow(func() time.Time { return rankNow }))

	got := s.Search(context.Background(), "photosynthesis", 5)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestQuickSearchFiltersShorts(t *testing.T) {
	api := &fakeAPI{results: map[string][]youtube.Video{
		"photosynthesis": {
			testVideo("longenough1", true, 300),
			testVideo("shortclip01", true, 45),
			testVideo("restricted1", false, 300),
		},
	}}
	s := NewSearcher(api, WithNow(func() time.Time { return rankNow }))

	got := s.QuickSearch(context.Background(), "photosynthesis", 5)
	require.Len(t, got, 1)
	assert.Equal(t, "longenough1", got[0].ID)
}

func TestQuickSearchEmptyOnError(t *testing.T) {
	api := &fakeAPI{errs: map[string]error{"": errors.New("boom")}}
	s := NewSearcher(api, WithNow(func() time.Time { return rankNow }))

	assert.Empty(t, s.QuickSearch(context.Background(), "anything", 5))
}

func TestBuildStrategies(t *testing.T) {
	strats := BuildStrategies("calculus", []string{"CrashCourse", "TED-Ed"})
	require.Len(t, strats, 3)
	assert.Equal(t, "calculus CrashCourse OR TED-Ed", strats[0].Query)
	assert.Equal(t, "calculus education tutorial", strats[1].Query)
	assert.Equal(t, "calculus", strats[2].Query)

	// No channel allow-list drops the constrained strategy.
	assert.Len(t, BuildStrategies("calculus", nil), 2)
}
