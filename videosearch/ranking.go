package videosearch

import (
	"math"
	"sort"
	"time"

	"balvis/youtube"
)

const yearMillis = 365 * 24 * 60 * 60 * 1000

// Freshness is a [0,1] decay score: 1 for a video published now, falling
// linearly to 0 at one year old.
func Freshness(publishedAt, now time.Time) float64 {
	age := float64(now.Sub(publishedAt).Milliseconds())
	return math.Max(0, 1-age/yearMillis)
}

// Engagement is the like-to-view ratio, with a floor of one view to avoid
// division by zero.
func Engagement(v youtube.Video) float64 {
	views := v.ViewCount
	if views < 1 {
		views = 1
	}
	return float64(v.LikeCount) / float64(views)
}

// Score computes the composite relevance score:
//
//	log10(views+1)*0.6 + engagement*0.3 + freshness*0.1
func Score(v youtube.Video, now time.Time) float64 {
	return math.Log10(float64(v.ViewCount)+1)*0.6 +
		Engagement(v)*0.3 +
		Freshness(v.PublishedAt, now)*0.1
}

// Rank returns the candidates sorted by descending score. The sort is stable
// so ties keep the original API order. The input slice is not modified.
func Rank(videos []youtube.Video, now time.Time) []youtube.Video {
	out := make([]youtube.Video, len(videos))
	copy(out, videos)
	sort.SliceStable(out, func(i, j int) bool {
		return Score(out[i], now) > Score(out[j], now)
	})
	return out
}
