// Package videosearch implements the video-recommendation pipeline: query
// classification, topic extraction, multi-strategy YouTube search, relevance
// ranking and response formatting.
package videosearch

import (
	"regexp"
	"strings"
)

// DirectivePrefix marks a multi-topic video request. The text after the colon
// is a comma-separated list of sub-topics.
const DirectivePrefix = "find educational videos about:"

// DefaultTriggers are the phrases whose presence marks a message as a video
// request. Matching is case-insensitive containment.
var DefaultTriggers = []string{
	"find a video",
	"show me a video",
	"video about",
	"find videos",
	"search for video",
}

// Classifier decides whether a free-text message is a video request.
type Classifier struct {
	triggers []string
}

// NewClassifier builds a classifier from a trigger-phrase list. A nil list
// uses DefaultTriggers.
func NewClassifier(triggers []string) *Classifier {
	if triggers == nil {
		triggers = DefaultTriggers
	}
	return &Classifier{triggers: triggers}
}

// IsVideoRequest reports whether the message asks for a video.
func (c *Classifier) IsVideoRequest(message string) bool {
	m := strings.ToLower(message)
	if strings.HasPrefix(m, DirectivePrefix) {
		return true
	}
	for _, t := range c.triggers {
		if strings.Contains(m, t) {
			return true
		}
	}
	return false
}

// topicRe captures the search topic from natural phrasing like
// "find a video about X" or "show me some videos on Y?".
var topicRe = regexp.MustCompile(`(?i)(?:(?:find|show|get|search\s+for)\s+)?(?:(?:a|me\s+a|some)\s+)?videos?\s*(?:(?:about|on|for|related\s+to|regarding)\s+)?(.+?)[?.]?\s*$`)

// stripPhrases are removed literally when the topic regex does not match.
var stripPhrases = []string{
	"find a video about",
	"show me a video about",
	"find videos about",
	"find a video",
	"show me a video",
	"search for videos",
	"search for video",
	"find videos",
	"video about",
}

// ExtractTopic derives a lowercase search topic from the raw message.
// The directive form returns everything after the colon; use SplitTopics to
// expand it into sub-topics.
func ExtractTopic(message string) string {
	m := strings.TrimSpace(message)
	if lower := strings.ToLower(m); strings.HasPrefix(lower, DirectivePrefix) {
		return strings.ToLower(strings.TrimSpace(m[len(DirectivePrefix):]))
	}

	if sub := topicRe.FindStringSubmatch(m); sub != nil && strings.TrimSpace(sub[1]) != "" {
		return strings.ToLower(strings.TrimSpace(sub[1]))
	}

	out := m
	for _, p := range stripPhrases {
		out = replaceFold(out, p)
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// IsDirective reports whether the message uses the multi-topic directive form.
func IsDirective(message string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(message)), DirectivePrefix)
}

// SplitTopics expands a comma-separated topic string into at most max
// trimmed, non-empty sub-topics.
func SplitTopics(topic string, max int) []string {
	parts := strings.Split(topic, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

// replaceFold removes every case-insensitive occurrence of phrase from s.
func replaceFold(s, phrase string) string {
	lower := strings.ToLower(s)
	needle := strings.ToLower(phrase)
	var b strings.Builder
	for {
		i := strings.Index(lower, needle)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		s = s[i+len(needle):]
		lower = lower[i+len(needle):]
	}
}
