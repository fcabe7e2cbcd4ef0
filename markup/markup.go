// Package markup splits chat text into plain segments and video references,
// mirroring the parser the chat client applies to rendered replies. The
// server uses it to validate LLM-mediated recommendations before they reach
// the client.
package markup

import (
	"regexp"
	"sort"
	"strings"
)

const videoURLPattern = `https?://(?:www\.|m\.)?(?:youtube\.com/(?:watch\?v=|embed/|v/|shorts/)|youtu\.be/)([a-zA-Z0-9_-]{11})(?:[^\s\])]*)?`

var (
	boldRe    = regexp.MustCompile(`\*\*(.*?)\*\*`)
	urlRe     = regexp.MustCompile(`(?i)` + videoURLPattern)
	bracketRe = regexp.MustCompile(`(?i)\[([^\]]+)\]\(\s*` + videoURLPattern + `\s*\)`)
)

// DefaultTitle is used when no title can be derived for a bare URL.
const DefaultTitle = "YouTube Video"

// VideoRef is one recognized video link.
type VideoRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Part is one ordered segment of parsed text: either plain text or a video
// reference, never both.
type Part struct {
	Text  string    `json:"text,omitempty"`
	Video *VideoRef `json:"video,omitempty"`
}

type span struct {
	start, end int
	ref        VideoRef
}

// Parse splits text into an ordered sequence of plain-text segments and video
// references. Bold markers are stripped first (the client does the same
// before rendering). Text outside matched spans is preserved verbatim, so
// parsing link-free text yields a single unchanged segment.
func Parse(text string) []Part {
	cleaned := Clean(text)

	var spans []span

	for _, m := range bracketRe.FindAllStringSubmatchIndex(cleaned, -1) {
		full := cleaned[m[0]:m[1]]
		title := cleaned[m[2]:m[3]]
		id := cleaned[m[4]:m[5]]
		url := extractURL(full)
		spans = append(spans, span{
			start: m[0], end: m[1],
			ref: VideoRef{ID: id, Title: strings.TrimSpace(title), URL: url},
		})
	}

	for _, m := range urlRe.FindAllStringSubmatchIndex(cleaned, -1) {
		if overlaps(spans, m[0], m[1]) {
			continue
		}
		full := cleaned[m[0]:m[1]]
		id := cleaned[m[2]:m[3]]
		spans = append(spans, span{
			start: m[0], end: m[1],
			ref: VideoRef{ID: id, Title: bareTitle(cleaned, full), URL: full},
		})
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var parts []Part
	last := 0
	for _, s := range spans {
		if s.start > last {
			parts = append(parts, Part{Text: cleaned[last:s.start]})
		}
		ref := s.ref
		parts = append(parts, Part{Video: &ref})
		last = s.end
	}
	if last < len(cleaned) {
		parts = append(parts, Part{Text: cleaned[last:]})
	}
	if len(parts) == 0 {
		parts = append(parts, Part{Text: cleaned})
	}
	return parts
}

// Videos returns only the video references from Parse, in order.
func Videos(text string) []VideoRef {
	var refs []VideoRef
	for _, p := range Parse(text) {
		if p.Video != nil {
			refs = append(refs, *p.Video)
		}
	}
	return refs
}

// Clean strips **bold** markers, keeping the inner text.
func Clean(text string) string {
	return boldRe.ReplaceAllString(text, "$1")
}

// extractURL pulls the URL out of a matched [title](url) span.
func extractURL(bracket string) string {
	open := strings.Index(bracket, "](")
	if open < 0 {
		return bracket
	}
	url := bracket[open+2 : len(bracket)-1]
	return strings.TrimSpace(url)
}

// bareTitle derives a best-effort title for a bare URL from non-empty text on
// the same line: list prefixes are removed, and anything empty or over 200
// characters falls back to the generic placeholder.
func bareTitle(text, match string) string {
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, match) || strings.TrimSpace(line) == match {
			continue
		}
		t := strings.TrimSpace(strings.Replace(line, match, "", 1))
		t = strings.TrimSpace(listPrefixRe.ReplaceAllString(t, ""))
		if t != "" && len(t) < 200 {
			return t
		}
		break
	}
	return DefaultTitle
}

var listPrefixRe = regexp.MustCompile(`^(?:\d+\.\s*|-\s*)`)

func overlaps(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}
