package videosearch

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"balvis/youtube"
)

const descriptionLimit = 500

// NoResultsMessage is returned when every strategy comes back empty. It must
// never contain a URL or bracketed link, or the client markup parser would
// misfire on it.
const NoResultsMessage = "I couldn't find any embeddable videos on that topic. " +
	"Try rephrasing your search or asking about a broader subject."

var (
	viewPrinter = message.NewPrinter(language.English)
	topicCaser  = cases.Title(language.English)
)

// BuildPrompt constructs the LLM-mediated selection prompt. The top three
// candidates are embedded with their exact titles and watch URLs so the model
// cannot invent a video, and the output template is fixed so the reply parses
// back into exactly one video reference.
func BuildPrompt(topic string, candidates []youtube.Video) string {
	top := candidates
	if len(top) > 3 {
		top = top[:3]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are recommending one educational YouTube video about %q.\n", topic)
	b.WriteString("Choose the single best video from this list and ONLY this list:\n\n")

	for i, v := range top {
		desc := v.Description
		if len(desc) > descriptionLimit {
			desc = desc[:descriptionLimit] + "..."
		}
		fmt.Fprintf(&b, "%d. Title: %s\n", i+1, v.Title)
		fmt.Fprintf(&b, "   Channel: %s\n", v.ChannelTitle)
		fmt.Fprintf(&b, "   Views: %s\n", viewPrinter.Sprintf("%d", v.ViewCount))
		fmt.Fprintf(&b, "   Published: %s\n", v.PublishedAt.Format("2006-01-02"))
		fmt.Fprintf(&b, "   Duration: %s\n", formatDuration(v.DurationSeconds))
		fmt.Fprintf(&b, "   URL: %s\n", v.URL)
		fmt.Fprintf(&b, "   Description: %s\n\n", desc)
	}

	b.WriteString("Format your response exactly like this, copying the chosen title and URL verbatim:\n\n")
	b.WriteString("Brief Explanation: [2-3 sentences explaining the topic]\n\n")
	b.WriteString("Recommended Video: [EXACT_VIDEO_TITLE](EXACT_VIDEO_URL)\n\n")
	b.WriteString("Why This Video: [1-2 sentences on why this video is the best choice]\n")
	return b.String()
}

// NoResultsPrompt asks the LLM for a topic explanation while explicitly
// forbidding any video link, so the degraded reply stays link-free.
func NoResultsPrompt(topic string) string {
	return fmt.Sprintf("Briefly explain the topic %q in 2-3 sentences. "+
		"No videos were found for it, so say so politely and suggest a related "+
		"search term. Do NOT include any URL, link, or [title](url) markup in "+
		"your response.", topic)
}

// FormatDirect renders up to five ranked candidates as a plain numbered list.
// Every field is copied verbatim from the candidate, so there is no
// fabrication risk.
func FormatDirect(candidates []youtube.Video) string {
	if len(candidates) == 0 {
		return NoResultsMessage
	}
	top := candidates
	if len(top) > 5 {
		top = top[:5]
	}

	var b strings.Builder
	b.WriteString("I found some great educational videos for you:\n\n")
	for i, v := range top {
		fmt.Fprintf(&b, "%d. %s\n", i+1, v.Title)
		fmt.Fprintf(&b, "%s • %s views\n", v.ChannelTitle, viewPrinter.Sprintf("%d", v.ViewCount))
		fmt.Fprintf(&b, "%s\n", v.URL)
		if i < len(top)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatDirectByTopic renders the multi-topic directive results, one block per
// sub-topic in the order given. Topics with no results are noted inline.
func FormatDirectByTopic(topics []string, results map[string][]youtube.Video) string {
	var any bool
	for _, t := range topics {
		if len(results[t]) > 0 {
			any = true
			break
		}
	}
	if !any {
		return NoResultsMessage
	}

	var b strings.Builder
	b.WriteString("I found some great educational videos for you:\n")
	for _, t := range topics {
		vids := results[t]
		fmt.Fprintf(&b, "\n%s:\n", topicCaser.String(t))
		if len(vids) == 0 {
			b.WriteString("No embeddable videos found for this topic.\n")
			continue
		}
		if len(vids) > 2 {
			vids = vids[:2]
		}
		for i, v := range vids {
			fmt.Fprintf(&b, "%d. %s\n", i+1, v.Title)
			fmt.Fprintf(&b, "%s • %s views\n", v.ChannelTitle, viewPrinter.Sprintf("%d", v.ViewCount))
			fmt.Fprintf(&b, "%s\n", v.URL)
		}
	}
	return b.String()
}

func formatDuration(seconds int) string {
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
