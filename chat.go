package main

import (
	"fmt"
	"net/http"
	"strings"

	"balvis/httputil"
	"balvis/markup"
	"balvis/videosearch"
	"balvis/youtube"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply  string          `json:"reply"`
	Videos []youtube.Video `json:"videos,omitempty"`
}

func (a *App) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, 400, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		httputil.WriteError(w, 400, "message is required")
		return
	}

	if a.classifier.IsVideoRequest(req.Message) {
		a.chatVideoReply(w, r, req.Message)
		return
	}

	reply, err := a.llm.Complete(r.Context(), clientKey(r), req.Message)
	if err != nil {
		httputil.WriteError(w, 500, "failed to get a response from the language model")
		return
	}
	httputil.WriteJSON(w, 200, chatResponse{Reply: reply})
}

// chatVideoReply runs the video pipeline and always produces a reply-shaped
// response: provider failures degrade to a no-results message or a direct
// list, never to an error status.
func (a *App) chatVideoReply(w http.ResponseWriter, r *http.Request, message string) {
	ctx := r.Context()
	key := clientKey(r)

	// Without a provider key the only option is the legacy prompt-based
	// recommendation, with the model picking a video on its own.
	if a.searcher == nil {
		reply, err := a.llm.Complete(ctx, key, legacyVideoPrompt(message))
		if err != nil {
			httputil.WriteError(w, 500, "failed to get a response from the language model")
			return
		}
		httputil.WriteJSON(w, 200, chatResponse{Reply: reply})
		return
	}

	if videosearch.IsDirective(message) {
		topics := videosearch.SplitTopics(videosearch.ExtractTopic(message), 3)
		results := make(map[string][]youtube.Video, len(topics))
		var all []youtube.Video
		for _, t := range topics {
			vids := a.searcher.QuickSearch(ctx, t, 2)
			results[t] = vids
			all = append(all, vids...)
		}
		httputil.WriteJSON(w, 200, chatResponse{
			Reply:  videosearch.FormatDirectByTopic(topics, results),
			Videos: all,
		})
		return
	}

	topic := videosearch.ExtractTopic(message)
	candidates := a.searcher.Search(ctx, topic, 5)

	if len(candidates) == 0 {
		reply, err := a.llm.Complete(ctx, key, videosearch.NoResultsPrompt(topic))
		if err != nil || containsVideoLink(reply) {
			reply = videosearch.NoResultsMessage
		}
		httputil.WriteJSON(w, 200, chatResponse{Reply: reply})
		return
	}

	reply, err := a.llm.Complete(ctx, key, videosearch.BuildPrompt(topic, candidates))
	if err != nil || !recommendsCandidate(reply, candidates) {
		// The model is down or picked a video outside the candidate list;
		// the direct list carries no fabrication risk.
		reply = videosearch.FormatDirect(candidates)
	}
	httputil.WriteJSON(w, 200, chatResponse{Reply: reply, Videos: candidates})
}

// recommendsCandidate checks the LLM-mediated contract: the reply must parse
// into at least one video reference, and every referenced id must belong to
// the top three candidates the prompt offered.
func recommendsCandidate(reply string, candidates []youtube.Video) bool {
	allowed := make(map[string]bool, 3)
	for i, c := range candidates {
		if i == 3 {
			break
		}
		allowed[c.ID] = true
	}

	refs := markup.Videos(reply)
	if len(refs) == 0 {
		return false
	}
	for _, ref := range refs {
		if !allowed[ref.ID] {
			return false
		}
	}
	return true
}

func containsVideoLink(s string) bool {
	return len(markup.Videos(s)) > 0
}

// legacyVideoPrompt is the prompt-only recommendation path used when no
// video provider is configured. The strict output template keeps replies
// parseable by the client.
func legacyVideoPrompt(message string) string {
	return fmt.Sprintf(`You are tasked with recommending a high-quality educational video about %q.
Please follow these strict guidelines:

1. First, provide a concise explanation of the topic (2-3 sentences)
2. Then recommend ONE specific YouTube video that meets these criteria:
   - Must be from a reputable educational channel
   - Must have high view count and positive ratings
   - Must be recent (preferably within last 2 years)
   - Must be in English
   - Must be appropriate for all audiences
3. Explain in 1-2 sentences why this specific video is the best choice
4. Always verify the video exists before recommending it

Format your response exactly like this:

Brief Explanation: [Your explanation here]

Recommended Video: [EXACT_VIDEO_TITLE](https://www.youtube.com/watch?v=[VIDEO_ID])

Why This Video: [Your reason here]

Note: Do not recommend videos you're not completely certain exist.`, message)
}
