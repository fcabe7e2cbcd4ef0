package main

import (
	"fmt"
	"net/http"
	"strings"

	"balvis/httputil"
)

// summarizeInputLimit caps how much text goes into the summary prompt.
const summarizeInputLimit = 12000

type summarizeRequest struct {
	Text string `json:"text"`
}

func (a *App) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, 400, "invalid request body")
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		httputil.WriteError(w, 400, "text is required")
		return
	}
	if len(text) > summarizeInputLimit {
		text = text[:summarizeInputLimit]
	}

	prompt := fmt.Sprintf("Summarize the following text in a clear, concise way. "+
		"Start your response with \"Summary:\" and keep it to a few short paragraphs.\n\n%s", text)

	summary, err := a.llm.Complete(r.Context(), clientKey(r), prompt)
	if err != nil {
		httputil.WriteError(w, 500, "failed to summarize text")
		return
	}
	httputil.WriteJSON(w, 200, map[string]string{"summary": summary})
}
