package main

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"balvis/httputil"
)

// whiteboardSuggestions is the fixed set of follow-up actions offered after
// an analysis; the client renders them as quick-action buttons.
var whiteboardSuggestions = []string{
	"Explain this concept further",
	"Find a video about this topic",
	"Create practice problems",
	"Summarize the key ideas",
}

const whiteboardPrompt = "You are analyzing a student's whiteboard drawing. " +
	"Describe what is on the board, identify the concept or problem being worked on, " +
	"point out any mistakes, and suggest the next step. Keep the analysis short and encouraging."

type whiteboardRequest struct {
	Image string `json:"image"`
}

func (a *App) handleAnalyzeWhiteboard(w http.ResponseWriter, r *http.Request) {
	httputil.MaxBody(r, 8<<20)

	var req whiteboardRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, 400, "invalid request body")
		return
	}
	if err := validateImageDataURL(req.Image); err != nil {
		httputil.WriteError(w, 400, "a base64 image data URL is required")
		return
	}

	analysis, err := a.llm.AnalyzeImage(r.Context(), clientKey(r), whiteboardPrompt, req.Image)
	if err != nil {
		httputil.WriteError(w, 500, "failed to analyze whiteboard")
		return
	}

	httputil.WriteJSON(w, 200, map[string]interface{}{
		"analysis":    analysis,
		"suggestions": whiteboardSuggestions,
	})
}

func validateImageDataURL(s string) error {
	if !strings.HasPrefix(s, "data:image/") {
		return errBadImage
	}
	_, b64, ok := strings.Cut(s, ";base64,")
	if !ok || b64 == "" {
		return errBadImage
	}
	if _, err := base64.StdEncoding.DecodeString(b64); err != nil {
		return errBadImage
	}
	return nil
}

var errBadImage = errors.New("invalid image data URL")
