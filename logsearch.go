package main

import (
	"log"
	"net/http"
	"strings"

	"balvis/httputil"
	"balvis/searchlog"
	"balvis/youtube"
)

type logSearchRequest struct {
	Query string `json:"query"`
}

// handleLogVideoSearch records a video-search query in the CSV log. When a
// provider is configured, the top quick-search hit is attached to the row so
// the log captures what the user most likely watched.
func (a *App) handleLogVideoSearch(w http.ResponseWriter, r *http.Request) {
	var req logSearchRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, 400, "invalid request body")
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		httputil.WriteError(w, 400, "query is required")
		return
	}

	entry := searchlog.Entry{Query: query}
	var top *youtube.Video
	if a.searcher != nil {
		if vids := a.searcher.QuickSearch(r.Context(), query, 1); len(vids) > 0 {
			top = &vids[0]
			entry.VideoID = top.ID
			entry.VideoTitle = top.Title
			entry.VideoChannel = top.ChannelTitle
			entry.VideoViews = top.ViewCount
		}
	}

	if _, err := a.searchLog.Append(entry); err != nil {
		log.Printf("search log append failed: %v", err)
		httputil.WriteError(w, 500, "failed to log search")
		return
	}

	resp := map[string]interface{}{"status": "logged"}
	if top != nil {
		resp["video"] = top
	}
	httputil.WriteJSON(w, 200, resp)
}
