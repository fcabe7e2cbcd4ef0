package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"balvis/httputil"
	"balvis/youtube"
)

const searchCacheTTL = 10 * time.Minute

type videoSearchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"maxResults"`
}

type videoSearchResponse struct {
	Query  string          `json:"query"`
	Count  int             `json:"count"`
	Videos []youtube.Video `json:"videos"`
}

func (a *App) handleVideoSearch(w http.ResponseWriter, r *http.Request) {
	var req videoSearchRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, 400, "invalid request body")
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		httputil.WriteError(w, 400, "query is required")
		return
	}
	if len(query) > 200 {
		httputil.WriteError(w, 400, "query is too long")
		return
	}
	if a.searcher == nil {
		httputil.WriteError(w, 503, "video search not configured (YOUTUBE_API_KEY not set)")
		return
	}

	max := req.MaxResults
	if max <= 0 || max > 10 {
		max = 5
	}

	cacheKey := "videosearch:" + strings.ToLower(query) + ":" + strconv.Itoa(max)
	if a.rdb != nil {
		if cached, err := a.rdb.Get(r.Context(), cacheKey).Result(); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(200)
			w.Write([]byte(cached))
			return
		}
	}

	resp := videoSearchResponse{Query: query}
	resp.Videos = a.searcher.Search(r.Context(), query, max)
	resp.Count = len(resp.Videos)

	if a.rdb != nil && resp.Count > 0 {
		if payload, err := json.Marshal(resp); err == nil {
			if err := a.rdb.Set(r.Context(), cacheKey, payload, searchCacheTTL).Err(); err != nil {
				log.Printf("search cache write failed: %v", err)
			}
		}
	}

	httputil.WriteJSON(w, 200, resp)
}
