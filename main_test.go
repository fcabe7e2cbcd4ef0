package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"balvis/llm"
	"balvis/searchlog"
	"balvis/videosearch"
	"balvis/youtube"
)

// newTestApp builds an App wired to the given fake upstream base URLs. An
// empty ytURL leaves the searcher unset, matching a missing provider key.
func newTestApp(t *testing.T, llmURL, ytURL string) *App {
	t.Helper()
	cfg := Config{
		FrontendURL:    "http://localhost:5173",
		SessionSecret:  "test-secret",
		SearchLogPath:  filepath.Join(t.TempDir(), "searches.csv"),
		AllowedOrigins: []string{"*"},
	}
	app := &App{
		cfg:        cfg,
		classifier: videosearch.NewClassifier(nil),
		searchLog:  searchlog.New(cfg.SearchLogPath),
	}

	var llmOpts []llm.Option
	if llmURL != "" {
		llmOpts = append(llmOpts, llm.WithBaseURL(llmURL))
	}
	app.llm = llm.NewClient(llmOpts...)

	if ytURL != "" {
		client := youtube.NewClient("yt-test-key", youtube.WithBaseURL(ytURL))
		app.searcher = videosearch.NewSearcher(client)
	}
	return app
}

// fakeLLM serves /chat/completions, producing the reply returned by fn.
func fakeLLM(t *testing.T, fn func(prompt string) string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Messages []struct {
				Content interface{} `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&payload)
		prompt := ""
		if len(payload.Messages) > 0 {
			if s, ok := payload.Messages[0].Content.(string); ok {
				prompt = s
			}
		}
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": fn(prompt)}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// fakeYouTube serves the search and videos endpoints with a fixed result set.
func fakeYouTube(t *testing.T, videos []fakeVideo) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/youtube/v3/search":
			items := make([]map[string]interface{}, len(videos))
			for i, v := range videos {
				items[i] = map[string]interface{}{
					"id":      map[string]string{"videoId": v.ID},
					"snippet": v.snippet(),
				}
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"items": items})
		case "/youtube/v3/videos":
			items := make([]map[string]interface{}, len(videos))
			for i, v := range videos {
				items[i] = map[string]interface{}{
					"id":             v.ID,
					"snippet":        v.snippet(),
					"contentDetails": map[string]string{"duration": "PT10M"},
					"statistics": map[string]string{
						"viewCount": fmt.Sprintf("%d", v.Views),
						"likeCount": fmt.Sprintf("%d", v.Views/20),
					},
					"status": map[string]bool{"embeddable": true},
				}
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"items": items})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

type fakeVideo struct {
	ID    string
	Title string
	Views int64
}

func (v fakeVideo) snippet() map[string]string {
	return map[string]string{
		"title":        v.Title,
		"channelTitle": "CrashCourse",
		"description":  "about " + v.Title,
		"publishedAt":  time.Now().AddDate(0, -1, 0).UTC().Format(time.RFC3339),
	}
}

func defaultFakeVideos() []fakeVideo {
	return []fakeVideo{
		{ID: "vidaaaaaaa1", Title: "First Video", Views: 1_000_000},
		{ID: "vidbbbbbbb2", Title: "Second Video", Views: 500_000},
		{ID: "vidccccccc3", Title: "Third Video", Views: 90_000},
		{ID: "vidddddddd4", Title: "Fourth Video", Views: 40_000},
		{ID: "videeeeeee5", Title: "Fifth Video", Views: 10_000},
	}
}

// postJSON issues an authenticated JSON POST against the app's router.
func postJSON(t *testing.T, app *App, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "sk-test")
	rec := httptest.NewRecorder()
	app.routes().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, "", "")
	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	app.routes().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestAPIKeyRequired(t *testing.T) {
	app := newTestApp(t, "", "")
	req := httptest.NewRequest("POST", "/api/chat", bytes.NewReader([]byte(`{"message":"hi"}`)))
	rec := httptest.NewRecorder()
	app.routes().ServeHTTP(rec, req)

	if rec.Code != 401 {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["error"] != "API key is required" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d denied under limit", i+1)
		}
	}
	if rl.allow("1.2.3.4") {
		t.Error("request over limit allowed")
	}
	// Other clients are unaffected.
	if !rl.allow("5.6.7.8") {
		t.Error("separate client denied")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := newRateLimiter(1, time.Minute)
	h := rl.middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", "9.9.9.9")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("first request status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != 429 {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q", rec.Header().Get("Retry-After"))
	}
}
