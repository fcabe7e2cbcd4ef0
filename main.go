package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"balvis/httputil"
	"balvis/llm"
	"balvis/searchlog"
	"balvis/videosearch"
	"balvis/youtube"
)

type App struct {
	cfg        Config
	llm        *llm.Client
	classifier *videosearch.Classifier
	searcher   *videosearch.Searcher
	searchLog  *searchlog.Logger
	rdb        *redis.Client
	oauthCfg   *oauth2.Config
}

type Config struct {
	Port               string
	YouTubeAPIKey      string
	YouTubeBaseURL     string
	LLMBaseURL         string
	LLMModel           string
	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectURL   string
	FrontendURL        string
	SessionSecret      string
	SearchLogPath      string
	RedisURL           string
	AllowedOrigins     []string
}

func loadConfig() Config {
	return Config{
		Port:               getEnv("PORT", "5000"),
		YouTubeAPIKey:      getEnv("YOUTUBE_API_KEY", ""),
		YouTubeBaseURL:     getEnv("YOUTUBE_BASE_URL", ""),
		LLMBaseURL:         getEnv("LLM_BASE_URL", ""),
		LLMModel:           getEnv("LLM_MODEL", "gpt-4o"),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectURL:   getEnv("OAUTH_REDIRECT_URL", "http://localhost:5000/auth/google/callback"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		SessionSecret:      getEnv("SESSION_SECRET", "supersecretkey"),
		SearchLogPath:      getEnv("SEARCH_LOG_PATH", "video_searches.csv"),
		RedisURL:           getEnv("REDIS_URL", ""),
		AllowedOrigins:     strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newApp(cfg Config) *App {
	app := &App{
		cfg:        cfg,
		classifier: videosearch.NewClassifier(nil),
		searchLog:  searchlog.New(cfg.SearchLogPath),
	}

	llmOpts := []llm.Option{llm.WithModel(cfg.LLMModel)}
	if cfg.LLMBaseURL != "" {
		llmOpts = append(llmOpts, llm.WithBaseURL(cfg.LLMBaseURL))
	}
	app.llm = llm.NewClient(llmOpts...)

	if cfg.YouTubeAPIKey != "" {
		var ytOpts []youtube.ClientOption
		if cfg.YouTubeBaseURL != "" {
			ytOpts = append(ytOpts, youtube.WithBaseURL(cfg.YouTubeBaseURL))
		}
		app.searcher = videosearch.NewSearcher(youtube.NewClient(cfg.YouTubeAPIKey, ytOpts...))
	} else {
		log.Println("YOUTUBE_API_KEY not set: video requests fall back to LLM-only recommendations")
	}

	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		app.rdb = redis.NewClient(opt)
	}

	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		app.oauthCfg = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.OAuthRedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		}
	}

	return app
}

func (a *App) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Get("/auth/google", a.handleGoogleLogin)
	r.Get("/auth/google/callback", a.handleGoogleCallback)
	r.Get("/auth/status", a.handleAuthStatus)
	r.Post("/auth/logout", a.handleLogout)

	rl := newRateLimiter(60, time.Minute)
	r.Group(func(r chi.Router) {
		r.Use(a.requireAPIKey)
		r.Use(rl.middleware)
		r.Post("/api/chat", a.handleChat)
		r.Post("/api/videos", a.handleVideoSearch)
		r.Post("/api/summarize", a.handleSummarize)
		r.Post("/api/extract-pdf", a.handleExtractPDF)
		r.Post("/api/analyze-whiteboard", a.handleAnalyzeWhiteboard)
		r.Post("/api/log-video-search", a.handleLogVideoSearch)
	})

	return r
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
	cfg := loadConfig()
	app := newApp(cfg)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: app.routes()}

	go func() {
		log.Printf("BALVIS API listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
	if app.rdb != nil {
		app.rdb.Close()
	}
	log.Println("server shut down")
}
