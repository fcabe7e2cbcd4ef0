package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"balvis/httputil"
)

const (
	sessionCookie = "balvis_session"
	stateCookie   = "oauth_state"
	sessionTTL    = 7 * 24 * time.Hour

	userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type sessionClaims struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

type googleUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// handleGoogleLogin starts the OAuth code flow. The random state is sealed
// into a short-lived cookie so the callback can verify it was not forged.
func (a *App) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if a.oauthCfg == nil {
		httputil.WriteError(w, 503, "login not configured (GOOGLE_CLIENT_ID not set)")
		return
	}

	state := uuid.New().String()
	sealed, err := sealValue(state, a.cfg.SessionSecret)
	if err != nil {
		httputil.WriteError(w, 500, "failed to start login")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    sealed,
		Path:     "/auth",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, a.oauthCfg.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

func (a *App) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if a.oauthCfg == nil {
		httputil.WriteError(w, 503, "login not configured (GOOGLE_CLIENT_ID not set)")
		return
	}

	c, err := r.Cookie(stateCookie)
	if err != nil {
		httputil.WriteError(w, 400, "missing login state")
		return
	}
	state, err := openValue(c.Value, a.cfg.SessionSecret)
	if err != nil || state == "" || state != r.URL.Query().Get("state") {
		httputil.WriteError(w, 400, "login state mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		httputil.WriteError(w, 400, "missing authorization code")
		return
	}

	token, err := a.oauthCfg.Exchange(r.Context(), code)
	if err != nil {
		log.Printf("oauth code exchange failed: %v", err)
		httputil.WriteError(w, 500, "login failed")
		return
	}

	user, err := fetchGoogleUser(r.Context(), a.oauthCfg, token)
	if err != nil {
		log.Printf("userinfo fetch failed: %v", err)
		httputil.WriteError(w, 500, "login failed")
		return
	}

	signed, err := a.signSession(user)
	if err != nil {
		httputil.WriteError(w, 500, "login failed")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	// State cookie is single-use.
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/auth", MaxAge: -1})

	http.Redirect(w, r, a.cfg.FrontendURL, http.StatusTemporaryRedirect)
}

func (a *App) handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := a.sessionFromRequest(r)
	if !ok {
		httputil.WriteJSON(w, 200, map[string]interface{}{"authenticated": false})
		return
	}
	httputil.WriteJSON(w, 200, map[string]interface{}{
		"authenticated": true,
		"user": map[string]string{
			"name":    claims.Name,
			"email":   claims.Email,
			"picture": claims.Picture,
		},
	})
}

func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	httputil.WriteJSON(w, 200, map[string]string{"status": "logged out"})
}

func (a *App) signSession(user googleUser) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Name:    user.Name,
		Email:   user.Email,
		Picture: user.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.cfg.SessionSecret))
}

func (a *App) sessionFromRequest(r *http.Request) (*sessionClaims, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return nil, false
	}
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(a.cfg.SessionSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}

func fetchGoogleUser(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token) (googleUser, error) {
	resp, err := cfg.Client(ctx, token).Get(userinfoURL)
	if err != nil {
		return googleUser{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return googleUser{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return googleUser{}, err
	}
	var user googleUser
	if err := json.Unmarshal(body, &user); err != nil {
		return googleUser{}, err
	}
	return user, nil
}
