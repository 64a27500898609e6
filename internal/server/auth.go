package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"nts/internal/store"
	"nts/internal/types"
)

const (
	sessionCookieName = "nts_session"
	sessionTTL        = 7 * 24 * time.Hour
	cliState          = "cli"
)

type contextKey string

const userIDKey contextKey = "userID"

// authService owns sign-in, session tokens, and the auth middleware. The
// GitHub endpoints are fields so tests can point them at a stub.
type authService struct {
	cfg    Config
	users  *store.UserStore
	logger zerolog.Logger

	authorizeURL string
	tokenURL     string
	userAPIURL   string
	httpClient   *http.Client
}

func newAuthService(cfg Config, users *store.UserStore, logger zerolog.Logger) *authService {
	return &authService{
		cfg:          cfg,
		users:        users,
		logger:       logger,
		authorizeURL: "https://github.com/login/oauth/authorize",
		tokenURL:     "https://github.com/login/oauth/access_token",
		userAPIURL:   "https://api.github.com/user",
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *authService) signToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.cfg.JWTSecret)
}

func (a *authService) parseToken(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.cfg.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid session token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid session claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("session token missing subject")
	}
	return sub, nil
}

// tokenFromRequest checks the Authorization header first, then the session
// cookie.
func (a *authService) tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func (a *authService) userIDFromRequest(r *http.Request) (string, error) {
	raw := a.tokenFromRequest(r)
	if raw == "" {
		return "", errors.New("missing session token")
	}
	return a.parseToken(raw)
}

// RequireAuth rejects requests without a valid session and stashes the user
// id in the request context.
func (a *authService) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := a.userIDFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

func requestUserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

func (a *authService) handleLogin(w http.ResponseWriter, r *http.Request) {
	if a.cfg.GitHubClientID == "" {
		writeError(w, http.StatusInternalServerError, "github oauth is not configured")
		return
	}
	state := r.URL.Query().Get("state")
	redirect := a.cfg.BaseURL + "/session/login/github/callback"
	params := url.Values{
		"client_id":    {a.cfg.GitHubClientID},
		"redirect_uri": {redirect},
		"scope":        {"read:user"},
	}
	if state != "" {
		params.Set("state", state)
	}
	http.Redirect(w, r, a.authorizeURL+"?"+params.Encode(), http.StatusFound)
}

func (a *authService) handleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "missing code")
		return
	}

	accessToken, err := a.exchangeCode(r.Context(), code)
	if err != nil {
		a.logger.Error().Err(err).Msg("oauth code exchange")
		writeError(w, http.StatusBadGateway, "github code exchange failed")
		return
	}
	user, err := a.fetchGitHubUser(r.Context(), accessToken)
	if err != nil {
		a.logger.Error().Err(err).Msg("oauth user fetch")
		writeError(w, http.StatusBadGateway, "github user fetch failed")
		return
	}
	if err := a.users.Upsert(r.Context(), user); err != nil {
		a.logger.Error().Err(err).Msg("store user")
		writeError(w, http.StatusInternalServerError, "failed to store user")
		return
	}

	session, err := a.signToken(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to sign session")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	a.logger.Info().Str("user", user.Login).Msg("signed in")

	// A terminal client cannot receive the cookie, so the CLI flow shows
	// the token for pasting into `nts login`.
	if r.URL.Query().Get("state") == cliState {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "Signed in as %s.\n\nPaste this token into `nts login`:\n\n%s\n", user.Login, session)
		return
	}
	http.Redirect(w, r, a.cfg.BaseURL, http.StatusFound)
}

func (a *authService) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, err := a.userIDFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	user, err := a.users.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *authService) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (a *authService) exchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{
		"client_id":     {a.cfg.GitHubClientID},
		"client_secret": {a.cfg.GitHubClientSecret},
		"code":          {code},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var payload struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.Error != "" {
		return "", fmt.Errorf("github: %s", payload.Error)
	}
	if payload.AccessToken == "" {
		return "", errors.New("github returned no access token")
	}
	return payload.AccessToken, nil
}

func (a *authService) fetchGitHubUser(ctx context.Context, accessToken string) (*types.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.userAPIURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github user api: %s", resp.Status)
	}

	var payload struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.ID == 0 || payload.Login == "" {
		return nil, errors.New("github returned an incomplete user")
	}
	return &types.User{
		ID:        "github:" + strconv.FormatInt(payload.ID, 10),
		Login:     payload.Login,
		AvatarURL: payload.AvatarURL,
	}, nil
}
