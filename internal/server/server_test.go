package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"nts/internal/store"
	"nts/internal/types"
)

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	db, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	srv, err := New(Config{
		Addr:      "127.0.0.1:0",
		JWTSecret: []byte("test-secret"),
	}, store.NewNoteStore(db), store.NewUserStore(db), zerolog.Nop())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv, srv.Router()
}

func signIn(t *testing.T, srv *Server, id, login string) string {
	t.Helper()
	if err := srv.users.Upsert(context.Background(), &types.User{ID: id, Login: login}); err != nil {
		t.Fatalf("upsert user: %v", err)
	}
	token, err := srv.auth.signToken(id)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, handler http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestNotesRequireAuth(t *testing.T) {
	_, handler := newTestServer(t)
	rec := doJSON(t, handler, http.MethodGet, "/notes", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSaveListDeleteRoundTrip(t *testing.T) {
	srv, handler := newTestServer(t)
	token := signIn(t, srv, "github:1", "octo")

	rec := doJSON(t, handler, http.MethodPost, "/notes", token, map[string]any{
		"title":   "Groceries",
		"content": "milk",
		"tags":    []string{"Home"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created types.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.Title != "Groceries" {
		t.Fatalf("unexpected note %+v", created)
	}

	rec = doJSON(t, handler, http.MethodPost, "/notes", token, map[string]any{
		"id":      created.ID,
		"title":   "Groceries",
		"content": "milk, eggs",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated types.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatal("update must advance updated_at")
	}

	rec = doJSON(t, handler, http.MethodGet, "/notes", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var notes []*types.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &notes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(notes) != 1 || notes[0].Content != "milk, eggs" {
		t.Fatalf("unexpected notes %+v", notes)
	}

	rec = doJSON(t, handler, http.MethodDelete, "/notes?noteId="+created.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", rec.Code)
	}
	rec = doJSON(t, handler, http.MethodGet, "/notes", token, nil)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty list, got %s", rec.Body.String())
	}
}

func TestEmptyNoteRejected(t *testing.T) {
	srv, handler := newTestServer(t)
	token := signIn(t, srv, "github:1", "octo")

	rec := doJSON(t, handler, http.MethodPost, "/notes", token, map[string]any{
		"title":   "  ",
		"content": "",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty note, got %d", rec.Code)
	}
}

func TestNotesAreScopedToTheSessionUser(t *testing.T) {
	srv, handler := newTestServer(t)
	alice := signIn(t, srv, "github:1", "alice")
	mallory := signIn(t, srv, "github:2", "mallory")

	rec := doJSON(t, handler, http.MethodPost, "/notes", alice, map[string]any{
		"title": "Secret plans",
	})
	var note types.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &note); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doJSON(t, handler, http.MethodGet, "/notes?userId=github:1", mallory, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("cross-user list should be forbidden, got %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodPost, "/notes", mallory, map[string]any{
		"id":    note.ID,
		"title": "Defaced",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("cross-user update should 404, got %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodDelete, "/notes?noteId="+note.ID, mallory, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("cross-user delete should 404, got %d", rec.Code)
	}
}

func TestMeWithAndWithoutSession(t *testing.T) {
	srv, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/session/me", "", nil)
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("anonymous /session/me should answer null, got %d %s", rec.Code, rec.Body.String())
	}

	token := signIn(t, srv, "github:1", "octo")
	rec = doJSON(t, handler, http.MethodGet, "/session/me", token, nil)
	var user types.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if user.ID != "github:1" || user.Login != "octo" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	srv, handler := newTestServer(t)
	token := signIn(t, srv, "github:1", "octo")
	tampered := token[:len(token)-2] + "xx"

	rec := doJSON(t, handler, http.MethodGet, "/notes", tampered, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("tampered token should be rejected, got %d", rec.Code)
	}
}

func TestOAuthCallbackCLIFlow(t *testing.T) {
	srv, handler := newTestServer(t)

	github := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/token"):
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"gho_test"}`))
		case strings.HasPrefix(r.URL.Path, "/user"):
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":42,"login":"octo","avatar_url":"https://example.com/a.png"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer github.Close()
	srv.auth.tokenURL = github.URL + "/token"
	srv.auth.userAPIURL = github.URL + "/user"
	srv.auth.cfg.GitHubClientID = "client-id"
	srv.auth.cfg.GitHubClientSecret = "client-secret"

	rec := doJSON(t, handler, http.MethodGet, "/session/login/github/callback?code=abc&state=cli", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("callback failed: %d %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Signed in as octo") {
		t.Fatalf("expected CLI token page, got %q", body)
	}

	// The token printed on the page must be a valid session.
	lines := strings.Split(strings.TrimSpace(body), "\n")
	token := lines[len(lines)-1]
	userID, err := srv.auth.parseToken(token)
	if err != nil || userID != "github:42" {
		t.Fatalf("printed token should parse to the user, got %q %v", userID, err)
	}
}

func TestLoginRedirectsToGitHub(t *testing.T) {
	srv, handler := newTestServer(t)
	srv.auth.cfg.GitHubClientID = "client-id"

	rec := doJSON(t, handler, http.MethodGet, "/session/login/github?state=cli", "", nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "github.com/login/oauth/authorize") || !strings.Contains(loc, "state=cli") {
		t.Fatalf("unexpected redirect %q", loc)
	}
}

func TestHealth(t *testing.T) {
	_, handler := newTestServer(t)
	rec := doJSON(t, handler, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "ok") {
		t.Fatalf("unexpected health response %d %s", rec.Code, rec.Body.String())
	}
}
