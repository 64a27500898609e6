package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nts/internal/types"
)

func TestMeReturnsUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/session/me" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.User{ID: "u1", Login: "octo"})
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, "tok")
	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if user == nil || user.ID != "u1" || user.Login != "octo" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestMeNullMeansSignedOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, "")
	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user, got %+v", user)
	}
}

func TestMeUnauthorizedMeansSignedOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid session"}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, "stale")
	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user, got %+v", user)
	}
}

func TestListNotesSendsUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("userId"); got != "u1" {
			t.Fatalf("unexpected userId %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"n1","title":"First"},{"id":"n2","title":"Second"}]`))
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, "tok")
	notes, err := c.ListNotes(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(notes) != 2 || notes[0].ID != "n1" || notes[1].ID != "n2" {
		t.Fatalf("unexpected notes %+v", notes)
	}
}

func TestListNotesRequiresUserID(t *testing.T) {
	c := NewWithBaseURL("http://127.0.0.1:0", "tok")
	if _, err := c.ListNotes(context.Background(), "  "); err == nil {
		t.Fatal("expected error for missing user id")
	}
}

func TestSaveNoteRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/notes" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req SaveNoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.UserID != "u1" || req.Title != "Groceries" {
			t.Fatalf("unexpected payload %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.Note{ID: "n9", Title: req.Title, Content: req.Content, Tags: req.Tags})
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, "tok")
	note, err := c.SaveNote(context.Background(), SaveNoteRequest{
		UserID:  "u1",
		Title:   "Groceries",
		Content: "milk",
		Tags:    []string{"home"},
	})
	if err != nil {
		t.Fatalf("SaveNote: %v", err)
	}
	if note.ID != "n9" || note.Title != "Groceries" {
		t.Fatalf("unexpected note %+v", note)
	}
}

func TestSaveNoteErrorSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"not your note"}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, "tok")
	_, err := c.SaveNote(context.Background(), SaveNoteRequest{UserID: "u1"})
	apiErr := AsAPIError(err)
	if apiErr == nil {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusForbidden || apiErr.Message != "not your note" {
		t.Fatalf("unexpected APIError %+v", apiErr)
	}
}

func TestDeleteNote(t *testing.T) {
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("unexpected method %s", r.Method)
		}
		gotID = r.URL.Query().Get("noteId")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL, "tok")
	if err := c.DeleteNote(context.Background(), "n1"); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if gotID != "n1" {
		t.Fatalf("unexpected noteId %q", gotID)
	}
}
