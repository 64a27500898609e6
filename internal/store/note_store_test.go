package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUpsertCreateAssignsID(t *testing.T) {
	s := NewNoteStore(openTestDB(t))
	ctx := context.Background()

	note, created, err := s.Upsert(ctx, "u1", NoteInput{Title: "First", Content: "body", Tags: []string{"Home"}})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !created || note.ID == "" {
		t.Fatalf("expected created note with id, got %+v", note)
	}
	if note.Title != "First" || note.Content != "body" {
		t.Fatalf("unexpected fields %+v", note)
	}
	if len(note.Tags) != 1 || note.Tags[0] != "home" {
		t.Fatalf("tags should be normalized, got %v", note.Tags)
	}
	if note.CreatedAt.IsZero() || note.UpdatedAt.IsZero() {
		t.Fatal("timestamps must be set")
	}
}

func TestUpsertBlankTitleDefaults(t *testing.T) {
	s := NewNoteStore(openTestDB(t))
	note, _, err := s.Upsert(context.Background(), "u1", NoteInput{Content: "just text"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if note.Title != "Untitled Note" {
		t.Fatalf("blank title should default, got %q", note.Title)
	}
}

func TestUpsertUpdateBumpsUpdatedAt(t *testing.T) {
	s := NewNoteStore(openTestDB(t))
	ctx := context.Background()

	note, _, err := s.Upsert(ctx, "u1", NoteInput{Title: "First", Content: "v1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, created, err := s.Upsert(ctx, "u1", NoteInput{ID: note.ID, Title: "First", Content: "v2"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if created {
		t.Fatal("update must not report created")
	}
	if updated.Content != "v2" {
		t.Fatalf("content not updated: %q", updated.Content)
	}
	if !updated.UpdatedAt.After(note.UpdatedAt) {
		t.Fatalf("updated_at must be strictly monotonic: %v vs %v", updated.UpdatedAt, note.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(note.CreatedAt) {
		t.Fatal("created_at must not change on update")
	}
}

func TestUpsertEnforcesOwnership(t *testing.T) {
	s := NewNoteStore(openTestDB(t))
	ctx := context.Background()

	note, _, err := s.Upsert(ctx, "u1", NoteInput{Title: "Mine"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, _, err = s.Upsert(ctx, "u2", NoteInput{ID: note.ID, Title: "Stolen"})
	if !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound for foreign note, got %v", err)
	}
}

func TestListByUserOrdersRecentFirst(t *testing.T) {
	s := NewNoteStore(openTestDB(t))
	ctx := context.Background()

	first, _, err := s.Upsert(ctx, "u1", NoteInput{Title: "A"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, _, err := s.Upsert(ctx, "u1", NoteInput{Title: "B"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := s.Upsert(ctx, "u2", NoteInput{Title: "Other user"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Touch the first note so it becomes the most recent.
	if _, _, err := s.Upsert(ctx, "u1", NoteInput{ID: first.ID, Title: "A", Content: "touched"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	notes, err := s.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	if notes[0].ID != first.ID || notes[1].ID != second.ID {
		t.Fatalf("unexpected order: %s, %s", notes[0].ID, notes[1].ID)
	}
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	s := NewNoteStore(openTestDB(t))
	ctx := context.Background()

	note, _, err := s.Upsert(ctx, "u1", NoteInput{Title: "Mine"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Delete(ctx, "u2", note.ID); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("foreign delete should fail, got %v", err)
	}
	if err := s.Delete(ctx, "u1", note.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "u1", note.ID); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound after delete, got %v", err)
	}
}
