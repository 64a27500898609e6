package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"nts/internal/types"
)

var ErrNoteNotFound = errors.New("note not found")

// NoteInput is the editable surface accepted by Upsert. An empty ID means
// create.
type NoteInput struct {
	ID       string
	Title    string
	Content  string
	Tags     []string
	Starred  bool
	Archived bool
}

type NoteStore struct {
	db *sql.DB
}

func NewNoteStore(db *sql.DB) *NoteStore {
	return &NoteStore{db: db}
}

// ListByUser returns the user's notes, most recently updated first.
func (s *NoteStore) ListByUser(ctx context.Context, userID string) ([]*types.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, tags, starred, archived, created_at, updated_at
		 FROM notes WHERE user_id = ? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []*types.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func (s *NoteStore) Get(ctx context.Context, userID, id string) (*types.Note, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, content, tags, starred, archived, created_at, updated_at
		 FROM notes WHERE id = ? AND user_id = ?`, id, userID)
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoteNotFound
	}
	return note, err
}

// Upsert creates or updates a note and returns the stored row. The
// updated_at timestamp is strictly monotonic per note so clients can rely
// on it for ordering.
func (s *NoteStore) Upsert(ctx context.Context, userID string, input NoteInput) (*types.Note, bool, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = "Untitled Note"
	}
	tags, err := json.Marshal(types.NormalizeTags(input.Tags))
	if err != nil {
		return nil, false, fmt.Errorf("encode tags: %w", err)
	}
	now := time.Now().UTC()

	if input.ID == "" {
		id := uuid.NewString()
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO notes (id, user_id, title, content, tags, starred, archived, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, userID, title, strings.TrimSpace(input.Content), string(tags),
			boolToInt(input.Starred), boolToInt(input.Archived),
			formatTime(now), formatTime(now))
		if err != nil {
			return nil, false, fmt.Errorf("insert note: %w", err)
		}
		note, err := s.Get(ctx, userID, id)
		return note, true, err
	}

	existing, err := s.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, false, err
	}
	if !now.After(existing.UpdatedAt) {
		now = existing.UpdatedAt.Add(time.Millisecond)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, tags = ?, starred = ?, archived = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		title, strings.TrimSpace(input.Content), string(tags),
		boolToInt(input.Starred), boolToInt(input.Archived),
		formatTime(now), input.ID, userID)
	if err != nil {
		return nil, false, fmt.Errorf("update note: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, false, ErrNoteNotFound
	}
	note, err := s.Get(ctx, userID, input.ID)
	return note, false, err
}

// Delete removes the note if it belongs to the user.
func (s *NoteStore) Delete(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoteNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*types.Note, error) {
	var (
		note               types.Note
		tagsRaw            string
		starred, archived  int
		createdAt, updated string
	)
	if err := row.Scan(&note.ID, &note.Title, &note.Content, &tagsRaw,
		&starred, &archived, &createdAt, &updated); err != nil {
		return nil, err
	}
	if tagsRaw != "" && tagsRaw != "null" {
		if err := json.Unmarshal([]byte(tagsRaw), &note.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	note.Starred = starred != 0
	note.Archived = archived != 0
	var err error
	if note.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if note.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &note, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
