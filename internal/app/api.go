package app

import (
	"context"

	"nts/internal/client"
	"nts/internal/types"
)

// NotesAPI is the slice of the HTTP client the UI depends on. Tests swap in
// fakes.
type NotesAPI interface {
	Me(ctx context.Context) (*types.User, error)
	ListNotes(ctx context.Context, userID string) ([]*types.Note, error)
	SaveNote(ctx context.Context, req client.SaveNoteRequest) (*types.Note, error)
	DeleteNote(ctx context.Context, noteID string) error
	Logout(ctx context.Context) error
}

var _ NotesAPI = (*client.Client)(nil)
