package app

import (
	"context"
	"time"

	"nts/internal/client"

	tea "github.com/charmbracelet/bubbletea"
)

func fetchUserCmd(api NotesAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		user, err := api.Me(ctx)
		return userMsg{user: user, err: err}
	}
}

func fetchNotesCmd(api NotesAPI, userID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
		defer cancel()
		notes, err := api.ListNotes(ctx, userID)
		return notesMsg{notes: notes, err: err}
	}
}

func saveNoteCmd(api NotesAPI, req client.SaveNoteRequest, gen int) tea.Cmd {
	created := req.ID == ""
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		note, err := api.SaveNote(ctx, req)
		return noteSavedMsg{note: note, created: created, gen: gen, err: err}
	}
}

func deleteNoteCmd(api NotesAPI, noteID string, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := api.DeleteNote(ctx, noteID)
		return noteDeletedMsg{id: noteID, gen: gen, err: err}
	}
}

func logoutCmd(api NotesAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		return logoutMsg{err: api.Logout(ctx)}
	}
}

// autosaveTickCmd fires after the debounce delay carrying the edit sequence
// it was armed for. A tick whose seq no longer matches is stale and dropped.
func autosaveTickCmd(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return autosaveTickMsg{seq: seq}
	})
}

func searchTickCmd(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	})
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(at time.Time) tea.Msg {
		return tickMsg{at: at}
	})
}
