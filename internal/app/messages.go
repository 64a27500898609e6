package app

import (
	"time"

	"nts/internal/types"
)

type userMsg struct {
	user *types.User
	err  error
}

type notesMsg struct {
	notes []*types.Note
	err   error
}

type noteSavedMsg struct {
	note    *types.Note
	created bool
	gen     int
	err     error
}

type noteDeletedMsg struct {
	id  string
	gen int
	err error
}

type logoutMsg struct {
	err error
}

type autosaveTickMsg struct {
	seq int
}

type searchTickMsg struct {
	seq int
}

type tickMsg struct {
	at time.Time
}
