package app

import (
	"strings"

	"nts/internal/client"
	"nts/internal/types"
)

const untitledNoteTitle = "Untitled Note"

// draftFields is the editable surface of a note.
type draftFields struct {
	title    string
	content  string
	tags     []string
	starred  bool
	archived bool
}

func draftFromNote(note *types.Note) draftFields {
	if note == nil {
		return draftFields{}
	}
	return draftFields{
		title:    note.Title,
		content:  note.Content,
		tags:     append([]string(nil), note.Tags...),
		starred:  note.Starred,
		archived: note.Archived,
	}
}

// effectiveTitle is the title as the server would store it.
func effectiveTitle(raw string) string {
	title := strings.TrimSpace(raw)
	if title == "" {
		return untitledNoteTitle
	}
	return title
}

// titleMatchesBaseline compares a draft title against the baseline's. A blank
// draft title matches a stored "Untitled Note" fallback, so adopting the
// server's title after saving a titleless note does not re-dirty the session.
// The match is one-way: typing "Untitled Note" into a blank draft is an edit.
func titleMatchesBaseline(draft, baseline string) bool {
	draft = strings.TrimSpace(draft)
	baseline = strings.TrimSpace(baseline)
	if draft == baseline {
		return true
	}
	return draft == "" && baseline == untitledNoteTitle
}

// matchesBaseline compares the fields as they would be persisted: title and
// content are trimmed and tag order is ignored.
func (d draftFields) matchesBaseline(baseline draftFields) bool {
	if !titleMatchesBaseline(d.title, baseline.title) {
		return false
	}
	if strings.TrimSpace(d.content) != strings.TrimSpace(baseline.content) {
		return false
	}
	if d.starred != baseline.starred || d.archived != baseline.archived {
		return false
	}
	return types.TagSetsEqual(d.tags, baseline.tags)
}

// editSession holds the note being edited: the live draft, the baseline it
// is compared against for dirtiness, and the counters that keep stale
// debounce ticks and stale save results from being applied.
//
// editSeq advances on every draft mutation; an autosave tick carrying an
// older seq is dropped. gen advances whenever the session moves to a
// different note; a save result carrying an older gen still updates the
// collection but never the baseline.
type editSession struct {
	noteID   string
	draft    draftFields
	baseline draftFields
	editSeq  int
	gen      int
}

// Load points the session at an existing note, discarding any draft.
func (s *editSession) Load(note *types.Note) {
	s.noteID = ""
	fields := draftFromNote(note)
	if note != nil {
		s.noteID = note.ID
	}
	s.draft = fields
	s.baseline = fields
	s.editSeq++
	s.gen++
}

// Reset starts a fresh unsaved note.
func (s *editSession) Reset() {
	s.noteID = ""
	s.draft = draftFields{}
	s.baseline = draftFields{}
	s.editSeq++
	s.gen++
}

func (s *editSession) IsNew() bool {
	return s.noteID == ""
}

// Dirty reports whether the draft differs from the baseline. Tag order does
// not count as a difference.
func (s *editSession) Dirty() bool {
	return !s.draft.matchesBaseline(s.baseline)
}

// Savable reports whether a save should be issued: the draft must be dirty
// and must not be entirely empty.
func (s *editSession) Savable() bool {
	if !s.Dirty() {
		return false
	}
	if strings.TrimSpace(s.draft.title) != "" || strings.TrimSpace(s.draft.content) != "" {
		return true
	}
	return false
}

// BumpEdit records a draft mutation and returns the new edit sequence, which
// stamps the debounce tick armed for it.
func (s *editSession) BumpEdit() int {
	s.editSeq++
	return s.editSeq
}

// SavePayload builds the upsert request for the current draft. A blank title
// is sent as "Untitled Note", matching what the server would store anyway.
func (s *editSession) SavePayload(userID string) client.SaveNoteRequest {
	return client.SaveNoteRequest{
		ID:       s.noteID,
		UserID:   userID,
		Title:    effectiveTitle(s.draft.title),
		Content:  strings.TrimSpace(s.draft.content),
		Tags:     types.NormalizeTags(s.draft.tags),
		Starred:  s.draft.starred,
		Archived: s.draft.archived,
	}
}

// AdoptSaved moves the baseline to the server's view of the note after a
// successful save. Edits made while the save was in flight stay in the draft
// and keep the session dirty.
func (s *editSession) AdoptSaved(note *types.Note) {
	if note == nil {
		return
	}
	s.noteID = note.ID
	s.baseline = draftFromNote(note)
}
