package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"nts/internal/client"
	"nts/internal/config"
	"nts/internal/types"
)

const (
	tickInterval     = 100 * time.Millisecond
	minSidebarWidth  = 24
	maxSidebarWidth  = 40
	minEditorWidth   = 20
	minContentHeight = 6
)

type focusTarget int

const (
	focusSidebar focusTarget = iota
	focusSearch
	focusTitle
	focusTags
	focusContent
)

type viewLayout int

const (
	layoutEdit viewLayout = iota
	layoutPreview
	layoutSplit
)

type pendingAction int

const (
	pendingNone pendingAction = iota
	pendingSwitch
	pendingNew
	pendingDelete
	pendingQuit
)

type Model struct {
	api    NotesAPI
	cfg    config.Config
	logger zerolog.Logger

	user       *types.User
	collection noteCollection
	session    editSession
	gate       syncGate
	saveQueued bool

	confirm   *ConfirmController
	pending   pendingAction
	pendingID string

	focus  focusTarget
	layout viewLayout

	sortMode     sortMode
	showArchived bool
	tagFilter    string

	searchInput textinput.Model
	searchQuery string
	searchSeq   int

	titleInput  textinput.Model
	tagsInput   textinput.Model
	contentArea textarea.Model

	cursor  int
	width   int
	height  int
	status  string
	loading bool

	toastText  string
	toastLevel toastLevel
	toastUntil time.Time
}

func NewModel(api NotesAPI, cfg config.Config, logger zerolog.Logger) Model {
	search := textinput.New()
	search.Placeholder = "Search notes..."
	search.Prompt = "/ "
	search.CharLimit = 120

	title := textinput.New()
	title.Placeholder = untitledNoteTitle
	title.Prompt = ""
	title.CharLimit = 200

	tags := textinput.New()
	tags.Placeholder = "tags, comma, separated"
	tags.Prompt = ""
	tags.CharLimit = 200

	content := textarea.New()
	content.Placeholder = "Write your note..."
	content.ShowLineNumbers = false
	content.CharLimit = 0

	m := Model{
		api:         api,
		cfg:         cfg,
		logger:      logger,
		confirm:     NewConfirmController(),
		searchInput: search,
		titleInput:  title,
		tagsInput:   tags,
		contentArea: content,
		loading:     true,
		status:      "Connecting...",
	}
	setMarkdownBackgroundDark(cfg.DarkTheme())
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchUserCmd(m.api), tickCmd(), textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeInputs()
		return m, nil

	case tickMsg:
		return m, tickCmd()

	case userMsg:
		return m.handleUser(msg)

	case notesMsg:
		return m.handleNotes(msg)

	case autosaveTickMsg:
		if msg.seq != m.session.editSeq {
			return m, nil
		}
		return m, m.trySave(false)

	case searchTickMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.searchQuery = m.searchInput.Value()
		m.clampCursor()
		return m, nil

	case noteSavedMsg:
		return m.handleSaved(msg)

	case noteDeletedMsg:
		return m.handleDeleted(msg)

	case logoutMsg:
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Msg("logout")
		}
		m.user = nil
		m.collection.Replace(nil)
		m.session.Reset()
		m.syncInputsFromDraft()
		m.status = "Signed out. Run `nts login` to sign in again."
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleUser(msg userMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.logger.Error().Err(msg.err).Msg("fetch user")
		m.status = "Cannot reach server: " + msg.err.Error()
		return m, nil
	}
	if msg.user == nil {
		m.status = "Not signed in. Run `nts login` first."
		return m, nil
	}
	m.user = msg.user
	m.status = "Signed in as " + msg.user.Login
	m.loading = true
	return m, fetchNotesCmd(m.api, msg.user.ID)
}

func (m Model) handleNotes(msg notesMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.logger.Error().Err(msg.err).Msg("fetch notes")
		m.showErrorToast("Failed to load notes")
		m.status = "Failed to load notes: " + msg.err.Error()
		return m, nil
	}
	m.collection.Replace(msg.notes)
	m.clampCursor()
	m.status = fmt.Sprintf("%d notes", m.collection.Len())
	return m, nil
}

// handleSaved reconciles a settled save. The collection always adopts the
// server's note; the session baseline is only moved when the session still
// points at the generation the save was issued for.
func (m Model) handleSaved(msg noteSavedMsg) (tea.Model, tea.Cmd) {
	m.gate.Settle()
	if msg.err != nil {
		m.logger.Error().Err(msg.err).Msg("save note")
		m.showErrorToast("Save failed")
		m.saveQueued = false
		if m.cfg.AutosaveEnabled() && m.session.Savable() {
			return m, autosaveTickCmd(m.session.editSeq, m.cfg.AutosaveDelay())
		}
		return m, nil
	}

	m.collection.Upsert(msg.note, msg.created)
	if msg.gen == m.session.gen {
		m.session.AdoptSaved(msg.note)
	}
	m.showInfoToast("Saved")
	m.logger.Debug().Str("note_id", msg.note.ID).Bool("created", msg.created).Msg("note saved")

	queued := m.saveQueued
	m.saveQueued = false
	if queued && msg.gen == m.session.gen && m.session.Savable() {
		return m, m.trySave(false)
	}
	return m, nil
}

func (m Model) handleDeleted(msg noteDeletedMsg) (tea.Model, tea.Cmd) {
	m.gate.Settle()
	queued := m.saveQueued
	m.saveQueued = false
	if msg.err != nil {
		m.logger.Error().Err(msg.err).Msg("delete note")
		m.showErrorToast("Delete failed")
	} else {
		m.collection.Remove(msg.id)
		if msg.gen == m.session.gen {
			m.session.Reset()
			m.syncInputsFromDraft()
			m.setFocus(focusSidebar)
		}
		m.clampCursor()
		m.showInfoToast("Deleted")
	}
	// A save withheld while the delete was in flight must not be lost.
	if queued && m.session.Savable() {
		return m, m.trySave(false)
	}
	return m, nil
}

// trySave is the single entry point for issuing a save. The gate guarantees
// at most one write in flight; a save requested while one is running is
// remembered and re-tried when the in-flight one settles.
func (m *Model) trySave(manual bool) tea.Cmd {
	if m.user == nil {
		if manual {
			m.showErrorToast("Not signed in")
		}
		return nil
	}
	if !m.session.Savable() {
		if manual {
			if m.session.Dirty() {
				m.showWarningToast("Nothing to save")
			} else {
				m.showInfoToast("No changes")
			}
		}
		return nil
	}
	if !m.gate.BeginSave() {
		m.saveQueued = true
		if manual {
			m.showWarningToast("Sync in progress")
		}
		return nil
	}
	return saveNoteCmd(m.api, m.session.SavePayload(m.user.ID), m.session.gen)
}

// startDelete claims the gate for a delete of the given note.
func (m *Model) startDelete(noteID string) tea.Cmd {
	if m.user == nil || noteID == "" {
		return nil
	}
	if !m.gate.BeginDelete() {
		m.showWarningToast("Sync in progress")
		return nil
	}
	gen := -1
	if noteID == m.session.noteID {
		gen = m.session.gen
	}
	return deleteNoteCmd(m.api, noteID, gen)
}

// toggleNoteFlag saves the highlighted note with starred or archived
// flipped. For the open note the flip goes through the draft so the session
// stays the source of truth.
func (m *Model) toggleNoteFlag(note *types.Note, star bool) tea.Cmd {
	if note == nil || m.user == nil {
		return nil
	}
	if note.ID == m.session.noteID && !m.session.IsNew() {
		if star {
			m.session.draft.starred = !m.session.draft.starred
		} else {
			m.session.draft.archived = !m.session.draft.archived
		}
		m.session.BumpEdit()
		return m.trySave(false)
	}
	if !m.gate.BeginSave() {
		m.showWarningToast("Sync in progress")
		return nil
	}
	req := saveRequestFromNote(note, m.user.ID)
	if star {
		req.Starred = !note.Starred
	} else {
		req.Archived = !note.Archived
	}
	return saveNoteCmd(m.api, req, -1)
}

func saveRequestFromNote(note *types.Note, userID string) client.SaveNoteRequest {
	return client.SaveNoteRequest{
		ID:       note.ID,
		UserID:   userID,
		Title:    effectiveTitle(note.Title),
		Content:  note.Content,
		Tags:     types.NormalizeTags(note.Tags),
		Starred:  note.Starred,
		Archived: note.Archived,
	}
}

// openNote switches the session to the given note, prompting first when the
// current draft has unsaved changes.
func (m *Model) openNote(note *types.Note) {
	if note == nil {
		return
	}
	if note.ID == m.session.noteID && !m.session.IsNew() {
		m.setFocus(focusContent)
		return
	}
	if m.session.Dirty() {
		m.pending = pendingSwitch
		m.pendingID = note.ID
		m.confirm.Open("Unsaved changes", "Discard changes and open \""+note.DisplayTitle()+"\"?", "Discard", "Keep editing")
		return
	}
	m.doOpen(note)
}

func (m *Model) doOpen(note *types.Note) {
	m.session.Load(note)
	m.syncInputsFromDraft()
	m.setFocus(focusContent)
}

func (m *Model) newNote() {
	if m.session.Dirty() {
		m.pending = pendingNew
		m.confirm.Open("Unsaved changes", "Discard changes and start a new note?", "Discard", "Keep editing")
		return
	}
	m.doNew()
}

func (m *Model) doNew() {
	m.session.Reset()
	m.syncInputsFromDraft()
	m.setFocus(focusTitle)
}

func (m *Model) requestDelete(note *types.Note) {
	if note == nil {
		return
	}
	m.pending = pendingDelete
	m.pendingID = note.ID
	m.confirm.Open("Delete note", "Delete \""+note.DisplayTitle()+"\"? This cannot be undone.", "Delete", "Cancel")
}

func (m *Model) requestQuit() tea.Cmd {
	if !m.session.Dirty() {
		return tea.Quit
	}
	m.pending = pendingQuit
	m.confirm.Open("Unsaved changes", "Quit and discard unsaved changes?", "Quit", "Keep editing")
	return nil
}

func (m *Model) resolvePending(confirmed bool) tea.Cmd {
	pending, id := m.pending, m.pendingID
	m.pending = pendingNone
	m.pendingID = ""
	m.confirm.Close()
	if !confirmed {
		return nil
	}
	switch pending {
	case pendingSwitch:
		if note := m.collection.ByID(id); note != nil {
			m.doOpen(note)
		}
	case pendingNew:
		m.doNew()
	case pendingDelete:
		return m.startDelete(id)
	case pendingQuit:
		return tea.Quit
	}
	return nil
}

func (m *Model) visibleNotes() []*types.Note {
	filter := collectionFilter{
		query:        m.searchQuery,
		showArchived: m.showArchived,
		tag:          m.tagFilter,
	}
	return m.collection.Visible(filter, m.sortMode)
}

func (m *Model) highlightedNote() *types.Note {
	visible := m.visibleNotes()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return nil
	}
	return visible[m.cursor]
}

func (m *Model) clampCursor() {
	count := len(m.visibleNotes())
	if count == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= count {
		m.cursor = count - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// cycleTagFilter steps through no-filter and each known tag in order.
func (m *Model) cycleTagFilter() {
	tags := m.collection.AllTags()
	if len(tags) == 0 {
		m.tagFilter = ""
		return
	}
	if m.tagFilter == "" {
		m.tagFilter = tags[0]
	} else {
		next := ""
		for i, tag := range tags {
			if tag == m.tagFilter && i+1 < len(tags) {
				next = tags[i+1]
				break
			}
		}
		m.tagFilter = next
	}
	m.clampCursor()
}

func (m *Model) setFocus(target focusTarget) {
	m.focus = target
	m.searchInput.Blur()
	m.titleInput.Blur()
	m.tagsInput.Blur()
	m.contentArea.Blur()
	switch target {
	case focusSearch:
		m.searchInput.Focus()
	case focusTitle:
		m.titleInput.Focus()
	case focusTags:
		m.tagsInput.Focus()
	case focusContent:
		m.contentArea.Focus()
	}
}

func (m *Model) syncInputsFromDraft() {
	m.titleInput.SetValue(m.session.draft.title)
	m.tagsInput.SetValue(strings.Join(m.session.draft.tags, ", "))
	m.contentArea.SetValue(m.session.draft.content)
}

// syncDraftFromInputs copies the editor widgets back into the draft and
// reports whether anything changed.
func (m *Model) syncDraftFromInputs() bool {
	title := m.titleInput.Value()
	content := m.contentArea.Value()
	tags := parseTagInput(m.tagsInput.Value())

	changed := title != m.session.draft.title ||
		content != m.session.draft.content ||
		!types.TagSetsEqual(tags, m.session.draft.tags)
	if !changed {
		return false
	}
	m.session.draft.title = title
	m.session.draft.content = content
	m.session.draft.tags = tags
	return true
}

func parseTagInput(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

func (m *Model) resizeInputs() {
	sidebar := m.sidebarWidth()
	editor := m.width - sidebar - 1
	if editor < minEditorWidth {
		editor = minEditorWidth
	}
	m.searchInput.Width = sidebar - 4
	m.titleInput.Width = editor - 2
	m.tagsInput.Width = editor - 2
	contentWidth := editor
	if m.layout == layoutSplit {
		contentWidth = editor / 2
	}
	m.contentArea.SetWidth(contentWidth)
	height := m.height - 8
	if height < minContentHeight {
		height = minContentHeight
	}
	m.contentArea.SetHeight(height)
}

func (m *Model) sidebarWidth() int {
	w := m.width / 3
	if w < minSidebarWidth {
		w = minSidebarWidth
	}
	if w > maxSidebarWidth {
		w = maxSidebarWidth
	}
	if w > m.width {
		w = m.width
	}
	return w
}
