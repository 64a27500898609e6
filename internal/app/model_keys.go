package app

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm.IsOpen() {
		handled, choice := m.confirm.HandleKey(msg)
		if !handled {
			return m, nil
		}
		switch choice {
		case confirmChoiceConfirm:
			return m, m.resolvePending(true)
		case confirmChoiceCancel:
			return m, m.resolvePending(false)
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, m.requestQuit()
	case "ctrl+s":
		if m.syncDraftFromInputs() {
			m.session.BumpEdit()
		}
		return m, m.trySave(true)
	case "ctrl+n":
		m.newNote()
		return m, nil
	case "ctrl+p":
		m.layout = m.layout.next()
		m.resizeInputs()
		return m, nil
	case "ctrl+y":
		m.copyOpenNote()
		return m, nil
	case "ctrl+e":
		m.exportOpenNote()
		return m, nil
	case "ctrl+l":
		return m, logoutCmd(m.api)
	}

	switch m.focus {
	case focusSidebar:
		return m.handleSidebarKey(msg)
	case focusSearch:
		return m.handleSearchKey(msg)
	default:
		return m.handleEditorKey(msg)
	}
}

func (l viewLayout) next() viewLayout {
	switch l {
	case layoutEdit:
		return layoutPreview
	case layoutPreview:
		return layoutSplit
	default:
		return layoutEdit
	}
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, m.requestQuit()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.visibleNotes())-1 {
			m.cursor++
		}
		return m, nil
	case "g", "home":
		m.cursor = 0
		return m, nil
	case "G", "end":
		if count := len(m.visibleNotes()); count > 0 {
			m.cursor = count - 1
		}
		return m, nil
	case "enter", "l":
		m.openNote(m.highlightedNote())
		return m, nil
	case "n":
		m.newNote()
		return m, nil
	case "d":
		m.requestDelete(m.highlightedNote())
		return m, nil
	case "s":
		m.sortMode = m.sortMode.next()
		m.clampCursor()
		return m, nil
	case "a":
		m.showArchived = !m.showArchived
		m.clampCursor()
		return m, nil
	case "t":
		m.cycleTagFilter()
		return m, nil
	case "*":
		return m, m.toggleNoteFlag(m.highlightedNote(), true)
	case "x":
		return m, m.toggleNoteFlag(m.highlightedNote(), false)
	case "/":
		m.setFocus(focusSearch)
		return m, nil
	case "r":
		if m.user != nil {
			m.loading = true
			return m, fetchNotesCmd(m.api, m.user.ID)
		}
		return m, fetchUserCmd(m.api)
	case "tab":
		if !m.session.IsNew() || m.session.Dirty() {
			m.setFocus(focusTitle)
		}
		return m, nil
	}
	return m, nil
}

// handleSearchKey feeds the search box and debounces the applied query so a
// keystroke burst filters once, not per key.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchInput.SetValue("")
		m.searchQuery = ""
		m.setFocus(focusSidebar)
		m.clampCursor()
		return m, nil
	case "enter":
		m.searchQuery = m.searchInput.Value()
		m.setFocus(focusSidebar)
		m.clampCursor()
		return m, nil
	case "tab", "down":
		m.setFocus(focusSidebar)
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.searchSeq++
	return m, tea.Batch(cmd, searchTickCmd(m.searchSeq, m.cfg.SearchDelay()))
}

// handleEditorKey feeds the focused editor widget, then re-reads the draft
// and arms the autosave debounce when something actually changed.
func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.setFocus(focusSidebar)
		return m, nil
	case "tab":
		// Tab moves between fields; inside the content area it stays an
		// ordinary character.
		if m.focus != focusContent {
			if m.focus == focusTitle {
				m.setFocus(focusTags)
			} else {
				m.setFocus(focusContent)
			}
			return m, nil
		}
	case "shift+tab":
		switch m.focus {
		case focusContent:
			m.setFocus(focusTags)
		case focusTags:
			m.setFocus(focusTitle)
		default:
			m.setFocus(focusSidebar)
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case focusTags:
		m.tagsInput, cmd = m.tagsInput.Update(msg)
	default:
		m.contentArea, cmd = m.contentArea.Update(msg)
	}

	if !m.syncDraftFromInputs() {
		return m, cmd
	}
	seq := m.session.BumpEdit()
	if !m.cfg.AutosaveEnabled() {
		return m, cmd
	}
	return m, tea.Batch(cmd, autosaveTickCmd(seq, m.cfg.AutosaveDelay()))
}
