package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"nts/internal/types"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.confirm.IsOpen() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View(m.width))
	}

	header := m.headerView()
	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.sidebarView(),
		dividerStyle.Render(" │ "),
		m.editorView(),
	)
	footer := m.footerView()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) headerView() string {
	left := headerStyle.Render("nts")
	if m.user != nil {
		left += statusStyle.Render("  " + m.user.Login)
	}
	right := statusStyle.Render("sort: " + m.sortMode.String())
	if m.showArchived {
		right += statusStyle.Render("  archived")
	}
	if m.tagFilter != "" {
		right += tagFilterStyle.Render("  #" + m.tagFilter)
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) sidebarView() string {
	width := m.sidebarWidth()
	var b strings.Builder
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	visible := m.visibleNotes()
	if m.loading {
		b.WriteString(statusStyle.Render("Loading..."))
	} else if len(visible) == 0 {
		b.WriteString(statusStyle.Render("No notes."))
	}

	maxRows := m.listHeight()
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}
	for i := start; i < len(visible) && i-start < maxRows; i++ {
		note := visible[i]
		line := m.noteLine(note, width-2)
		if i == m.cursor && m.focus == focusSidebar {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (m Model) noteLine(note *types.Note, width int) string {
	marker := "  "
	if note.Starred {
		marker = starredStyle.Render("★ ")
	}
	title := note.DisplayTitle()
	if note.ID == m.session.noteID && m.session.noteID != "" {
		title = "· " + title
	}
	line := marker + noteStyle.Render(xansi.Truncate(title, width-2, "…"))
	if note.Archived {
		line = marker + archivedStyle.Render(xansi.Truncate(title, width-2, "…"))
	}
	meta := formatRelativeTime(note.UpdatedAt, time.Now())
	if len(note.Tags) > 0 {
		meta += " " + tagStyle.Render("#"+strings.Join(note.Tags, " #"))
	}
	if meta != "" {
		line += "\n    " + noteMetaStyle.Render(xansi.Truncate(meta, width-4, "…"))
	}
	return line
}

func (m Model) listHeight() int {
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) editorView() string {
	width := m.width - m.sidebarWidth() - 3
	if width < minEditorWidth {
		width = minEditorWidth
	}

	var b strings.Builder
	b.WriteString(fieldLabelStyle.Render("Title "))
	b.WriteString(m.titleInput.View())
	b.WriteString("\n")
	b.WriteString(fieldLabelStyle.Render("Tags  "))
	b.WriteString(m.tagsInput.View())
	b.WriteString("\n")
	b.WriteString(dividerStyle.Render(strings.Repeat("─", width)))
	b.WriteString("\n")

	switch m.layout {
	case layoutPreview:
		b.WriteString(renderMarkdown(m.session.draft.content, width))
	case layoutSplit:
		half := width / 2
		preview := renderMarkdown(m.session.draft.content, half-1)
		left := lipgloss.NewStyle().Width(half).Render(m.contentArea.View())
		right := lipgloss.NewStyle().Width(half).Render(preview)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, dividerStyle.Render("│"), right))
	default:
		b.WriteString(m.contentArea.View())
	}

	out := b.String()
	return xansi.Hardwrap(lipgloss.NewStyle().Width(width).Render(out), width, true)
}

func (m Model) footerView() string {
	state := m.sessionStateView()
	help := m.helpView()
	line := state + statusStyle.Render("  "+m.status)
	if toast := m.toastView(); toast != "" {
		line += "  " + toast
	}
	return line + "\n" + help
}

// sessionStateView names the edit session's state: Saved, Unsaved changes,
// or Saving.
func (m Model) sessionStateView() string {
	if m.gate.state == gateSaving {
		return savingStyle.Render("Saving...")
	}
	if m.gate.state == gateDeleting {
		return savingStyle.Render("Deleting...")
	}
	if m.session.Dirty() {
		return dirtyStyle.Render("Unsaved changes")
	}
	return savedStyle.Render("Saved")
}

func (m Model) helpView() string {
	switch m.focus {
	case focusSidebar:
		return helpStyle.Render("enter open · n new · d delete · * star · x archive · s sort · a archived · t tag · / search · q quit")
	case focusSearch:
		return helpStyle.Render("enter apply · esc clear")
	default:
		return helpStyle.Render("esc list · tab next field · ctrl+s save · ctrl+p preview · ctrl+y copy · ctrl+e export")
	}
}

func formatRelativeTime(t time.Time, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2 2006")
	}
}
