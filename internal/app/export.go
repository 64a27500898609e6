package app

import (
	"os"
	"regexp"
	"strings"

	"github.com/atotto/clipboard"
)

var exportSlugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// exportFileName derives a filesystem-safe markdown name from a note title.
func exportFileName(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = exportSlugPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "note"
	}
	return slug + ".md"
}

// exportContents renders the draft as a standalone markdown document.
func exportContents(d draftFields) string {
	var b strings.Builder
	title := strings.TrimSpace(d.title)
	if title == "" {
		title = untitledNoteTitle
	}
	b.WriteString("# " + title + "\n")
	if len(d.tags) > 0 {
		b.WriteString("\nTags: " + strings.Join(d.tags, ", ") + "\n")
	}
	content := strings.TrimSpace(d.content)
	if content != "" {
		b.WriteString("\n" + content + "\n")
	}
	return b.String()
}

func (m *Model) copyOpenNote() {
	content := strings.TrimSpace(m.session.draft.content)
	if content == "" {
		m.showWarningToast("Nothing to copy")
		return
	}
	if err := clipboard.WriteAll(content); err != nil {
		m.logger.Warn().Err(err).Msg("clipboard copy")
		m.showErrorToast("Copy failed")
		return
	}
	m.showInfoToast("Copied to clipboard")
}

func (m *Model) exportOpenNote() {
	if strings.TrimSpace(m.session.draft.title) == "" && strings.TrimSpace(m.session.draft.content) == "" {
		m.showWarningToast("Nothing to export")
		return
	}
	name := exportFileName(m.session.draft.title)
	if err := os.WriteFile(name, []byte(exportContents(m.session.draft)), 0o644); err != nil {
		m.logger.Warn().Err(err).Msg("export note")
		m.showErrorToast("Export failed")
		return
	}
	m.showInfoToast("Exported " + name)
}
