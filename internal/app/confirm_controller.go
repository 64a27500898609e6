package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmChoice int

const (
	confirmChoiceNone confirmChoice = iota
	confirmChoiceConfirm
	confirmChoiceCancel
)

const confirmMaxWidth = 56

// ConfirmController is the modal yes/no dialog used for destructive actions
// and for leaving a dirty editor.
type ConfirmController struct {
	active       bool
	title        string
	message      string
	confirmLabel string
	cancelLabel  string
	selected     int
}

func NewConfirmController() *ConfirmController {
	return &ConfirmController{}
}

func (c *ConfirmController) IsOpen() bool {
	return c != nil && c.active
}

func (c *ConfirmController) Open(title, message, confirmLabel, cancelLabel string) {
	if c == nil {
		return
	}
	c.active = true
	c.title = strings.TrimSpace(title)
	c.message = strings.TrimSpace(message)
	if confirmLabel == "" {
		confirmLabel = "Confirm"
	}
	if cancelLabel == "" {
		cancelLabel = "Cancel"
	}
	c.confirmLabel = confirmLabel
	c.cancelLabel = cancelLabel
	c.selected = 1
}

func (c *ConfirmController) Close() {
	if c == nil {
		return
	}
	c.active = false
	c.title = ""
	c.message = ""
	c.confirmLabel = ""
	c.cancelLabel = ""
	c.selected = 0
}

// HandleKey consumes a key while the dialog is open. The first return value
// reports whether the key was handled.
func (c *ConfirmController) HandleKey(msg tea.KeyMsg) (bool, confirmChoice) {
	if c == nil || !c.active {
		return false, confirmChoiceNone
	}
	switch msg.String() {
	case "esc", "q":
		return true, confirmChoiceCancel
	case "left", "h":
		c.selected = 0
		return true, confirmChoiceNone
	case "right", "l":
		c.selected = 1
		return true, confirmChoiceNone
	case "tab":
		c.selected = 1 - c.selected
		return true, confirmChoiceNone
	case "y":
		return true, confirmChoiceConfirm
	case "n":
		return true, confirmChoiceCancel
	case "enter":
		if c.selected == 0 {
			return true, confirmChoiceConfirm
		}
		return true, confirmChoiceCancel
	}
	return true, confirmChoiceNone
}

func (c *ConfirmController) View(maxWidth int) string {
	if c == nil || !c.active {
		return ""
	}
	width := confirmMaxWidth
	if maxWidth > 0 && maxWidth-4 < width {
		width = maxWidth - 4
	}
	if width < 20 {
		width = 20
	}

	confirmBtn := "[ " + c.confirmLabel + " ]"
	cancelBtn := "[ " + c.cancelLabel + " ]"
	if c.selected == 0 {
		confirmBtn = confirmButtonActiveStyle.Render(confirmBtn)
		cancelBtn = confirmButtonStyle.Render(cancelBtn)
	} else {
		confirmBtn = confirmButtonStyle.Render(confirmBtn)
		cancelBtn = confirmButtonActiveStyle.Render(cancelBtn)
	}

	var body strings.Builder
	if c.title != "" {
		body.WriteString(confirmTitleStyle.Render(c.title))
		body.WriteString("\n\n")
	}
	if c.message != "" {
		body.WriteString(c.message)
		body.WriteString("\n\n")
	}
	body.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, confirmBtn, "  ", cancelBtn))

	return confirmDialogStyle.Width(width).Render(body.String())
}
