package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConfirmDefaultsToCancel(t *testing.T) {
	c := NewConfirmController()
	c.Open("Delete note", "Sure?", "Delete", "Cancel")

	handled, choice := c.HandleKey(keyMsg("enter"))
	if !handled || choice != confirmChoiceCancel {
		t.Fatalf("enter on default selection should cancel, got %v", choice)
	}
}

func TestConfirmYesAndNoShortcuts(t *testing.T) {
	c := NewConfirmController()
	c.Open("", "Sure?", "", "")

	if _, choice := c.HandleKey(keyMsg("y")); choice != confirmChoiceConfirm {
		t.Fatalf("y should confirm, got %v", choice)
	}
	if _, choice := c.HandleKey(keyMsg("n")); choice != confirmChoiceCancel {
		t.Fatalf("n should cancel, got %v", choice)
	}
	if _, choice := c.HandleKey(keyMsg("esc")); choice != confirmChoiceCancel {
		t.Fatalf("esc should cancel, got %v", choice)
	}
}

func TestConfirmArrowThenEnter(t *testing.T) {
	c := NewConfirmController()
	c.Open("", "Sure?", "", "")

	c.HandleKey(keyMsg("left"))
	if _, choice := c.HandleKey(keyMsg("enter")); choice != confirmChoiceConfirm {
		t.Fatalf("enter after selecting confirm should confirm, got %v", choice)
	}
}

func TestConfirmSwallowsOtherKeys(t *testing.T) {
	c := NewConfirmController()
	c.Open("", "Sure?", "", "")

	handled, choice := c.HandleKey(keyMsg("d"))
	if !handled || choice != confirmChoiceNone {
		t.Fatal("open dialog must swallow unrelated keys")
	}
}

func TestClosedConfirmIgnoresKeys(t *testing.T) {
	c := NewConfirmController()
	if handled, _ := c.HandleKey(keyMsg("y")); handled {
		t.Fatal("closed dialog must not handle keys")
	}
}
