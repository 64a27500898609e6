package app

import (
	"strings"
	"time"
)

type toastLevel int

const (
	toastLevelInfo toastLevel = iota
	toastLevelWarning
	toastLevelError
)

const toastDuration = 1500 * time.Millisecond

func (m *Model) showInfoToast(message string) {
	m.showToast(toastLevelInfo, message)
}

func (m *Model) showWarningToast(message string) {
	m.showToast(toastLevelWarning, message)
}

func (m *Model) showErrorToast(message string) {
	m.showToast(toastLevelError, message)
}

func (m *Model) showToast(level toastLevel, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	m.toastText = message
	m.toastLevel = level
	m.toastUntil = time.Now().Add(toastDuration)
}

func (m *Model) clearToast() {
	m.toastText = ""
	m.toastLevel = toastLevelInfo
	m.toastUntil = time.Time{}
}

func (m *Model) toastActive(at time.Time) bool {
	if strings.TrimSpace(m.toastText) == "" {
		return false
	}
	if m.toastUntil.IsZero() {
		return true
	}
	if at.IsZero() {
		at = time.Now()
	}
	return at.Before(m.toastUntil)
}

func (m *Model) toastView() string {
	if !m.toastActive(time.Now()) {
		return ""
	}
	switch m.toastLevel {
	case toastLevelWarning:
		return toastWarningStyle.Render(" " + m.toastText + " ")
	case toastLevelError:
		return toastErrorStyle.Render(" " + m.toastText + " ")
	default:
		return toastInfoStyle.Render(" " + m.toastText + " ")
	}
}
