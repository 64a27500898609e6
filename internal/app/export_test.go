package app

import (
	"strings"
	"testing"
)

func TestExportFileName(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Groceries", "groceries.md"},
		{"  Meeting Notes: Q3!  ", "meeting-notes-q3.md"},
		{"", "note.md"},
		{"***", "note.md"},
	}
	for _, tc := range cases {
		if got := exportFileName(tc.title); got != tc.want {
			t.Fatalf("exportFileName(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestExportContents(t *testing.T) {
	out := exportContents(draftFields{
		title:   "Plans",
		content: "do the thing",
		tags:    []string{"work", "q3"},
	})
	if !strings.HasPrefix(out, "# Plans\n") {
		t.Fatalf("missing title heading: %q", out)
	}
	if !strings.Contains(out, "Tags: work, q3") {
		t.Fatalf("missing tags line: %q", out)
	}
	if !strings.Contains(out, "do the thing") {
		t.Fatalf("missing body: %q", out)
	}

	out = exportContents(draftFields{content: "body"})
	if !strings.HasPrefix(out, "# "+untitledNoteTitle) {
		t.Fatalf("blank title should fall back, got %q", out)
	}
}
