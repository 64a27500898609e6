package app

import (
	"sort"
	"strings"

	"nts/internal/types"
)

type sortMode int

const (
	sortUpdatedDesc sortMode = iota
	sortUpdatedAsc
	sortTitleAsc
	sortTitleDesc
	sortStarred
)

func (s sortMode) String() string {
	switch s {
	case sortUpdatedAsc:
		return "oldest"
	case sortTitleAsc:
		return "title a-z"
	case sortTitleDesc:
		return "title z-a"
	case sortStarred:
		return "starred"
	default:
		return "recent"
	}
}

func (s sortMode) next() sortMode {
	switch s {
	case sortUpdatedDesc:
		return sortUpdatedAsc
	case sortUpdatedAsc:
		return sortTitleAsc
	case sortTitleAsc:
		return sortTitleDesc
	case sortTitleDesc:
		return sortStarred
	default:
		return sortUpdatedDesc
	}
}

// noteCollection is the client-side cache of the user's notes. The slice is
// kept in server order (most recently updated first); projections sort and
// filter copies, never the cache itself.
type noteCollection struct {
	notes []*types.Note
}

func (c *noteCollection) Replace(notes []*types.Note) {
	c.notes = notes
}

func (c *noteCollection) Len() int {
	return len(c.notes)
}

func (c *noteCollection) ByID(id string) *types.Note {
	for _, note := range c.notes {
		if note != nil && note.ID == id {
			return note
		}
	}
	return nil
}

// Upsert reconciles a settled save: a created note is prepended, an updated
// note replaces its cached entry in place. An update for a note the cache no
// longer holds is prepended rather than dropped.
func (c *noteCollection) Upsert(note *types.Note, created bool) {
	if note == nil {
		return
	}
	if !created {
		for i, existing := range c.notes {
			if existing != nil && existing.ID == note.ID {
				c.notes[i] = note
				return
			}
		}
	}
	c.notes = append([]*types.Note{note}, c.notes...)
}

func (c *noteCollection) Remove(id string) {
	for i, note := range c.notes {
		if note != nil && note.ID == id {
			c.notes = append(c.notes[:i], c.notes[i+1:]...)
			return
		}
	}
}

// AllTags returns the distinct normalized tags across the cache, sorted.
func (c *noteCollection) AllTags() []string {
	seen := map[string]bool{}
	var tags []string
	for _, note := range c.notes {
		if note == nil {
			continue
		}
		for _, tag := range note.Tags {
			tag = types.NormalizeTag(tag)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}

// collectionFilter is the visible-list projection: free-text search over
// title, content and tags, an archived toggle, and an optional single-tag
// filter.
type collectionFilter struct {
	query        string
	showArchived bool
	tag          string
}

func (f collectionFilter) matches(note *types.Note) bool {
	if note == nil {
		return false
	}
	if note.Archived != f.showArchived {
		return false
	}
	if f.tag != "" && !note.HasTag(f.tag) {
		return false
	}
	query := strings.ToLower(strings.TrimSpace(f.query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(note.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(note.Content), query) {
		return true
	}
	for _, tag := range note.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// Visible projects the cache through the filter and sort mode. Each mode
// orders purely by its own key; starred-first is its own mode (starred
// ahead of unstarred, most recently updated first within each group).
func (c *noteCollection) Visible(filter collectionFilter, mode sortMode) []*types.Note {
	var visible []*types.Note
	for _, note := range c.notes {
		if filter.matches(note) {
			visible = append(visible, note)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		a, b := visible[i], visible[j]
		switch mode {
		case sortStarred:
			if a.Starred != b.Starred {
				return a.Starred
			}
			return a.UpdatedAt.After(b.UpdatedAt)
		case sortUpdatedAsc:
			return a.UpdatedAt.Before(b.UpdatedAt)
		case sortTitleAsc:
			return strings.ToLower(a.DisplayTitle()) < strings.ToLower(b.DisplayTitle())
		case sortTitleDesc:
			return strings.ToLower(a.DisplayTitle()) > strings.ToLower(b.DisplayTitle())
		default:
			return a.UpdatedAt.After(b.UpdatedAt)
		}
	})
	return visible
}
