package types

import (
	"sort"
	"strings"
	"time"
)

// Note is the persisted entity. The server assigns ID and both timestamps;
// CreatedAt never changes after the first save and UpdatedAt strictly
// advances on every successful save.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	Starred   bool      `json:"starred,omitempty"`
	Archived  bool      `json:"archived,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayTitle is what lists show when the title is blank.
func (n *Note) DisplayTitle() string {
	if n == nil {
		return ""
	}
	title := strings.TrimSpace(n.Title)
	if title != "" {
		return title
	}
	return "Untitled"
}

func (n *Note) HasTag(tag string) bool {
	if n == nil {
		return false
	}
	tag = NormalizeTag(tag)
	for _, t := range n.Tags {
		if NormalizeTag(t) == tag {
			return true
		}
	}
	return false
}

// NormalizeTag lowercases and trims a tag the way the editor stores them.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// NormalizeTags trims, lowercases, and deduplicates while preserving the
// first-seen order for display.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := map[string]struct{}{}
	for _, raw := range tags {
		tag := NormalizeTag(raw)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// TagSetsEqual compares two tag lists as sets: order-insensitive, after
// normalization. Reordering tags without changing membership is not a
// content change.
func TagSetsEqual(a, b []string) bool {
	na := NormalizeTags(a)
	nb := NormalizeTags(b)
	if len(na) != len(nb) {
		return false
	}
	sa := append([]string(nil), na...)
	sb := append([]string(nil), nb...)
	sort.Strings(sa)
	sort.Strings(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}
