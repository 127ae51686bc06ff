package trip

import (
	"strings"
)

// Slug lowercases text and collapses whitespace runs into single hyphens.
func Slug(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), "-")
}

// CustomSuggestionID derives the id of a user-added suggestion.
func CustomSuggestionID(text string) string {
	return customSuggestionTag + Slug(strings.TrimSpace(text))
}

// ReplaceSuggestions installs a fresh AI response as the whole list. Entries
// without text are dropped and entries without an id get one derived from
// their text; later duplicates of an id are skipped.
func ReplaceSuggestions(incoming []Suggestion) []Suggestion {
	out := make([]Suggestion, 0, len(incoming))
	seen := make(map[string]struct{}, len(incoming))
	for _, s := range incoming {
		s.Text = strings.TrimSpace(s.Text)
		if s.Text == "" {
			continue
		}
		if s.ID == "" {
			s.ID = "ai:" + Slug(s.Text)
		}
		if _, dup := seen[s.ID]; dup {
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}
	return out
}

// AddCustomSuggestion appends a selected, user-added suggestion. Blank text
// and ids already present are no-ops; the boolean reports an insert.
func AddCustomSuggestion(list []Suggestion, text string) ([]Suggestion, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return list, false
	}
	id := CustomSuggestionID(text)
	if _, ok := FindSuggestion(list, id); ok {
		return list, false
	}
	out := make([]Suggestion, len(list), len(list)+1)
	copy(out, list)
	out = append(out, Suggestion{
		ID:       id,
		Text:     text,
		Category: customCategory,
		Reason:   customReason,
		Selected: true,
	})
	return out, true
}

// ToggleSuggestion flips Selected on the entry with id.
func ToggleSuggestion(list []Suggestion, id string) ([]Suggestion, bool) {
	idx := indexOfSuggestion(list, id)
	if idx < 0 {
		return list, false
	}
	out := make([]Suggestion, len(list))
	copy(out, list)
	out[idx].Selected = !out[idx].Selected
	return out, true
}

// FindSuggestion looks up an entry by id.
func FindSuggestion(list []Suggestion, id string) (Suggestion, bool) {
	idx := indexOfSuggestion(list, id)
	if idx < 0 {
		return Suggestion{}, false
	}
	return list[idx], true
}

// SelectedSuggestions returns the accepted entries in list order. The result
// is never nil.
func SelectedSuggestions(list []Suggestion) []Suggestion {
	out := make([]Suggestion, 0, len(list))
	for _, s := range list {
		if s.Selected {
			out = append(out, s)
		}
	}
	return out
}

// AsItem converts a suggestion into a single packing item of category Other.
func (s Suggestion) AsItem() Item {
	return NewItem(s.Text, 1, CategoryOther)
}

func indexOfSuggestion(list []Suggestion, id string) int {
	for i, s := range list {
		if s.ID == id {
			return i
		}
	}
	return -1
}
