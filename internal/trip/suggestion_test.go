package trip

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCustomSuggestionID(t *testing.T) {
	require.Equal(t, "custom:sunglasses", CustomSuggestionID("Sunglasses"))
	require.Equal(t, "custom:travel-adapter-plug", CustomSuggestionID("  Travel   Adapter\tplug "))
}

func TestAddCustomSuggestionIsIdempotent(t *testing.T) {
	list, inserted := AddCustomSuggestion(nil, "Sunglasses")
	require.True(t, inserted)
	require.Len(t, list, 1)
	require.Equal(t, Suggestion{ID: "custom:sunglasses", Text: "Sunglasses", Category: "custom", Reason: "User-added", Selected: true}, list[0])

	again, inserted := AddCustomSuggestion(list, "sunglasses")
	require.False(t, inserted)
	require.Len(t, again, 1)

	blank, inserted := AddCustomSuggestion(list, "   ")
	require.False(t, inserted)
	require.Equal(t, list, blank)
}

func TestToggleSuggestion(t *testing.T) {
	list := []Suggestion{{ID: "a", Text: "Umbrella"}, {ID: "b", Text: "Hat", Selected: true}}

	toggled, ok := ToggleSuggestion(list, "a")
	require.True(t, ok)
	require.True(t, toggled[0].Selected)
	require.False(t, list[0].Selected, "input slice must not be mutated")

	same, ok := ToggleSuggestion(list, "missing")
	require.False(t, ok)
	require.Equal(t, list, same)

	require.Equal(t, []Suggestion{{ID: "b", Text: "Hat", Selected: true}}, SelectedSuggestions(list))
	require.NotNil(t, SelectedSuggestions(nil))
}

func TestReplaceSuggestions(t *testing.T) {
	got := ReplaceSuggestions([]Suggestion{
		{ID: "s1", Text: "Umbrella"},
		{Text: "Rain Jacket"},
		{Text: "  "},
		{ID: "s1", Text: "Duplicate"},
	})
	require.Len(t, got, 2)
	require.Equal(t, "s1", got[0].ID)
	require.Equal(t, "ai:rain-jacket", got[1].ID)
}

func TestSuggestionAsItem(t *testing.T) {
	it := Suggestion{ID: "x", Text: "Power bank", Selected: true}.AsItem()
	require.Equal(t, Item{Name: "Power bank", Quantity: 1, Category: CategoryOther}, it)
}

func TestParseCategory(t *testing.T) {
	tests := map[string]Category{
		"Clothing":   CategoryClothing,
		"clothing":   CategoryClothing,
		"Clothes":    CategoryClothing,
		"Electroncs": CategoryElectronics,
		"meds":       CategoryMedications,
		"":           CategoryOther,
		"spaceship":  CategoryOther,
		"Shoess":     CategoryShoes,
	}
	for in, want := range tests {
		require.Equal(t, want, ParseCategory(in), "input %q", in)
	}
}
