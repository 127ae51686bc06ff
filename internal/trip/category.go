package trip

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxCategoryDistance bounds how far a drifted category string may be from a
// known category before it is treated as Other.
const maxCategoryDistance = 2

var categoryAliases = map[string]Category{
	"clothes":       CategoryClothing,
	"apparel":       CategoryClothing,
	"toiletry":      CategoryToiletries,
	"hygiene":       CategoryToiletries,
	"electronic":    CategoryElectronics,
	"tech":          CategoryElectronics,
	"gadgets":       CategoryElectronics,
	"document":      CategoryDocuments,
	"papers":        CategoryDocuments,
	"medication":    CategoryMedications,
	"medicine":      CategoryMedications,
	"meds":          CategoryMedications,
	"footwear":      CategoryShoes,
	"shoe":          CategoryShoes,
	"accessory":     CategoryAccessories,
	"misc":          CategoryOther,
	"custom":        CategoryOther,
	"miscellaneous": CategoryOther,
}

// ParseCategory maps a free-form category string onto the closest known
// Category. Exact (case-insensitive) names and aliases win; otherwise the
// nearest name within a small edit distance is used, and anything else is
// Other.
func ParseCategory(s string) Category {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return CategoryOther
	}
	for _, c := range Categories {
		if strings.ToLower(string(c)) == key {
			return c
		}
	}
	if c, ok := categoryAliases[key]; ok {
		return c
	}
	best, bestDist := CategoryOther, maxCategoryDistance+1
	for _, c := range Categories {
		d := levenshtein.ComputeDistance(key, strings.ToLower(string(c)))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
