// Package trip holds the packing-plan data model shared by the wizard, the
// normalizer and the persistence layers, plus the pure calculations derived
// from it.
package trip

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Category classifies a packed item.
type Category string

const (
	CategoryClothing    Category = "Clothing"
	CategoryToiletries  Category = "Toiletries"
	CategoryElectronics Category = "Electronics"
	CategoryDocuments   Category = "Documents"
	CategoryMedications Category = "Medications"
	CategoryShoes       Category = "Shoes"
	CategoryAccessories Category = "Accessories"
	CategoryOther       Category = "Other"
)

// Categories lists every Category in display order.
var Categories = []Category{
	CategoryClothing,
	CategoryToiletries,
	CategoryElectronics,
	CategoryDocuments,
	CategoryMedications,
	CategoryShoes,
	CategoryAccessories,
	CategoryOther,
}

// Catalog values offered by the details step.
var (
	TravelClasses = []string{"Economy", "Premium Economy", "Business", "First"}
	Purposes      = []string{"Vacation", "Business", "Adventure", "Family Visit", "Other"}
	SuitcaseSizes = []SuitcaseSize{
		{Liters: 40, Label: "Carry-on"},
		{Liters: 60, Label: "Medium"},
		{Liters: 90, Label: "Large"},
	}
)

const (
	DefaultLimitKg      = 23.0
	DefaultSuitcaseL    = 40
	DefaultTravelClass  = "Economy"
	DefaultPurpose      = "Vacation"
	DefaultLuggageType  = "suitcase"
	StatusCompleted     = "completed"
	customCategory      = "custom"
	customReason        = "User-added"
	customSuggestionTag = "custom:"
)

// SuitcaseSize is one entry of the discrete suitcase catalog.
type SuitcaseSize struct {
	Liters int
	Label  string
}

// Item is one line of the packing list. Weight is in grams and nil until
// estimated.
type Item struct {
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Category Category `json:"category"`
	Weight   *float64 `json:"weight,omitempty"`
}

// NewItem trims the name and clamps quantity to at least one.
func NewItem(name string, quantity int, category Category) Item {
	if quantity < 1 {
		quantity = 1
	}
	if category == "" {
		category = CategoryOther
	}
	return Item{Name: strings.TrimSpace(name), Quantity: quantity, Category: category}
}

// WeightGrams returns the estimated weight or zero.
func (it Item) WeightGrams() float64 {
	if it.Weight == nil {
		return 0
	}
	return *it.Weight
}

// Suggestion is a toggleable recommendation, AI-sourced or user-added.
type Suggestion struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
	Reason   string `json:"reason"`
	Selected bool   `json:"selected"`
}

// Dims are suitcase dimensions in centimetres.
type Dims struct {
	LengthCm float64 `json:"lengthCm"`
	WidthCm  float64 `json:"widthCm"`
	DepthCm  float64 `json:"depthCm"`
}

// Complete reports whether every dimension is positive.
func (d Dims) Complete() bool {
	return d.LengthCm > 0 && d.WidthCm > 0 && d.DepthCm > 0
}

// SuitcaseSpec describes the luggage being packed. Dims is nil unless all
// three dimensions are known, in which case VolumeLiters is derived from it.
type SuitcaseSpec struct {
	VolumeLiters int
	Dims         *Dims
}

// OptimizationResult splits the weighed items when the total exceeds the limit.
type OptimizationResult struct {
	Keep       []Item  `json:"keep"`
	Drop       []Item  `json:"drop"`
	TotalGrams float64 `json:"totalG"`
	LimitGrams float64 `json:"limitG"`
}

// PackingStep is one instruction of the packing strategy.
type PackingStep struct {
	Title string   `json:"title"`
	Body  string   `json:"body,omitempty"`
	Items []string `json:"items,omitempty"`
}

// PackingPlan is the ordered strategy returned for the current items.
type PackingPlan struct {
	SuitcaseSizeL int           `json:"suitcaseSizeL"`
	SuitcaseDims  *Dims         `json:"suitcaseDims"`
	OrderedItems  []Item        `json:"orderedPackingList"`
	Steps         []PackingStep `json:"steps"`
}

// Suitcase returns the plan's suitcase as a SuitcaseSpec.
func (p PackingPlan) Suitcase() SuitcaseSpec {
	return SuitcaseSpec{VolumeLiters: p.SuitcaseSizeL, Dims: p.SuitcaseDims}
}

// Details are the trip facts collected by the first wizard step.
type Details struct {
	Destination string
	StartDate   string
	EndDate     string
	Airline     string
	TravelClass string
	Purpose     string
	LimitKg     float64
}

// DimsInput holds the raw text of the manual dimension fields.
type DimsInput struct {
	Length string
	Width  string
	Depth  string
}

// Draft is the in-progress trip owned by a wizard session.
type Draft struct {
	Details
	Suitcase       SuitcaseSpec
	DimsInput      DimsInput
	Items          []Item
	Suggestions    []Suggestion
	SuggestionsRaw json.RawMessage
	TotalWeightKg  float64
	Optimization   *OptimizationResult
	Plan           *PackingPlan
}

// NewDraft returns an empty draft with catalog defaults applied.
func NewDraft() Draft {
	return Draft{
		Details: Details{
			TravelClass: DefaultTravelClass,
			Purpose:     DefaultPurpose,
			LimitKg:     DefaultLimitKg,
		},
		Suitcase: SuitcaseSpec{VolumeLiters: DefaultSuitcaseL},
	}
}

// Canonical is the normalized read model of a persisted trip.
type Canonical struct {
	ID                      string              `json:"id"`
	Destination             string              `json:"destination"`
	StartDate               string              `json:"start_date"`
	EndDate                 string              `json:"end_date"`
	Airline                 string              `json:"airline"`
	TravelClass             string              `json:"travel_class"`
	Purpose                 string              `json:"purpose"`
	Status                  string              `json:"status"`
	AirlineLimitKg          float64             `json:"airline_limit"`
	TotalWeightKg           float64             `json:"total_weight"`
	SuitcaseSizeL           *int                `json:"suitcaseSizeL"`
	SuitcaseDims            *Dims               `json:"suitcase_dims,omitempty"`
	AcceptedRecommendations []Suggestion        `json:"accepted_recommendations"`
	PackingPlan             *PackingPlan        `json:"packing_plan"`
	PackingSteps            []PackingStep       `json:"packing_steps"`
	Optimization            *OptimizationResult `json:"optimization,omitempty"`
	Items                   []Item              `json:"items"`
	CreatedAt               time.Time           `json:"created_at"`
}

// DurationDays returns the whole days between start and end (at least one),
// or false when either date does not parse.
func (c Canonical) DurationDays() (int, bool) {
	start, ok := ParseDate(c.StartDate)
	if !ok {
		return 0, false
	}
	end, ok := ParseDate(c.EndDate)
	if !ok {
		return 0, false
	}
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days, true
}

// OrderedList returns the plan's ordered packing list.
func (c Canonical) OrderedList() []Item {
	if c.PackingPlan == nil {
		return nil
	}
	return c.PackingPlan.OrderedItems
}

// Steps prefers the plan's steps and falls back to the flat step list.
func (c Canonical) Steps() []PackingStep {
	if c.PackingPlan != nil && len(c.PackingPlan.Steps) > 0 {
		return c.PackingPlan.Steps
	}
	return c.PackingSteps
}

// Weight classifies the stored total against the stored limit.
func (c Canonical) Weight() WeightStatus {
	return ClassifyWeight(c.TotalWeightKg, c.AirlineLimitKg)
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano, "2006-01-02 15:04:05"}

// ParseDate accepts plain dates and the timestamp layouts backends emit.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
