// Package export renders a saved trip as a packing checklist file.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jask/packit/internal/trip"
)

// Format is a checklist file format.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Checklist is the exported view of a trip.
type Checklist struct {
	Trip            Header   `toml:"trip" json:"trip"`
	Weight          Weight   `toml:"weight" json:"weight"`
	Recommendations []string `toml:"recommendations,omitempty" json:"recommendations"`
	Items           []Entry  `toml:"item,omitempty" json:"items"`
	Steps           []Step   `toml:"step,omitempty" json:"steps"`
}

type Header struct {
	ID           string `toml:"id" json:"id"`
	Destination  string `toml:"destination" json:"destination"`
	StartDate    string `toml:"start_date" json:"start_date"`
	EndDate      string `toml:"end_date" json:"end_date"`
	Airline      string `toml:"airline,omitempty" json:"airline,omitempty"`
	TravelClass  string `toml:"travel_class" json:"travel_class"`
	Purpose      string `toml:"purpose" json:"purpose"`
	DurationDays int    `toml:"duration_days,omitempty" json:"duration_days,omitempty"`
	SuitcaseL    int    `toml:"suitcase_l,omitempty" json:"suitcase_l,omitempty"`
	SuitcaseDims string `toml:"suitcase_dims,omitempty" json:"suitcase_dims,omitempty"`
}

type Weight struct {
	TotalKg    float64 `toml:"total_kg" json:"total_kg"`
	LimitKg    float64 `toml:"limit_kg" json:"limit_kg"`
	Percentage float64 `toml:"percentage" json:"percentage"`
	Status     string  `toml:"status" json:"status"`
	Caption    string  `toml:"caption" json:"caption"`
}

type Entry struct {
	Name     string  `toml:"name" json:"name"`
	Quantity int     `toml:"quantity" json:"quantity"`
	Category string  `toml:"category" json:"category"`
	WeightG  float64 `toml:"weight_g,omitempty" json:"weight_g,omitempty"`
}

type Step struct {
	Title string   `toml:"title" json:"title"`
	Body  string   `toml:"body,omitempty" json:"body,omitempty"`
	Items []string `toml:"items,omitempty" json:"items,omitempty"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want .toml or .json)", filepath.Ext(path))
	}
}

// FromTrip builds the checklist. Items follow the packing plan's order when
// there is one.
func FromTrip(c trip.Canonical) Checklist {
	cl := Checklist{
		Trip: Header{
			ID:          c.ID,
			Destination: c.Destination,
			StartDate:   c.StartDate,
			EndDate:     c.EndDate,
			Airline:     c.Airline,
			TravelClass: c.TravelClass,
			Purpose:     c.Purpose,
		},
		Recommendations: []string{},
		Items:           []Entry{},
		Steps:           []Step{},
	}
	if days, ok := c.DurationDays(); ok {
		cl.Trip.DurationDays = days
	}
	if c.SuitcaseSizeL != nil {
		cl.Trip.SuitcaseL = *c.SuitcaseSizeL
	}
	if c.SuitcaseDims != nil {
		cl.Trip.SuitcaseDims = DimsLabel(*c.SuitcaseDims)
	}

	ws := c.Weight()
	cl.Weight = Weight{
		TotalKg:    ws.TotalKg,
		LimitKg:    ws.LimitKg,
		Percentage: ws.Percentage,
		Status:     status(ws),
		Caption:    ws.Caption(),
	}

	for _, s := range c.AcceptedRecommendations {
		cl.Recommendations = append(cl.Recommendations, s.Text)
	}
	items := c.OrderedList()
	if len(items) == 0 {
		items = c.Items
	}
	for _, it := range items {
		cl.Items = append(cl.Items, Entry{
			Name:     it.Name,
			Quantity: it.Quantity,
			Category: string(it.Category),
			WeightG:  it.WeightGrams(),
		})
	}
	for _, s := range c.Steps() {
		cl.Steps = append(cl.Steps, Step{Title: s.Title, Body: s.Body, Items: s.Items})
	}
	return cl
}

func status(ws trip.WeightStatus) string {
	switch {
	case ws.OverLimit:
		return "over"
	case ws.NearLimit:
		return "near"
	default:
		return "ok"
	}
}

// DimsLabel renders dimensions as "L × W × D cm".
func DimsLabel(d trip.Dims) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return f(d.LengthCm) + " × " + f(d.WidthCm) + " × " + f(d.DepthCm) + " cm"
}

// Write encodes the checklist for c to w.
func Write(w io.Writer, format Format, c trip.Canonical) error {
	cl := FromTrip(c)
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(cl); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cl); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
	return nil
}

// WriteFile writes the checklist to path, choosing the format from its
// extension.
func WriteFile(path string, c trip.Canonical) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, format, c); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
