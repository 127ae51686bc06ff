package trip

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const nearLimitRatio = 0.9

// ToKilograms converts grams to kilograms.
func ToKilograms(grams float64) float64 {
	return grams / 1000
}

// LitersFromDims returns round(L*W*D/1000) when all three dimensions are
// positive.
func LitersFromDims(lengthCm, widthCm, depthCm float64) (int, bool) {
	if lengthCm <= 0 || widthCm <= 0 || depthCm <= 0 {
		return 0, false
	}
	return int(math.Round(lengthCm * widthCm * depthCm / 1000)), true
}

// NeedsOptimization reports whether the total strictly exceeds the limit.
func NeedsOptimization(totalKg, limitKg float64) bool {
	return totalKg > limitKg
}

// WeightStatus classifies a total weight against a baggage limit.
type WeightStatus struct {
	TotalKg    float64
	LimitKg    float64
	Percentage float64
	OverLimit  bool
	NearLimit  bool
}

// ClassifyWeight computes over/near-limit flags and the capped percentage.
// A zero limit yields a zero percentage.
func ClassifyWeight(totalKg, limitKg float64) WeightStatus {
	ws := WeightStatus{TotalKg: totalKg, LimitKg: limitKg}
	if limitKg != 0 {
		ws.Percentage = math.Min(totalKg/limitKg*100, 100)
	}
	ws.OverLimit = totalKg > limitKg
	ws.NearLimit = totalKg > nearLimitRatio*limitKg && !ws.OverLimit
	return ws
}

// Caption is the one-line summary shown under the weight bar.
func (w WeightStatus) Caption() string {
	switch {
	case w.OverLimit:
		return fmt.Sprintf("Over limit by %.1f kg", w.TotalKg-w.LimitKg)
	case w.NearLimit:
		return fmt.Sprintf("%.1f kg remaining", w.LimitKg-w.TotalKg)
	default:
		return "Within limit"
	}
}

// ParseLimitKg reads the baggage limit field; anything that is not a
// positive number falls back to the default limit.
func ParseLimitKg(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return DefaultLimitKg
	}
	return v
}

// ParseQuantity reads the quantity field; anything below one becomes one.
func ParseQuantity(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ParseDimension reads one manual dimension field. Blank or invalid input
// yields zero.
func ParseDimension(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Dims parses the three text fields; the result is nil unless all three are
// positive.
func (in DimsInput) Dims() *Dims {
	d := Dims{
		LengthCm: ParseDimension(in.Length),
		WidthCm:  ParseDimension(in.Width),
		DepthCm:  ParseDimension(in.Depth),
	}
	if !d.Complete() {
		return nil
	}
	return &d
}

// InputFromDims renders dimensions back into text fields.
func InputFromDims(d Dims) DimsInput {
	return DimsInput{
		Length: formatDim(d.LengthCm),
		Width:  formatDim(d.WidthCm),
		Depth:  formatDim(d.DepthCm),
	}
}

func formatDim(v float64) string {
	if v <= 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
