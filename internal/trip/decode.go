package trip

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Fields is a decoded JSON object whose values are examined lazily, so that
// callers can try several historical field names in order and fall back to
// defaults when a value is missing or has an unexpected type.
type Fields map[string]json.RawMessage

// DecodeFields decodes data as an object. The boolean is false for anything
// that is not a JSON object.
func DecodeFields(data []byte) (Fields, bool) {
	var f Fields
	if err := json.Unmarshal(data, &f); err != nil || f == nil {
		return nil, false
	}
	return f, true
}

// Raw returns the first present, non-null value among keys.
func (f Fields) Raw(keys ...string) (json.RawMessage, bool) {
	for _, k := range keys {
		if v, ok := f[k]; ok && !IsNull(v) {
			return v, true
		}
	}
	return nil, false
}

// Str returns the first non-empty string (or number rendered as text) among
// keys.
func (f Fields) Str(keys ...string) string {
	for _, k := range keys {
		v, ok := f[k]
		if !ok {
			continue
		}
		if s, ok := stringValue(v); ok && s != "" {
			return s
		}
	}
	return ""
}

// Num returns the first value among keys that reads as a number. Numeric
// strings are accepted.
func (f Fields) Num(keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := f[k]
		if !ok || IsNull(v) {
			continue
		}
		if n, ok := NumberValue(v); ok {
			return n, true
		}
	}
	return 0, false
}

// Bool returns the first boolean among keys.
func (f Fields) Bool(keys ...string) bool {
	for _, k := range keys {
		var b bool
		if v, ok := f[k]; ok && json.Unmarshal(v, &b) == nil {
			return b
		}
	}
	return false
}

// IsNull reports whether raw is empty or the JSON null literal.
func IsNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// NumberValue reads a JSON number or a numeric string.
func NumberValue(raw json.RawMessage) (float64, bool) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

func stringValue(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

// DecodeList decodes a JSON array element by element with decode. Values
// that are not arrays yield nil.
func DecodeList[T any](raw json.RawMessage, decode func(json.RawMessage) (T, bool)) []T {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}
	out := make([]T, 0, len(elems))
	for _, e := range elems {
		if v, ok := decode(e); ok {
			out = append(out, v)
		}
	}
	return out
}

// UnmarshalJSON accepts a bare string (the item name) or an object using any
// of the historical field names. It never fails: malformed input decodes to
// an unnamed item of quantity one.
func (it *Item) UnmarshalJSON(data []byte) error {
	*it = decodeItem(data)
	return nil
}

func decodeItem(data []byte) Item {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		return NewItem(name, 1, CategoryOther)
	}
	f, ok := DecodeFields(data)
	if !ok {
		return NewItem("", 1, CategoryOther)
	}
	qty := 1
	if n, ok := f.Num("quantity", "qty", "count"); ok && n >= 1 {
		qty = int(n)
	}
	it := NewItem(f.Str("name", "text", "item"), qty, ParseCategory(f.Str("category")))
	if w, ok := f.Num("weight", "aiWeight", "weightG", "weight_g"); ok {
		it.Weight = &w
	}
	return it
}

// UnmarshalJSON accepts a bare string (the suggestion text) or an object.
func (s *Suggestion) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = Suggestion{Text: strings.TrimSpace(text)}
		return nil
	}
	f, _ := DecodeFields(data)
	*s = Suggestion{
		ID:       f.Str("id"),
		Text:     f.Str("text", "name", "title"),
		Category: f.Str("category"),
		Reason:   f.Str("reason", "why"),
		Selected: f.Bool("selected"),
	}
	return nil
}

// UnmarshalJSON accepts numbers or numeric strings for each dimension.
func (d *Dims) UnmarshalJSON(data []byte) error {
	f, _ := DecodeFields(data)
	l, _ := f.Num("lengthCm", "length_cm", "length")
	w, _ := f.Num("widthCm", "width_cm", "width")
	h, _ := f.Num("depthCm", "depth_cm", "depth", "heightCm")
	*d = Dims{LengthCm: l, WidthCm: w, DepthCm: h}
	return nil
}

// DimsFrom decodes raw into dimensions, returning nil unless all three are
// positive.
func DimsFrom(raw json.RawMessage) *Dims {
	if IsNull(raw) {
		return nil
	}
	var d Dims
	_ = json.Unmarshal(raw, &d)
	if !d.Complete() {
		return nil
	}
	return &d
}

// UnmarshalJSON accepts steps whose items are names or item objects.
func (p *PackingStep) UnmarshalJSON(data []byte) error {
	var title string
	if err := json.Unmarshal(data, &title); err == nil {
		*p = PackingStep{Title: strings.TrimSpace(title)}
		return nil
	}
	f, _ := DecodeFields(data)
	step := PackingStep{
		Title: f.Str("title", "name"),
		Body:  f.Str("body", "description", "text"),
	}
	if raw, ok := f.Raw("items"); ok {
		for _, it := range DecodeList(raw, ItemFromRaw) {
			if it.Name != "" {
				step.Items = append(step.Items, it.Name)
			}
		}
	}
	*p = step
	return nil
}

// UnmarshalJSON accepts camelCase and snake_case plan fields.
func (p *PackingPlan) UnmarshalJSON(data []byte) error {
	f, _ := DecodeFields(data)
	plan := PackingPlan{}
	if n, ok := f.Num("suitcaseSizeL", "suitcase_size_l", "liters"); ok {
		plan.SuitcaseSizeL = int(n)
	}
	if raw, ok := f.Raw("suitcaseDims", "suitcase_dims"); ok {
		plan.SuitcaseDims = DimsFrom(raw)
	}
	if raw, ok := f.Raw("orderedPackingList", "ordered_packing_list", "orderedItems"); ok {
		plan.OrderedItems = DecodeList(raw, ItemFromRaw)
	}
	if raw, ok := f.Raw("steps", "packingSteps", "packing_steps"); ok {
		plan.Steps = DecodeList(raw, StepFromRaw)
	}
	*p = plan
	return nil
}

// UnmarshalJSON accepts keep/drop entries as names or items.
func (o *OptimizationResult) UnmarshalJSON(data []byte) error {
	f, _ := DecodeFields(data)
	res := OptimizationResult{}
	if raw, ok := f.Raw("keep"); ok {
		res.Keep = DecodeList(raw, ItemFromRaw)
	}
	if raw, ok := f.Raw("drop"); ok {
		res.Drop = DecodeList(raw, ItemFromRaw)
	}
	res.TotalGrams, _ = f.Num("totalG", "total_g")
	res.LimitGrams, _ = f.Num("limitG", "limit_g")
	*o = res
	return nil
}

// SuggestionFromRaw decodes one suggestion, skipping entries without text.
func SuggestionFromRaw(raw json.RawMessage) (Suggestion, bool) {
	var s Suggestion
	_ = s.UnmarshalJSON(raw)
	return s, s.Text != ""
}

// ItemFromRaw decodes one item tolerantly.
func ItemFromRaw(raw json.RawMessage) (Item, bool) {
	return decodeItem(raw), true
}

// StepFromRaw decodes one packing step, skipping empty entries.
func StepFromRaw(raw json.RawMessage) (PackingStep, bool) {
	var s PackingStep
	_ = s.UnmarshalJSON(raw)
	return s, s.Title != "" || s.Body != "" || len(s.Items) > 0
}
