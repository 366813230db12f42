package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/tidwall/gjson"
)

// ErrUnknownPreset is returned when a named preset is not in the file.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is one named transform from a preset library:
//
//	{"presets": {"quarter-turn": {"euler_degrees": [0, 0, 90], "translation": [0, 0, 2]}}}
type Preset struct {
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Rotation     []float64 `json:"rotation,omitempty"`
	EulerDegrees []float64 `json:"euler_degrees,omitempty"`
	EulerOrder   string    `json:"euler_order,omitempty"`
	Translation  []float64 `json:"translation,omitempty"`
}

// LoadPresets reads a preset library file.
func LoadPresets(path string) (map[string]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read presets %s: %w", path, err)
	}
	return ParsePresets(data)
}

// ParsePresets decodes the "presets" object of a preset library.
func ParsePresets(data []byte) (map[string]Preset, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("config: presets: invalid JSON")
	}
	root := gjson.GetBytes(data, "presets")
	if !root.IsObject() {
		return nil, fmt.Errorf("config: presets: missing \"presets\" object")
	}

	out := make(map[string]Preset)
	root.ForEach(func(key, value gjson.Result) bool {
		p := Preset{
			Name:         key.String(),
			Description:  value.Get("description").String(),
			Rotation:     floats(value.Get("rotation")),
			EulerDegrees: floats(value.Get("euler_degrees")),
			EulerOrder:   value.Get("euler_order").String(),
			Translation:  floats(value.Get("translation")),
		}
		out[p.Name] = p
		return true
	})
	return out, nil
}

// PresetNames returns the preset names in sorted order.
func PresetNames(presets map[string]Preset) []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// floats returns nil for a missing field so that absence is distinguishable
// from an empty list. A field that is present but not a list of numbers
// yields an empty list, which Transform reports as incomplete.
func floats(r gjson.Result) []float64 {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	if !r.IsArray() {
		return []float64{}
	}
	arr := r.Array()
	out := make([]float64, len(arr))
	for i, v := range arr {
		if v.Type != gjson.Number {
			return []float64{}
		}
		out[i] = v.Float()
	}
	return out
}
