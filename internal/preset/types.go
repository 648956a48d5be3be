// types.go
package preset

import (
	"github.com/xtding233/roulette/internal/roulette"
	"github.com/xtding233/roulette/internal/sharecode"
)

// RawPreset is one YAML file as written on disk. presets/default.yaml uses the
// same shape and supplies fallbacks for every named preset.
type RawPreset struct {
	Version string    `yaml:"version"`
	Title   string    `yaml:"title,omitempty"`
	Draws   *int      `yaml:"draws,omitempty"`
	Weight  *float64  `yaml:"weight,omitempty"` // weight for items that omit one
	Items   []RawItem `yaml:"items,omitempty"`
	Notes   string    `yaml:"notes,omitempty"`
}

type RawItem struct {
	Name   string   `yaml:"name"`
	Weight *float64 `yaml:"weight,omitempty"`
}

// Preset is a merged, validated item list ready to seed a session.
type Preset struct {
	Name    string          `json:"name"`
	Title   string          `json:"title,omitempty"`
	Version string          `json:"version,omitempty"`
	Items   []roulette.Item `json:"items"`
	Draws   int             `json:"draws"`
}

// State converts the preset into the shareable session state.
func (p Preset) State() sharecode.State {
	return sharecode.State{Items: roulette.CloneItems(p.Items), DrawCount: p.Draws}
}

// resolve fills defaults in a merged RawPreset.
func resolve(name string, raw RawPreset) Preset {
	def := 1.0
	if raw.Weight != nil {
		def = *raw.Weight
	}
	draws := 1
	if raw.Draws != nil {
		draws = *raw.Draws
	}
	items := make([]roulette.Item, len(raw.Items))
	for i, it := range raw.Items {
		w := def
		if it.Weight != nil {
			w = *it.Weight
		}
		items[i] = roulette.Item{Name: it.Name, Weight: w}
	}
	return Preset{
		Name:    name,
		Title:   raw.Title,
		Version: raw.Version,
		Items:   items,
		Draws:   draws,
	}
}
