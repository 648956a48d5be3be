package httpapi

import (
	"github.com/xtding233/roulette/internal/roulette"
	"github.com/xtding233/roulette/internal/sharecode"
)

// StateRequest is the JSON body of POST /v1/spin and POST /v1/share.
type StateRequest struct {
	Items []ItemDTO `json:"items"`
	Draws int       `json:"draws"`
}

type ItemDTO struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// SpinResponse is returned by both spin endpoints.
type SpinResponse struct {
	Results  []string  `json:"results"`
	Items    []ItemDTO `json:"items"`
	Draws    int       `json:"draws"`
	ShareURL string    `json:"share_url"`
}

type ShareResponse struct {
	Query    string `json:"query"`
	ShareURL string `json:"share_url"`
}

type RestoreResponse struct {
	Items []ItemDTO `json:"items"`
	Draws int       `json:"draws"`
	Empty bool      `json:"empty"`
}

type PresetListResponse struct {
	Presets []string `json:"presets"`
}

type PresetResponse struct {
	Name     string    `json:"name"`
	Title    string    `json:"title,omitempty"`
	Items    []ItemDTO `json:"items"`
	Draws    int       `json:"draws"`
	ShareURL string    `json:"share_url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (r StateRequest) state() sharecode.State {
	items := make([]roulette.Item, len(r.Items))
	for i, it := range r.Items {
		items[i] = roulette.Item{Name: it.Name, Weight: it.Weight}
	}
	return sharecode.State{Items: items, DrawCount: r.Draws}
}

func toItemDTOs(items []roulette.Item) []ItemDTO {
	out := make([]ItemDTO, len(items))
	for i, it := range items {
		out[i] = ItemDTO{Name: it.Name, Weight: it.Weight}
	}
	return out
}
