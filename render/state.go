package render

import (
	"html/template"

	"go-landwatch/types"
)

// Marker is one circle on the map for one coordinate of one event.
type Marker struct {
	ID          string        `json:"id"`
	Entry       int           `json:"entry"`
	Lat         float64       `json:"lat"`
	Lng         float64       `json:"lng"`
	Label       string        `json:"label,omitempty"`
	Radius      int           `json:"radius"`
	FillColor   string        `json:"fill_color"`
	Color       string        `json:"color"`
	Weight      int           `json:"weight"`
	FillOpacity float64       `json:"fill_opacity"`
	Popup       template.HTML `json:"popup"`
}

func (m *Marker) Position() types.Coordinate {
	return types.Coordinate{Lat: m.Lat, Lng: m.Lng, Label: m.Label}
}

// Focus is where the map goes when an entry is clicked.
type Focus struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Zoom     int     `json:"zoom"`
	MarkerID string  `json:"marker_id,omitempty"`
}

// Entry is one sidebar row. It is shared by all markers of its event.
type Entry struct {
	Index           int                     `json:"index"`
	Category        types.Category          `json:"category"`
	CategoryLabel   string                  `json:"category_label"`
	Effect          types.EnvironmentEffect `json:"environment_effect"`
	EffectLabel     string                  `json:"effect_label"`
	EffectClass     string                  `json:"effect_class"`
	Title           string                  `json:"title"`
	PublicationDate string                  `json:"publication_date"`
	Impact          types.Impact            `json:"impact"`
	ImpactLabel     string                  `json:"impact_label"`
	HTML            template.HTML           `json:"html"`
	Focus           Focus                   `json:"focus"`

	// Target is the marker of the first coordinate, nil when the event has none.
	Target *Marker `json:"-"`

	onClick func()
}

// Click runs the entry's click action against the map it was rendered on.
func (e *Entry) Click() {
	if e.onClick != nil {
		e.onClick()
	}
}

// State is everything one search rendered. A new State is created for every
// search; an old one is never reused.
type State struct {
	ID         string    `json:"id"`
	Generation uint64    `json:"generation"`
	Query      string    `json:"query"`
	Mode       string    `json:"mode"`
	Entries    []*Entry  `json:"entries"`
	Markers    []*Marker `json:"markers"`
}
