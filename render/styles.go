package render

import (
	"go-landwatch/types"
)

// Styles holds every lookup table the renderer and the boundary overlay use.
// It is passed in at construction time and can be overridden from the config file.
type Styles struct {
	CategoryColors    map[types.Category]string `yaml:"category_colors" json:"category_colors"`
	DefaultColor      string                    `yaml:"default_color" json:"default_color"`
	ImpactRadius      map[types.Impact]int      `yaml:"impact_radius" json:"impact_radius"`
	DefaultRadius     int                       `yaml:"default_radius" json:"default_radius"`
	HighImpactOpacity float64                   `yaml:"high_impact_opacity" json:"high_impact_opacity"`
	DefaultOpacity    float64                   `yaml:"default_opacity" json:"default_opacity"`
	StrokeColor       string                    `yaml:"stroke_color" json:"stroke_color"`
	StrokeWeight      int                       `yaml:"stroke_weight" json:"stroke_weight"`

	FocusZoom       int              `yaml:"focus_zoom" json:"focus_zoom"`
	DefaultCenter   types.Coordinate `yaml:"default_center" json:"default_center"`
	DefaultZoom     int              `yaml:"default_zoom" json:"default_zoom"`
	MinZoom         int              `yaml:"min_zoom" json:"min_zoom"`
	MaxZoom         int              `yaml:"max_zoom" json:"max_zoom"`
	Bounds          types.Bounds     `yaml:"bounds" json:"bounds"`
	BoundsViscosity float64          `yaml:"bounds_viscosity" json:"bounds_viscosity"`

	AgencyColors       map[string]string `yaml:"agency_colors" json:"agency_colors"`
	DefaultAgencyColor string            `yaml:"default_agency_color" json:"default_agency_color"`
}

func DefaultStyles() Styles {
	return Styles{
		CategoryColors: map[types.Category]string{
			types.Mining:               "orange",
			types.Logging:              "green",
			types.LandTransfer:         "red",
			types.ConservationRollback: "darkred",
			types.OtherCategory:        "blue",
		},
		DefaultColor: "blue",
		ImpactRadius: map[types.Impact]int{
			types.High:   15,
			types.Medium: 10,
			types.Low:    6,
		},
		DefaultRadius:     8,
		HighImpactOpacity: 0.9,
		DefaultOpacity:    0.6,
		StrokeColor:       "#fff",
		StrokeWeight:      2,

		FocusZoom:       7,
		DefaultCenter:   types.USCenter,
		DefaultZoom:     4,
		MinZoom:         3,
		MaxZoom:         13,
		Bounds:          types.Bounds{South: 5.0, West: -179.0, North: 75.0, East: -50.0},
		BoundsViscosity: 0.8,

		AgencyColors: map[string]string{
			"NPS":  "#353d2f",
			"USFS": "#6ba368",
			"BLM":  "#ffd8a8",
			"FWS":  "#9cfc97",
		},
		DefaultAgencyColor: "#515b3a",
	}
}

func (s Styles) MarkerRadius(impact types.Impact) int {
	if r, ok := s.ImpactRadius[impact]; ok {
		return r
	}
	return s.DefaultRadius
}

func (s Styles) MarkerColor(category types.Category) string {
	if c, ok := s.CategoryColors[category]; ok && c != "" {
		return c
	}
	return s.DefaultColor
}

func (s Styles) MarkerOpacity(impact types.Impact) float64 {
	if impact == types.High {
		return s.HighImpactOpacity
	}
	return s.DefaultOpacity
}

// AgencyColor resolves an overlay fill color; absent or unknown agencies get the default.
func (s Styles) AgencyColor(agency string) string {
	if c, ok := s.AgencyColors[agency]; ok && c != "" {
		return c
	}
	return s.DefaultAgencyColor
}

// Merge overlays the non-zero fields of o onto s. Maps are merged key by key.
func (s Styles) Merge(o Styles) Styles {
	out := s
	out.CategoryColors = mergeMap(s.CategoryColors, o.CategoryColors)
	out.ImpactRadius = mergeMap(s.ImpactRadius, o.ImpactRadius)
	out.AgencyColors = mergeMap(s.AgencyColors, o.AgencyColors)
	if o.DefaultColor != "" {
		out.DefaultColor = o.DefaultColor
	}
	if o.DefaultRadius != 0 {
		out.DefaultRadius = o.DefaultRadius
	}
	if o.HighImpactOpacity != 0 {
		out.HighImpactOpacity = o.HighImpactOpacity
	}
	if o.DefaultOpacity != 0 {
		out.DefaultOpacity = o.DefaultOpacity
	}
	if o.StrokeColor != "" {
		out.StrokeColor = o.StrokeColor
	}
	if o.StrokeWeight != 0 {
		out.StrokeWeight = o.StrokeWeight
	}
	if o.FocusZoom != 0 {
		out.FocusZoom = o.FocusZoom
	}
	if o.DefaultCenter != (types.Coordinate{}) {
		out.DefaultCenter = o.DefaultCenter
	}
	if o.DefaultZoom != 0 {
		out.DefaultZoom = o.DefaultZoom
	}
	if o.MinZoom != 0 {
		out.MinZoom = o.MinZoom
	}
	if o.MaxZoom != 0 {
		out.MaxZoom = o.MaxZoom
	}
	if o.Bounds != (types.Bounds{}) {
		out.Bounds = o.Bounds
	}
	if o.BoundsViscosity != 0 {
		out.BoundsViscosity = o.BoundsViscosity
	}
	if o.DefaultAgencyColor != "" {
		out.DefaultAgencyColor = o.DefaultAgencyColor
	}
	return out
}

func mergeMap[K comparable, V any](base, over map[K]V) map[K]V {
	out := make(map[K]V, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}
