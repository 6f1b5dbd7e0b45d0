package boundary

import (
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/paulmach/orb/geojson"

	"go-landwatch/render"
)

const (
	defaultName = "Unknown Area"
	defaultType = "National Park Service"
)

var popupTemplate = template.Must(template.New("boundary").Parse(`<strong>{{.Name}}</strong><br>{{.Type}}`))

// Style mirrors the Leaflet path options of one overlay polygon.
type Style struct {
	FillColor   string  `json:"fillColor"`
	Weight      int     `json:"weight"`
	Opacity     float64 `json:"opacity"`
	Color       string  `json:"color"`
	FillOpacity float64 `json:"fillOpacity"`
}

type Polygon struct {
	Name     string
	UnitType string
	Agency   string
	Style    Style
	Popup    template.HTML
	Feature  *geojson.Feature
}

// Overlay is the static boundary layer. It is loaded once and never refreshed.
type Overlay struct {
	Polygons []Polygon
}

// Load reads a GeoJSON FeatureCollection from disk.
func Load(path string, styles render.Styles) (*Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read boundary file: %w", err)
	}
	return Parse(data, styles)
}

func Parse(data []byte, styles render.Styles) (*Overlay, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse boundary geojson: %w", err)
	}

	overlay := &Overlay{Polygons: make([]Polygon, 0, len(fc.Features))}
	for _, f := range fc.Features {
		agency := stringProp(f.Properties, "AGENCY", "")
		name := stringProp(f.Properties, "UNIT_NAME", defaultName)
		unitType := stringProp(f.Properties, "UNIT_TYPE", defaultType)

		var sb strings.Builder
		if err := popupTemplate.Execute(&sb, struct{ Name, Type string }{name, unitType}); err != nil {
			return nil, fmt.Errorf("render boundary popup: %w", err)
		}

		overlay.Polygons = append(overlay.Polygons, Polygon{
			Name:     name,
			UnitType: unitType,
			Agency:   agency,
			Style: Style{
				FillColor:   styles.AgencyColor(agency),
				Weight:      1,
				Opacity:     1,
				Color:       "white",
				FillOpacity: 0.4,
			},
			Popup:   template.HTML(sb.String()),
			Feature: f,
		})
	}
	return overlay, nil
}

// FeatureCollection returns the overlay as GeoJSON with "style" and "popup"
// properties added to every feature, ready for L.geoJSON on the page.
func (o *Overlay) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if o == nil {
		return fc
	}
	for _, p := range o.Polygons {
		f := geojson.NewFeature(p.Feature.Geometry)
		f.ID = p.Feature.ID
		for k, v := range p.Feature.Properties {
			f.Properties[k] = v
		}
		f.Properties["style"] = p.Style
		f.Properties["popup"] = string(p.Popup)
		fc.Append(f)
	}
	return fc
}

func (o *Overlay) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Polygons)
}

func stringProp(props geojson.Properties, key, def string) string {
	if s, ok := props[key].(string); ok && s != "" {
		return s
	}
	return def
}
