package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/paulmach/orb/geojson"

	"go-landwatch/processor"
	"go-landwatch/render"
)

//go:embed templates/page.html
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/page.html"))

// Modes are the choices of the mode selector, in display order.
var Modes = []string{processor.ModeRecent, processor.ModeSignificant, processor.ModeTopImpact}

// Page is everything the map page shows for one request.
type Page struct {
	RequestID  string
	Query      string
	Mode       string
	Modes      []string
	Scene      render.SceneSnapshot
	Styles     render.Styles
	Boundaries *geojson.FeatureCollection
}

// Render writes the page. Modes defaults to the full mode list.
func Render(w io.Writer, p Page) error {
	if p.Modes == nil {
		p.Modes = Modes
	}
	if p.Mode == "" {
		p.Mode = render.DefaultMode
	}
	if p.Scene.Entries == nil {
		p.Scene.Entries = []*render.Entry{}
	}
	if p.Scene.Markers == nil {
		p.Scene.Markers = []*render.Marker{}
	}
	if err := pageTemplate.ExecuteTemplate(w, "page.html", p); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
