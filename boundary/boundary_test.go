package boundary

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-landwatch/render"
)

const sample = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"AGENCY": "USFS", "UNIT_NAME": "Tongass", "UNIT_TYPE": "National Forest"},
     "geometry": {"type": "Polygon", "coordinates": [[[-135,57],[-134,57],[-134,58],[-135,57]]]}},
    {"type": "Feature", "properties": {"UNIT_NAME": "Yosemite"},
     "geometry": {"type": "Polygon", "coordinates": [[[-120,37],[-119,37],[-119,38],[-120,37]]]}},
    {"type": "Feature", "properties": {"AGENCY": "BOR", "UNIT_NAME": "<Lake>"},
     "geometry": {"type": "Polygon", "coordinates": [[[-112,36],[-111,36],[-111,37],[-112,36]]]}},
    {"type": "Feature", "properties": null,
     "geometry": {"type": "Polygon", "coordinates": [[[-100,40],[-99,40],[-99,41],[-100,40]]]}}
  ]
}`

func TestParse(t *testing.T) {
	overlay, err := Parse([]byte(sample), render.DefaultStyles())
	require.NoError(t, err)
	require.Equal(t, 4, overlay.Len())

	forest := overlay.Polygons[0]
	assert.Equal(t, "#6ba368", forest.Style.FillColor)
	assert.Equal(t, "white", forest.Style.Color)
	assert.Equal(t, 1, forest.Style.Weight)
	assert.Equal(t, 0.4, forest.Style.FillOpacity)
	assert.Equal(t, "<strong>Tongass</strong><br>National Forest", string(forest.Popup))

	park := overlay.Polygons[1]
	assert.Equal(t, "#515b3a", park.Style.FillColor, "absent agency uses the default color")
	assert.Equal(t, "National Park Service", park.UnitType)

	lake := overlay.Polygons[2]
	assert.Equal(t, "#515b3a", lake.Style.FillColor, "unknown agency uses the default color")
	assert.Contains(t, string(lake.Popup), "&lt;Lake&gt;")

	bare := overlay.Polygons[3]
	assert.Equal(t, "Unknown Area", bare.Name)
}

func TestParse_NonStringProperties(t *testing.T) {
	data := `{"type": "FeatureCollection", "features": [
	  {"type": "Feature", "properties": {"AGENCY": 7, "UNIT_NAME": null, "UNIT_TYPE": true},
	   "geometry": {"type": "Polygon", "coordinates": [[[-105,39],[-104,39],[-104,40],[-105,39]]]}}
	]}`
	styles := render.DefaultStyles()

	var overlay *Overlay
	var err error
	require.NotPanics(t, func() {
		overlay, err = Parse([]byte(data), styles)
	})
	require.NoError(t, err)
	require.Equal(t, 1, overlay.Len())

	p := overlay.Polygons[0]
	assert.Equal(t, styles.DefaultAgencyColor, p.Style.FillColor)
	assert.Equal(t, "Unknown Area", p.Name)
	assert.Equal(t, "National Park Service", p.UnitType)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nps_boundary.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	overlay, err := Load(path, render.DefaultStyles())
	require.NoError(t, err)
	assert.Equal(t, 4, overlay.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"), render.DefaultStyles())
	assert.Error(t, err)

	_, err = Parse([]byte(`{"type":`), render.DefaultStyles())
	assert.Error(t, err)
}

func TestFeatureCollection(t *testing.T) {
	overlay, err := Parse([]byte(sample), render.DefaultStyles())
	require.NoError(t, err)

	data, err := json.Marshal(overlay.FeatureCollection())
	require.NoError(t, err)

	var decoded struct {
		Features []struct {
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Features, 4)

	props := decoded.Features[0].Properties
	assert.Equal(t, "Tongass", props["UNIT_NAME"])
	style, ok := props["style"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "#6ba368", style["fillColor"])
	assert.Contains(t, props["popup"], "Tongass")

	var nilOverlay *Overlay
	assert.Empty(t, nilOverlay.FeatureCollection().Features)
}
