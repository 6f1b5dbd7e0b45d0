package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"go-landwatch/boundary"
	"go-landwatch/render"
	"go-landwatch/view"
)

// renderScene runs one renderer search against a fresh in-memory scene.
func renderScene(c *gin.Context, client render.SearchClient, styles render.Styles, query, mode string) (*render.Scene, *render.State) {
	scene := render.NewScene(styles)
	r := render.New(client, scene, scene, styles)
	r.Search(c.Request.Context(), query, mode)
	return scene, r.State()
}

// Page serves the map page. A search is rendered only when q is present in the
// query string, so the bare page loads without touching the API.
func Page(c *gin.Context, client render.SearchClient, styles render.Styles, overlay *boundary.Overlay) {
	query := c.Query("q")
	mode := c.DefaultQuery("mode", render.DefaultMode)
	requestID := uuid.NewString()

	snapshot := render.NewScene(styles).Snapshot()
	if _, ok := c.GetQuery("q"); ok {
		scene, _ := renderScene(c, client, styles, query, mode)
		snapshot = scene.Snapshot()
	}

	var buf bytes.Buffer
	err := view.Render(&buf, view.Page{
		RequestID:  requestID,
		Query:      query,
		Mode:       mode,
		Scene:      snapshot,
		Styles:     styles,
		Boundaries: overlay.FeatureCollection(),
	})
	if err != nil {
		log.Error().Err(err).Str("request_id", requestID).Msg("page render failed")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// RenderJSON serves GET /api/render?q=&mode= as the render state and scene snapshot.
func RenderJSON(c *gin.Context, client render.SearchClient, styles render.Styles) {
	scene, state := renderScene(c, client, styles, c.Query("q"), c.Query("mode"))
	c.JSON(http.StatusOK, gin.H{
		"state": state,
		"scene": scene.Snapshot(),
	})
}

// Boundaries serves the styled boundary overlay as GeoJSON.
func Boundaries(c *gin.Context, overlay *boundary.Overlay) {
	c.JSON(http.StatusOK, overlay.FeatureCollection())
}
