package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-landwatch/analysis"
	"go-landwatch/boundary"
	"go-landwatch/geocode"
	"go-landwatch/handlers"
	"go-landwatch/render"
)

// Deps are the collaborators the handlers are bound to. Geocoder, Overlay and
// Gatherer may be nil.
type Deps struct {
	Searcher     handlers.Searcher
	Analyzer     analysis.Analyzer
	Geocoder     geocode.Geocoder
	Overlay      *boundary.Overlay
	Styles       render.Styles
	RenderClient render.SearchClient
	Gatherer     prometheus.Gatherer
	StaticDir    string
}

// allowAllOrigins lets a page served from elsewhere call the API.
func allowAllOrigins() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), allowAllOrigins())

	r.GET("/", func(c *gin.Context) {
		handlers.Page(c, d.RenderClient, d.Styles, d.Overlay)
	})

	if d.StaticDir != "" {
		r.Static("/static", d.StaticDir)
	}

	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	// api routes
	api := r.Group("/api")
	{
		api.GET("/search", func(c *gin.Context) {
			handlers.Search(c, d.Searcher)
		})
		api.GET("/top_impact", func(c *gin.Context) {
			handlers.TopImpact(c, d.Searcher)
		})
		api.GET("/health", func(c *gin.Context) {
			handlers.Health(c, d.Searcher)
		})
		api.POST("/analyze", func(c *gin.Context) {
			handlers.Analyze(c, d.Analyzer)
		})
		api.GET("/geocode", func(c *gin.Context) {
			handlers.Geocode(c, d.Geocoder)
		})
		api.GET("/boundaries", func(c *gin.Context) {
			handlers.Boundaries(c, d.Overlay)
		})
		api.GET("/render", func(c *gin.Context) {
			handlers.RenderJSON(c, d.RenderClient, d.Styles)
		})
	}

	return r
}
