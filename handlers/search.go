package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"go-landwatch/processor"
	"go-landwatch/types"
)

// Searcher is the search pipeline as seen by the API.
type Searcher interface {
	Search(ctx context.Context, req processor.SearchRequest) ([]types.PolicyEvent, error)
	CacheSize(ctx context.Context) int
}

// Search serves GET /api/search?q=&mode=&page= as a JSON array of events.
func Search(c *gin.Context, s Searcher) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a positive integer"})
			return
		}
		page = p
	}

	respondEvents(c, s, processor.SearchRequest{
		Query: c.Query("q"),
		Mode:  c.Query("mode"),
		Page:  page,
	})
}

// TopImpact serves GET /api/top_impact?q=.
func TopImpact(c *gin.Context, s Searcher) {
	respondEvents(c, s, processor.SearchRequest{
		Query: c.Query("q"),
		Mode:  processor.ModeTopImpact,
	})
}

func respondEvents(c *gin.Context, s Searcher, req processor.SearchRequest) {
	events, err := s.Search(c.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Str("query", req.Query).Str("mode", req.Mode).Msg("search failed")
		if errors.Is(err, processor.ErrUpstream) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if events == nil {
		events = []types.PolicyEvent{}
	}
	c.JSON(http.StatusOK, events)
}

// Health serves GET /api/health.
func Health(c *gin.Context, s Searcher) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "online",
		"cache_size": s.CacheSize(c.Request.Context()),
	})
}
