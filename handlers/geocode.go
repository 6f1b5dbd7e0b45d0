package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"go-landwatch/geocode"
)

// Geocode resolves ?location= with the configured geocoder.
func Geocode(c *gin.Context, g geocode.Geocoder) {
	locationParam := c.Query("location")
	if locationParam == "" {
		locationParam = "Colorado"
	}

	if g == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "geocoding is not configured"})
		return
	}

	// JSON response struct
	type LocationResponse struct {
		Location  string  `json:"location"`
		Found     bool    `json:"found"`
		Longitude float64 `json:"longitude"`
		Latitude  float64 `json:"latitude"`
	}

	responseData := LocationResponse{
		Location: locationParam,
	}

	coord, ok, err := g.Geocode(c.Request.Context(), locationParam)
	if err != nil {
		log.Error().Err(err).Str("location", locationParam).Msg("Error geocoding address")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if ok {
		responseData.Found = true
		responseData.Longitude = coord.Lng
		responseData.Latitude = coord.Lat
	} else {
		log.Info().Str("location", locationParam).Msg("No geocoding results found")
	}

	c.JSON(http.StatusOK, responseData)
}
