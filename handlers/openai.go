package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-landwatch/analysis"
)

// Analyze runs the document analyzer on a posted title and abstract.
func Analyze(c *gin.Context, a analysis.Analyzer) {
	var request struct {
		Title    string `json:"title" binding:"required"`
		Abstract string `json:"abstract"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := a.Analyze(c.Request.Context(), request.Title, request.Abstract)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "analysis": result})
		return
	}

	c.JSON(http.StatusOK, result)
}
