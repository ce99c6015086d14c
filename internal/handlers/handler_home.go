package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// getHealth godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "fbs-backend",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// getMessage godoc
// @Summary Backend liveness message.
// @Description Returns a short message confirming the backend is reachable.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /message [get]
func getMessage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "FBS Backend is running",
		"description": "Personal finance backend with weekly spending feedback",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// getHome godoc
// @Summary Welcome message.
// @Description Returns a short welcome message.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from FBS Backend API v1"})
}
