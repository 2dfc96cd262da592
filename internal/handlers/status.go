package handlers

import (
	"time"

	"github.com/digital-companion/companion/db"
	"github.com/gin-gonic/gin"
)

func Status(c *gin.Context) {
	database := "ok"

	if sqlDB, err := db.DB.DB(); err != nil || sqlDB.Ping() != nil {
		database = "unreachable"
	}

	c.JSON(200, gin.H{
		"status":    "ok",
		"message":   "Companion API is running",
		"database":  database,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
