package handlers

import (
	"net/http"

	intconfig "rehabus/internal/config"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func DBCheck(env intconfig.Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := intconfig.EnsureDB(env); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "up"})
	}
}
