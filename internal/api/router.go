package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func NewRouter(app App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	users := r.Group("/users/:id", UserIDMiddleware())
	users.POST("/commands/:command", PostCommand(app))
	users.POST("/messages", PostMessage(app))
	users.GET("/export", GetExport(app))
	return r
}
