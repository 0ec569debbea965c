package handlers

import (
	"embed"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const rosterTemplate = "roster.html"

//go:embed templates/*.html
var templateFS embed.FS

// SetupRouter wires the page and API routes onto a new gin engine.
func SetupRouter(h *APIHandler) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(h.Log), gin.Recovery())
	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	router.GET("/", h.ShowRoster)

	api := router.Group("/api")
	{
		api.GET("/classes", h.GetClasses)
		api.GET("/students", h.GetStudents)
		api.GET("/ping", PingHandler)
	}
	return router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
