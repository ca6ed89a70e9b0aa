package api

import (
	"fmt"
	"time"

	"schedulestorm-backend/internal/components/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter wires the handler's routes with tracing, request logging
// and panic recovery.
func NewRouter(h *Handler, tel telemetry.API) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("stormd"))
	r.Use(requestLogger(tel))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	{
		unis := v1.Group("/unis")
		unis.GET("", h.ListUniversities)
		unis.GET("/:uni/terms", h.ListTerms)
		unis.GET("/:uni/locations", h.ListLocations)
		unis.GET("/:uni/:term/all", h.GetCatalog)
	}
	return r
}

func requestLogger(tel telemetry.API) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		tel.ReportDebug(
			fmt.Sprintf("%s %s", c.Request.Method, c.Request.URL.Path),
			c.Writer.Status(),
			time.Since(start).String(),
		)
	}
}
