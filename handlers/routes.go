package handlers

import (
	"github.com/gin-gonic/gin"
	"go-link-shortener/config"
)

// RegisterRoutes sets up all the routes for the link shortener service.
// Short codes are not resolved here; there is no redirect route.
func RegisterRoutes(r *gin.Engine, handler LinkHandlerInterface, config *config.Config) {
	r.Use(CORSMiddleware())

	var limited []gin.HandlerFunc
	if !config.DisableRateLimit {
		limited = append(limited, handler.RateLimitMiddleware())
	}

	v1 := r.Group("/api/v1", limited...)
	{
		links := v1.Group("/links")
		{
			links.POST("", handler.CreateLink)
			links.GET("", handler.ListLinks)
			links.GET("/:short_code", handler.GetLink)
			links.DELETE("/:short_code", handler.DeleteLink)
		}

		v1.GET("/analytics", handler.GetAnalytics)
		v1.POST("/analytics", handler.PostAnalytics)
	}

	r.GET("/health", append(limited, handler.HealthCheck)...)
	r.GET("/metrics", handler.Metrics)
}
