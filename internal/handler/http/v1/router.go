package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Health-check доступен без ключа
	api.GET("/system/health", h.healthCheck)

	protected := api.Group("")
	if len(h.cfg.APIKeys) > 0 {
		protected.Use(APIKeyAuthMiddleware(h.cfg, h.logger))
	}

	// Управление трекингом
	tracking := protected.Group("/tracking")
	{
		tracking.POST("/start", h.startTracking)
		tracking.POST("/stop", h.stopTracking)
		tracking.GET("/status", h.trackingStatus)
		tracking.POST("/sample", h.sampleNow)
	}

	// Фиксы и сохраненные сэмплы
	protected.POST("/fixes", h.pushFix)
	locations := protected.Group("/locations")
	{
		locations.GET("", h.listLocations)
		locations.DELETE("", h.clearLocations)
	}

	// Статистика
	stats := protected.Group("/stats")
	{
		stats.GET("", h.getStats)
		stats.GET("/chart.png", h.getStatsChart)
	}

	// Разрешения платформы
	permissions := protected.Group("/permissions")
	{
		permissions.GET("", h.listPermissions)
		permissions.PUT("/:name", h.setPermission)
	}
}
