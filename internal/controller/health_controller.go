package controller

import (
	"context"
	"net/http"
	"time"

	"eduverse_backend/internal/repository"
	"eduverse_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Cache *repository.CacheRepository
}

func NewHealthController(db *gorm.DB, cache *repository.CacheRepository) *HealthController {
	return &HealthController{DB: db, Cache: cache}
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce  json
// @Success 200 {object} map[string]interface{} "ok"
// @Failure 503 {object} map[string]interface{} "degraded"
// @Router /api/health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"database": "up", "cache": "disabled"}
	healthy := true

	sqlDB, err := c.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(reqCtx)
	}
	if err != nil {
		logger.Log.Error("Database health check failed", zap.Error(err))
		status["database"] = "down"
		healthy = false
	}

	if c.Cache.Enabled() {
		status["cache"] = "up"
		if err := c.Cache.Ping(reqCtx); err != nil {
			logger.Log.Warn("Cache health check failed", zap.Error(err))
			status["cache"] = "down"
		}
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	ctx.JSON(code, gin.H{"success": healthy, "status": status})
}
