package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services/container"
	"github.com/Riju7407/STAGEJHOOK-main/internal/error/response"
	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/database"
)

// HealthCheckController 健康检查控制器
type HealthCheckController struct {
	Container *container.ServiceContainer
	Pool      *database.ConnectionPool
}

// NewHealthCheckController 创建健康检查控制器实例
func NewHealthCheckController(container *container.ServiceContainer, pool *database.ConnectionPool) *HealthCheckController {
	return &HealthCheckController{
		Container: container,
		Pool:      pool,
	}
}

// Ping 健康检查端点
// 报告数据库、Redis连通性与当前文件存储模式
func (h *HealthCheckController) Ping(c *gin.Context) {
	dbStatus := "up"
	if h.Pool != nil {
		if err := h.Pool.Ping(); err != nil {
			dbStatus = "down"
		}
	}

	redisStatus := "up"
	redisService := h.Container.GetService("redis").(services.InterfaceRedisService)
	if err := redisService.Ping(); err != nil {
		redisStatus = "down"
	}

	blobService := h.Container.GetService("blob").(services.InterfaceBlobService)

	status := "healthy"
	if dbStatus == "down" {
		status = "degraded"
	}

	response.Success(c, gin.H{
		"status":  status,
		"message": "pong",
		"checks": gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
			"storage":  blobService.Mode(),
		},
	})
}
