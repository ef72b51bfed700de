package container

import (
	"sync"

	"gorm.io/gorm"

	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services"
	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/config"
	Logger "github.com/Riju7407/STAGEJHOOK-main/pkg/logger"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService

	// 文件存储与URL归一化
	blobService services.InterfaceBlobService
	urlService  services.InterfaceURLService

	// 业务服务
	adminService      services.InterfaceAdminService
	portfolioService  services.InterfacePortfolioService
	exhibitionService services.InterfaceExhibitionService
	enquiryService    services.InterfaceEnquiryService
	statsService      services.InterfaceStatsService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}
	if cfg == nil {
		panic("配置为空")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config, c.db)
	c.redisService = services.NewRedisService(c.config)

	// 测试Redis连接，失败只降级不阻塞启动
	if err := c.redisService.Ping(); err != nil {
		Logger.Warning("Redis连接测试失败: %v，响应缓存功能降级", err)
	}

	// 初始化存储相关服务
	c.blobService = services.NewBlobService(c.config)
	c.urlService = services.NewURLService(c.config)

	// 初始化业务服务
	c.adminService = services.NewAdminService(c.db, c.config)
	c.portfolioService = services.NewPortfolioService(c.db, c.config, c.blobService, c.urlService)
	c.exhibitionService = services.NewExhibitionService(c.db, c.config, c.blobService, c.urlService)
	c.enquiryService = services.NewEnquiryService(c.db, c.config)
	c.statsService = services.NewStatsService(c.db)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "blob":
		return c.blobService
	case "url":
		return c.urlService
	case "admin":
		return c.adminService
	case "portfolio":
		return c.portfolioService
	case "exhibition":
		return c.exhibitionService
	case "enquiry":
		return c.enquiryService
	case "stats":
		return c.statsService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
