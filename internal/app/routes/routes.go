package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/Riju7407/STAGEJHOOK-main/docs"
	"github.com/Riju7407/STAGEJHOOK-main/internal/app/controllers"
	"github.com/Riju7407/STAGEJHOOK-main/internal/app/middleware"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services/container"
	"github.com/Riju7407/STAGEJHOOK-main/internal/error/code"
	"github.com/Riju7407/STAGEJHOOK-main/internal/error/response"
	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/config"
	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/database"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, pool *database.ConnectionPool) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// CORS：只放行配置中的前端地址，登录态走Cookie所以必须带凭证
	r.Use(corsMiddleware(cfg.AllowedOrigins))

	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg, db)
	if redisService, ok := serviceContainer.GetService("redis").(services.InterfaceRedisService); ok {
		if err := redisService.Ping(); err == nil {
			middleware.InitCacheRedis(redisService)
		}
	}

	// 本地上传目录挂到 /uploads，远程存储模式下这里只是回退产物
	r.Static("/uploads", cfg.UploadDir)

	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 欢迎页
	r.GET("/", func(c *gin.Context) {
		response.SuccessWithMessage(c, "STAGEJHOOK API is running", gin.H{
			"docs":   "/swagger/index.html",
			"health": "/api/health",
		})
	})

	// 未匹配路由统一返回JSON
	r.NoRoute(func(c *gin.Context) {
		response.FailWithMessage(c, code.ErrRecordNotFound, "Route not found: "+c.Request.URL.Path, nil)
	})

	registerRoutes(r, serviceContainer, pool)
	return r
}

// corsMiddleware 按白名单回写 CORS 头
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
	pool *database.ConnectionPool,
) {
	api := r.Group("/api")
	registerPublicRoutes(api, container, pool)
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
	pool *database.ConnectionPool,
) {
	// 全局IP限流 - 每秒10个请求，最多突发20个请求
	api.Use(middleware.IPRateLimiter(10, 20))

	// 健康检查路由
	healthController := controllers.NewHealthCheckController(container, pool)
	api.GET("/ping", healthController.Ping)
	api.GET("/health", healthController.Ping)

	// 认证入口
	api.POST("/auth/login", middleware.CombinedRateLimiter(2, 5), controllers.HandleJWTFunc(container, "login"))
	api.POST("/auth/logout", controllers.HandleJWTFunc(container, "logout"))

	// 公开读取接口，带令牌可见未发布内容
	public := api.Group("/")
	public.Use(middleware.OptionalAuthentication())
	public.GET("/portfolio", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandlePortfolioFunc(container, "getPortfolios"))
	public.GET("/portfolio/:id", controllers.HandlePortfolioFunc(container, "getPortfolio"))
	public.GET("/exhibition", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleExhibitionFunc(container, "getExhibitions"))
	public.GET("/exhibition/:id", controllers.HandleExhibitionFunc(container, "getExhibition"))

	// 展位注册与询盘提交（公开写入，收紧限流）
	api.PATCH("/exhibition/:id/register-stall", middleware.CombinedRateLimiter(2, 5), controllers.HandleExhibitionFunc(container, "registerStall"))
	api.POST("/enquiry", middleware.CombinedRateLimiter(2, 5), controllers.HandleEnquiryFunc(container, "createEnquiry"))

	// 首页统计，公开只读
	api.GET("/stats", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), controllers.HandleStatsFunc(container, "getStats"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	auth := api.Group("/")
	auth.Use(middleware.Authentication())
	auth.Use(middleware.RequireAdmin())

	// 认证后限流放宽 - 每秒30个请求，最多突发50个请求
	auth.Use(middleware.IPRateLimiter(30, 50))

	// 当前管理员
	auth.GET("/auth/profile", controllers.HandleJWTFunc(container, "getProfile"))
	auth.PUT("/auth/profile", controllers.HandleJWTFunc(container, "updateProfile"))
	auth.POST("/auth/verify", controllers.HandleJWTFunc(container, "verify"))
	auth.POST("/auth/change-password", controllers.HandleJWTFunc(container, "changePassword"))

	// 作品集管理
	portfolioGroup := auth.Group("/portfolio")
	portfolioGroup.POST("", controllers.HandlePortfolioFunc(container, "createPortfolio"))
	portfolioGroup.PUT("/:id", controllers.HandlePortfolioFunc(container, "updatePortfolio"))
	portfolioGroup.DELETE("/:id", controllers.HandlePortfolioFunc(container, "deletePortfolio"))
	portfolioGroup.PATCH("/:id/publish", controllers.HandlePortfolioFunc(container, "setPublished"))

	// 展会管理
	exhibitionGroup := auth.Group("/exhibition")
	exhibitionGroup.POST("", controllers.HandleExhibitionFunc(container, "createExhibition"))
	exhibitionGroup.PUT("/:id", controllers.HandleExhibitionFunc(container, "updateExhibition"))
	exhibitionGroup.DELETE("/:id", controllers.HandleExhibitionFunc(container, "deleteExhibition"))
	exhibitionGroup.PATCH("/:id/publish", controllers.HandleExhibitionFunc(container, "setPublished"))

	// 询盘管理
	enquiryGroup := auth.Group("/enquiry")
	enquiryGroup.GET("", controllers.HandleEnquiryFunc(container, "getEnquiries"))
	enquiryGroup.GET("/export", controllers.HandleEnquiryFunc(container, "export"))
	enquiryGroup.GET("/:id", controllers.HandleEnquiryFunc(container, "getEnquiry"))
	enquiryGroup.PUT("/:id", controllers.HandleEnquiryFunc(container, "updateEnquiry"))
	enquiryGroup.DELETE("/:id", controllers.HandleEnquiryFunc(container, "deleteEnquiry"))
	enquiryGroup.POST("/:id/respond", controllers.HandleEnquiryFunc(container, "addResponse"))

	// 首页统计管理
	auth.POST("/stats", controllers.HandleStatsFunc(container, "createStats"))
	auth.PUT("/stats", controllers.HandleStatsFunc(container, "updateStats"))
	auth.DELETE("/stats", controllers.HandleStatsFunc(container, "deleteStats"))

	// 文件上传
	auth.POST("/upload/image", controllers.HandleUploadFunc(container, "upload"))
	auth.DELETE("/upload/image/*pathname", controllers.HandleUploadFunc(container, "delete"))

	// 管理员账户管理，仅超级管理员
	adminGroup := auth.Group("/admins")
	adminGroup.Use(middleware.RequireSuperAdmin())
	adminGroup.GET("", controllers.HandleAdminFunc(container, "getAdmins"))
	adminGroup.GET("/:id", controllers.HandleAdminFunc(container, "getAdmin"))
	adminGroup.POST("", controllers.HandleAdminFunc(container, "createAdmin"))
	adminGroup.PUT("/:id", controllers.HandleAdminFunc(container, "updateAdmin"))
	adminGroup.DELETE("/:id", controllers.HandleAdminFunc(container, "deleteAdmin"))
}
