// @title           STAGEJHOOK API
// @version         1.0
// @description     Backend service for the STAGEJHOOK exhibition stall fabrication website and its admin dashboard

// @contact.name   STAGEJHOOK Support
// @contact.email  admin@stagejhook.com

// @host      localhost:5000
// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer: ` prefix
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/Riju7407/STAGEJHOOK-main/internal/app/routes"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/models"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services"
	"github.com/Riju7407/STAGEJHOOK-main/internal/error/response"
	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/config"
	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/database"
	Logger "github.com/Riju7407/STAGEJHOOK-main/pkg/logger"
)

func main() {
	// 设置最大处理器数量，提高并发性能
	runtime.GOMAXPROCS(runtime.NumCPU())

	// 初始化日志配置
	if err := Logger.SetupLogger(); err != nil {
		fmt.Printf("初始化日志配置失败: %v\n", err)
		os.Exit(1)
	}

	// 加载.env文件
	if err := godotenv.Load(); err != nil {
		Logger.Warning("无法加载.env文件: %v", err)
		// 即使加载失败也继续执行，可能环境变量已经通过其他方式设置
	} else {
		Logger.Info("成功加载.env文件")
	}

	// 获取配置
	cfg := config.GetConfig()

	// 生产环境不向客户端透出底层错误详情
	response.SetExposeErrorDetail(!cfg.IsProduction())

	// 创建数据库连接池，数据库未就绪时按固定间隔重试
	pool := database.NewConnectionPoolWithRetry(cfg, 5*time.Second)
	db := pool.GetDB()

	// 自动迁移，只添加新列和新表
	if err := autoMigrate(db); err != nil {
		log.Fatalf("自动迁移失败: %v", err)
	}

	// 确保系统中有管理员账户
	adminService := services.NewAdminService(db, cfg)
	if err := adminService.EnsureDefaultAdmin(); err != nil {
		log.Fatalf("创建默认管理员失败: %v", err)
	}

	// 初始化路由
	r := routes.SetupRouter(db, cfg, pool)

	// 打印系统信息
	printSystemInfo(pool)

	port := cfg.ServerPort
	Logger.Info("服务器启动在: http://0.0.0.0:%s", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		Logger.Error("启动服务器失败: %v", err)
		os.Exit(1)
	}
}

// autoMigrate 自动迁移所有模型
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Admin{},
		&models.Portfolio{},
		&models.Exhibition{},
		&models.Enquiry{},
		&models.Stats{},
	)
	if err != nil {
		return err
	}

	fmt.Println("Database migration completed")
	return nil
}

// printSystemInfo 打印系统信息
func printSystemInfo(pool *database.ConnectionPool) {
	stats, err := pool.Stats()
	if err == nil {
		log.Printf("数据库连接池状态: %+v", stats)
	}

	log.Printf("系统CPU核心数: %d", runtime.NumCPU())
	log.Printf("当前Go协程数: %d", runtime.NumGoroutine())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Printf("系统内存使用: Alloc=%v MiB, TotalAlloc=%v MiB, Sys=%v MiB",
		m.Alloc/1024/1024, m.TotalAlloc/1024/1024, m.Sys/1024/1024)
}
