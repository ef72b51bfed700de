package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

var (
	config     *Config
	configOnce sync.Once
)

// Config stores all configuration of the application
type Config struct {
	// Environment type
	EnvType string

	// Database
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// Server
	ServerPort     string
	AllowedOrigins []string // 允许跨域访问的前端地址列表

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT Authentication
	JWTSecretKey   string
	JWTExpireHours int // 令牌有效期（小时）

	// 资源文件访问配置
	PublicBaseURL string // 对外提供静态资源的基础地址
	UploadDir     string // 本地上传目录

	// 远程对象存储（可选，配置了Token才启用）
	BlobStoreURL   string
	BlobStoreToken string

	// Admin
	DefaultAdminEmail    string
	DefaultAdminPassword string
}

// LoadConfig loads config from environment variables
func LoadConfig() *Config {
	envType := getEnv("ENV_TYPE", "development")

	fmt.Printf("Loading configuration for environment: %s\n", envType)

	serverPort := getEnv("SERVER_PORT", "5000")

	return &Config{
		// Environment type
		EnvType: envType,

		// Database config
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnvRequired("DB_USER"),
		DBPassword: getEnvRequired("DB_PASSWORD"),
		DBName:     getEnvRequired("DB_NAME"),
		DBPort:     getEnv("DB_PORT", "3306"),

		// Server config
		ServerPort:     serverPort,
		AllowedOrigins: splitAndTrim(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),

		// Redis config
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// JWT Config
		JWTSecretKey:   getEnv("JWT_SECRET_KEY", "stagejhook-secret-key-change-in-production"),
		JWTExpireHours: getEnvAsInt("JWT_EXPIRE_HOURS", 168),

		// 静态资源配置
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:"+serverPort),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),

		// 远程对象存储配置
		BlobStoreURL:   getEnv("BLOB_STORE_URL", ""),
		BlobStoreToken: getEnv("BLOB_STORE_TOKEN", ""),

		// Admin Config
		DefaultAdminEmail:    getEnv("DEFAULT_ADMIN_EMAIL", "admin@stagejhook.com"),
		DefaultAdminPassword: getEnvRequired("DEFAULT_ADMIN_PASSWORD"),
	}
}

// GetConfig returns the application configuration as a singleton
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local&allowNativePasswords=true&multiStatements=true"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// IsProduction 判断当前是否为生产环境
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.EnvType, "production")
}

// BlobStoreEnabled 判断是否启用远程对象存储
func (c *Config) BlobStoreEnabled() bool {
	return c.BlobStoreToken != ""
}

// 按逗号拆分并去掉空白的辅助函数
func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as integer with default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// 要求必须提供环境变量的辅助函数
func getEnvRequired(key string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	panic(fmt.Sprintf("Required environment variable %s is not set", key))
}
