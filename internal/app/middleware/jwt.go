package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/models"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services"
	"github.com/Riju7407/STAGEJHOOK-main/internal/error/code"
	"github.com/Riju7407/STAGEJHOOK-main/internal/error/response"
	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/config"
)

// 登录态Cookie名，与前端约定一致
const adminTokenCookie = "adminToken"

var jwtService services.InterfaceJWTService

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(cfg *config.Config, db *gorm.DB) {
	jwtService = services.NewJWTService(cfg, db)
}

// SetJWTService 注入自定义JWT服务，测试用
func SetJWTService(svc services.InterfaceJWTService) {
	jwtService = svc
}

// extractToken 依次尝试 Authorization 头与登录Cookie
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		// 检查并移除 "Bearer " 前缀
		if strings.HasPrefix(authHeader, "Bearer ") {
			return strings.TrimSpace(authHeader[7:])
		}
		return authHeader
	}

	if cookie, err := c.Cookie(adminTokenCookie); err == nil {
		return cookie
	}
	return ""
}

// Authentication 通用的认证中间件
// 验证通过后把管理员身份写入上下文
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Unauthorized(c, code.ErrTokenMissing)
			c.Abort()
			return
		}

		claims, err := jwtService.ExtractClaims(tokenString)
		if err != nil {
			response.Unauthorized(c, code.ErrTokenInvalid)
			c.Abort()
			return
		}

		c.Set("adminID", claims.AdminID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("claims", claims)
		c.Next()
	}
}

// OptionalAuthentication 可选认证
// 公开读取接口用：带有效令牌的请求能看到未发布内容，匿名请求照常放行
func OptionalAuthentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString != "" {
			if claims, err := jwtService.ExtractClaims(tokenString); err == nil {
				c.Set("adminID", claims.AdminID)
				c.Set("email", claims.Email)
				c.Set("role", claims.Role)
				c.Set("claims", claims)
			}
		}
		c.Next()
	}
}

// RequireAdmin 要求任意管理员角色
// 必须挂在 Authentication 之后
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || !models.IsValidAdminRole(role.(string)) {
			response.Forbidden(c, "Access denied. Admin privileges required.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSuperAdmin 要求超级管理员角色，管理员账户管理接口用
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role.(string) != string(models.RoleSuperAdmin) {
			response.Forbidden(c, "Access denied. Super admin privileges required.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentAdminID 从上下文取当前管理员ID
func CurrentAdminID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("adminID")
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
