package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Riju7407/STAGEJHOOK-main/internal/app/middleware"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services/container"
	"github.com/Riju7407/STAGEJHOOK-main/internal/error/code"
	"github.com/Riju7407/STAGEJHOOK-main/internal/error/response"
	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/config"
)

// InterfaceJWTController 定义认证控制器接口
type InterfaceJWTController interface {
	Login()
	Logout()
	GetProfile()
	Verify()
	UpdateProfile()
	ChangePassword()
}

// JWTController 处理身份验证请求
type JWTController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewJWTController 创建一个新的认证控制器
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@stagejhook.com"`
	Password string `json:"password" binding:"required" example:"Admin@123"`
}

// UpdateProfileRequest 更新个人资料请求
type UpdateProfileRequest struct {
	Name         string `json:"name" example:"Admin User"`
	Email        string `json:"email" binding:"omitempty,email" example:"admin@stagejhook.com"`
	ProfileImage string `json:"profileImage" example:"https://cdn.example.com/avatar.png"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// HandleJWTFunc 返回一个处理认证请求的Gin处理函数
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "logout":
			controller.Logout()
		case "getProfile":
			controller.GetProfile()
		case "verify":
			controller.Verify()
		case "updateProfile":
			controller.UpdateProfile()
		case "changePassword":
			controller.ChangePassword()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Invalid method", nil)
		}
	}
}

// setAuthCookie 写入登录态Cookie，生产环境强制 Secure
func (c *JWTController) setAuthCookie(token string, maxAge int) {
	cfg := c.Container.GetService("config").(*config.Config)
	c.Ctx.SetSameSite(http.SameSiteLaxMode)
	c.Ctx.SetCookie("adminToken", token, maxAge, "/", "", cfg.IsProduction(), true)
}

// 1. Login 管理员登录
// @Summary      管理员登录
// @Description  验证邮箱密码，返回JWT令牌并写入登录Cookie
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "登录信息"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Please provide email and password")
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	result, err := jwtService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Fail(c.Ctx, code.ErrAdminPasswordIncorrect, nil)
			return
		}
		response.FailWithError(c.Ctx, code.ErrDatabase, "Login failed", err)
		return
	}

	cfg := c.Container.GetService("config").(*config.Config)
	c.setAuthCookie(result.Token, cfg.JWTExpireHours*3600)

	response.SuccessWithMessage(c.Ctx, "Login successful", gin.H{
		"token": result.Token,
		"admin": result.Admin,
	})
}

// 2. Logout 管理员登出，清除登录Cookie
// @Summary      管理员登出
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
func (c *JWTController) Logout() {
	c.setAuthCookie("", -1)
	response.SuccessWithMessage(c.Ctx, "Logged out successfully", nil)
}

// 3. GetProfile 获取当前管理员资料
// @Summary      获取当前管理员资料
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/profile [get]
// @Security     BearerAuth
func (c *JWTController) GetProfile() {
	adminID, ok := middleware.CurrentAdminID(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx, code.ErrTokenInvalid)
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admin, err := adminService.GetAdminByID(adminID)
	if err != nil {
		response.NotFound(c.Ctx, "Admin not found")
		return
	}

	response.Success(c.Ctx, gin.H{"admin": admin})
}

// 4. Verify 校验令牌有效性，前端路由守卫用
// @Summary      校验令牌有效性
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/verify [post]
// @Security     BearerAuth
func (c *JWTController) Verify() {
	claims, exists := c.Ctx.Get("claims")
	if !exists {
		response.Unauthorized(c.Ctx, code.ErrTokenInvalid)
		return
	}

	adminClaims := claims.(*services.AdminClaims)
	response.Success(c.Ctx, gin.H{
		"valid": true,
		"admin": gin.H{
			"id":    adminClaims.AdminID,
			"email": adminClaims.Email,
			"name":  adminClaims.Name,
			"role":  adminClaims.Role,
		},
	})
}

// 5. UpdateProfile 更新当前管理员资料
// @Summary      更新当前管理员资料
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body UpdateProfileRequest true "资料变更"
// @Success      200  {object}  response.Response
// @Router       /auth/profile [put]
// @Security     BearerAuth
func (c *JWTController) UpdateProfile() {
	adminID, ok := middleware.CurrentAdminID(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx, code.ErrTokenInvalid)
		return
	}

	var req UpdateProfileRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Invalid profile data: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.ProfileImage != "" {
		updates["profile_image"] = req.ProfileImage
	}
	if len(updates) == 0 {
		response.ParamError(c.Ctx, "No fields to update")
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admin, err := adminService.UpdateAdmin(adminID, updates)
	if err != nil {
		if errors.Is(err, services.ErrAdminEmailTaken) {
			response.Fail(c.Ctx, code.ErrAdminAlreadyExist, nil)
			return
		}
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to update profile", err)
		return
	}

	response.SuccessWithMessage(c.Ctx, "Profile updated successfully", gin.H{"admin": admin})
}

// 6. ChangePassword 修改当前管理员密码
// @Summary      修改当前管理员密码
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body ChangePasswordRequest true "密码变更"
// @Success      200  {object}  response.Response
// @Router       /auth/change-password [post]
// @Security     BearerAuth
func (c *JWTController) ChangePassword() {
	adminID, ok := middleware.CurrentAdminID(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx, code.ErrTokenInvalid)
		return
	}

	var req ChangePasswordRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Please provide current and new password")
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	if err := adminService.ChangePassword(adminID, req.CurrentPassword, req.NewPassword); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrAdminPasswordIncorrect, "Current password is incorrect", nil)
		return
	}

	response.SuccessWithMessage(c.Ctx, "Password changed successfully", nil)
}
