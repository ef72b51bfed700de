package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/models"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services/container"
	"github.com/Riju7407/STAGEJHOOK-main/internal/error/code"
	"github.com/Riju7407/STAGEJHOOK-main/internal/error/response"
)

// InterfaceAdminController 定义管理员控制器接口
type InterfaceAdminController interface {
	GetAdmins()
	GetAdmin()
	CreateAdmin()
	UpdateAdmin()
	DeleteAdmin()
}

// AdminController 管理员账户控制器
type AdminController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAdminController 创建一个新的管理员控制器
func NewAdminController(ctx *gin.Context, container *container.ServiceContainer) *AdminController {
	return &AdminController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateAdminRequest 创建管理员请求
type CreateAdminRequest struct {
	Email    string `json:"email" binding:"required,email" example:"editor@stagejhook.com"`
	Password string `json:"password" binding:"required,min=6" example:"Editor@123"`
	Name     string `json:"name" binding:"required" example:"Content Editor"`
	Role     string `json:"role" example:"admin"`
}

// UpdateAdminRequest 更新管理员请求
type UpdateAdminRequest struct {
	Email    string `json:"email" binding:"omitempty,email" example:"editor@stagejhook.com"`
	Name     string `json:"name" example:"Content Editor"`
	Role     string `json:"role" example:"admin"`
	IsActive *bool  `json:"isActive"`
	Password string `json:"password" example:"NewPassword@123"`
}

// HandleAdminFunc 返回一个处理管理员账户请求的Gin处理函数
func HandleAdminFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAdminController(ctx, container)

		switch method {
		case "getAdmins":
			controller.GetAdmins()
		case "getAdmin":
			controller.GetAdmin()
		case "createAdmin":
			controller.CreateAdmin()
		case "updateAdmin":
			controller.UpdateAdmin()
		case "deleteAdmin":
			controller.DeleteAdmin()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Invalid method", nil)
		}
	}
}

// parseIDParam 解析路径中的数字ID
func parseIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.ParamError(ctx, "Invalid id parameter")
		return 0, false
	}
	return uint(id), true
}

// 1. GetAdmins 获取管理员列表
// @Summary      获取管理员列表
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /admins [get]
// @Security     BearerAuth
func (c *AdminController) GetAdmins() {
	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admins, err := adminService.GetAllAdmins()
	if err != nil {
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to fetch admins", err)
		return
	}
	response.Success(c.Ctx, gin.H{"admins": admins, "total": len(admins)})
}

// 2. GetAdmin 获取管理员详情
// @Summary      获取管理员详情
// @Tags         Admin
// @Produce      json
// @Param        id path int true "管理员ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admins/{id} [get]
// @Security     BearerAuth
func (c *AdminController) GetAdmin() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admin, err := adminService.GetAdminByID(id)
	if err != nil {
		response.Fail(c.Ctx, code.ErrAdminNotFound, nil)
		return
	}
	response.Success(c.Ctx, gin.H{"admin": admin})
}

// 3. CreateAdmin 创建管理员账户
// @Summary      创建管理员账户
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body CreateAdminRequest true "管理员信息"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /admins [post]
// @Security     BearerAuth
func (c *AdminController) CreateAdmin() {
	var req CreateAdminRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Invalid admin data: "+err.Error())
		return
	}

	if req.Role != "" && !models.IsValidAdminRole(req.Role) {
		response.ParamError(c.Ctx, "Invalid role: "+req.Role)
		return
	}

	admin := &models.Admin{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     models.AdminRole(req.Role),
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	if err := adminService.CreateAdmin(admin); err != nil {
		if errors.Is(err, services.ErrAdminEmailTaken) {
			response.Fail(c.Ctx, code.ErrAdminAlreadyExist, nil)
			return
		}
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to create admin", err)
		return
	}

	response.Created(c.Ctx, "Admin created successfully", gin.H{"admin": admin})
}

// 4. UpdateAdmin 更新管理员账户
// @Summary      更新管理员账户
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "管理员ID"
// @Param        request body UpdateAdminRequest true "变更内容"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admins/{id} [put]
// @Security     BearerAuth
func (c *AdminController) UpdateAdmin() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	var req UpdateAdminRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Invalid admin data: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Role != "" {
		if !models.IsValidAdminRole(req.Role) {
			response.ParamError(c.Ctx, "Invalid role: "+req.Role)
			return
		}
		updates["role"] = req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Password != "" {
		updates["password"] = req.Password
	}
	if len(updates) == 0 {
		response.ParamError(c.Ctx, "No fields to update")
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admin, err := adminService.UpdateAdmin(id, updates)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminNotFound):
			response.Fail(c.Ctx, code.ErrAdminNotFound, nil)
		case errors.Is(err, services.ErrAdminEmailTaken):
			response.Fail(c.Ctx, code.ErrAdminAlreadyExist, nil)
		default:
			response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to update admin", err)
		}
		return
	}

	response.SuccessWithMessage(c.Ctx, "Admin updated successfully", gin.H{"admin": admin})
}

// 5. DeleteAdmin 删除管理员账户
// 管理员创建的内容保留，最后一个管理员不允许删除
// @Summary      删除管理员账户
// @Tags         Admin
// @Produce      json
// @Param        id path int true "管理员ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admins/{id} [delete]
// @Security     BearerAuth
func (c *AdminController) DeleteAdmin() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	if err := adminService.DeleteAdmin(id); err != nil {
		switch {
		case errors.Is(err, services.ErrLastAdmin):
			response.Fail(c.Ctx, code.ErrAdminLastOne, nil)
		case errors.Is(err, services.ErrAdminNotFound):
			response.Fail(c.Ctx, code.ErrAdminNotFound, nil)
		default:
			response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to delete admin", err)
		}
		return
	}

	response.SuccessWithMessage(c.Ctx, "Admin deleted successfully", nil)
}
