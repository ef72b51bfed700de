package controllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Riju7407/STAGEJHOOK-main/internal/app/middleware"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/models"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services/container"
	"github.com/Riju7407/STAGEJHOOK-main/internal/error/code"
	"github.com/Riju7407/STAGEJHOOK-main/internal/error/response"
	Logger "github.com/Riju7407/STAGEJHOOK-main/pkg/logger"
)

// InterfaceEnquiryController 定义询盘控制器接口
type InterfaceEnquiryController interface {
	GetEnquiries()
	GetEnquiry()
	CreateEnquiry()
	UpdateEnquiry()
	DeleteEnquiry()
	AddResponse()
	Export()
}

// EnquiryController 询盘控制器
type EnquiryController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewEnquiryController 创建一个新的询盘控制器
func NewEnquiryController(ctx *gin.Context, container *container.ServiceContainer) *EnquiryController {
	return &EnquiryController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateEnquiryRequest 公开表单提交的询盘
// 类型等枚举字段不做强校验，后端统一回落到默认值
type CreateEnquiryRequest struct {
	Name        string `json:"name" binding:"required" example:"Rahul Sharma"`
	Email       string `json:"email" binding:"required,email" example:"rahul@example.com"`
	Phone       string `json:"phone" example:"+91 9800000000"`
	Company     string `json:"company" example:"Acme Exports"`
	Subject     string `json:"subject" binding:"required" example:"Stall booking for Trade Expo"`
	Message     string `json:"message" binding:"required"`
	EnquiryType string `json:"enquiryType" example:"exhibition_stall"`
	// 引用ID宽容解析：畸形值（如旧系统的ObjectId字符串）丢弃而不是拒单
	ExhibitionID   interface{} `json:"exhibitionId" swaggertype:"integer"`
	PortfolioID    interface{} `json:"portfolioId" swaggertype:"integer"`
	AttachmentURL  string      `json:"attachmentUrl"`
	AttachmentName string      `json:"attachmentName"`
}

// parseReference 宽容解析引用ID，无法识别的值记录警告后丢弃
func parseReference(raw interface{}, field string) *uint {
	if raw == nil {
		return nil
	}
	switch v := raw.(type) {
	case float64:
		if v > 0 && v == math.Trunc(v) {
			id := uint(v)
			return &id
		}
	case string:
		if parsed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32); err == nil && parsed > 0 {
			id := uint(parsed)
			return &id
		}
	}
	Logger.Warning("忽略询盘中无法识别的%s引用: %v", field, raw)
	return nil
}

// UpdateEnquiryRequest 管理后台的询盘更新请求
type UpdateEnquiryRequest struct {
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	Notes        string     `json:"notes"`
	FollowUpDate *time.Time `json:"followUpDate"`
	AssignedToID *uint      `json:"assignedToId"`
}

// RespondRequest 询盘回复请求
type RespondRequest struct {
	Message       string `json:"message" binding:"required"`
	AttachmentURL string `json:"attachmentUrl"`
}

// HandleEnquiryFunc 返回一个处理询盘请求的Gin处理函数
func HandleEnquiryFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewEnquiryController(ctx, container)

		switch method {
		case "getEnquiries":
			controller.GetEnquiries()
		case "getEnquiry":
			controller.GetEnquiry()
		case "createEnquiry":
			controller.CreateEnquiry()
		case "updateEnquiry":
			controller.UpdateEnquiry()
		case "deleteEnquiry":
			controller.DeleteEnquiry()
		case "addResponse":
			controller.AddResponse()
		case "export":
			controller.Export()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Invalid method", nil)
		}
	}
}

// enquiryFilterFromQuery 从查询参数构造过滤条件
func enquiryFilterFromQuery(ctx *gin.Context) services.EnquiryFilter {
	return services.EnquiryFilter{
		Status:      ctx.Query("status"),
		EnquiryType: ctx.Query("enquiryType"),
		Priority:    ctx.Query("priority"),
	}
}

// 1. GetEnquiries 获取询盘列表
// @Summary      获取询盘列表
// @Tags         Enquiry
// @Produce      json
// @Param        status query string false "状态过滤"
// @Param        enquiryType query string false "类型过滤"
// @Param        priority query string false "优先级过滤"
// @Success      200  {object}  response.Response
// @Router       /enquiry [get]
// @Security     BearerAuth
func (c *EnquiryController) GetEnquiries() {
	enquiryService := c.Container.GetService("enquiry").(services.InterfaceEnquiryService)
	enquiries, err := enquiryService.GetEnquiries(enquiryFilterFromQuery(c.Ctx))
	if err != nil {
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to fetch enquiries", err)
		return
	}
	response.Success(c.Ctx, gin.H{"enquiries": enquiries, "total": len(enquiries)})
}

// 2. GetEnquiry 获取询盘详情
// @Summary      获取询盘详情
// @Tags         Enquiry
// @Produce      json
// @Param        id path int true "询盘ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /enquiry/{id} [get]
// @Security     BearerAuth
func (c *EnquiryController) GetEnquiry() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	enquiryService := c.Container.GetService("enquiry").(services.InterfaceEnquiryService)
	enquiry, err := enquiryService.GetEnquiryByID(id)
	if err != nil {
		response.Fail(c.Ctx, code.ErrEnquiryNotFound, nil)
		return
	}
	response.Success(c.Ctx, gin.H{"enquiry": enquiry})
}

// 3. CreateEnquiry 提交询盘，公开接口
// @Summary      提交询盘
// @Tags         Enquiry
// @Accept       json
// @Produce      json
// @Param        request body CreateEnquiryRequest true "询盘内容"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /enquiry [post]
func (c *EnquiryController) CreateEnquiry() {
	var req CreateEnquiryRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Please provide name, email, subject and message")
		return
	}

	enquiry := &models.Enquiry{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Company:        req.Company,
		Subject:        req.Subject,
		Message:        req.Message,
		EnquiryType:    models.EnquiryType(req.EnquiryType),
		ExhibitionID:   parseReference(req.ExhibitionID, "exhibitionId"),
		PortfolioID:    parseReference(req.PortfolioID, "portfolioId"),
		AttachmentURL:  req.AttachmentURL,
		AttachmentName: req.AttachmentName,
	}

	enquiryService := c.Container.GetService("enquiry").(services.InterfaceEnquiryService)
	if err := enquiryService.CreateEnquiry(enquiry); err != nil {
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to submit enquiry", err)
		return
	}

	response.Created(c.Ctx, "Thank you for your enquiry. We will get back to you soon.", gin.H{"enquiry": enquiry})
}

// 4. UpdateEnquiry 更新询盘
// @Summary      更新询盘（状态流转、指派、备注）
// @Tags         Enquiry
// @Accept       json
// @Produce      json
// @Param        id path int true "询盘ID"
// @Param        request body UpdateEnquiryRequest true "变更内容"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /enquiry/{id} [put]
// @Security     BearerAuth
func (c *EnquiryController) UpdateEnquiry() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	var req UpdateEnquiryRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Invalid enquiry data: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.Priority != "" {
		updates["priority"] = req.Priority
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}
	if req.FollowUpDate != nil {
		updates["follow_up_date"] = req.FollowUpDate
	}
	if req.AssignedToID != nil {
		updates["assigned_to_id"] = *req.AssignedToID
	}
	if len(updates) == 0 {
		response.ParamError(c.Ctx, "No fields to update")
		return
	}

	enquiryService := c.Container.GetService("enquiry").(services.InterfaceEnquiryService)
	enquiry, err := enquiryService.UpdateEnquiry(id, updates)
	if err != nil {
		if errors.Is(err, services.ErrEnquiryNotFound) {
			response.Fail(c.Ctx, code.ErrEnquiryNotFound, nil)
			return
		}
		response.FailWithError(c.Ctx, code.ErrValidation, "Failed to update enquiry", err)
		return
	}

	response.SuccessWithMessage(c.Ctx, "Enquiry updated successfully", gin.H{"enquiry": enquiry})
}

// 5. DeleteEnquiry 删除询盘
// @Summary      删除询盘
// @Tags         Enquiry
// @Produce      json
// @Param        id path int true "询盘ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /enquiry/{id} [delete]
// @Security     BearerAuth
func (c *EnquiryController) DeleteEnquiry() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	enquiryService := c.Container.GetService("enquiry").(services.InterfaceEnquiryService)
	if err := enquiryService.DeleteEnquiry(id); err != nil {
		if errors.Is(err, services.ErrEnquiryNotFound) {
			response.Fail(c.Ctx, code.ErrEnquiryNotFound, nil)
			return
		}
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to delete enquiry", err)
		return
	}

	response.SuccessWithMessage(c.Ctx, "Enquiry deleted successfully", nil)
}

// 6. AddResponse 追加询盘回复
// @Summary      追加询盘回复
// @Tags         Enquiry
// @Accept       json
// @Produce      json
// @Param        id path int true "询盘ID"
// @Param        request body RespondRequest true "回复内容"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /enquiry/{id}/respond [post]
// @Security     BearerAuth
func (c *EnquiryController) AddResponse() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	adminID, ok := middleware.CurrentAdminID(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx, code.ErrTokenInvalid)
		return
	}

	var req RespondRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Please provide a response message")
		return
	}

	enquiryService := c.Container.GetService("enquiry").(services.InterfaceEnquiryService)
	enquiry, err := enquiryService.AddResponse(id, adminID, req.Message, req.AttachmentURL)
	if err != nil {
		if errors.Is(err, services.ErrEnquiryNotFound) {
			response.Fail(c.Ctx, code.ErrEnquiryNotFound, nil)
			return
		}
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to add response", err)
		return
	}

	response.SuccessWithMessage(c.Ctx, "Response added successfully", gin.H{"enquiry": enquiry})
}

// 7. Export 导出询盘为Excel文件
// @Summary      导出询盘列表为xlsx
// @Tags         Enquiry
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        status query string false "状态过滤"
// @Param        enquiryType query string false "类型过滤"
// @Success      200  {file}  binary
// @Router       /enquiry/export [get]
// @Security     BearerAuth
func (c *EnquiryController) Export() {
	enquiryService := c.Container.GetService("enquiry").(services.InterfaceEnquiryService)
	data, err := enquiryService.ExportExcel(enquiryFilterFromQuery(c.Ctx))
	if err != nil {
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to export enquiries", err)
		return
	}

	fileName := fmt.Sprintf("enquiries-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Ctx.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
