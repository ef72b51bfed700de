package controllers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Riju7407/STAGEJHOOK-main/internal/app/middleware"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/models"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services/container"
	"github.com/Riju7407/STAGEJHOOK-main/internal/error/code"
	"github.com/Riju7407/STAGEJHOOK-main/internal/error/response"
)

// InterfaceExhibitionController 定义展会控制器接口
type InterfaceExhibitionController interface {
	GetExhibitions()
	GetExhibition()
	CreateExhibition()
	UpdateExhibition()
	DeleteExhibition()
	SetPublished()
	RegisterStall()
}

// ExhibitionController 展会控制器
type ExhibitionController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewExhibitionController 创建一个新的展会控制器
func NewExhibitionController(ctx *gin.Context, container *container.ServiceContainer) *ExhibitionController {
	return &ExhibitionController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateExhibitionRequest 创建展会请求
type CreateExhibitionRequest struct {
	Title            string                   `json:"title" binding:"required" example:"India Trade Expo 2026"`
	Description      string                   `json:"description" binding:"required"`
	StartDate        time.Time                `json:"startDate" binding:"required"`
	EndDate          time.Time                `json:"endDate" binding:"required"`
	Location         string                   `json:"location" binding:"required" example:"Pragati Maidan, New Delhi"`
	CoverImageURL    string                   `json:"coverImageUrl" binding:"required"`
	CoverImageName   string                   `json:"coverImageName"`
	Category         string                   `json:"category" example:"trade_show"`
	Capacity         int                      `json:"capacity"`
	StallSize        models.StallCounts       `json:"stallSize"`
	Pricing          models.StallPricing      `json:"pricing"`
	Amenities        []string                 `json:"amenities"`
	SponsorshipTiers []models.SponsorshipTier `json:"sponsorshipTiers"`
	ExhibitionGuide  models.ExhibitionGuide   `json:"exhibitionGuide"`
	ImageGallery     []models.GalleryImage    `json:"imageGallery"`
}

// UpdateExhibitionRequest 更新展会请求，零值字段不参与更新
type UpdateExhibitionRequest struct {
	Title            string                    `json:"title"`
	Description      string                    `json:"description"`
	StartDate        *time.Time                `json:"startDate"`
	EndDate          *time.Time                `json:"endDate"`
	Location         string                    `json:"location"`
	CoverImageURL    string                    `json:"coverImageUrl"`
	CoverImageName   string                    `json:"coverImageName"`
	Category         string                    `json:"category"`
	Status           string                    `json:"status"`
	Capacity         *int                      `json:"capacity"`
	StallSize        *models.StallCounts       `json:"stallSize"`
	Pricing          *models.StallPricing      `json:"pricing"`
	Amenities        *[]string                 `json:"amenities"`
	SponsorshipTiers *[]models.SponsorshipTier `json:"sponsorshipTiers"`
	ExhibitionGuide  *models.ExhibitionGuide   `json:"exhibitionGuide"`
	ImageGallery     *[]models.GalleryImage    `json:"imageGallery"`
	IsPublished      *bool                     `json:"isPublished"`
}

// RegisterStallRequest 展位注册请求
type RegisterStallRequest struct {
	StallSize string `json:"stallSize" binding:"required" example:"medium"`
}

// HandleExhibitionFunc 返回一个处理展会请求的Gin处理函数
func HandleExhibitionFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewExhibitionController(ctx, container)

		switch method {
		case "getExhibitions":
			controller.GetExhibitions()
		case "getExhibition":
			controller.GetExhibition()
		case "createExhibition":
			controller.CreateExhibition()
		case "updateExhibition":
			controller.UpdateExhibition()
		case "deleteExhibition":
			controller.DeleteExhibition()
		case "setPublished":
			controller.SetPublished()
		case "registerStall":
			controller.RegisterStall()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Invalid method", nil)
		}
	}
}

// 1. GetExhibitions 获取展会列表
// @Summary      获取展会列表
// @Description  公开接口只返回已发布展会，支持状态与类别过滤
// @Tags         Exhibition
// @Produce      json
// @Param        status query string false "状态过滤 upcoming/ongoing/completed/cancelled"
// @Param        category query string false "类别过滤"
// @Param        isPublished query bool false "发布状态过滤"
// @Success      200  {object}  response.Response
// @Router       /exhibition [get]
func (c *ExhibitionController) GetExhibitions() {
	filter := services.ExhibitionFilter{
		Status:      c.Ctx.Query("status"),
		Category:    c.Ctx.Query("category"),
		IsPublished: parseBoolQuery(c.Ctx, "isPublished"),
	}

	if _, authed := middleware.CurrentAdminID(c.Ctx); !authed {
		published := true
		filter.IsPublished = &published
	}

	exhibitionService := c.Container.GetService("exhibition").(services.InterfaceExhibitionService)
	exhibitions, err := exhibitionService.GetExhibitions(filter)
	if err != nil {
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to fetch exhibitions", err)
		return
	}

	response.Success(c.Ctx, gin.H{"exhibitions": exhibitions, "total": len(exhibitions)})
}

// 2. GetExhibition 获取展会详情
// @Summary      获取展会详情
// @Tags         Exhibition
// @Produce      json
// @Param        id path int true "展会ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /exhibition/{id} [get]
func (c *ExhibitionController) GetExhibition() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	exhibitionService := c.Container.GetService("exhibition").(services.InterfaceExhibitionService)
	exhibition, err := exhibitionService.GetExhibitionByID(id)
	if err != nil {
		response.Fail(c.Ctx, code.ErrExhibitionNotFound, nil)
		return
	}

	if _, authed := middleware.CurrentAdminID(c.Ctx); !authed && !exhibition.IsPublished {
		response.Fail(c.Ctx, code.ErrExhibitionNotFound, nil)
		return
	}

	response.Success(c.Ctx, gin.H{"exhibition": exhibition})
}

// 3. CreateExhibition 创建展会
// @Summary      创建展会
// @Tags         Exhibition
// @Accept       json
// @Produce      json
// @Param        request body CreateExhibitionRequest true "展会信息"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /exhibition [post]
// @Security     BearerAuth
func (c *ExhibitionController) CreateExhibition() {
	adminID, ok := middleware.CurrentAdminID(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx, code.ErrTokenInvalid)
		return
	}

	var req CreateExhibitionRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Invalid exhibition data: "+err.Error())
		return
	}
	if req.Category != "" && !models.IsValidExhibitionCategory(req.Category) {
		response.ParamError(c.Ctx, "Invalid category: "+req.Category)
		return
	}
	if req.EndDate.Before(req.StartDate) {
		response.ParamError(c.Ctx, "End date must not be before start date")
		return
	}

	exhibition := &models.Exhibition{
		Title:            req.Title,
		Description:      req.Description,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Location:         req.Location,
		CoverImageURL:    req.CoverImageURL,
		CoverImageName:   req.CoverImageName,
		Category:         models.ExhibitionCategory(req.Category),
		Capacity:         req.Capacity,
		StallSize:        req.StallSize,
		Pricing:          req.Pricing,
		Amenities:        req.Amenities,
		SponsorshipTiers: req.SponsorshipTiers,
		ExhibitionGuide:  req.ExhibitionGuide,
		ImageGallery:     req.ImageGallery,
		CreatedByID:      adminID,
	}

	exhibitionService := c.Container.GetService("exhibition").(services.InterfaceExhibitionService)
	if err := exhibitionService.CreateExhibition(exhibition); err != nil {
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to create exhibition", err)
		return
	}

	middleware.PurgeCache()
	response.Created(c.Ctx, "Exhibition created successfully", gin.H{"exhibition": exhibition})
}

// 4. UpdateExhibition 更新展会
// @Summary      更新展会
// @Tags         Exhibition
// @Accept       json
// @Produce      json
// @Param        id path int true "展会ID"
// @Param        request body UpdateExhibitionRequest true "变更内容"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /exhibition/{id} [put]
// @Security     BearerAuth
func (c *ExhibitionController) UpdateExhibition() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	var req UpdateExhibitionRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Invalid exhibition data: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.StartDate != nil {
		updates["start_date"] = req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = req.EndDate
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.CoverImageURL != "" {
		updates["cover_image_url"] = req.CoverImageURL
	}
	if req.CoverImageName != "" {
		updates["cover_image_name"] = req.CoverImageName
	}
	if req.Category != "" {
		if !models.IsValidExhibitionCategory(req.Category) {
			response.ParamError(c.Ctx, "Invalid category: "+req.Category)
			return
		}
		updates["category"] = req.Category
	}
	if req.Status != "" {
		// 人工只允许设置/解除取消，其余状态由时间推导
		if req.Status != string(models.ExhibitionStatusCancelled) && req.Status != string(models.ExhibitionStatusUpcoming) {
			response.ParamError(c.Ctx, "Only cancellation can be set manually")
			return
		}
		updates["status"] = req.Status
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.StallSize != nil {
		updates["stall_small"] = req.StallSize.Small
		updates["stall_medium"] = req.StallSize.Medium
		updates["stall_large"] = req.StallSize.Large
	}
	if req.Pricing != nil {
		updates["price_small"] = req.Pricing.Small
		updates["price_medium"] = req.Pricing.Medium
		updates["price_large"] = req.Pricing.Large
		updates["price_currency"] = req.Pricing.Currency
	}
	if req.Amenities != nil {
		updates["amenities"] = *req.Amenities
	}
	if req.SponsorshipTiers != nil {
		updates["sponsorship_tiers"] = *req.SponsorshipTiers
	}
	if req.ExhibitionGuide != nil {
		updates["guide_url"] = req.ExhibitionGuide.URL
		updates["guide_name"] = req.ExhibitionGuide.Name
	}
	if req.ImageGallery != nil {
		updates["image_gallery"] = *req.ImageGallery
	}
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
	}
	if len(updates) == 0 {
		response.ParamError(c.Ctx, "No fields to update")
		return
	}

	exhibitionService := c.Container.GetService("exhibition").(services.InterfaceExhibitionService)
	exhibition, err := exhibitionService.UpdateExhibition(id, updates)
	if err != nil {
		if errors.Is(err, services.ErrExhibitionNotFound) {
			response.Fail(c.Ctx, code.ErrExhibitionNotFound, nil)
			return
		}
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to update exhibition", err)
		return
	}

	middleware.PurgeCache()
	response.SuccessWithMessage(c.Ctx, "Exhibition updated successfully", gin.H{"exhibition": exhibition})
}

// 5. DeleteExhibition 删除展会
// @Summary      删除展会
// @Tags         Exhibition
// @Produce      json
// @Param        id path int true "展会ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /exhibition/{id} [delete]
// @Security     BearerAuth
func (c *ExhibitionController) DeleteExhibition() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	exhibitionService := c.Container.GetService("exhibition").(services.InterfaceExhibitionService)
	if err := exhibitionService.DeleteExhibition(id); err != nil {
		if errors.Is(err, services.ErrExhibitionNotFound) {
			response.Fail(c.Ctx, code.ErrExhibitionNotFound, nil)
			return
		}
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to delete exhibition", err)
		return
	}

	middleware.PurgeCache()
	response.SuccessWithMessage(c.Ctx, "Exhibition deleted successfully", nil)
}

// 6. SetPublished 发布或下架展会
// @Summary      发布或下架展会
// @Tags         Exhibition
// @Accept       json
// @Produce      json
// @Param        id path int true "展会ID"
// @Param        request body PublishRequest true "发布状态"
// @Success      200  {object}  response.Response
// @Router       /exhibition/{id}/publish [patch]
// @Security     BearerAuth
func (c *ExhibitionController) SetPublished() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	var req PublishRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Invalid publish data: "+err.Error())
		return
	}

	exhibitionService := c.Container.GetService("exhibition").(services.InterfaceExhibitionService)
	exhibition, err := exhibitionService.SetPublished(id, req.IsPublished)
	if err != nil {
		if errors.Is(err, services.ErrExhibitionNotFound) {
			response.Fail(c.Ctx, code.ErrExhibitionNotFound, nil)
			return
		}
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to update publish state", err)
		return
	}

	middleware.PurgeCache()
	response.SuccessWithMessage(c.Ctx, "Publish state updated", gin.H{"exhibition": exhibition})
}

// 7. RegisterStall 注册展位
// 库存已空时不报错，返回当前展会数据，registered 字段标识结果
// @Summary      注册指定尺寸的展位
// @Tags         Exhibition
// @Accept       json
// @Produce      json
// @Param        id path int true "展会ID"
// @Param        request body RegisterStallRequest true "展位尺寸"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /exhibition/{id}/register-stall [patch]
func (c *ExhibitionController) RegisterStall() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	var req RegisterStallRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Please provide a stall size")
		return
	}

	// 未知尺寸与库存耗尽同等对待，照常返回当前记录
	exhibitionService := c.Container.GetService("exhibition").(services.InterfaceExhibitionService)
	result, err := exhibitionService.RegisterStall(id, models.StallSize(req.StallSize))
	if err != nil {
		if errors.Is(err, services.ErrExhibitionNotFound) {
			response.Fail(c.Ctx, code.ErrExhibitionNotFound, nil)
			return
		}
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to register stall", err)
		return
	}

	message := "No stalls of this size are available"
	if result.Registered {
		message = "Stall registered successfully"
		middleware.PurgeCache()
	}
	response.SuccessWithMessage(c.Ctx, message, gin.H{
		"registered": result.Registered,
		"exhibition": result.Exhibition,
	})
}
