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

// InterfacePortfolioController 定义作品集控制器接口
type InterfacePortfolioController interface {
	GetPortfolios()
	GetPortfolio()
	CreatePortfolio()
	UpdatePortfolio()
	DeletePortfolio()
	SetPublished()
}

// PortfolioController 作品集控制器
type PortfolioController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPortfolioController 创建一个新的作品集控制器
func NewPortfolioController(ctx *gin.Context, container *container.ServiceContainer) *PortfolioController {
	return &PortfolioController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreatePortfolioRequest 创建作品集请求
type CreatePortfolioRequest struct {
	Title        string                `json:"title" binding:"required" example:"Auto Expo 2024 Pavilion"`
	Description  string                `json:"description" binding:"required"`
	Category     string                `json:"category" example:"exhibition"`
	ImageURL     string                `json:"imageUrl" binding:"required"`
	ImageName    string                `json:"imageName"`
	ThumbnailURL string                `json:"thumbnailUrl"`
	Client       string                `json:"client"`
	Location     string                `json:"location"`
	StartDate    *time.Time            `json:"startDate"`
	EndDate      *time.Time            `json:"endDate"`
	Budget       models.Money          `json:"budget"`
	Status       string                `json:"status"`
	Order        int                   `json:"order"`
	Tags         []string              `json:"tags"`
	GalleryURLs  []models.GalleryImage `json:"galleryUrls"`
}

// UpdatePortfolioRequest 更新作品集请求，零值字段不参与更新
type UpdatePortfolioRequest struct {
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	Category     string                 `json:"category"`
	ImageURL     string                 `json:"imageUrl"`
	ImageName    string                 `json:"imageName"`
	ThumbnailURL string                 `json:"thumbnailUrl"`
	Client       string                 `json:"client"`
	Location     string                 `json:"location"`
	StartDate    *time.Time             `json:"startDate"`
	EndDate      *time.Time             `json:"endDate"`
	Budget       *models.Money          `json:"budget"`
	Status       string                 `json:"status"`
	Order        *int                   `json:"order"`
	Tags         *[]string              `json:"tags"`
	GalleryURLs  *[]models.GalleryImage `json:"galleryUrls"`
	IsPublished  *bool                  `json:"isPublished"`
}

// PublishRequest 发布状态变更请求
type PublishRequest struct {
	IsPublished bool `json:"isPublished"`
}

// HandlePortfolioFunc 返回一个处理作品集请求的Gin处理函数
func HandlePortfolioFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPortfolioController(ctx, container)

		switch method {
		case "getPortfolios":
			controller.GetPortfolios()
		case "getPortfolio":
			controller.GetPortfolio()
		case "createPortfolio":
			controller.CreatePortfolio()
		case "updatePortfolio":
			controller.UpdatePortfolio()
		case "deletePortfolio":
			controller.DeletePortfolio()
		case "setPublished":
			controller.SetPublished()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Invalid method", nil)
		}
	}
}

// parseBoolQuery 解析布尔查询参数，缺省返回nil
func parseBoolQuery(ctx *gin.Context, name string) *bool {
	value := ctx.Query(name)
	switch value {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

// 1. GetPortfolios 获取作品集列表
// @Summary      获取作品集列表
// @Description  公开接口只返回已发布条目，管理后台可传 isPublished 查询全部
// @Tags         Portfolio
// @Produce      json
// @Param        category query string false "类别过滤"
// @Param        status query string false "状态过滤"
// @Param        isPublished query bool false "发布状态过滤"
// @Success      200  {object}  response.Response
// @Router       /portfolio [get]
func (c *PortfolioController) GetPortfolios() {
	filter := services.PortfolioFilter{
		Category:    c.Ctx.Query("category"),
		Status:      c.Ctx.Query("status"),
		IsPublished: parseBoolQuery(c.Ctx, "isPublished"),
	}

	// 未认证的访问只能看到已发布内容
	if _, authed := middleware.CurrentAdminID(c.Ctx); !authed {
		published := true
		filter.IsPublished = &published
	}

	portfolioService := c.Container.GetService("portfolio").(services.InterfacePortfolioService)
	portfolios, err := portfolioService.GetPortfolios(filter)
	if err != nil {
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to fetch portfolio items", err)
		return
	}

	response.Success(c.Ctx, gin.H{"portfolios": portfolios, "total": len(portfolios)})
}

// 2. GetPortfolio 获取作品集详情
// @Summary      获取作品集详情
// @Tags         Portfolio
// @Produce      json
// @Param        id path int true "作品集ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /portfolio/{id} [get]
func (c *PortfolioController) GetPortfolio() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	portfolioService := c.Container.GetService("portfolio").(services.InterfacePortfolioService)
	portfolio, err := portfolioService.GetPortfolioByID(id)
	if err != nil {
		response.Fail(c.Ctx, code.ErrPortfolioNotFound, nil)
		return
	}

	if _, authed := middleware.CurrentAdminID(c.Ctx); !authed && !portfolio.IsPublished {
		response.Fail(c.Ctx, code.ErrPortfolioNotFound, nil)
		return
	}

	response.Success(c.Ctx, gin.H{"portfolio": portfolio})
}

// 3. CreatePortfolio 创建作品集条目
// @Summary      创建作品集条目
// @Tags         Portfolio
// @Accept       json
// @Produce      json
// @Param        request body CreatePortfolioRequest true "作品集信息"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /portfolio [post]
// @Security     BearerAuth
func (c *PortfolioController) CreatePortfolio() {
	adminID, ok := middleware.CurrentAdminID(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx, code.ErrTokenInvalid)
		return
	}

	var req CreatePortfolioRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Invalid portfolio data: "+err.Error())
		return
	}
	if req.Category != "" && !models.IsValidPortfolioCategory(req.Category) {
		response.ParamError(c.Ctx, "Invalid category: "+req.Category)
		return
	}
	if req.Status != "" && !models.IsValidPortfolioStatus(req.Status) {
		response.ParamError(c.Ctx, "Invalid status: "+req.Status)
		return
	}

	portfolio := &models.Portfolio{
		Title:        req.Title,
		Description:  req.Description,
		Category:     models.PortfolioCategory(req.Category),
		ImageURL:     req.ImageURL,
		ImageName:    req.ImageName,
		ThumbnailURL: req.ThumbnailURL,
		Client:       req.Client,
		Location:     req.Location,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Budget:       req.Budget,
		Status:       models.PortfolioStatus(req.Status),
		Order:        req.Order,
		Tags:         req.Tags,
		GalleryURLs:  req.GalleryURLs,
		CreatedByID:  adminID,
	}

	portfolioService := c.Container.GetService("portfolio").(services.InterfacePortfolioService)
	if err := portfolioService.CreatePortfolio(portfolio); err != nil {
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to create portfolio item", err)
		return
	}

	middleware.PurgeCache()
	response.Created(c.Ctx, "Portfolio item created successfully", gin.H{"portfolio": portfolio})
}

// 4. UpdatePortfolio 更新作品集条目
// @Summary      更新作品集条目
// @Tags         Portfolio
// @Accept       json
// @Produce      json
// @Param        id path int true "作品集ID"
// @Param        request body UpdatePortfolioRequest true "变更内容"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /portfolio/{id} [put]
// @Security     BearerAuth
func (c *PortfolioController) UpdatePortfolio() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	var req UpdatePortfolioRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Invalid portfolio data: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Category != "" {
		if !models.IsValidPortfolioCategory(req.Category) {
			response.ParamError(c.Ctx, "Invalid category: "+req.Category)
			return
		}
		updates["category"] = req.Category
	}
	if req.ImageURL != "" {
		updates["image_url"] = req.ImageURL
	}
	if req.ImageName != "" {
		updates["image_name"] = req.ImageName
	}
	if req.ThumbnailURL != "" {
		updates["thumbnail_url"] = req.ThumbnailURL
	}
	if req.Client != "" {
		updates["client"] = req.Client
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.StartDate != nil {
		updates["start_date"] = req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = req.EndDate
	}
	if req.Budget != nil {
		updates["budget_amount"] = req.Budget.Amount
		updates["budget_currency"] = req.Budget.Currency
	}
	if req.Status != "" {
		if !models.IsValidPortfolioStatus(req.Status) {
			response.ParamError(c.Ctx, "Invalid status: "+req.Status)
			return
		}
		updates["status"] = req.Status
	}
	if req.Order != nil {
		updates["sort_order"] = *req.Order
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}
	if req.GalleryURLs != nil {
		updates["gallery_urls"] = *req.GalleryURLs
	}
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
	}
	if len(updates) == 0 {
		response.ParamError(c.Ctx, "No fields to update")
		return
	}

	portfolioService := c.Container.GetService("portfolio").(services.InterfacePortfolioService)
	portfolio, err := portfolioService.UpdatePortfolio(id, updates)
	if err != nil {
		if errors.Is(err, services.ErrPortfolioNotFound) {
			response.Fail(c.Ctx, code.ErrPortfolioNotFound, nil)
			return
		}
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to update portfolio item", err)
		return
	}

	middleware.PurgeCache()
	response.SuccessWithMessage(c.Ctx, "Portfolio item updated successfully", gin.H{"portfolio": portfolio})
}

// 5. DeletePortfolio 删除作品集条目
// @Summary      删除作品集条目
// @Tags         Portfolio
// @Produce      json
// @Param        id path int true "作品集ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /portfolio/{id} [delete]
// @Security     BearerAuth
func (c *PortfolioController) DeletePortfolio() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	portfolioService := c.Container.GetService("portfolio").(services.InterfacePortfolioService)
	if err := portfolioService.DeletePortfolio(id); err != nil {
		if errors.Is(err, services.ErrPortfolioNotFound) {
			response.Fail(c.Ctx, code.ErrPortfolioNotFound, nil)
			return
		}
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to delete portfolio item", err)
		return
	}

	middleware.PurgeCache()
	response.SuccessWithMessage(c.Ctx, "Portfolio item deleted successfully", nil)
}

// 6. SetPublished 发布或下架作品集条目
// @Summary      发布或下架作品集条目
// @Tags         Portfolio
// @Accept       json
// @Produce      json
// @Param        id path int true "作品集ID"
// @Param        request body PublishRequest true "发布状态"
// @Success      200  {object}  response.Response
// @Router       /portfolio/{id}/publish [patch]
// @Security     BearerAuth
func (c *PortfolioController) SetPublished() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	var req PublishRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Invalid publish data: "+err.Error())
		return
	}

	portfolioService := c.Container.GetService("portfolio").(services.InterfacePortfolioService)
	portfolio, err := portfolioService.SetPublished(id, req.IsPublished)
	if err != nil {
		if errors.Is(err, services.ErrPortfolioNotFound) {
			response.Fail(c.Ctx, code.ErrPortfolioNotFound, nil)
			return
		}
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to update publish state", err)
		return
	}

	middleware.PurgeCache()
	response.SuccessWithMessage(c.Ctx, "Publish state updated", gin.H{"portfolio": portfolio})
}
