package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Riju7407/STAGEJHOOK-main/internal/app/middleware"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/models"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services/container"
	"github.com/Riju7407/STAGEJHOOK-main/internal/error/code"
	"github.com/Riju7407/STAGEJHOOK-main/internal/error/response"
)

// InterfaceStatsController 定义统计控制器接口
type InterfaceStatsController interface {
	GetStats()
	CreateStats()
	UpdateStats()
	DeleteStats()
}

// StatsController 首页统计控制器
type StatsController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewStatsController 创建一个新的统计控制器
func NewStatsController(ctx *gin.Context, container *container.ServiceContainer) *StatsController {
	return &StatsController{
		Ctx:       ctx,
		Container: container,
	}
}

// StatsRequest 统计数据写入请求
type StatsRequest struct {
	CoveredArea      *models.StatMetric `json:"coveredArea"`
	Clients          *models.StatMetric `json:"clients"`
	ExhibitionStands *models.StatMetric `json:"exhibitionStands"`
	Avenues          *models.StatMetric `json:"avenues"`
}

// HandleStatsFunc 返回一个处理统计请求的Gin处理函数
func HandleStatsFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewStatsController(ctx, container)

		switch method {
		case "getStats":
			controller.GetStats()
		case "createStats":
			controller.CreateStats()
		case "updateStats":
			controller.UpdateStats()
		case "deleteStats":
			controller.DeleteStats()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Invalid method", nil)
		}
	}
}

// 1. GetStats 获取首页统计数据，公开接口
// 不存在时用默认值懒创建
// @Summary      获取首页统计数据
// @Tags         Stats
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /stats [get]
func (c *StatsController) GetStats() {
	statsService := c.Container.GetService("stats").(services.InterfaceStatsService)
	stats, err := statsService.GetOrCreateStats()
	if err != nil {
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to fetch stats", err)
		return
	}
	response.Success(c.Ctx, gin.H{"stats": stats})
}

// 2. CreateStats 创建统计记录，全库仅允许一条
// @Summary      创建统计记录
// @Tags         Stats
// @Accept       json
// @Produce      json
// @Param        request body StatsRequest true "统计数据"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /stats [post]
// @Security     BearerAuth
func (c *StatsController) CreateStats() {
	var req StatsRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Invalid stats data: "+err.Error())
		return
	}

	stats := models.DefaultStats()
	if req.CoveredArea != nil {
		stats.CoveredArea = *req.CoveredArea
	}
	if req.Clients != nil {
		stats.Clients = *req.Clients
	}
	if req.ExhibitionStands != nil {
		stats.ExhibitionStands = *req.ExhibitionStands
	}
	if req.Avenues != nil {
		stats.Avenues = *req.Avenues
	}

	statsService := c.Container.GetService("stats").(services.InterfaceStatsService)
	if err := statsService.CreateStats(stats); err != nil {
		if errors.Is(err, services.ErrStatsAlreadyExists) {
			response.Fail(c.Ctx, code.ErrStatsAlreadyExist, nil)
			return
		}
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to create stats", err)
		return
	}

	middleware.PurgeCache()
	response.Created(c.Ctx, "Stats created successfully", gin.H{"stats": stats})
}

// 3. UpdateStats 更新统计数据
// @Summary      更新统计数据
// @Tags         Stats
// @Accept       json
// @Produce      json
// @Param        request body StatsRequest true "统计数据"
// @Success      200  {object}  response.Response
// @Router       /stats [put]
// @Security     BearerAuth
func (c *StatsController) UpdateStats() {
	var req StatsRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Invalid stats data: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.CoveredArea != nil {
		updates["covered_area_value"] = req.CoveredArea.Value
		updates["covered_area_label"] = req.CoveredArea.Label
	}
	if req.Clients != nil {
		updates["clients_value"] = req.Clients.Value
		updates["clients_label"] = req.Clients.Label
	}
	if req.ExhibitionStands != nil {
		updates["exhibition_stands_value"] = req.ExhibitionStands.Value
		updates["exhibition_stands_label"] = req.ExhibitionStands.Label
	}
	if req.Avenues != nil {
		updates["avenues_value"] = req.Avenues.Value
		updates["avenues_label"] = req.Avenues.Label
	}
	if len(updates) == 0 {
		response.ParamError(c.Ctx, "No fields to update")
		return
	}

	statsService := c.Container.GetService("stats").(services.InterfaceStatsService)
	stats, err := statsService.UpdateStats(updates)
	if err != nil {
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to update stats", err)
		return
	}

	// 统计更新后清掉缓存的响应副本
	middleware.PurgeCache()

	response.SuccessWithMessage(c.Ctx, "Stats updated successfully", gin.H{"stats": stats})
}

// 4. DeleteStats 删除统计记录
// 删除后首页计数器回落到默认值
// @Summary      删除统计记录
// @Tags         Stats
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /stats [delete]
// @Security     BearerAuth
func (c *StatsController) DeleteStats() {
	statsService := c.Container.GetService("stats").(services.InterfaceStatsService)
	if err := statsService.DeleteStats(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c.Ctx, code.ErrStatsNotFound, nil)
			return
		}
		response.FailWithError(c.Ctx, code.ErrDatabase, "Failed to delete stats", err)
		return
	}

	middleware.PurgeCache()

	response.SuccessWithMessage(c.Ctx, "Stats deleted successfully", nil)
}
