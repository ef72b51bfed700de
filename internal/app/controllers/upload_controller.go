package controllers

import (
	"encoding/base64"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services/container"
	"github.com/Riju7407/STAGEJHOOK-main/internal/error/code"
	"github.com/Riju7407/STAGEJHOOK-main/internal/error/response"
)

// 上传文件大小上限
const maxUploadBytes = 10 << 20

// InterfaceUploadController 定义上传控制器接口
type InterfaceUploadController interface {
	Upload()
	Delete()
}

// UploadController 文件上传控制器
type UploadController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUploadController 创建一个新的上传控制器
func NewUploadController(ctx *gin.Context, container *container.ServiceContainer) *UploadController {
	return &UploadController{
		Ctx:       ctx,
		Container: container,
	}
}

// UploadRequest 文件上传请求，文件内容为 data URL 或纯 base64
// 客户端声明的 contentType 优先，data URL 自带的MIME类型作兜底
type UploadRequest struct {
	File        string `json:"file" binding:"required"`
	FileName    string `json:"fileName" binding:"required" example:"stall-design.png"`
	ContentType string `json:"contentType" example:"image/png"`
}

// HandleUploadFunc 返回一个处理上传请求的Gin处理函数
func HandleUploadFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUploadController(ctx, container)

		switch method {
		case "upload":
			controller.Upload()
		case "delete":
			controller.Delete()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "Invalid method", nil)
		}
	}
}

// decodeDataURL 解析 data URL，返回内容与MIME类型
// 纯 base64 输入按 application/octet-stream 处理
func decodeDataURL(input string) ([]byte, string, error) {
	contentType := "application/octet-stream"
	payload := input

	if strings.HasPrefix(input, "data:") {
		parts := strings.SplitN(input, ",", 2)
		if len(parts) != 2 {
			return nil, "", base64.CorruptInputError(0)
		}
		meta := strings.TrimPrefix(parts[0], "data:")
		meta = strings.TrimSuffix(meta, ";base64")
		if meta != "" {
			contentType = meta
		}
		payload = parts[1]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}

// 1. Upload 上传文件
// @Summary      上传文件
// @Description  接收 base64 编码的文件内容，返回可公开访问的URL
// @Tags         Upload
// @Accept       json
// @Produce      json
// @Param        request body UploadRequest true "文件内容"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /upload/image [post]
// @Security     BearerAuth
func (c *UploadController) Upload() {
	var req UploadRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Please provide file content and fileName")
		return
	}

	data, contentType, err := decodeDataURL(req.File)
	if err != nil {
		response.Fail(c.Ctx, code.ErrFileInvalid, nil)
		return
	}
	if req.ContentType != "" {
		contentType = req.ContentType
	}
	if len(data) == 0 || len(data) > maxUploadBytes {
		response.FailWithMessage(c.Ctx, code.ErrFileInvalid, "File is empty or exceeds the 10MB limit", nil)
		return
	}

	blobService := c.Container.GetService("blob").(services.InterfaceBlobService)
	stored, err := blobService.Store(data, req.FileName, contentType)
	if err != nil {
		response.FailWithError(c.Ctx, code.ErrStorage, "Failed to store file", err)
		return
	}

	response.Created(c.Ctx, "File uploaded successfully", gin.H{
		"url":      stored.URL,
		"pathname": stored.Pathname,
		"size":     stored.Size,
	})
}

// 2. Delete 删除已上传文件
// 路径参数可以是存储路径名，也可以是完整的公开URL
// @Summary      删除已上传文件
// @Tags         Upload
// @Produce      json
// @Param        pathname path string true "文件路径名或URL"
// @Success      200  {object}  response.Response
// @Router       /upload/image/{pathname} [delete]
// @Security     BearerAuth
func (c *UploadController) Delete() {
	pathname := strings.TrimPrefix(c.Ctx.Param("pathname"), "/")
	if pathname == "" {
		response.ParamError(c.Ctx, "Please provide a file pathname")
		return
	}

	blobService := c.Container.GetService("blob").(services.InterfaceBlobService)
	if err := blobService.Remove(pathname); err != nil {
		response.FailWithError(c.Ctx, code.ErrStorage, "Failed to delete file", err)
		return
	}

	response.SuccessWithMessage(c.Ctx, "File deleted successfully", nil)
}
