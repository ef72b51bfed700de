package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/config"
	Logger "github.com/Riju7407/STAGEJHOOK-main/pkg/logger"
)

// StoredFile 上传结果
type StoredFile struct {
	URL      string `json:"url"`
	Pathname string `json:"pathname"`
	Size     int64  `json:"size"`
}

// InterfaceBlobService 文件存储服务接口
// 测试中可替换为内存实现，任何操作都不假设远程存储可达
type InterfaceBlobService interface {
	Store(data []byte, fileName, contentType string) (*StoredFile, error)
	Remove(reference string) error
	PublicURL(pathname string) string
	Mode() string
}

// blobUploadResponse 远程对象存储的上传响应
type blobUploadResponse struct {
	URL      string `json:"url"`
	Pathname string `json:"pathname"`
}

// BlobService 文件存储服务
// 配置了远程对象存储则优先写远程，远程失败时回退到本地磁盘
type BlobService struct {
	Config *config.Config
	client *resty.Client

	logConfigOnce sync.Once // 存储配置只打印一次
}

// NewBlobService 创建文件存储服务
func NewBlobService(cfg *config.Config) InterfaceBlobService {
	client := resty.New().
		SetBaseURL(cfg.BlobStoreURL).
		SetTimeout(30 * time.Second).
		SetHeader("Authorization", "Bearer "+cfg.BlobStoreToken)

	return &BlobService{
		Config: cfg,
		client: client,
	}
}

// Mode 返回当前存储模式
func (s *BlobService) Mode() string {
	if s.Config.BlobStoreEnabled() {
		return "remote"
	}
	return "local"
}

// logConfig 首次使用时打印存储配置
func (s *BlobService) logConfig() {
	s.logConfigOnce.Do(func() {
		if s.Config.BlobStoreEnabled() {
			Logger.Info("文件存储模式: 远程对象存储 (%s)，失败时回退本地目录 %s", s.Config.BlobStoreURL, s.Config.UploadDir)
		} else {
			Logger.Info("文件存储模式: 本地目录 %s", s.Config.UploadDir)
		}
	})
}

// uniqueName 生成带时间戳前缀的唯一文件名，保留原始扩展名
func uniqueName(fileName string) string {
	base := filepath.Base(strings.TrimSpace(fileName))
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" || stem == "." {
		stem = uuid.NewString()
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), stem, ext)
}

// 1 Store 保存文件并返回可公开访问的URL
func (s *BlobService) Store(data []byte, fileName, contentType string) (*StoredFile, error) {
	s.logConfig()

	name := uniqueName(fileName)

	if s.Config.BlobStoreEnabled() {
		stored, err := s.storeRemote(data, name, contentType)
		if err == nil {
			return stored, nil
		}
		Logger.Warning("远程存储上传失败，回退到本地磁盘: %v", err)
	}

	return s.storeLocal(data, name)
}

// storeRemote 上传到远程对象存储
func (s *BlobService) storeRemote(data []byte, name, contentType string) (*StoredFile, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var result blobUploadResponse
	resp, err := s.client.R().
		SetHeader("Content-Type", contentType).
		SetBody(data).
		SetResult(&result).
		Put("/" + name)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("blob store returned %s", resp.Status())
	}
	if result.URL == "" {
		return nil, fmt.Errorf("blob store response missing url")
	}

	pathname := result.Pathname
	if pathname == "" {
		pathname = name
	}

	return &StoredFile{
		URL:      result.URL,
		Pathname: pathname,
		Size:     int64(len(data)),
	}, nil
}

// storeLocal 将文件写入本地上传目录
func (s *BlobService) storeLocal(data []byte, name string) (*StoredFile, error) {
	if err := os.MkdirAll(s.Config.UploadDir, 0755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}

	path := filepath.Join(s.Config.UploadDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("写入文件失败: %w", err)
	}

	return &StoredFile{
		URL:      s.PublicURL(name),
		Pathname: name,
		Size:     int64(len(data)),
	}, nil
}

// 2 Remove 删除存储的文件
// 远程引用先尝试远程删除，失败后按文件名回退删除本地副本；
// 本地文件不存在只记录警告，不视为错误
func (s *BlobService) Remove(reference string) error {
	s.logConfig()

	if reference == "" {
		return nil
	}

	if s.Config.BlobStoreEnabled() && isRemoteURL(reference, s.Config.PublicBaseURL) {
		resp, err := s.client.R().Delete("/" + filepath.Base(reference))
		if err == nil && !resp.IsError() {
			return nil
		}
		Logger.Warning("远程存储删除失败，尝试删除本地副本: %s", reference)
	}

	return s.removeLocal(reference)
}

// removeLocal 按提取出的文件名删除本地文件
func (s *BlobService) removeLocal(reference string) error {
	name := filepath.Base(reference)
	path := filepath.Join(s.Config.UploadDir, name)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		Logger.Warning("本地文件不存在，跳过删除: %s", name)
		return nil
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("删除文件失败: %w", err)
	}
	return nil
}

// 3 PublicURL 由文件名构造公开访问URL，幂等：
// 已是绝对URL的引用原样返回
func (s *BlobService) PublicURL(pathname string) string {
	if strings.HasPrefix(pathname, "http://") || strings.HasPrefix(pathname, "https://") {
		return pathname
	}
	return strings.TrimRight(s.Config.PublicBaseURL, "/") + "/uploads/" + pathname
}

// isRemoteURL 判断引用是否指向远程对象存储
// 指向本站公开地址的URL属于本地存储产物
func isRemoteURL(reference, publicBase string) bool {
	if !strings.HasPrefix(reference, "http://") && !strings.HasPrefix(reference, "https://") {
		return false
	}
	return !strings.HasPrefix(reference, strings.TrimRight(publicBase, "/"))
}
