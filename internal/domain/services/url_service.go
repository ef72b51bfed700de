package services

import (
	"net/url"
	"strings"

	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/models"
	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/config"
)

// InterfaceURLService 图片URL归一化服务接口
type InterfaceURLService interface {
	Normalize(raw string) string
	NormalizePortfolio(p *models.Portfolio)
	NormalizeExhibition(e *models.Exhibition)
}

// URLService 图片URL归一化服务
// 历史数据中保存过开发环境的 localhost 地址，
// 读取时统一改写为当前对外地址，避免前端拿到不可达的链接
type URLService struct {
	Config *config.Config
}

// NewURLService 创建URL归一化服务
func NewURLService(cfg *config.Config) InterfaceURLService {
	return &URLService{Config: cfg}
}

// 1 Normalize 归一化单个URL，幂等
// 只改写 localhost / 127.0.0.1 开头的绝对URL，其余原样返回
func (s *URLService) Normalize(raw string) string {
	if raw == "" {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || !parsed.IsAbs() {
		return raw
	}

	host := parsed.Hostname()
	if host != "localhost" && host != "127.0.0.1" {
		return raw
	}

	base := strings.TrimRight(s.Config.PublicBaseURL, "/")
	path := parsed.EscapedPath()
	if parsed.RawQuery != "" {
		path += "?" + parsed.RawQuery
	}
	return base + path
}

// 2 NormalizePortfolio 归一化作品集记录内的所有图片URL
func (s *URLService) NormalizePortfolio(p *models.Portfolio) {
	if p == nil {
		return
	}
	p.ImageURL = s.Normalize(p.ImageURL)
	p.ThumbnailURL = s.Normalize(p.ThumbnailURL)
	for i := range p.GalleryURLs {
		p.GalleryURLs[i].URL = s.Normalize(p.GalleryURLs[i].URL)
	}
}

// 3 NormalizeExhibition 归一化展会记录内的所有图片URL
func (s *URLService) NormalizeExhibition(e *models.Exhibition) {
	if e == nil {
		return
	}
	e.CoverImageURL = s.Normalize(e.CoverImageURL)
	e.ExhibitionGuide.URL = s.Normalize(e.ExhibitionGuide.URL)
	for i := range e.ImageGallery {
		e.ImageGallery[i].URL = s.Normalize(e.ImageGallery[i].URL)
	}
}
