package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/models"
	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/config"
	Logger "github.com/Riju7407/STAGEJHOOK-main/pkg/logger"
)

// ErrPortfolioNotFound 作品集条目不存在
var ErrPortfolioNotFound = errors.New("portfolio item not found")

// PortfolioFilter 作品集列表查询条件
type PortfolioFilter struct {
	Category    string
	Status      string
	IsPublished *bool
}

// InterfacePortfolioService 作品集服务接口
type InterfacePortfolioService interface {
	GetPortfolios(filter PortfolioFilter) ([]models.Portfolio, error)
	GetPortfolioByID(id uint) (*models.Portfolio, error)
	CreatePortfolio(portfolio *models.Portfolio) error
	UpdatePortfolio(id uint, updates map[string]interface{}) (*models.Portfolio, error)
	DeletePortfolio(id uint) error
	SetPublished(id uint, published bool) (*models.Portfolio, error)
}

// PortfolioService 作品集服务
type PortfolioService struct {
	DB     *gorm.DB
	Config *config.Config
	Blob   InterfaceBlobService
	URL    InterfaceURLService
}

// NewPortfolioService 创建作品集服务
func NewPortfolioService(db *gorm.DB, cfg *config.Config, blob InterfaceBlobService, urlSvc InterfaceURLService) InterfacePortfolioService {
	return &PortfolioService{
		DB:     db,
		Config: cfg,
		Blob:   blob,
		URL:    urlSvc,
	}
}

// 1 GetPortfolios 按条件查询作品集，排序权重优先、创建时间倒序
func (s *PortfolioService) GetPortfolios(filter PortfolioFilter) ([]models.Portfolio, error) {
	query := s.DB.Model(&models.Portfolio{}).
		Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.IsPublished != nil {
		query = query.Where("is_published = ?", *filter.IsPublished)
	}

	var portfolios []models.Portfolio
	if err := query.Order("sort_order ASC, created_at DESC").Find(&portfolios).Error; err != nil {
		return nil, err
	}

	for i := range portfolios {
		s.URL.NormalizePortfolio(&portfolios[i])
	}
	return portfolios, nil
}

// 2 GetPortfolioByID 根据ID获取作品集条目
func (s *PortfolioService) GetPortfolioByID(id uint) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	err := s.DB.Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email")
	}).First(&portfolio, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		return nil, err
	}

	s.URL.NormalizePortfolio(&portfolio)
	return &portfolio, nil
}

// 3 CreatePortfolio 创建作品集条目
// 管理后台创建的条目默认直接发布
func (s *PortfolioService) CreatePortfolio(portfolio *models.Portfolio) error {
	if portfolio.Category == "" {
		portfolio.Category = models.PortfolioCategoryExhibition
	}
	if portfolio.Status == "" {
		portfolio.Status = models.PortfolioStatusActive
	}
	portfolio.IsPublished = true
	return s.DB.Create(portfolio).Error
}

// 4 UpdatePortfolio 更新作品集条目
// 更换主图时旧图尽力删除，删除失败不阻塞更新
func (s *PortfolioService) UpdatePortfolio(id uint, updates map[string]interface{}) (*models.Portfolio, error) {
	portfolio, err := s.GetPortfolioByID(id)
	if err != nil {
		return nil, err
	}

	oldImage := portfolio.ImageURL
	if err := s.DB.Model(portfolio).Updates(updates).Error; err != nil {
		return nil, err
	}

	if newImage, ok := updates["image_url"].(string); ok && newImage != "" && newImage != oldImage {
		if err := s.Blob.Remove(oldImage); err != nil {
			Logger.Warning("旧主图删除失败: %v", err)
		}
	}

	return s.GetPortfolioByID(id)
}

// 5 DeletePortfolio 删除作品集条目，关联图片尽力清理
func (s *PortfolioService) DeletePortfolio(id uint) error {
	portfolio, err := s.GetPortfolioByID(id)
	if err != nil {
		return err
	}

	result := s.DB.Delete(&models.Portfolio{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioNotFound
	}

	refs := []string{portfolio.ImageURL, portfolio.ThumbnailURL}
	for _, img := range portfolio.GalleryURLs {
		refs = append(refs, img.URL)
	}
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if err := s.Blob.Remove(ref); err != nil {
			Logger.Warning("作品集 %d 资源清理失败 %s: %v", portfolio.ID, ref, err)
		}
	}
	return nil
}

// 6 SetPublished 发布或下架作品集条目
func (s *PortfolioService) SetPublished(id uint, published bool) (*models.Portfolio, error) {
	var count int64
	if err := s.DB.Model(&models.Portfolio{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrPortfolioNotFound
	}

	if err := s.DB.Model(&models.Portfolio{}).Where("id = ?", id).Update("is_published", published).Error; err != nil {
		return nil, err
	}
	return s.GetPortfolioByID(id)
}
