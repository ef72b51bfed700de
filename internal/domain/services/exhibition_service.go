package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/models"
	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/config"
	Logger "github.com/Riju7407/STAGEJHOOK-main/pkg/logger"
)

// ErrExhibitionNotFound 展会不存在
var ErrExhibitionNotFound = errors.New("exhibition not found")

// ExhibitionFilter 展会列表查询条件
type ExhibitionFilter struct {
	Status      string
	Category    string
	IsPublished *bool
}

// StallRegistration 展位注册结果
type StallRegistration struct {
	Registered bool               `json:"registered"`
	Exhibition *models.Exhibition `json:"exhibition"`
}

// InterfaceExhibitionService 展会服务接口
type InterfaceExhibitionService interface {
	GetExhibitions(filter ExhibitionFilter) ([]models.Exhibition, error)
	GetExhibitionByID(id uint) (*models.Exhibition, error)
	CreateExhibition(exhibition *models.Exhibition) error
	UpdateExhibition(id uint, updates map[string]interface{}) (*models.Exhibition, error)
	DeleteExhibition(id uint) error
	SetPublished(id uint, published bool) (*models.Exhibition, error)
	RegisterStall(id uint, size models.StallSize) (*StallRegistration, error)
}

// ExhibitionService 展会服务
type ExhibitionService struct {
	DB     *gorm.DB
	Config *config.Config
	Blob   InterfaceBlobService
	URL    InterfaceURLService
}

// NewExhibitionService 创建展会服务
func NewExhibitionService(db *gorm.DB, cfg *config.Config, blob InterfaceBlobService, urlSvc InterfaceURLService) InterfaceExhibitionService {
	return &ExhibitionService{
		DB:     db,
		Config: cfg,
		Blob:   blob,
		URL:    urlSvc,
	}
}

// DeriveExhibitionStatus 按起止时间推导展会状态
// cancelled 是人工终态，不参与推导；起止时刻本身算进行中
func DeriveExhibitionStatus(current models.ExhibitionStatus, start, end time.Time, now time.Time) models.ExhibitionStatus {
	if current == models.ExhibitionStatusCancelled {
		return current
	}
	if now.Before(start) {
		return models.ExhibitionStatusUpcoming
	}
	if now.After(end) {
		return models.ExhibitionStatusCompleted
	}
	return models.ExhibitionStatusOngoing
}

// refreshStatus 读取后刷新单条记录的推导状态
// 只改内存中的值，推导结果不回写数据库
func (s *ExhibitionService) refreshStatus(e *models.Exhibition) {
	e.Status = DeriveExhibitionStatus(e.Status, e.StartDate, e.EndDate, time.Now())
}

// 1 GetExhibitions 按条件查询展会列表，开始时间升序
func (s *ExhibitionService) GetExhibitions(filter ExhibitionFilter) ([]models.Exhibition, error) {
	query := s.DB.Model(&models.Exhibition{}).
		Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.IsPublished != nil {
		query = query.Where("is_published = ?", *filter.IsPublished)
	}

	var exhibitions []models.Exhibition
	if err := query.Order("start_date ASC").Find(&exhibitions).Error; err != nil {
		return nil, err
	}

	// 状态由时间推导，过滤放在内存中做
	result := exhibitions[:0]
	for i := range exhibitions {
		s.refreshStatus(&exhibitions[i])
		s.URL.NormalizeExhibition(&exhibitions[i])
		if filter.Status != "" && string(exhibitions[i].Status) != filter.Status {
			continue
		}
		result = append(result, exhibitions[i])
	}
	return result, nil
}

// 2 GetExhibitionByID 根据ID获取展会
func (s *ExhibitionService) GetExhibitionByID(id uint) (*models.Exhibition, error) {
	var exhibition models.Exhibition
	err := s.DB.Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email")
	}).First(&exhibition, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExhibitionNotFound
		}
		return nil, err
	}

	s.refreshStatus(&exhibition)
	s.URL.NormalizeExhibition(&exhibition)
	return &exhibition, nil
}

// 3 CreateExhibition 创建展会
func (s *ExhibitionService) CreateExhibition(exhibition *models.Exhibition) error {
	if exhibition.EndDate.Before(exhibition.StartDate) {
		return errors.New("end date must not be before start date")
	}
	if exhibition.Category == "" {
		exhibition.Category = models.ExhibitionCategoryExpo
	}
	exhibition.Status = DeriveExhibitionStatus("", exhibition.StartDate, exhibition.EndDate, time.Now())
	return s.DB.Create(exhibition).Error
}

// 4 UpdateExhibition 更新展会
// 更换封面图时旧图尽力删除，删除失败不阻塞更新
func (s *ExhibitionService) UpdateExhibition(id uint, updates map[string]interface{}) (*models.Exhibition, error) {
	exhibition, err := s.GetExhibitionByID(id)
	if err != nil {
		return nil, err
	}

	oldCover := exhibition.CoverImageURL
	if err := s.DB.Model(exhibition).Updates(updates).Error; err != nil {
		return nil, err
	}

	if newCover, ok := updates["cover_image_url"].(string); ok && newCover != "" && newCover != oldCover {
		if err := s.Blob.Remove(oldCover); err != nil {
			Logger.Warning("旧封面图删除失败: %v", err)
		}
	}

	return s.GetExhibitionByID(id)
}

// 5 DeleteExhibition 删除展会
// 关联的图片资源尽力清理，清理失败只记录日志
func (s *ExhibitionService) DeleteExhibition(id uint) error {
	exhibition, err := s.GetExhibitionByID(id)
	if err != nil {
		return err
	}

	result := s.DB.Delete(&models.Exhibition{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrExhibitionNotFound
	}

	s.cleanupAssets(exhibition)
	return nil
}

// cleanupAssets 删除展会关联的所有存储文件
func (s *ExhibitionService) cleanupAssets(exhibition *models.Exhibition) {
	refs := []string{exhibition.CoverImageURL, exhibition.ExhibitionGuide.URL}
	for _, img := range exhibition.ImageGallery {
		refs = append(refs, img.URL)
	}
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if err := s.Blob.Remove(ref); err != nil {
			Logger.Warning("展会 %d 资源清理失败 %s: %v", exhibition.ID, ref, err)
		}
	}
}

// 6 SetPublished 发布或下架展会
func (s *ExhibitionService) SetPublished(id uint, published bool) (*models.Exhibition, error) {
	result := s.DB.Model(&models.Exhibition{}).Where("id = ?", id).Update("is_published", published)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Update 对值未变化的行也会计数，这里再确认一次存在性
		var count int64
		if err := s.DB.Model(&models.Exhibition{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrExhibitionNotFound
		}
	}
	return s.GetExhibitionByID(id)
}

// 7 RegisterStall 注册指定尺寸的展位
// 条件自减保证并发注册不会把库存减成负数；
// 库存已空或尺寸未知时不报错，返回 Registered=false 与当前记录
func (s *ExhibitionService) RegisterStall(id uint, size models.StallSize) (*StallRegistration, error) {
	registered := false
	if models.IsValidStallSize(string(size)) {
		column := "stall_" + string(size)
		result := s.DB.Model(&models.Exhibition{}).
			Where(fmt.Sprintf("id = ? AND %s > 0", column), id).
			Updates(map[string]interface{}{
				column:             gorm.Expr(column+" - 1"),
				"registered_count": gorm.Expr("registered_count + 1"),
			})
		if result.Error != nil {
			return nil, result.Error
		}
		registered = result.RowsAffected > 0
	}

	exhibition, err := s.GetExhibitionByID(id)
	if err != nil {
		return nil, err
	}

	return &StallRegistration{
		Registered: registered,
		Exhibition: exhibition,
	}, nil
}
