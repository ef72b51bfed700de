package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/models"
	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/config"
	Logger "github.com/Riju7407/STAGEJHOOK-main/pkg/logger"
)

// ErrEnquiryNotFound 询盘不存在
var ErrEnquiryNotFound = errors.New("enquiry not found")

// EnquiryFilter 询盘列表查询条件
type EnquiryFilter struct {
	Status      string
	EnquiryType string
	Priority    string
}

// InterfaceEnquiryService 询盘服务接口
type InterfaceEnquiryService interface {
	GetEnquiries(filter EnquiryFilter) ([]models.Enquiry, error)
	GetEnquiryByID(id uint) (*models.Enquiry, error)
	CreateEnquiry(enquiry *models.Enquiry) error
	UpdateEnquiry(id uint, updates map[string]interface{}) (*models.Enquiry, error)
	DeleteEnquiry(id uint) error
	AddResponse(id uint, respondentID uint, message, attachmentURL string) (*models.Enquiry, error)
	ExportExcel(filter EnquiryFilter) ([]byte, error)
}

// EnquiryService 询盘服务
type EnquiryService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewEnquiryService 创建询盘服务
func NewEnquiryService(db *gorm.DB, cfg *config.Config) InterfaceEnquiryService {
	return &EnquiryService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetEnquiries 按条件查询询盘，创建时间倒序
func (s *EnquiryService) GetEnquiries(filter EnquiryFilter) ([]models.Enquiry, error) {
	query := s.DB.Model(&models.Enquiry{}).
		Preload("Exhibition", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "start_date", "end_date")
		}).
		Preload("Portfolio", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title")
		}).
		Preload("AssignedTo", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.EnquiryType != "" {
		query = query.Where("enquiry_type = ?", filter.EnquiryType)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}

	var enquiries []models.Enquiry
	if err := query.Order("created_at DESC").Find(&enquiries).Error; err != nil {
		return nil, err
	}
	return enquiries, nil
}

// 2 GetEnquiryByID 根据ID获取询盘
func (s *EnquiryService) GetEnquiryByID(id uint) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	err := s.DB.
		Preload("Exhibition", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "start_date", "end_date")
		}).
		Preload("Portfolio", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title")
		}).
		Preload("AssignedTo", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		First(&enquiry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnquiryNotFound
		}
		return nil, err
	}
	return &enquiry, nil
}

// 3 CreateEnquiry 创建询盘
// 公开表单进来的数据先过一遍 sanitize，再落库
func (s *EnquiryService) CreateEnquiry(enquiry *models.Enquiry) error {
	s.sanitize(enquiry)
	return s.DB.Create(enquiry).Error
}

// sanitize 公开输入的收口点
// 未知枚举值回落到默认值而不是拒绝请求，引用了不存在记录的外键直接丢弃
func (s *EnquiryService) sanitize(enquiry *models.Enquiry) {
	enquiry.Email = strings.ToLower(strings.TrimSpace(enquiry.Email))

	if !models.IsValidEnquiryType(string(enquiry.EnquiryType)) {
		if enquiry.EnquiryType != "" {
			Logger.Warning("未知询盘类型 %q，回落到 general_inquiry", enquiry.EnquiryType)
		}
		enquiry.EnquiryType = models.EnquiryTypeGeneralInquiry
	}
	if !models.IsValidEnquiryStatus(string(enquiry.Status)) {
		enquiry.Status = models.EnquiryStatusNew
	}
	if !models.IsValidEnquiryPriority(string(enquiry.Priority)) {
		enquiry.Priority = models.EnquiryPriorityMedium
	}

	if enquiry.ExhibitionID != nil && !s.exists(&models.Exhibition{}, *enquiry.ExhibitionID) {
		Logger.Warning("询盘引用了不存在的展会 %d，已丢弃引用", *enquiry.ExhibitionID)
		enquiry.ExhibitionID = nil
	}
	if enquiry.PortfolioID != nil && !s.exists(&models.Portfolio{}, *enquiry.PortfolioID) {
		Logger.Warning("询盘引用了不存在的作品集 %d，已丢弃引用", *enquiry.PortfolioID)
		enquiry.PortfolioID = nil
	}
}

// exists 按主键检查记录是否存在
func (s *EnquiryService) exists(model interface{}, id uint) bool {
	var count int64
	if err := s.DB.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// 4 UpdateEnquiry 更新询盘（状态流转、指派、备注等）
func (s *EnquiryService) UpdateEnquiry(id uint, updates map[string]interface{}) (*models.Enquiry, error) {
	enquiry, err := s.GetEnquiryByID(id)
	if err != nil {
		return nil, err
	}

	if status, ok := updates["status"].(string); ok && !models.IsValidEnquiryStatus(status) {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if priority, ok := updates["priority"].(string); ok && !models.IsValidEnquiryPriority(priority) {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}

	if err := s.DB.Model(enquiry).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetEnquiryByID(id)
}

// 5 DeleteEnquiry 删除询盘
func (s *EnquiryService) DeleteEnquiry(id uint) error {
	result := s.DB.Delete(&models.Enquiry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEnquiryNotFound
	}
	return nil
}

// 6 AddResponse 追加一条管理员回复
// 回复后尚处 new 状态的询盘自动流转为 contacted
func (s *EnquiryService) AddResponse(id uint, respondentID uint, message, attachmentURL string) (*models.Enquiry, error) {
	enquiry, err := s.GetEnquiryByID(id)
	if err != nil {
		return nil, err
	}

	enquiry.Responses = append(enquiry.Responses, models.EnquiryResponse{
		RespondentID:  respondentID,
		Message:       message,
		AttachmentURL: attachmentURL,
		CreatedAt:     time.Now(),
	})

	updates := map[string]interface{}{"responses": enquiry.Responses}
	if enquiry.Status == models.EnquiryStatusNew {
		updates["status"] = string(models.EnquiryStatusContacted)
	}

	if err := s.DB.Model(enquiry).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetEnquiryByID(id)
}

// 7 ExportExcel 导出询盘列表为 xlsx
func (s *EnquiryService) ExportExcel(filter EnquiryFilter) ([]byte, error) {
	enquiries, err := s.GetEnquiries(filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Enquiries"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Name", "Email", "Phone", "Company", "Subject", "Type", "Status", "Priority", "Exhibition", "Portfolio", "Assigned To", "Created At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, enquiry := range enquiries {
		exhibitionTitle := ""
		if enquiry.Exhibition != nil {
			exhibitionTitle = enquiry.Exhibition.Title
		}
		portfolioTitle := ""
		if enquiry.Portfolio != nil {
			portfolioTitle = enquiry.Portfolio.Title
		}
		assignedTo := ""
		if enquiry.AssignedTo != nil {
			assignedTo = enquiry.AssignedTo.Name
		}

		values := []interface{}{
			enquiry.ID,
			enquiry.Name,
			enquiry.Email,
			enquiry.Phone,
			enquiry.Company,
			enquiry.Subject,
			string(enquiry.EnquiryType),
			string(enquiry.Status),
			string(enquiry.Priority),
			exhibitionTitle,
			portfolioTitle,
			assignedTo,
			enquiry.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
