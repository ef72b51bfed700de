package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/models"
	Logger "github.com/Riju7407/STAGEJHOOK-main/pkg/logger"
)

// ErrStatsAlreadyExists 统计记录已存在，全库只允许一条
var ErrStatsAlreadyExists = errors.New("stats record already exists")

// InterfaceStatsService 首页统计服务接口
type InterfaceStatsService interface {
	GetOrCreateStats() (*models.Stats, error)
	CreateStats(stats *models.Stats) error
	UpdateStats(updates map[string]interface{}) (*models.Stats, error)
	DeleteStats() error
}

// StatsService 首页统计服务，维护单例计数器记录
type StatsService struct {
	DB *gorm.DB
}

// NewStatsService 创建统计服务
func NewStatsService(db *gorm.DB) InterfaceStatsService {
	return &StatsService{DB: db}
}

// 1 GetOrCreateStats 获取统计记录，不存在时用默认值懒创建
func (s *StatsService) GetOrCreateStats() (*models.Stats, error) {
	var stats models.Stats
	err := s.DB.First(&stats).Error
	if err == nil {
		return &stats, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaults := models.DefaultStats()
	if err := s.DB.Create(defaults).Error; err != nil {
		return nil, err
	}
	Logger.Info("已创建默认首页统计记录")
	return defaults, nil
}

// 2 CreateStats 显式创建统计记录，已存在时拒绝
func (s *StatsService) CreateStats(stats *models.Stats) error {
	var count int64
	if err := s.DB.Model(&models.Stats{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrStatsAlreadyExists
	}
	return s.DB.Create(stats).Error
}

// 3 UpdateStats 更新统计记录，不存在时先懒创建再更新
func (s *StatsService) UpdateStats(updates map[string]interface{}) (*models.Stats, error) {
	stats, err := s.GetOrCreateStats()
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(stats).Updates(updates).Error; err != nil {
		return nil, err
	}

	var refreshed models.Stats
	if err := s.DB.First(&refreshed, stats.ID).Error; err != nil {
		return nil, err
	}
	return &refreshed, nil
}

// 4 DeleteStats 删除统计记录，下次读取会重新懒创建默认值
func (s *StatsService) DeleteStats() error {
	result := s.DB.Where("1 = 1").Delete(&models.Stats{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
