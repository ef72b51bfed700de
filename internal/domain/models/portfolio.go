package models

import "time"

// PortfolioCategory 作品集类别
type PortfolioCategory string

const (
	PortfolioCategoryExhibition PortfolioCategory = "exhibition"
	PortfolioCategoryDesign     PortfolioCategory = "design"
	PortfolioCategoryEvent      PortfolioCategory = "event"
	PortfolioCategoryOther      PortfolioCategory = "other"
)

// PortfolioStatus 作品集状态
type PortfolioStatus string

const (
	PortfolioStatusDraft     PortfolioStatus = "draft"
	PortfolioStatusActive    PortfolioStatus = "active"
	PortfolioStatusCompleted PortfolioStatus = "completed"
	PortfolioStatusArchived  PortfolioStatus = "archived"
)

// Portfolio represents a showcased past project
type Portfolio struct {
	BaseModel
	Title        string            `gorm:"type:varchar(200);not null" json:"title"`
	Description  string            `gorm:"type:text;not null" json:"description"`
	Category     PortfolioCategory `gorm:"type:varchar(30);default:'exhibition'" json:"category"`
	ImageURL     string            `gorm:"type:varchar(500);not null" json:"imageUrl"`
	ImageName    string            `gorm:"type:varchar(255)" json:"imageName,omitempty"`
	ThumbnailURL string            `gorm:"type:varchar(500)" json:"thumbnailUrl,omitempty"`
	Client       string            `gorm:"type:varchar(200)" json:"client,omitempty"`
	Location     string            `gorm:"type:varchar(200)" json:"location,omitempty"`
	StartDate    *time.Time        `json:"startDate,omitempty"`
	EndDate      *time.Time        `json:"endDate,omitempty"`
	Budget       Money             `gorm:"embedded;embeddedPrefix:budget_" json:"budget"`
	Status       PortfolioStatus   `gorm:"type:varchar(20);default:'draft'" json:"status"`
	IsPublished  bool              `gorm:"default:false" json:"isPublished"`
	Order        int               `gorm:"column:sort_order;default:0" json:"order"` // 自定义排序权重
	Tags         []string          `gorm:"serializer:json" json:"tags"`
	GalleryURLs  []GalleryImage    `gorm:"serializer:json" json:"galleryUrls"`
	CreatedByID  uint              `gorm:"not null" json:"createdById"`

	// Relations
	CreatedBy *Admin `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
}

// IsValidPortfolioCategory 校验类别取值
func IsValidPortfolioCategory(category string) bool {
	switch PortfolioCategory(category) {
	case PortfolioCategoryExhibition, PortfolioCategoryDesign,
		PortfolioCategoryEvent, PortfolioCategoryOther:
		return true
	}
	return false
}

// IsValidPortfolioStatus 校验状态取值
func IsValidPortfolioStatus(status string) bool {
	switch PortfolioStatus(status) {
	case PortfolioStatusDraft, PortfolioStatusActive,
		PortfolioStatusCompleted, PortfolioStatusArchived:
		return true
	}
	return false
}
