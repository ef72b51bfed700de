package models

import "time"

// ExhibitionCategory 展会类别
type ExhibitionCategory string

const (
	ExhibitionCategoryTradeShow     ExhibitionCategory = "trade_show"
	ExhibitionCategoryArtExhibition ExhibitionCategory = "art_exhibition"
	ExhibitionCategoryProductLaunch ExhibitionCategory = "product_launch"
	ExhibitionCategoryConference    ExhibitionCategory = "conference"
	ExhibitionCategoryExpo          ExhibitionCategory = "expo"
	ExhibitionCategoryOther         ExhibitionCategory = "other"
)

// ExhibitionStatus 展会状态，除 cancelled 外均由起止时间推导
type ExhibitionStatus string

const (
	ExhibitionStatusUpcoming  ExhibitionStatus = "upcoming"
	ExhibitionStatusOngoing   ExhibitionStatus = "ongoing"
	ExhibitionStatusCompleted ExhibitionStatus = "completed"
	ExhibitionStatusCancelled ExhibitionStatus = "cancelled"
)

// StallSize 展位尺寸标识
type StallSize string

const (
	StallSizeSmall  StallSize = "small"
	StallSizeMedium StallSize = "medium"
	StallSizeLarge  StallSize = "large"
)

// StallCounts 各尺寸展位库存
// 拆成独立列以便注册展位时做条件自减
type StallCounts struct {
	Small  int `json:"small"`
	Medium int `json:"medium"`
	Large  int `json:"large"`
}

// StallPricing 各尺寸展位价格
type StallPricing struct {
	Small    float64 `json:"small"`
	Medium   float64 `json:"medium"`
	Large    float64 `json:"large"`
	Currency string  `json:"currency"`
}

// SponsorshipTier 赞助等级
type SponsorshipTier struct {
	Name     string   `json:"name"`
	Benefits []string `json:"benefits"`
	Cost     float64  `json:"cost"`
}

// ExhibitionGuide 展会指南文档
type ExhibitionGuide struct {
	URL  string `json:"url,omitempty"`
	Name string `json:"name,omitempty"`
}

// Exhibition represents a bookable trade-show event
type Exhibition struct {
	BaseModel
	Title           string             `gorm:"type:varchar(200);not null" json:"title"`
	Description     string             `gorm:"type:text;not null" json:"description"`
	StartDate       time.Time          `gorm:"not null" json:"startDate"`
	EndDate         time.Time          `gorm:"not null" json:"endDate"`
	Location        string             `gorm:"type:varchar(200);not null" json:"location"`
	CoverImageURL   string             `gorm:"type:varchar(500);not null" json:"coverImageUrl"`
	CoverImageName  string             `gorm:"type:varchar(255)" json:"coverImageName,omitempty"`
	Category        ExhibitionCategory `gorm:"type:varchar(30);default:'expo'" json:"category"`
	Status          ExhibitionStatus   `gorm:"type:varchar(20);default:'upcoming'" json:"status"`
	Capacity        int                `gorm:"default:100" json:"capacity"`
	RegisteredCount int                `gorm:"default:0" json:"registeredCount"`
	StallSize       StallCounts        `gorm:"embedded;embeddedPrefix:stall_" json:"stallSize"`
	Pricing         StallPricing       `gorm:"embedded;embeddedPrefix:price_" json:"pricing"`
	Amenities       []string           `gorm:"serializer:json" json:"amenities"`
	SponsorshipTiers []SponsorshipTier `gorm:"serializer:json" json:"sponsorshipTiers"`
	ExhibitionGuide ExhibitionGuide    `gorm:"embedded;embeddedPrefix:guide_" json:"exhibitionGuide"`
	ImageGallery    []GalleryImage     `gorm:"serializer:json" json:"imageGallery"`
	IsPublished     bool               `gorm:"default:false" json:"isPublished"`
	CreatedByID     uint               `gorm:"not null" json:"createdById"`

	// Relations
	CreatedBy *Admin `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
}

// IsValidExhibitionCategory 校验类别取值
func IsValidExhibitionCategory(category string) bool {
	switch ExhibitionCategory(category) {
	case ExhibitionCategoryTradeShow, ExhibitionCategoryArtExhibition,
		ExhibitionCategoryProductLaunch, ExhibitionCategoryConference,
		ExhibitionCategoryExpo, ExhibitionCategoryOther:
		return true
	}
	return false
}

// IsValidStallSize 校验展位尺寸取值
func IsValidStallSize(size string) bool {
	switch StallSize(size) {
	case StallSizeSmall, StallSizeMedium, StallSizeLarge:
		return true
	}
	return false
}

// Count 返回指定尺寸的库存数量
func (s StallCounts) Count(size StallSize) int {
	switch size {
	case StallSizeSmall:
		return s.Small
	case StallSizeMedium:
		return s.Medium
	case StallSizeLarge:
		return s.Large
	}
	return 0
}
