package models

import "time"

// BaseModel 所有实体的公共字段
// json 字段名与前端约定保持 camelCase
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GalleryImage 图册条目，按 order 排序展示
type GalleryImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
	Order   int    `json:"order"`
}

// Money 金额与币种
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}
