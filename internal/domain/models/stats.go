package models

// StatMetric 首页计数器的单项指标
type StatMetric struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Stats 首页计数器配置，全库仅一条记录，首次读取时懒创建
type Stats struct {
	BaseModel
	CoveredArea      StatMetric `gorm:"embedded;embeddedPrefix:covered_area_" json:"coveredArea"`
	Clients          StatMetric `gorm:"embedded;embeddedPrefix:clients_" json:"clients"`
	ExhibitionStands StatMetric `gorm:"embedded;embeddedPrefix:exhibition_stands_" json:"exhibitionStands"`
	Avenues          StatMetric `gorm:"embedded;embeddedPrefix:avenues_" json:"avenues"`
}

// DefaultStats 返回带默认值的统计记录
func DefaultStats() *Stats {
	return &Stats{
		CoveredArea:      StatMetric{Value: 46000, Label: "sqm Covered Area"},
		Clients:          StatMetric{Value: 650, Label: "Clients"},
		ExhibitionStands: StatMetric{Value: 2700, Label: "Exhibition Stands"},
		Avenues:          StatMetric{Value: 95, Label: "Avenues"},
	}
}
