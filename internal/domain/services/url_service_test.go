package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/models"
	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/config"
)

func newTestURLService() InterfaceURLService {
	return NewURLService(&config.Config{PublicBaseURL: "https://api.stagejhook.com"})
}

func TestNormalize(t *testing.T) {
	svc := newTestURLService()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"空字符串原样返回", "", ""},
		{"localhost改写为对外地址", "http://localhost:5000/uploads/a.png", "https://api.stagejhook.com/uploads/a.png"},
		{"127.0.0.1改写为对外地址", "http://127.0.0.1:5000/uploads/a.png", "https://api.stagejhook.com/uploads/a.png"},
		{"保留查询参数", "http://localhost:5000/uploads/a.png?v=2", "https://api.stagejhook.com/uploads/a.png?v=2"},
		{"外部URL原样返回", "https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"相对路径原样返回", "/uploads/a.png", "/uploads/a.png"},
		{"已归一化的URL幂等", "https://api.stagejhook.com/uploads/a.png", "https://api.stagejhook.com/uploads/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.Normalize(tt.in))
		})
	}
}

func TestNormalizePortfolio(t *testing.T) {
	svc := newTestURLService()

	p := &models.Portfolio{
		ImageURL:     "http://localhost:5000/uploads/main.png",
		ThumbnailURL: "http://localhost:5000/uploads/thumb.png",
		GalleryURLs: []models.GalleryImage{
			{URL: "http://localhost:5000/uploads/g1.png"},
			{URL: "https://cdn.example.com/g2.png"},
		},
	}

	svc.NormalizePortfolio(p)

	assert.Equal(t, "https://api.stagejhook.com/uploads/main.png", p.ImageURL)
	assert.Equal(t, "https://api.stagejhook.com/uploads/thumb.png", p.ThumbnailURL)
	assert.Equal(t, "https://api.stagejhook.com/uploads/g1.png", p.GalleryURLs[0].URL)
	assert.Equal(t, "https://cdn.example.com/g2.png", p.GalleryURLs[1].URL)
}

func TestNormalizeExhibition(t *testing.T) {
	svc := newTestURLService()

	e := &models.Exhibition{
		CoverImageURL: "http://localhost:5000/uploads/cover.png",
		ExhibitionGuide: models.ExhibitionGuide{
			URL: "http://127.0.0.1:5000/uploads/guide.pdf",
		},
		ImageGallery: []models.GalleryImage{
			{URL: "http://localhost:5000/uploads/hall.png"},
		},
	}

	svc.NormalizeExhibition(e)

	assert.Equal(t, "https://api.stagejhook.com/uploads/cover.png", e.CoverImageURL)
	assert.Equal(t, "https://api.stagejhook.com/uploads/guide.pdf", e.ExhibitionGuide.URL)
	assert.Equal(t, "https://api.stagejhook.com/uploads/hall.png", e.ImageGallery[0].URL)
}

func TestNormalizeNilRecords(t *testing.T) {
	svc := newTestURLService()

	// nil 记录不应 panic
	svc.NormalizePortfolio(nil)
	svc.NormalizeExhibition(nil)
}
