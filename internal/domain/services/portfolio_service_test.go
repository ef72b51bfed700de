package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/models"
	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/config"
)

func newTestPortfolioService(t *testing.T) (InterfacePortfolioService, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	cfg := &config.Config{PublicBaseURL: "http://localhost:5000"}
	return NewPortfolioService(db, cfg, NewBlobService(cfg), NewURLService(cfg)), mock
}

func TestCreatePortfolioDefaults(t *testing.T) {
	svc, mock := newTestPortfolioService(t)

	mock.ExpectExec("INSERT INTO `portfolios`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	portfolio := &models.Portfolio{
		Title:       "Auto Expo Stand",
		Description: "Double-decker stall",
		ImageURL:    "http://localhost:5000/uploads/main.png",
	}
	require.NoError(t, svc.CreatePortfolio(portfolio))

	assert.Equal(t, models.PortfolioCategoryExhibition, portfolio.Category)
	assert.Equal(t, models.PortfolioStatusActive, portfolio.Status)
	assert.True(t, portfolio.IsPublished)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPortfolioByIDNotFound(t *testing.T) {
	svc, mock := newTestPortfolioService(t)

	mock.ExpectQuery("SELECT \\* FROM `portfolios`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetPortfolioByID(404)
	assert.ErrorIs(t, err, ErrPortfolioNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPortfoliosNormalizesImageURLs(t *testing.T) {
	svc, mock := newTestPortfolioService(t)

	rows := sqlmock.NewRows([]string{"id", "title", "image_url", "is_published"}).
		AddRow(1, "Auto Expo Stand", "http://localhost:9999/uploads/main.png", true)
	mock.ExpectQuery("SELECT \\* FROM `portfolios`").
		WillReturnRows(rows)

	portfolios, err := svc.GetPortfolios(PortfolioFilter{})
	require.NoError(t, err)
	require.Len(t, portfolios, 1)

	// 历史 localhost 地址被改写到当前对外地址
	assert.Equal(t, "http://localhost:5000/uploads/main.png", portfolios[0].ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}
