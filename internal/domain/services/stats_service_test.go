package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/models"
)

func TestGetOrCreateStatsReturnsExisting(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)

	rows := sqlmock.NewRows([]string{"id", "covered_area_value", "covered_area_label", "clients_value"}).
		AddRow(1, 50000, "sqm Covered Area", 700)
	mock.ExpectQuery("SELECT \\* FROM `stats`").
		WillReturnRows(rows)

	stats, err := svc.GetOrCreateStats()
	require.NoError(t, err)
	assert.Equal(t, float64(50000), stats.CoveredArea.Value)
	assert.Equal(t, float64(700), stats.Clients.Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateStatsLazyCreatesDefaults(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)

	mock.ExpectQuery("SELECT \\* FROM `stats`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `stats`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	stats, err := svc.GetOrCreateStats()
	require.NoError(t, err)
	assert.Equal(t, float64(46000), stats.CoveredArea.Value)
	assert.Equal(t, float64(650), stats.Clients.Value)
	assert.Equal(t, float64(2700), stats.ExhibitionStands.Value)
	assert.Equal(t, float64(95), stats.Avenues.Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStatsRejectsSecondRecord(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `stats`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := svc.CreateStats(models.DefaultStats())
	assert.ErrorIs(t, err, ErrStatsAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteStatsRemovesSingleton(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)

	mock.ExpectExec("DELETE FROM `stats`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, svc.DeleteStats())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteStatsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)

	mock.ExpectExec("DELETE FROM `stats`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.DeleteStats()
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
