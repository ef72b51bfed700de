package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/models"
	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/config"
)

func TestDeriveExhibitionStatus(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		current models.ExhibitionStatus
		start   time.Time
		end     time.Time
		want    models.ExhibitionStatus
	}{
		{"未开始", "", now.Add(24 * time.Hour), now.Add(48 * time.Hour), models.ExhibitionStatusUpcoming},
		{"进行中", "", now.Add(-24 * time.Hour), now.Add(24 * time.Hour), models.ExhibitionStatusOngoing},
		{"已结束", "", now.Add(-48 * time.Hour), now.Add(-24 * time.Hour), models.ExhibitionStatusCompleted},
		{"开始时刻算进行中", "", now, now.Add(24 * time.Hour), models.ExhibitionStatusOngoing},
		{"结束时刻算进行中", "", now.Add(-24 * time.Hour), now, models.ExhibitionStatusOngoing},
		{"取消是人工终态", models.ExhibitionStatusCancelled, now.Add(-24 * time.Hour), now.Add(24 * time.Hour), models.ExhibitionStatusCancelled},
		{"落库的过期状态被覆盖", models.ExhibitionStatusUpcoming, now.Add(-48 * time.Hour), now.Add(-24 * time.Hour), models.ExhibitionStatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveExhibitionStatus(tt.current, tt.start, tt.end, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegisterStallInvalidSizeIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)
	cfg := &config.Config{PublicBaseURL: "http://localhost:5000"}
	svc := NewExhibitionService(db, cfg, NewBlobService(cfg), NewURLService(cfg))

	// 未知尺寸不触发库存更新，只按原样返回当前记录
	start := time.Now().Add(24 * time.Hour)
	end := time.Now().Add(48 * time.Hour)
	rows := sqlmock.NewRows([]string{"id", "title", "start_date", "end_date", "status", "stall_medium", "registered_count"}).
		AddRow(1, "Auto Expo", start, end, "upcoming", 4, 12)
	mock.ExpectQuery("SELECT \\* FROM `exhibitions`").
		WillReturnRows(rows)

	result, err := svc.RegisterStall(1, "huge")
	require.NoError(t, err)
	assert.False(t, result.Registered)
	assert.Equal(t, 4, result.Exhibition.StallSize.Medium)
	assert.Equal(t, 12, result.Exhibition.RegisteredCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterStallExhausted(t *testing.T) {
	db, mock := newMockDB(t)
	cfg := &config.Config{PublicBaseURL: "http://localhost:5000"}
	svc := NewExhibitionService(db, cfg, NewBlobService(cfg), NewURLService(cfg))

	// 库存为0时条件更新不命中任何行
	mock.ExpectExec("UPDATE `exhibitions`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	start := time.Now().Add(24 * time.Hour)
	end := time.Now().Add(48 * time.Hour)
	rows := sqlmock.NewRows([]string{"id", "title", "start_date", "end_date", "status", "stall_medium", "registered_count"}).
		AddRow(1, "Auto Expo", start, end, "upcoming", 0, 12)
	mock.ExpectQuery("SELECT \\* FROM `exhibitions`").
		WillReturnRows(rows)

	result, err := svc.RegisterStall(1, models.StallSizeMedium)
	require.NoError(t, err)
	assert.False(t, result.Registered)
	assert.Equal(t, "Auto Expo", result.Exhibition.Title)
	assert.Equal(t, 0, result.Exhibition.StallSize.Medium)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterStallDecrements(t *testing.T) {
	db, mock := newMockDB(t)
	cfg := &config.Config{PublicBaseURL: "http://localhost:5000"}
	svc := NewExhibitionService(db, cfg, NewBlobService(cfg), NewURLService(cfg))

	mock.ExpectExec("UPDATE `exhibitions`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	start := time.Now().Add(24 * time.Hour)
	end := time.Now().Add(48 * time.Hour)
	rows := sqlmock.NewRows([]string{"id", "title", "start_date", "end_date", "status", "stall_medium", "registered_count"}).
		AddRow(1, "Auto Expo", start, end, "upcoming", 4, 13)
	mock.ExpectQuery("SELECT \\* FROM `exhibitions`").
		WillReturnRows(rows)

	result, err := svc.RegisterStall(1, models.StallSizeMedium)
	require.NoError(t, err)
	assert.True(t, result.Registered)
	assert.Equal(t, 13, result.Exhibition.RegisteredCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExhibitionRejectsInvertedDates(t *testing.T) {
	svc := NewExhibitionService(nil, &config.Config{}, nil, nil)

	err := svc.CreateExhibition(&models.Exhibition{
		Title:     "Backwards",
		StartDate: time.Now().Add(48 * time.Hour),
		EndDate:   time.Now().Add(24 * time.Hour),
	})
	assert.Error(t, err)
}
