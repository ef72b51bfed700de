package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Riju7407/STAGEJHOOK-main/internal/app/middleware"
)

func TestStatsUpdateInvalidatesCachedResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	middleware.PurgeCache()
	c, mock := newTestContainer(t)

	statsRow := func(value float64) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "covered_area_value", "covered_area_label"}).
			AddRow(1, value, "sqm Covered Area")
	}

	r := gin.New()
	r.GET("/api/stats", middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}), HandleStatsFunc(c, "getStats"))
	r.PUT("/api/stats", HandleStatsFunc(c, "updateStats"))

	// 第一次读取落库并进缓存
	mock.ExpectQuery("SELECT \\* FROM `stats`").WillReturnRows(statsRow(46000))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "46000")

	// 第二次读取打在缓存上，不触发查询
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	assert.Contains(t, w.Body.String(), "46000")

	mock.ExpectQuery("SELECT \\* FROM `stats`").WillReturnRows(statsRow(46000))
	mock.ExpectExec("UPDATE `stats`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT \\* FROM `stats`").WillReturnRows(statsRow(50000))

	body := `{"coveredArea": {"value": 50000, "label": "sqm Covered Area"}}`
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/stats", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// 更新清掉了缓存副本，下一次匿名读取拿到新值
	mock.ExpectQuery("SELECT \\* FROM `stats`").WillReturnRows(statsRow(50000))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	assert.Contains(t, w.Body.String(), "50000")

	assert.NoError(t, mock.ExpectationsWereMet())
}
