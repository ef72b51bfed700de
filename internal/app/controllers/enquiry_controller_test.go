package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services/container"
	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/config"
)

// newTestContainer 构造挂在 sqlmock 上的服务容器
func newTestContainer(t *testing.T) (*container.ServiceContainer, sqlmock.Sqlmock) {
	t.Helper()
	return newTestContainerWithConfig(t, nil)
}

// newTestContainerWithConfig 同上，允许调用方微调配置
func newTestContainerWithConfig(t *testing.T, mutate func(*config.Config)) (*container.ServiceContainer, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("创建 sqlmock 失败: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("打开 gorm 连接失败: %v", err)
	}

	cfg := &config.Config{
		JWTSecretKey:  "test-secret",
		PublicBaseURL: "http://localhost:5000",
		UploadDir:     t.TempDir(),
	}
	if mutate != nil {
		mutate(cfg)
	}
	return container.NewServiceContainer(db, cfg), mock
}

func TestCreateEnquiryEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, mock := newTestContainer(t)

	mock.ExpectExec("INSERT INTO `enquiries`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	r := gin.New()
	r.POST("/api/enquiry", HandleEnquiryFunc(c, "createEnquiry"))

	body := `{
		"name": "Rahul Sharma",
		"email": "Rahul@Example.com",
		"subject": "Stall booking",
		"message": "Need a medium stall for the expo",
		"enquiryType": "time_travel_booking"
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/enquiry", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	// 邮箱转小写、未知类型回落到默认值
	assert.Contains(t, w.Body.String(), `"email":"rahul@example.com"`)
	assert.Contains(t, w.Body.String(), `"enquiryType":"general_inquiry"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEnquiryValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := newTestContainer(t)

	r := gin.New()
	r.POST("/api/enquiry", HandleEnquiryFunc(c, "createEnquiry"))

	// 缺少必填字段
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/enquiry", strings.NewReader(`{"name":"X"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestGetEnquiryNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, mock := newTestContainer(t)

	mock.ExpectQuery("SELECT \\* FROM `enquiries`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	r := gin.New()
	r.GET("/api/enquiry/:id", HandleEnquiryFunc(c, "getEnquiry"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/enquiry/404", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseIDParamRejectsGarbage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := newTestContainer(t)

	r := gin.New()
	r.GET("/api/enquiry/:id", HandleEnquiryFunc(c, "getEnquiry"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/enquiry/not-a-number", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateEnquiryDropsMalformedReference(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, mock := newTestContainer(t)

	// 合法的 portfolioId 走存在性检查；畸形的 exhibitionId 在落库前被丢弃，不拒单
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `portfolios`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec("INSERT INTO `enquiries`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	r := gin.New()
	r.POST("/api/enquiry", HandleEnquiryFunc(c, "createEnquiry"))

	body := `{
		"name": "Rahul Sharma",
		"email": "rahul@example.com",
		"subject": "Stall booking",
		"message": "Need a medium stall for the expo",
		"exhibitionId": "66b2f0a1d4c3b2a190887766",
		"portfolioId": 2
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/enquiry", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "66b2f0a1d4c3b2a190887766")
	assert.NotContains(t, w.Body.String(), `"exhibitionId"`)
	assert.Contains(t, w.Body.String(), `"portfolioId":2`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseReference(t *testing.T) {
	cases := []struct {
		name string
		raw  interface{}
		want *uint
	}{
		{"整数", float64(7), uintPtr(7)},
		{"数字字符串", " 12 ", uintPtr(12)},
		{"ObjectId字符串", "66b2f0a1d4c3b2a190887766", nil},
		{"小数", 3.5, nil},
		{"负数", float64(-1), nil},
		{"零", float64(0), nil},
		{"空值", nil, nil},
		{"对象", map[string]interface{}{"id": 1}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseReference(tc.raw, "exhibitionId")
			if tc.want == nil {
				assert.Nil(t, got)
			} else {
				assert.NotNil(t, got)
				assert.Equal(t, *tc.want, *got)
			}
		})
	}
}

func uintPtr(v uint) *uint { return &v }
