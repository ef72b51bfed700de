package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCacheServesSecondRequestFromCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	PurgeCache()

	var hits int64
	r := gin.New()
	r.GET("/cached", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		atomic.AddInt64(&hits, 1)
		c.JSON(http.StatusOK, gin.H{"value": 42})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/cached", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"value":42`)
	}

	// 第一次之后的请求都打在缓存上
	assert.Equal(t, int64(1), atomic.LoadInt64(&hits))
}

func TestCacheSkipsNonGET(t *testing.T) {
	gin.SetMode(gin.TestMode)
	PurgeCache()

	var hits int64
	r := gin.New()
	r.POST("/cached", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		atomic.AddInt64(&hits, 1)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/cached", nil)
		r.ServeHTTP(w, req)
	}

	assert.Equal(t, int64(2), atomic.LoadInt64(&hits))
}

func TestCacheSkipsErrorResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	PurgeCache()

	var hits int64
	r := gin.New()
	r.GET("/failing", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		atomic.AddInt64(&hits, 1)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/failing", nil)
		r.ServeHTTP(w, req)
	}

	// 错误响应不进缓存，每次都回源
	assert.Equal(t, int64(2), atomic.LoadInt64(&hits))
}

func TestPurgeCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	PurgeCache()

	var hits int64
	r := gin.New()
	r.GET("/cached", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		atomic.AddInt64(&hits, 1)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	request := func() {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/cached", nil)
		r.ServeHTTP(w, req)
	}

	request()
	request()
	assert.Equal(t, int64(1), atomic.LoadInt64(&hits))

	PurgeCache()
	request()
	assert.Equal(t, int64(2), atomic.LoadInt64(&hits))
}

func TestDefaultKeyFuncIgnoresQueryOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	makeKey := func(target string) string {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, target, nil)
		return defaultKeyFunc(c)
	}

	assert.Equal(t, makeKey("/api/portfolio?a=1&b=2"), makeKey("/api/portfolio?b=2&a=1"))
	assert.NotEqual(t, makeKey("/api/portfolio?a=1"), makeKey("/api/portfolio?a=2"))
}

func TestCacheNotSharedAcrossAuthStates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	PurgeCache()

	// 带凭证时响应里包含未发布草稿，匿名访客绝不能拿到这份副本
	r := gin.New()
	r.GET("/portfolio", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		items := []string{"published"}
		if c.GetHeader("Authorization") != "" {
			items = append(items, "unpublished-draft")
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	})

	adminReq := httptest.NewRequest(http.MethodGet, "/portfolio", nil)
	adminReq.Header.Set("Authorization", "Bearer admin-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, adminReq)
	assert.Contains(t, w.Body.String(), "unpublished-draft")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/portfolio", nil))
	assert.NotContains(t, w.Body.String(), "unpublished-draft")

	// 反向同理：匿名副本进缓存后，带凭证的请求仍然看到完整数据
	w = httptest.NewRecorder()
	r.ServeHTTP(w, adminReq)
	assert.Contains(t, w.Body.String(), "unpublished-draft")
}

func TestCacheSkipsCookieAuthenticatedRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	PurgeCache()

	var hits int64
	r := gin.New()
	r.GET("/cached", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		atomic.AddInt64(&hits, 1)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/cached", nil)
		req.AddCookie(&http.Cookie{Name: adminTokenCookie, Value: "token"})
		r.ServeHTTP(w, req)
	}

	// Cookie凭证同样绕过缓存，每次都落到处理函数
	assert.Equal(t, int64(2), atomic.LoadInt64(&hits))
}
