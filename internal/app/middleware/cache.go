package middleware

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services"
)

// 缓存条目
type cacheEntry struct {
	Content    []byte
	Expiration time.Time
}

// 内存缓存，Redis不可用时的兜底
type memoryCache struct {
	sync.RWMutex
	items map[string]cacheEntry
}

var cache = &memoryCache{
	items: make(map[string]cacheEntry),
}

// redisCache Redis响应缓存，启用后优先于内存缓存
var (
	redisCache   services.InterfaceRedisService
	redisCacheMu sync.RWMutex
)

// InitCacheRedis 启用Redis响应缓存
func InitCacheRedis(svc services.InterfaceRedisService) {
	redisCacheMu.Lock()
	defer redisCacheMu.Unlock()
	redisCache = svc
}

// CacheConfig 缓存配置
type CacheConfig struct {
	Expiration time.Duration             // 缓存过期时间
	Methods    []string                  // 需要缓存的HTTP方法
	KeyFunc    func(*gin.Context) string // 自定义缓存键生成函数
}

// DefaultCacheConfig 默认缓存配置
var DefaultCacheConfig = CacheConfig{
	Expiration: 5 * time.Minute,
	Methods:    []string{http.MethodGet},
	KeyFunc:    defaultKeyFunc,
}

// hasCredentials 判断请求是否携带了认证凭证
// 带凭证的请求可能看到未发布内容，响应不能与匿名访客共享
func hasCredentials(c *gin.Context) bool {
	if c.GetHeader("Authorization") != "" {
		return true
	}
	if cookie, err := c.Cookie(adminTokenCookie); err == nil && cookie != "" {
		return true
	}
	return false
}

// 默认缓存键生成函数：路径 + 排序后的查询参数
func defaultKeyFunc(c *gin.Context) string {
	path := c.Request.URL.Path

	queryParams := c.Request.URL.Query()
	var queryKeys []string
	for key := range queryParams {
		queryKeys = append(queryKeys, key)
	}
	sort.Strings(queryKeys)

	var queryString string
	for _, key := range queryKeys {
		values := queryParams[key]
		sort.Strings(values)
		for _, value := range values {
			queryString += key + "=" + value + "&"
		}
	}

	key := path + "?" + queryString

	hasher := md5.New()
	hasher.Write([]byte(key))
	return "resp_cache:" + hex.EncodeToString(hasher.Sum(nil))
}

// responseWriter 捕获响应体以便写入缓存
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// lookup 依次查Redis与内存缓存
func lookup(key string) ([]byte, bool) {
	redisCacheMu.RLock()
	svc := redisCache
	redisCacheMu.RUnlock()

	if svc != nil {
		var content []byte
		if err := svc.Get(key, &content); err == nil {
			return content, true
		}
	}

	cache.RLock()
	entry, found := cache.items[key]
	cache.RUnlock()
	if found && entry.Expiration.After(time.Now()) {
		return entry.Content, true
	}
	return nil, false
}

// store 双写Redis与内存缓存，Redis失败静默降级
func store(key string, content []byte, expiration time.Duration) {
	redisCacheMu.RLock()
	svc := redisCache
	redisCacheMu.RUnlock()

	if svc != nil {
		_ = svc.Set(key, content, expiration)
	}

	cache.Lock()
	cache.items[key] = cacheEntry{
		Content:    content,
		Expiration: time.Now().Add(expiration),
	}
	cache.Unlock()
}

// Cache 创建响应缓存中间件
func Cache(config ...CacheConfig) gin.HandlerFunc {
	var cfg CacheConfig
	if len(config) > 0 {
		cfg = config[0]
	} else {
		cfg = DefaultCacheConfig
	}

	if cfg.Expiration <= 0 {
		cfg.Expiration = DefaultCacheConfig.Expiration
	}
	if len(cfg.Methods) == 0 {
		cfg.Methods = DefaultCacheConfig.Methods
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = DefaultCacheConfig.KeyFunc
	}

	return func(c *gin.Context) {
		methodAllowed := false
		for _, method := range cfg.Methods {
			if c.Request.Method == method {
				methodAllowed = true
				break
			}
		}
		if !methodAllowed {
			c.Next()
			return
		}

		// 缓存只服务匿名请求，带凭证的请求直接放行
		if hasCredentials(c) {
			c.Next()
			return
		}

		key := cfg.KeyFunc(c)

		if content, found := lookup(key); found {
			c.Data(http.StatusOK, "application/json; charset=utf-8", content)
			c.Abort()
			return
		}

		// 缓存未命中，捕获响应
		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		c.Next()

		// 只缓存成功响应
		if c.Writer.Status() == http.StatusOK {
			store(key, writer.body.Bytes(), cfg.Expiration)
		}
	}
}

// PurgeCache 清除内存与Redis中的全部响应缓存条目
// 内容变更接口写入后调用，保证后台改动立即可见
func PurgeCache() {
	cache.Lock()
	cache.items = make(map[string]cacheEntry)
	cache.Unlock()

	redisCacheMu.RLock()
	svc := redisCache
	redisCacheMu.RUnlock()
	if svc != nil {
		_ = svc.DeletePattern("resp_cache:*")
	}
}
