package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/models"
	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/services"
)

// stubJWTService 只认 "valid-token" 的测试替身
type stubJWTService struct {
	role string
}

func (s *stubJWTService) GenerateToken(admin *models.Admin) (string, error) {
	return "valid-token", nil
}

func (s *stubJWTService) ValidateToken(tokenString string) (*jwt.Token, error) {
	if tokenString != "valid-token" {
		return nil, errors.New("invalid token")
	}
	return &jwt.Token{Valid: true}, nil
}

func (s *stubJWTService) ExtractClaims(tokenString string) (*services.AdminClaims, error) {
	if tokenString != "valid-token" {
		return nil, errors.New("invalid token")
	}
	return &services.AdminClaims{
		AdminID: 7,
		Email:   "admin@stagejhook.com",
		Role:    s.role,
	}, nil
}

func (s *stubJWTService) Login(email, password string) (*services.LoginResult, error) {
	return nil, services.ErrInvalidCredentials
}

func setupAuthRouter(role string, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetJWTService(&stubJWTService{role: role})

	r := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		id, _ := CurrentAdminID(c)
		c.JSON(http.StatusOK, gin.H{"adminID": id})
	})
	r.GET("/protected", chain...)
	return r
}

func TestAuthenticationMissingToken(t *testing.T) {
	r := setupAuthRouter("admin", Authentication())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticationInvalidToken(t *testing.T) {
	r := setupAuthRouter("admin", Authentication())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticationBearerHeader(t *testing.T) {
	r := setupAuthRouter("admin", Authentication())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"adminID":7`)
}

func TestAuthenticationCookie(t *testing.T) {
	r := setupAuthRouter("admin", Authentication())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: adminTokenCookie, Value: "valid-token"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthenticationAnonymous(t *testing.T) {
	r := setupAuthRouter("admin", OptionalAuthentication())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	// 匿名请求照常放行，只是没有身份
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"adminID":0`)
}

func TestOptionalAuthenticationWithToken(t *testing.T) {
	r := setupAuthRouter("admin", OptionalAuthentication())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"adminID":7`)
}

func TestRequireAdminRejectsUnknownRole(t *testing.T) {
	r := setupAuthRouter("visitor", Authentication(), RequireAdmin())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireSuperAdmin(t *testing.T) {
	// 普通管理员被拒
	r := setupAuthRouter("admin", Authentication(), RequireSuperAdmin())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 超级管理员放行
	r = setupAuthRouter("super_admin", Authentication(), RequireSuperAdmin())
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
