package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/models"
	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/config"
	"github.com/Riju7407/STAGEJHOOK-main/utils"
)

// ErrInvalidCredentials 登录失败的统一错误
// 邮箱不存在与密码错误返回同一个消息，避免泄露账号是否存在
var ErrInvalidCredentials = errors.New("invalid email or password")

// InterfaceJWTService 定义JWT服务接口
type InterfaceJWTService interface {
	GenerateToken(admin *models.Admin) (string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	ExtractClaims(tokenString string) (*AdminClaims, error)
	Login(email, password string) (*LoginResult, error)
}

// AdminClaims 定义JWT令牌的声明结构
type AdminClaims struct {
	AdminID uint   `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// LoginResult 表示登录结果
type LoginResult struct {
	Token string        `json:"token"`
	Admin *models.Admin `json:"admin"`
}

// JWTService 提供JWT相关服务
type JWTService struct {
	secretKey   string
	issuer      string
	expireHours int
	DB          *gorm.DB
}

// NewJWTService 创建一个新的JWT服务
func NewJWTService(cfg *config.Config, db *gorm.DB) InterfaceJWTService {
	expireHours := cfg.JWTExpireHours
	if expireHours <= 0 {
		expireHours = 168 // 默认7天
	}

	return &JWTService{
		secretKey:   cfg.JWTSecretKey,
		issuer:      "stagejhook-http-service",
		expireHours: expireHours,
		DB:          db,
	}
}

// GenerateToken 为管理员生成JWT令牌
func (s *JWTService) GenerateToken(admin *models.Admin) (string, error) {
	expirationTime := time.Now().Add(time.Duration(s.expireHours) * time.Hour)

	claims := &AdminClaims{
		AdminID: admin.ID,
		Email:   admin.Email,
		Name:    admin.Name,
		Role:    string(admin.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ValidateToken 验证JWT令牌
func (s *JWTService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
}

// ExtractClaims 从令牌中提取管理员身份声明
func (s *JWTService) ExtractClaims(tokenString string) (*AdminClaims, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// Login 处理管理员登录请求
func (s *JWTService) Login(email, password string) (*LoginResult, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	var admin models.Admin
	if err := s.DB.Where("email = ?", normalized).First(&admin).Error; err != nil {
		// 不区分"账号不存在"与"密码错误"
		return nil, ErrInvalidCredentials
	}

	if !admin.IsActive {
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, admin.Password) {
		return nil, ErrInvalidCredentials
	}

	// 更新最近登录时间
	now := time.Now()
	admin.LastLogin = &now
	if err := s.DB.Model(&admin).Update("last_login", now).Error; err != nil {
		return nil, err
	}

	token, err := s.GenerateToken(&admin)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: token,
		Admin: &admin,
	}, nil
}
