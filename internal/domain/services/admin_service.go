package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/models"
	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/config"
	Logger "github.com/Riju7407/STAGEJHOOK-main/pkg/logger"
	"github.com/Riju7407/STAGEJHOOK-main/utils"
)

var (
	// ErrAdminNotFound 管理员不存在
	ErrAdminNotFound = errors.New("admin not found")
	// ErrAdminEmailTaken 邮箱已被占用
	ErrAdminEmailTaken = errors.New("admin with this email already exists")
	// ErrLastAdmin 系统中必须保留至少一个管理员
	ErrLastAdmin = errors.New("cannot delete the last remaining admin")
)

// InterfaceAdminService Admin服务接口
type InterfaceAdminService interface {
	CheckPassword(password, hash string) bool
	GetAdminByID(id uint) (*models.Admin, error)
	GetAdminByEmail(email string) (*models.Admin, error)
	GetAllAdmins() ([]models.Admin, error)
	CreateAdmin(admin *models.Admin) error
	UpdateAdmin(id uint, updates map[string]interface{}) (*models.Admin, error)
	ChangePassword(id uint, currentPassword, newPassword string) error
	DeleteAdmin(id uint) error
	EnsureDefaultAdmin() error
}

// AdminService 提供管理员相关的服务
type AdminService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAdminService 创建一个新的管理员服务
func NewAdminService(db *gorm.DB, cfg *config.Config) InterfaceAdminService {
	return &AdminService{
		DB:     db,
		Config: cfg,
	}
}

// 1 CheckPassword 验证密码是否匹配
func (s *AdminService) CheckPassword(password, hash string) bool {
	return utils.CheckPasswordHash(password, hash)
}

// 2 GetAdminByID 根据ID获取管理员
func (s *AdminService) GetAdminByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// 3 GetAdminByEmail 根据邮箱获取管理员（统一转小写查询）
func (s *AdminService) GetAdminByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := s.DB.Where("email = ?", normalized).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// 4 GetAllAdmins 获取所有管理员，密码哈希不随 JSON 序列化输出
func (s *AdminService) GetAllAdmins() ([]models.Admin, error) {
	var admins []models.Admin
	if err := s.DB.Order("created_at DESC").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

// 5 CreateAdmin 创建新管理员
func (s *AdminService) CreateAdmin(admin *models.Admin) error {
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))

	// 验证邮箱唯一性
	var count int64
	if err := s.DB.Model(&models.Admin{}).Where("email = ?", admin.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAdminEmailTaken
	}

	if admin.Role == "" {
		admin.Role = models.RoleAdmin
	}

	// 设置密码哈希
	hashedPassword, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("密码加密失败: %v", err)
	}
	admin.Password = hashedPassword
	admin.IsActive = true

	return s.DB.Create(admin).Error
}

// 6 UpdateAdmin 更新管理员信息
// 只有当变更集中包含 password 字段时才重新哈希，避免普通资料更新破坏已存哈希
func (s *AdminService) UpdateAdmin(id uint, updates map[string]interface{}) (*models.Admin, error) {
	admin, err := s.GetAdminByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新邮箱，需要转小写并检查唯一性
	if email, ok := updates["email"].(string); ok {
		normalized := strings.ToLower(strings.TrimSpace(email))
		if normalized != admin.Email {
			var count int64
			if err := s.DB.Model(&models.Admin{}).Where("email = ? AND id != ?", normalized, admin.ID).Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, ErrAdminEmailTaken
			}
		}
		updates["email"] = normalized
	}

	// 哈希守卫：仅在变更集中出现 password 时重新哈希
	if password, ok := updates["password"].(string); ok && password != "" {
		hashedPassword, err := utils.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("密码加密失败: %v", err)
		}
		updates["password"] = hashedPassword
	} else {
		delete(updates, "password")
	}

	if err := s.DB.Model(admin).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetAdminByID(id)
}

// 7 ChangePassword 修改密码，要求提供当前密码
func (s *AdminService) ChangePassword(id uint, currentPassword, newPassword string) error {
	admin, err := s.GetAdminByID(id)
	if err != nil {
		return err
	}

	if !s.CheckPassword(currentPassword, admin.Password) {
		return errors.New("current password is incorrect")
	}

	_, err = s.UpdateAdmin(id, map[string]interface{}{"password": newPassword})
	return err
}

// 8 DeleteAdmin 删除管理员
// 管理员创建的内容保留（createdBy 只是展示用引用，不做级联删除）
func (s *AdminService) DeleteAdmin(id uint) error {
	// 确保系统中至少有一个管理员
	var count int64
	if err := s.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastAdmin
	}

	result := s.DB.Delete(&models.Admin{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdminNotFound
	}
	return nil
}

// 9 EnsureDefaultAdmin 确保系统中有默认管理员账户
func (s *AdminService) EnsureDefaultAdmin() error {
	var count int64
	if err := s.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := &models.Admin{
		Email:    s.Config.DefaultAdminEmail,
		Password: s.Config.DefaultAdminPassword,
		Name:     "Admin User",
		Role:     models.RoleSuperAdmin,
	}
	if err := s.CreateAdmin(admin); err != nil {
		return err
	}

	Logger.Info("已创建默认管理员账户: %s", admin.Email)
	return nil
}
