package models

import "time"

// AdminRole 管理员角色
type AdminRole string

const (
	RoleAdmin      AdminRole = "admin"
	RoleSuperAdmin AdminRole = "super_admin"
)

// Admin represents back-office administrators
type Admin struct {
	BaseModel
	Email        string     `gorm:"type:varchar(100);unique;not null" json:"email"`
	Password     string     `gorm:"type:varchar(100);not null" json:"-"` // bcrypt hash, never serialized
	Name         string     `gorm:"type:varchar(100);not null" json:"name"`
	Role         AdminRole  `gorm:"type:varchar(20);default:'admin'" json:"role"`
	IsActive     bool       `gorm:"default:true" json:"isActive"`
	ProfileImage string     `gorm:"type:varchar(500)" json:"profileImage,omitempty"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}

// IsValidAdminRole 校验角色取值
func IsValidAdminRole(role string) bool {
	switch AdminRole(role) {
	case RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}
