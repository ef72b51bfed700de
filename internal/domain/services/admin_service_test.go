package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Riju7407/STAGEJHOOK-main/internal/domain/models"
	"github.com/Riju7407/STAGEJHOOK-main/internal/infrastructure/config"
	"github.com/Riju7407/STAGEJHOOK-main/utils"
)

func TestCheckPassword(t *testing.T) {
	svc := NewAdminService(nil, &config.Config{})

	hash, err := utils.HashPassword("Admin@123")
	require.NoError(t, err)

	assert.True(t, svc.CheckPassword("Admin@123", hash))
	assert.False(t, svc.CheckPassword("wrong", hash))
}

func TestCreateAdminRejectsDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAdminService(db, &config.Config{})

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `admins`").
		WithArgs("taken@stagejhook.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := svc.CreateAdmin(&models.Admin{
		Email:    "Taken@stagejhook.com",
		Password: "secret123",
		Name:     "Dup",
	})
	assert.ErrorIs(t, err, ErrAdminEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAdminKeepsLastOne(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAdminService(db, &config.Config{})

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `admins`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := svc.DeleteAdmin(5)
	assert.ErrorIs(t, err, ErrLastAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAdminNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAdminService(db, &config.Config{})

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `admins`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec("DELETE FROM `admins`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.DeleteAdmin(99)
	assert.ErrorIs(t, err, ErrAdminNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAdminByEmailNormalizesLookup(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAdminService(db, &config.Config{})

	rows := sqlmock.NewRows([]string{"id", "email", "name", "role", "is_active"}).
		AddRow(1, "admin@stagejhook.com", "Admin User", "super_admin", true)
	mock.ExpectQuery("SELECT \\* FROM `admins`").
		WillReturnRows(rows)

	admin, err := svc.GetAdminByEmail("  ADMIN@stagejhook.com ")
	require.NoError(t, err)
	assert.Equal(t, "admin@stagejhook.com", admin.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAdminRehashGuard(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAdminService(db, &config.Config{}).(*AdminService)

	oldHash, err := utils.HashPassword("OldPass@1")
	require.NoError(t, err)

	adminRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "email", "password", "name", "role", "is_active"}).
			AddRow(3, "ops@stagejhook.com", oldHash, "Ops", "admin", true)
	}

	// 只改名字：password 键不在变更集中，不得触发重哈希
	mock.ExpectQuery("SELECT \\* FROM `admins`").WillReturnRows(adminRows())
	mock.ExpectExec("UPDATE `admins`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT \\* FROM `admins`").WillReturnRows(adminRows())

	updates := map[string]interface{}{"name": "Ops Lead"}
	_, err = svc.UpdateAdmin(3, updates)
	require.NoError(t, err)
	_, hasPassword := updates["password"]
	assert.False(t, hasPassword)

	// 改密码：变更集中的明文必须被替换成可校验的新哈希
	mock.ExpectQuery("SELECT \\* FROM `admins`").WillReturnRows(adminRows())
	mock.ExpectExec("UPDATE `admins`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT \\* FROM `admins`").WillReturnRows(adminRows())

	updates = map[string]interface{}{"password": "NewPass@2"}
	_, err = svc.UpdateAdmin(3, updates)
	require.NoError(t, err)
	newHash, ok := updates["password"].(string)
	require.True(t, ok)
	assert.NotEqual(t, "NewPass@2", newHash)
	assert.NotEqual(t, oldHash, newHash)
	assert.True(t, utils.CheckPasswordHash("NewPass@2", newHash))
	assert.False(t, utils.CheckPasswordHash("OldPass@1", newHash))
	assert.NoError(t, mock.ExpectationsWereMet())
}
