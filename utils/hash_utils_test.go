package utils

import (
	"strings"
	"testing"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("Admin@123")
	if err != nil {
		t.Fatalf("哈希失败: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$10$") {
		t.Errorf("哈希格式不符合预期: %s", hash)
	}

	if !CheckPasswordHash("Admin@123", hash) {
		t.Error("正确密码校验未通过")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("错误密码不应校验通过")
	}
}

func TestCheckPasswordHashInvalidHash(t *testing.T) {
	if CheckPasswordHash("Admin@123", "not-a-bcrypt-hash") {
		t.Error("非法哈希不应校验通过")
	}
}
